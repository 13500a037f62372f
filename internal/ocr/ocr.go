// Package ocr wraps text extraction from a receipt image file, isolating
// the only fallible I/O step in the ingestion pipeline behind an interface
// so the parser itself never has to be re-entered on OCR failure.
package ocr

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"
)

// Engine extracts text from an image on disk.
type Engine interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// TesseractEngine implements Engine using the Tesseract bindings, configured
// for Romanian receipts.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine builds an engine for the given language pack (e.g. "ron").
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{language: language}
}

// ExtractText runs OCR against the image at imagePath and returns the raw
// text blob, newline-delimited as produced by Tesseract. A fresh client is
// created per call: gosseract clients are not safe for concurrent reuse,
// and receipt ingestion is not hot enough to justify pooling them.
func (e *TesseractEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("set OCR language %q: %w", e.language, err)
	}

	// PSM 6: assume a single uniform block of text, which matches how LIDL
	// receipts render as one continuous column.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return "", fmt.Errorf("resolve image path: %w", err)
	}

	if err := client.SetImage(absPath); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("extract OCR text: %w", err)
	}

	return text, nil
}
