package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mpopescu/lidl-receipts/internal/config"
	"github.com/mpopescu/lidl-receipts/internal/database"
	"github.com/mpopescu/lidl-receipts/internal/middleware"
	"github.com/mpopescu/lidl-receipts/internal/models"
	"github.com/mpopescu/lidl-receipts/internal/ocr"
	"github.com/mpopescu/lidl-receipts/internal/parser"
	"github.com/mpopescu/lidl-receipts/internal/services"
)

// ReceiptHandler handles receipt-related endpoints
type ReceiptHandler struct {
	db      *database.DB
	cfg     *config.Config
	storage *services.StorageService
	ocr     ocr.Engine
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(db *database.DB, cfg *config.Config, storage *services.StorageService, ocrEngine ocr.Engine) *ReceiptHandler {
	return &ReceiptHandler{
		db:      db,
		cfg:     cfg,
		storage: storage,
		ocr:     ocrEngine,
	}
}

// UploadReceipt handles receipt image upload, OCR, and parsing.
func (h *ReceiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return Error(c, fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}

	if file.Size > 10*1024*1024 {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}

	sourceHash := sha256Hex(imageBytes)

	s3Key := generateS3Key(userID, file.Filename)

	uploadResult, err := h.storage.Upload(c.Context(), s3Key, bytes.NewReader(imageBytes), file.Size, contentType)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to upload image")
	}

	receipt, err := h.db.CreateReceipt(c.Context(), &models.CreateReceiptRequest{
		UserID:           userID,
		S3Bucket:         uploadResult.Bucket,
		S3Key:            s3Key,
		OriginalFilename: file.Filename,
		ContentType:      contentType,
		FileSizeBytes:    file.Size,
		SourceHash:       sourceHash,
	})
	if err != nil {
		if deleteErr := h.storage.Delete(c.Context(), s3Key); deleteErr != nil {
			log.Printf("Warning: Failed to clean up S3 object %s after receipt creation failure: %v", s3Key, deleteErr)
		}
		if errors.Is(err, database.ErrDuplicateReceipt) {
			return Error(c, fiber.StatusConflict, "this receipt image has already been uploaded")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create receipt record")
	}

	record, ocrText, parseErr := h.ocrAndParse(c.Context(), receipt, imageBytes, file.Filename)
	if parseErr != nil {
		if statusErr := h.db.UpdateReceiptFailed(c.Context(), receipt.ID, parseErr.Error()); statusErr != nil {
			log.Printf("Warning: Failed to mark receipt %d as failed: %v", receipt.ID, statusErr)
		}
		return Error(c, fiber.StatusInternalServerError, "receipt processing failed")
	}

	if err := h.db.UpdateReceiptOCR(c.Context(), receipt.ID, ocrText); err != nil {
		log.Printf("Warning: Failed to store OCR text for receipt %d: %v", receipt.ID, err)
	}
	if err := h.db.UpdateReceiptParsed(c.Context(), receipt.ID, record); err != nil {
		log.Printf("Warning: Failed to store parsed record for receipt %d: %v", receipt.ID, err)
	}

	fullReceipt, err := h.db.GetReceiptByID(c.Context(), receipt.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to retrieve receipt")
	}

	return Success(c, fullReceipt)
}

// ocrAndParse writes the image to a temp file, runs OCR against it, then
// hands the resulting lines to the parser. OCR is the only fallible I/O
// step; the parser itself never touches the filesystem or network.
func (h *ReceiptHandler) ocrAndParse(ctx context.Context, receipt *models.Receipt, imageBytes []byte, filename string) (*models.ReceiptRecord, string, error) {
	tmpFile, err := os.CreateTemp("", "receipt-*.jpg")
	if err != nil {
		return nil, "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(imageBytes); err != nil {
		tmpFile.Close()
		return nil, "", fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	text, err := h.ocr.ExtractText(ctx, tmpFile.Name())
	if err != nil {
		return nil, "", fmt.Errorf("OCR failed: %w", err)
	}

	lines := strings.Split(text, "\n")
	docCtx := parser.DocumentContext{
		FileName:    filename,
		StoreFolder: "lidl",
		RelPath:     receipt.S3Key,
	}

	return parser.Parse(lines, docCtx, nil), text, nil
}

// ReparseReceipt re-runs the parser against the already-stored OCR text,
// without invoking OCR again. Useful after a parser change, and it
// demonstrates that the parser is a pure function of its input lines.
func (h *ReceiptHandler) ReparseReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptForUser(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "receipt not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get receipt")
	}

	if receipt.OCRText == nil || *receipt.OCRText == "" {
		return Error(c, fiber.StatusBadRequest, "receipt has no stored OCR text to reparse")
	}

	lines := strings.Split(*receipt.OCRText, "\n")
	docCtx := parser.DocumentContext{
		FileName:    derefStr(receipt.OriginalFilename),
		StoreFolder: "lidl",
		RelPath:     receipt.S3Key,
	}

	record := parser.Parse(lines, docCtx, nil)
	if err := h.db.UpdateReceiptParsed(c.Context(), receipt.ID, record); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store reparsed record")
	}

	updated, err := h.db.GetReceiptByID(c.Context(), receipt.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to retrieve receipt")
	}

	return Success(c, updated)
}

// ListReceipts returns a paginated list of the caller's receipts
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	params := &models.ReceiptListParams{
		UserID: userID,
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	if status := c.Query("status"); status != "" {
		params.Status = &status
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	receipts, total, err := h.db.ListReceipts(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list receipts")
	}

	return SuccessWithMeta(c, receipts, total, params.Limit, params.Offset)
}

// GetReceipt returns a single receipt with its parsed record
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptForUser(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "receipt not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get receipt")
	}

	return Success(c, receipt)
}

// DeleteReceipt deletes a receipt and its stored image
func (h *ReceiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptForUser(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "receipt not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get receipt")
	}

	if err := h.storage.Delete(c.Context(), receipt.S3Key); err != nil {
		log.Printf("Warning: Failed to delete S3 object %s for receipt %d: %v", receipt.S3Key, id, err)
	}

	if err := h.db.DeleteReceipt(c.Context(), id); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete receipt")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// GetReceiptImage returns a presigned URL for the receipt image
func (h *ReceiptHandler) GetReceiptImage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptForUser(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "receipt not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get receipt")
	}

	url, err := h.storage.GetPresignedURL(c.Context(), receipt.S3Key, 1*time.Hour)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate image URL")
	}

	return Success(c, fiber.Map{"url": url})
}

// isValidImageType checks if the content type is a valid image
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/webp",
	}

	for _, t := range validTypes {
		if strings.EqualFold(contentType, t) {
			return true
		}
	}
	return false
}

// generateS3Key generates a unique S3 key for a receipt image
func generateS3Key(userID int, filename string) string {
	timestamp := time.Now().UnixNano()
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		ext = strings.ToLower(filename[idx:])
	}
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("receipts/%d/%d%s", userID, timestamp, ext)
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
