package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

const schemaVersion = 3
const currency = "RON"
const ocrEngine = "tesseract"

// DocumentContext carries the caller-supplied identifiers that end up in
// the record's Source block. Parse never touches the filesystem itself;
// these are whatever labels the caller's storage layer used.
type DocumentContext struct {
	FileName    string
	StoreFolder string
	RelPath     string
}

// Parse is the parser's single entry point: a pure, side-effect-free
// transform from OCR line output to a schema v3 ReceiptRecord. It never
// performs I/O and holds no state across calls, so it is safe to invoke
// concurrently for independent receipts. Pass trace to collect a
// human-readable account of every state-machine decision; pass nil to skip
// it.
func Parse(lines []string, ctx DocumentContext, trace *Trace) (record *models.ReceiptRecord) {
	defer func() {
		if r := recover(); r != nil {
			record = failureRecord(ctx, strings.Join(rawLines(lines), "\n"),
				fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	raw := strings.Join(lines, "\n")

	merchant := ExtractMerchant(lines)
	timestamp := ExtractTimestamp(lines)

	lei := ExtractLeiStream(lines)
	total, _, _ := ExtractTotals(lines, lei)

	items, warnings := ParseItems(lines, trace)

	if total == nil {
		rec := failureRecord(ctx, raw, "no total found")
		if items != nil {
			rec.Items = PostProcessItems(items)
		}
		return rec
	}

	discountTotal := AttachDiscountsFromLEI(items, lei)
	sgrRecovered := ExtractSGRRecovered(lines, lei)
	items = PostProcessItems(items)

	status := "ok"
	if len(warnings) > 0 {
		status = "warn"
	}

	if warnings == nil {
		warnings = []string{}
	}
	if items == nil {
		items = []models.Item{}
	}

	return &models.ReceiptRecord{
		SchemaVersion:      schemaVersion,
		Store:              "lidl",
		Timestamp:          timestamp,
		Currency:           currency,
		Total:              total,
		DiscountTotal:      discountTotal,
		SGRBottleCharge:    decimal.Zero,
		SGRRecoveredAmount: sgrRecovered,
		Merchant:           merchant,
		Items:              items,
		Processing: models.Processing{
			Status:    status,
			Warnings:  warnings,
			Error:     nil,
			OCREngine: ocrEngine,
		},
		Source: models.Source{
			FileName:    ctx.FileName,
			StoreFolder: ctx.StoreFolder,
			RelPath:     ctx.RelPath,
		},
		RawText: raw,
	}
}

func failureRecord(ctx DocumentContext, raw, errMsg string) *models.ReceiptRecord {
	return &models.ReceiptRecord{
		SchemaVersion:      schemaVersion,
		Store:              "lidl",
		Timestamp:          nil,
		Currency:           currency,
		Total:              nil,
		DiscountTotal:      decimal.Zero,
		SGRBottleCharge:    decimal.Zero,
		SGRRecoveredAmount: decimal.Zero,
		Merchant:           models.Merchant{},
		Items:              []models.Item{},
		Processing: models.Processing{
			Status:    "fail",
			Warnings:  []string{},
			Error:     &errMsg,
			OCREngine: ocrEngine,
		},
		Source: models.Source{
			FileName:    ctx.FileName,
			StoreFolder: ctx.StoreFolder,
			RelPath:     ctx.RelPath,
		},
		RawText: raw,
	}
}

func rawLines(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
