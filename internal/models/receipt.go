package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus represents the processing status of an uploaded receipt row.
type ReceiptStatus string

const (
	ReceiptStatusPending    ReceiptStatus = "pending"
	ReceiptStatusProcessing ReceiptStatus = "processing"
	ReceiptStatusCompleted  ReceiptStatus = "completed"
	ReceiptStatusFailed     ReceiptStatus = "failed"
)

// VatCode is the single-letter VAT class LIDL prints after an item's paid
// amount (A, B or D). D additionally marks SGR bottle-deposit lines, which
// the parser routes away from ordinary discounts.
type VatCode string

const (
	VatA VatCode = "A"
	VatB VatCode = "B"
	VatD VatCode = "D"
)

// Receipt is the durable row for an uploaded receipt image. The parsed
// result is stored alongside the raw OCR text so a receipt can be
// re-parsed without re-running OCR.
type Receipt struct {
	ID               int            `json:"id"`
	UserID           int            `json:"user_id"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Key            string         `json:"s3_key"`
	OriginalFilename *string        `json:"original_filename,omitempty"`
	ContentType      *string        `json:"content_type,omitempty"`
	FileSizeBytes    *int64         `json:"file_size_bytes,omitempty"`
	SourceHash       string         `json:"source_hash"`
	Status           ReceiptStatus  `json:"status"`
	OCRText          *string        `json:"ocr_text,omitempty"`
	ParsedRecord     *ReceiptRecord `json:"parsed_record,omitempty"`
	ErrorMessage     *string        `json:"error_message,omitempty"`
	UploadedAt       time.Time      `json:"uploaded_at"`
	ProcessedAt      *time.Time     `json:"processed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ReceiptListParams contains parameters for listing a user's receipts.
type ReceiptListParams struct {
	Limit  int
	Offset int
	Status *string
	UserID int
}

// CreateReceiptRequest is used when uploading a receipt image.
type CreateReceiptRequest struct {
	UserID           int
	S3Bucket         string
	S3Key            string
	OriginalFilename string
	ContentType      string
	FileSizeBytes    int64
	SourceHash       string
}

// Merchant holds whatever store-identifying fields could be found near the
// top of the receipt. Every field is optional; LIDL receipts do not always
// render all of them cleanly through OCR.
type Merchant struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	CIF     *string `json:"cif"`
}

// Item is a single parsed receipt line: the quantity/unit-price pair taken
// from the anchoring quantity line, plus the paid amount, discount and name
// collected from the lines that follow it.
//
// VatCode is tracked to route discount-vs-SGR disambiguation during
// parsing; LIDL's own schema v3 output never surfaces it per item, so it is
// excluded from JSON.
type Item struct {
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	QuantityRaw   string          `json:"quantity_raw"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitPriceRaw  string          `json:"unit_price_raw"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidAmountRaw string          `json:"paid_amount_raw"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountRaw   *string         `json:"discount_raw"`
	NeedsReview   bool            `json:"needs_review"`
	VatCode       VatCode         `json:"-"`
}

// Processing carries the outcome of a parse attempt: status, any warnings
// collected along the way, and a single human-readable error string when
// status is "fail".
type Processing struct {
	Status    string   `json:"status"`
	Warnings  []string `json:"warnings"`
	Error     *string  `json:"error"`
	OCREngine string   `json:"ocr_engine"`
}

// Source identifies where the parsed bytes came from, independent of any
// particular storage backend.
type Source struct {
	FileName    string `json:"file_name"`
	StoreFolder string `json:"store_folder"`
	RelPath     string `json:"rel_path"`
}

// ReceiptRecord is the schema v3 parse result: the exact shape written to
// parsed_record and returned from the API, field names and nesting as
// specified.
type ReceiptRecord struct {
	SchemaVersion      int              `json:"schema_version"`
	Store              string           `json:"store"`
	Timestamp          *string          `json:"timestamp"`
	Currency           string           `json:"currency"`
	Total              *decimal.Decimal `json:"total"`
	DiscountTotal      decimal.Decimal  `json:"discount_total"`
	SGRBottleCharge    decimal.Decimal  `json:"sgr_bottle_charge"`
	SGRRecoveredAmount decimal.Decimal  `json:"sgr_recovered_amount"`
	Merchant           Merchant         `json:"merchant"`
	Items              []Item           `json:"items"`
	Processing         Processing       `json:"processing"`
	Source             Source           `json:"source"`
	RawText            string           `json:"raw_text"`
}
