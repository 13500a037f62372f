package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

var (
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrDuplicateReceipt = errors.New("receipt already uploaded")
)

// CreateReceipt inserts a new receipt row in the pending state. A unique
// constraint on (user_id, source_hash) makes re-uploading the same image
// bytes a no-op at the database layer; callers should check for
// ErrDuplicateReceipt and surface it as a conflict rather than re-parsing.
func (db *DB) CreateReceipt(ctx context.Context, req *models.CreateReceiptRequest) (*models.Receipt, error) {
	receipt := &models.Receipt{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO receipts (user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes, source_hash, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING id, user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes,
		          source_hash, status, ocr_text, error_message, uploaded_at, processed_at, created_at, updated_at
	`, req.UserID, req.S3Bucket, req.S3Key, req.OriginalFilename, req.ContentType, req.FileSizeBytes, req.SourceHash).Scan(
		&receipt.ID, &receipt.UserID, &receipt.S3Bucket, &receipt.S3Key,
		&receipt.OriginalFilename, &receipt.ContentType, &receipt.FileSizeBytes,
		&receipt.SourceHash, &receipt.Status, &receipt.OCRText, &receipt.ErrorMessage,
		&receipt.UploadedAt, &receipt.ProcessedAt, &receipt.CreatedAt, &receipt.UpdatedAt,
	)

	if err != nil {
		if err.Error() == `ERROR: duplicate key value violates unique constraint "unique_user_source_hash" (SQLSTATE 23505)` {
			return nil, ErrDuplicateReceipt
		}
		return nil, err
	}

	return receipt, nil
}

// GetReceiptByID retrieves a single receipt, decoding parsed_record if present.
func (db *DB) GetReceiptByID(ctx context.Context, id int) (*models.Receipt, error) {
	receipt, rawRecord, err := db.scanReceiptRow(db.Pool.QueryRow(ctx, `
		SELECT id, user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes,
		       source_hash, status, ocr_text, parsed_record, error_message,
		       uploaded_at, processed_at, created_at, updated_at
		FROM receipts
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	if err := decodeParsedRecord(receipt, rawRecord); err != nil {
		return nil, err
	}

	return receipt, nil
}

// GetReceiptForUser retrieves a receipt scoped to a particular owner, so a
// user can never fetch someone else's receipt by guessing an ID.
func (db *DB) GetReceiptForUser(ctx context.Context, id, userID int) (*models.Receipt, error) {
	receipt, rawRecord, err := db.scanReceiptRow(db.Pool.QueryRow(ctx, `
		SELECT id, user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes,
		       source_hash, status, ocr_text, parsed_record, error_message,
		       uploaded_at, processed_at, created_at, updated_at
		FROM receipts
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	if err := decodeParsedRecord(receipt, rawRecord); err != nil {
		return nil, err
	}

	return receipt, nil
}

// ListReceipts returns a paginated list of receipts for a user, optionally
// filtered by status.
func (db *DB) ListReceipts(ctx context.Context, params *models.ReceiptListParams) ([]*models.Receipt, int, error) {
	args := []interface{}{params.UserID}
	whereClause := "WHERE user_id = $1"

	if params.Status != nil && *params.Status != "" {
		args = append(args, *params.Status)
		whereClause += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM receipts " + whereClause
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes,
		       source_hash, status, ocr_text, parsed_record, error_message,
		       uploaded_at, processed_at, created_at, updated_at
		FROM receipts
		%s
		ORDER BY uploaded_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, rawRecord, err := db.scanReceiptRow(rows)
		if err != nil {
			return nil, 0, err
		}
		if err := decodeParsedRecord(receipt, rawRecord); err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, total, nil
}

// UpdateReceiptOCR stores the raw OCR text extracted from the receipt image
// and marks the receipt as processing.
func (db *DB) UpdateReceiptOCR(ctx context.Context, id int, ocrText string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE receipts
		SET ocr_text = $2, status = 'processing', updated_at = NOW()
		WHERE id = $1
	`, id, ocrText)
	return err
}

// UpdateReceiptParsed stores a completed parse result.
func (db *DB) UpdateReceiptParsed(ctx context.Context, id int, record *models.ReceiptRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal parsed record: %w", err)
	}

	now := time.Now()
	_, err = db.Pool.Exec(ctx, `
		UPDATE receipts
		SET status = 'completed', parsed_record = $2, error_message = NULL, processed_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, raw, now)
	return err
}

// UpdateReceiptFailed marks a receipt as failed with a human-readable reason.
func (db *DB) UpdateReceiptFailed(ctx context.Context, id int, reason string) error {
	now := time.Now()
	_, err := db.Pool.Exec(ctx, `
		UPDATE receipts
		SET status = 'failed', error_message = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, reason, now)
	return err
}

// DeleteReceipt deletes a receipt by ID.
func (db *DB) DeleteReceipt(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// receiptRowScanner abstracts pgx.Row and pgx.Rows, which share a Scan
// signature but not a common interface in pgx/v5.
type receiptRowScanner interface {
	Scan(dest ...interface{}) error
}

func (db *DB) scanReceiptRow(row receiptRowScanner) (*models.Receipt, []byte, error) {
	receipt := &models.Receipt{}
	var rawRecord []byte

	err := row.Scan(
		&receipt.ID, &receipt.UserID, &receipt.S3Bucket, &receipt.S3Key,
		&receipt.OriginalFilename, &receipt.ContentType, &receipt.FileSizeBytes,
		&receipt.SourceHash, &receipt.Status, &receipt.OCRText, &rawRecord, &receipt.ErrorMessage,
		&receipt.UploadedAt, &receipt.ProcessedAt, &receipt.CreatedAt, &receipt.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	return receipt, rawRecord, nil
}

func decodeParsedRecord(receipt *models.Receipt, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	record := &models.ReceiptRecord{}
	if err := json.Unmarshal(raw, record); err != nil {
		return fmt.Errorf("unmarshal parsed record for receipt %d: %w", receipt.ID, err)
	}
	receipt.ParsedRecord = record
	return nil
}
