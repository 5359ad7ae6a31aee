package repositories

import (
	"context"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type EInvoiceLogRepository interface {
	Create(ctx context.Context, log *models.EInvoiceTransactionLog) error
	Complete(ctx context.Context, id uuid.UUID, status string, responseBody, errorMessage *string) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.EInvoiceTransactionLog, error)
	MarkStalePendingFailed(ctx context.Context, olderThan time.Time) (int64, error)
}

type einvoiceLogRepo struct {
	db Database
}

func NewEInvoiceLogRepository(db Database) EInvoiceLogRepository {
	return &einvoiceLogRepo{db: db}
}

func (r *einvoiceLogRepo) Create(ctx context.Context, log *models.EInvoiceTransactionLog) error {
	query := `
		INSERT INTO einvoice_transaction_logs (id, invoice_id, operation, request_body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, log.ID, log.InvoiceID, log.Operation, log.RequestBody, log.Status)
	return err
}

func (r *einvoiceLogRepo) Complete(ctx context.Context, id uuid.UUID, status string, responseBody, errorMessage *string) error {
	query := `
		UPDATE einvoice_transaction_logs
		SET status = $2, response_body = $3, error_message = $4, completed_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, status, responseBody, errorMessage)
	return err
}

func (r *einvoiceLogRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.EInvoiceTransactionLog, error) {
	query := `
		SELECT id, invoice_id, operation, request_body, response_body, status, error_message, created_at, completed_at
		FROM einvoice_transaction_logs
		WHERE invoice_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.EInvoiceTransactionLog
	for rows.Next() {
		log := &models.EInvoiceTransactionLog{}
		if err := rows.Scan(&log.ID, &log.InvoiceID, &log.Operation, &log.RequestBody,
			&log.ResponseBody, &log.Status, &log.ErrorMessage, &log.CreatedAt, &log.CompletedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// MarkStalePendingFailed closes out pending rows left behind by crashed
// requests. Run from the background sweep job.
func (r *einvoiceLogRepo) MarkStalePendingFailed(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		UPDATE einvoice_transaction_logs
		SET status = $1, error_message = 'timed out waiting for completion', completed_at = NOW()
		WHERE status = $2 AND created_at < $3
	`
	tag, err := r.db.Exec(ctx, query, models.EInvoiceLogFailed, models.EInvoiceLogPending, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
