package repositories

import (
	"context"
)

type InvoiceSequenceRepository interface {
	NextNumber(ctx context.Context, financialYear string) (int64, error)
}

type invoiceSequenceRepo struct {
	db Database
}

func NewInvoiceSequenceRepository(db Database) InvoiceSequenceRepository {
	return &invoiceSequenceRepo{db: db}
}

// NextNumber allocates the next invoice number for a financial year. The
// upsert increments atomically, so concurrent callers never see the same
// number and the sequence resets each year through the new row.
func (r *invoiceSequenceRepo) NextNumber(ctx context.Context, financialYear string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (financial_year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (financial_year)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number
	`
	var number int64
	if err := r.db.QueryRow(ctx, query, financialYear).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}
