package repositories

import (
	"context"
	"errors"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

var ErrInvoiceImmutable = errors.New("only draft or error invoices can be deleted")

type TaxInvoiceRepository interface {
	CreateWithItems(ctx context.Context, invoice *models.TaxInvoice, movements []*models.StockMovement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaxInvoice, error)
	List(ctx context.Context, filter *models.InvoiceSearchFilter) ([]*models.TaxInvoice, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	SetEInvoiceResult(ctx context.Context, id uuid.UUID, irn, ackNo string, ackDate time.Time, signedQR string) error
	SetEInvoiceError(ctx context.Context, id uuid.UUID, errorCode, errorMessage string) error
	SetCancelled(ctx context.Context, id uuid.UUID) error
	SetPDFObject(ctx context.Context, id uuid.UUID, object string) error
}

type taxInvoiceRepo struct {
	db Database
}

func NewTaxInvoiceRepository(db Database) TaxInvoiceRepository {
	return &taxInvoiceRepo{db: db}
}

// CreateWithItems inserts the invoice header, its line items, the stock
// deductions for the source godown and the movement rows in one
// transaction. If any line lacks stock the whole invoice rolls back.
func (r *taxInvoiceRepo) CreateWithItems(ctx context.Context, invoice *models.TaxInvoice, movements []*models.StockMovement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO tax_invoices (id, invoice_no, customer_id, invoice_date, place_of_supply, supply_type, godown_id,
			taxable_total, cgst_total, sgst_total, igst_total, grand_total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.ID, invoice.InvoiceNo, invoice.CustomerID, invoice.InvoiceDate,
		invoice.PlaceOfSupply, invoice.SupplyType, invoice.GodownID,
		invoice.TaxableTotal, invoice.CGSTTotal, invoice.SGSTTotal,
		invoice.IGSTTotal, invoice.GrandTotal, invoice.Status)
	if err != nil {
		return err
	}

	detailQuery := `
		INSERT INTO tax_invoice_details (id, invoice_id, product_id, hsn_code, quantity, rate, gst_rate,
			taxable_amount, cgst_amount, sgst_amount, igst_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	deductQuery := `
		UPDATE godown_stocks
		SET quantity = quantity - $4, last_updated = NOW()
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3 AND quantity >= $4
	`
	for _, item := range invoice.Items {
		_, err = tx.Exec(ctx, detailQuery,
			item.ID, invoice.ID, item.ProductID, item.HSNCode, item.Quantity,
			item.Rate, item.GSTRate, item.TaxableAmount, item.CGSTAmount,
			item.SGSTAmount, item.IGSTAmount, item.LineTotal)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, deductQuery, invoice.GodownID, models.ItemTypeFinishedProduct, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientStock
		}
	}

	for _, movement := range movements {
		_, err = tx.Exec(ctx, insertMovementQuery,
			movement.ID, movement.MovementType, movement.GodownID, movement.ItemType,
			movement.ItemID, movement.Quantity, movement.Reference, movement.CreatedBy)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *taxInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TaxInvoice, error) {
	invoice := &models.TaxInvoice{}
	query := `
		SELECT id, invoice_no, customer_id, invoice_date, place_of_supply, supply_type, godown_id,
			taxable_total, cgst_total, sgst_total, igst_total, grand_total, status,
			irn, ack_no, ack_date, signed_qr, error_code, error_message, pdf_object, created_at, updated_at
		FROM tax_invoices
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID, &invoice.InvoiceNo, &invoice.CustomerID, &invoice.InvoiceDate,
		&invoice.PlaceOfSupply, &invoice.SupplyType, &invoice.GodownID,
		&invoice.TaxableTotal, &invoice.CGSTTotal, &invoice.SGSTTotal,
		&invoice.IGSTTotal, &invoice.GrandTotal, &invoice.Status,
		&invoice.IRN, &invoice.AckNo, &invoice.AckDate, &invoice.SignedQR,
		&invoice.ErrorCode, &invoice.ErrorMessage, &invoice.PDFObject,
		&invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}

	detailQuery := `
		SELECT id, invoice_id, product_id, hsn_code, quantity, rate, gst_rate,
			taxable_amount, cgst_amount, sgst_amount, igst_amount, line_total
		FROM tax_invoice_details
		WHERE invoice_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, detailQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.TaxInvoiceDetail{}
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.HSNCode,
			&item.Quantity, &item.Rate, &item.GSTRate, &item.TaxableAmount,
			&item.CGSTAmount, &item.SGSTAmount, &item.IGSTAmount, &item.LineTotal); err != nil {
			return nil, err
		}
		invoice.Items = append(invoice.Items, item)
	}
	return invoice, rows.Err()
}

func (r *taxInvoiceRepo) List(ctx context.Context, filter *models.InvoiceSearchFilter) ([]*models.TaxInvoice, error) {
	query := `
		SELECT id, invoice_no, customer_id, invoice_date, place_of_supply, supply_type, godown_id,
			taxable_total, cgst_total, sgst_total, igst_total, grand_total, status,
			irn, ack_no, ack_date, signed_qr, error_code, error_message, pdf_object, created_at, updated_at
		FROM tax_invoices
		WHERE ($1 = '' OR invoice_no ILIKE '%' || $1 || '%')
		  AND ($2::uuid IS NULL OR customer_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY invoice_date DESC, invoice_no DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, filter.Query, filter.CustomerID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.TaxInvoice
	for rows.Next() {
		invoice := &models.TaxInvoice{}
		if err := rows.Scan(
			&invoice.ID, &invoice.InvoiceNo, &invoice.CustomerID, &invoice.InvoiceDate,
			&invoice.PlaceOfSupply, &invoice.SupplyType, &invoice.GodownID,
			&invoice.TaxableTotal, &invoice.CGSTTotal, &invoice.SGSTTotal,
			&invoice.IGSTTotal, &invoice.GrandTotal, &invoice.Status,
			&invoice.IRN, &invoice.AckNo, &invoice.AckDate, &invoice.SignedQR,
			&invoice.ErrorCode, &invoice.ErrorMessage, &invoice.PDFObject,
			&invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// DeleteDraft removes a draft or error invoice and restores the deducted
// stock. Error invoices never reached the portal, so they carry no IRN and
// delete the same way. Generated and cancelled invoices are immutable.
func (r *taxInvoiceRepo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status string
	var godownID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT status, godown_id FROM tax_invoices WHERE id = $1 FOR UPDATE`, id).Scan(&status, &godownID)
	if err != nil {
		return err
	}
	if status != models.InvoiceStatusDraft && status != models.InvoiceStatusError {
		return ErrInvoiceImmutable
	}

	restoreQuery := `
		UPDATE godown_stocks gs
		SET quantity = gs.quantity + d.quantity, last_updated = NOW()
		FROM tax_invoice_details d
		WHERE d.invoice_id = $1
		  AND gs.godown_id = $2 AND gs.item_type = $3 AND gs.item_id = d.product_id
	`
	if _, err := tx.Exec(ctx, restoreQuery, id, godownID, models.ItemTypeFinishedProduct); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tax_invoice_details WHERE invoice_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tax_invoices WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *taxInvoiceRepo) SetEInvoiceResult(ctx context.Context, id uuid.UUID, irn, ackNo string, ackDate time.Time, signedQR string) error {
	query := `
		UPDATE tax_invoices
		SET status = $2, irn = $3, ack_no = $4, ack_date = $5, signed_qr = $6,
			error_code = NULL, error_message = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, models.InvoiceStatusGenerated, irn, ackNo, ackDate, signedQR)
	return err
}

func (r *taxInvoiceRepo) SetEInvoiceError(ctx context.Context, id uuid.UUID, errorCode, errorMessage string) error {
	query := `
		UPDATE tax_invoices
		SET status = $2, error_code = $3, error_message = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, models.InvoiceStatusError, errorCode, errorMessage)
	return err
}

func (r *taxInvoiceRepo) SetCancelled(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tax_invoices
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, models.InvoiceStatusCancelled)
	return err
}

func (r *taxInvoiceRepo) SetPDFObject(ctx context.Context, id uuid.UUID, object string) error {
	query := `
		UPDATE tax_invoices
		SET pdf_object = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, object)
	return err
}
