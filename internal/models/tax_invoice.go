package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice status lifecycle: draft -> generated -> cancelled, or draft -> error
// when the e-invoice provider rejects the submission.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusGenerated = "generated"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusError     = "error"
)

// Supply types accepted by the e-invoice schema.
const (
	SupplyTypeB2B    = "B2B"
	SupplyTypeExport = "EXPWP"
)

type TaxInvoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceNo     string          `json:"invoice_no" db:"invoice_no"`
	CustomerID    uuid.UUID       `json:"customer_id" db:"customer_id"`
	InvoiceDate   time.Time       `json:"invoice_date" db:"invoice_date"`
	PlaceOfSupply string          `json:"place_of_supply" db:"place_of_supply"`
	SupplyType    string          `json:"supply_type" db:"supply_type"`
	GodownID      uuid.UUID       `json:"godown_id" db:"godown_id"`
	TaxableTotal  decimal.Decimal `json:"taxable_total" db:"taxable_total"`
	CGSTTotal     decimal.Decimal `json:"cgst_total" db:"cgst_total"`
	SGSTTotal     decimal.Decimal `json:"sgst_total" db:"sgst_total"`
	IGSTTotal     decimal.Decimal `json:"igst_total" db:"igst_total"`
	GrandTotal    decimal.Decimal `json:"grand_total" db:"grand_total"`
	Status        string          `json:"status" db:"status"`
	IRN           *string         `json:"irn" db:"irn"`
	AckNo         *string         `json:"ack_no" db:"ack_no"`
	AckDate       *time.Time      `json:"ack_date" db:"ack_date"`
	SignedQR      *string         `json:"signed_qr" db:"signed_qr"`
	ErrorCode     *string         `json:"error_code" db:"error_code"`
	ErrorMessage  *string         `json:"error_message" db:"error_message"`
	PDFObject     *string         `json:"pdf_object" db:"pdf_object"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	Items []*TaxInvoiceDetail `json:"items,omitempty" db:"-"`
}

type TaxInvoiceDetail struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	ProductID     uuid.UUID       `json:"product_id" db:"product_id"`
	HSNCode       string          `json:"hsn_code" db:"hsn_code"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	Rate          decimal.Decimal `json:"rate" db:"rate"`
	GSTRate       decimal.Decimal `json:"gst_rate" db:"gst_rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" db:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount" db:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount" db:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount" db:"igst_amount"`
	LineTotal     decimal.Decimal `json:"line_total" db:"line_total"`
}

// InvoiceSearchFilter holds filter criteria for invoice listings
type InvoiceSearchFilter struct {
	Query      string     `json:"query,omitempty" query:"search"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty" query:"customer_id"`
	Status     string     `json:"status,omitempty" query:"status"`
	Limit      int        `json:"limit,omitempty" query:"limit"`
	Offset     int        `json:"offset,omitempty" query:"offset"`
}
