package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction log statuses. Rows reach a terminal state within the request
// that created them and are never touched afterwards.
const (
	EInvoiceLogPending = "pending"
	EInvoiceLogSuccess = "success"
	EInvoiceLogFailed  = "failed"
)

// Logged operations.
const (
	EInvoiceOpGenerate = "generate"
	EInvoiceOpCancel   = "cancel"
)

// EInvoiceTransactionLog records each generate/cancel attempt against the
// government e-invoice API.
type EInvoiceTransactionLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	InvoiceID    uuid.UUID  `json:"invoice_id" db:"invoice_id"`
	Operation    string     `json:"operation" db:"operation"`
	RequestBody  *string    `json:"request_body" db:"request_body"`
	ResponseBody *string    `json:"response_body" db:"response_body"`
	Status       string     `json:"status" db:"status"`
	ErrorMessage *string    `json:"error_message" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time `json:"completed_at" db:"completed_at"`
}

// GSTSettings is the single-row seller profile used on every invoice and
// e-invoice payload.
type GSTSettings struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LegalName         string          `json:"legal_name" db:"legal_name"`
	TradeName         *string         `json:"trade_name" db:"trade_name"`
	GSTIN             string          `json:"gstin" db:"gstin"`
	Address           string          `json:"address" db:"address"`
	Location          string          `json:"location" db:"location"`
	Pincode           string          `json:"pincode" db:"pincode"`
	StateCode         string          `json:"state_code" db:"state_code"`
	EInvoiceThreshold decimal.Decimal `json:"einvoice_threshold" db:"einvoice_threshold"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}
