package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gstbill/internal/caching"
	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoLineItems      = errors.New("invoice requires at least one line item")
	ErrInvalidGSTRate   = errors.New("gst rate must be one of the 0/5/12/18/28 slabs")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
)

// InvoiceLineRequest is one requested invoice line. A zero rate falls back
// to the product's selling rate.
type InvoiceLineRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
}

type CreateInvoiceRequest struct {
	CustomerID  uuid.UUID            `json:"customer_id"`
	GodownID    uuid.UUID            `json:"godown_id"`
	InvoiceDate time.Time            `json:"invoice_date"`
	SupplyType  string               `json:"supply_type"`
	Items       []InvoiceLineRequest `json:"items"`
	CreatedBy   *uuid.UUID           `json:"-"`
}

// InvoiceService builds tax invoices: it resolves HSN rates, runs the tax
// engine, allocates the invoice number for the financial year and deducts
// finished product stock in the same transaction as the insert.
type InvoiceService interface {
	Create(ctx context.Context, req *CreateInvoiceRequest) (*models.TaxInvoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaxInvoice, error)
	List(ctx context.Context, filter *models.InvoiceSearchFilter) ([]*models.TaxInvoice, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  repositories.TaxInvoiceRepository
	sequenceRepo repositories.InvoiceSequenceRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.FinishedProductRepository
	hsnRepo      repositories.HSNCodeRepository
	settingsRepo repositories.GSTSettingsRepository
	cacheSvc     caching.CacheService
}

func NewInvoiceService(
	invoiceRepo repositories.TaxInvoiceRepository,
	sequenceRepo repositories.InvoiceSequenceRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.FinishedProductRepository,
	hsnRepo repositories.HSNCodeRepository,
	settingsRepo repositories.GSTSettingsRepository,
	cacheSvc caching.CacheService,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		hsnRepo:      hsnRepo,
		settingsRepo: settingsRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *invoiceService) Create(ctx context.Context, req *CreateInvoiceRequest) (*models.TaxInvoice, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoLineItems
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gst settings: %w", err)
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}
	supplyType := req.SupplyType
	if supplyType == "" {
		supplyType = models.SupplyTypeB2B
	}

	interstate := IsInterstate(settings.StateCode, customer.StateCode)

	invoiceID := uuid.New()
	invoice := &models.TaxInvoice{
		ID:            invoiceID,
		CustomerID:    customer.ID,
		InvoiceDate:   invoiceDate,
		PlaceOfSupply: customer.StateCode,
		SupplyType:    supplyType,
		GodownID:      req.GodownID,
		Status:        models.InvoiceStatusDraft,
	}

	var lines []LineTax
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, ErrInvalidQuantity
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		hsn, err := s.hsnRepo.GetByID(ctx, product.HSNCodeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve hsn code for product %s: %w", product.ID, err)
		}
		if !models.IsValidGSTRate(hsn.GSTRate) {
			return nil, ErrInvalidGSTRate
		}

		rate := item.Rate
		if rate.IsZero() {
			rate = product.SellingRate
		}
		if rate.IsNegative() {
			return nil, errors.New("rate must not be negative")
		}

		line := ComputeLineTax(item.Quantity, rate, hsn.GSTRate, interstate)
		lines = append(lines, line)

		invoice.Items = append(invoice.Items, &models.TaxInvoiceDetail{
			ID:            uuid.New(),
			InvoiceID:     invoiceID,
			ProductID:     product.ID,
			HSNCode:       hsn.Code,
			Quantity:      item.Quantity,
			Rate:          rate,
			GSTRate:       hsn.GSTRate,
			TaxableAmount: line.TaxableAmount,
			CGSTAmount:    line.CGSTAmount,
			SGSTAmount:    line.SGSTAmount,
			IGSTAmount:    line.IGSTAmount,
			LineTotal:     line.LineTotal,
		})
	}

	totals := SumLines(lines)
	invoice.TaxableTotal = totals.TaxableTotal
	invoice.CGSTTotal = totals.CGSTTotal
	invoice.SGSTTotal = totals.SGSTTotal
	invoice.IGSTTotal = totals.IGSTTotal
	invoice.GrandTotal = totals.GrandTotal

	financialYear := common.FinancialYear(invoiceDate)
	number, err := s.sequenceRepo.NextNumber(ctx, financialYear)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	invoice.InvoiceNo = fmt.Sprintf("INV/%s/%05d", financialYear, number)

	var movements []*models.StockMovement
	for _, item := range invoice.Items {
		reference := invoice.InvoiceNo
		movements = append(movements, &models.StockMovement{
			ID:           uuid.New(),
			MovementType: models.MovementStockOut,
			GodownID:     invoice.GodownID,
			ItemType:     models.ItemTypeFinishedProduct,
			ItemID:       item.ProductID,
			Quantity:     item.Quantity.Neg(),
			Reference:    &reference,
			CreatedBy:    req.CreatedBy,
		})
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, movements); err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.InvalidateGodownStock(ctx, invoice.GodownID); err != nil {
			log.Printf("WARN: failed to invalidate stock cache after invoice %s: %v", invoice.InvoiceNo, err)
		}
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*models.TaxInvoice, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetInvoice(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		_ = s.cacheSvc.SetInvoice(ctx, invoice, caching.InvoiceTTL)
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, filter *models.InvoiceSearchFilter) ([]*models.TaxInvoice, error) {
	return s.invoiceRepo.List(ctx, filter)
}

func (s *invoiceService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.DeleteDraft(ctx, id); err != nil {
		return err
	}
	if s.cacheSvc != nil {
		_ = s.cacheSvc.DeleteInvoice(ctx, id)
	}
	return nil
}
