package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gstbill/internal/caching"
	"gstbill/internal/einvoice"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrBelowThreshold        = errors.New("invoice total is below the e-invoice threshold")
	ErrInvoiceNotSubmittable = errors.New("only draft or error invoices can be submitted for e-invoicing")
	ErrCancelWithoutIRN      = errors.New("cannot cancel invoice without IRN")
	ErrAlreadyCancelled      = errors.New("invoice is already cancelled")
)

const ackDateLayout = "2006-01-02 15:04:05"

// EInvoiceService drives IRN generation and cancellation against the
// government portal and keeps the transaction log current.
type EInvoiceService interface {
	Generate(ctx context.Context, invoiceID uuid.UUID) (*models.TaxInvoice, error)
	Cancel(ctx context.Context, invoiceID uuid.UUID, reason, remarks string) (*models.TaxInvoice, error)
	Logs(ctx context.Context, invoiceID uuid.UUID) ([]*models.EInvoiceTransactionLog, error)
}

type einvoiceService struct {
	invoiceRepo  repositories.TaxInvoiceRepository
	logRepo      repositories.EInvoiceLogRepository
	settingsRepo repositories.GSTSettingsRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.FinishedProductRepository
	unitRepo     repositories.UnitRepository
	client       *einvoice.Client
	cacheSvc     caching.CacheService
}

func NewEInvoiceService(
	invoiceRepo repositories.TaxInvoiceRepository,
	logRepo repositories.EInvoiceLogRepository,
	settingsRepo repositories.GSTSettingsRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.FinishedProductRepository,
	unitRepo repositories.UnitRepository,
	client *einvoice.Client,
	cacheSvc caching.CacheService,
) EInvoiceService {
	return &einvoiceService{
		invoiceRepo:  invoiceRepo,
		logRepo:      logRepo,
		settingsRepo: settingsRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		client:       client,
		cacheSvc:     cacheSvc,
	}
}

func (s *einvoiceService) Generate(ctx context.Context, invoiceID uuid.UUID) (*models.TaxInvoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	// A failed submission leaves the invoice in error status; the caller
	// re-triggers generation from there.
	if invoice.Status != models.InvoiceStatusDraft && invoice.Status != models.InvoiceStatusError {
		return nil, ErrInvoiceNotSubmittable
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gst settings: %w", err)
	}
	if invoice.GrandTotal.LessThan(settings.EInvoiceThreshold) {
		return nil, ErrBelowThreshold
	}

	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	productNames := make(map[string]string, len(invoice.Items))
	unitSymbols := make(map[string]string, len(invoice.Items))
	for _, item := range invoice.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		productNames[product.ID.String()] = product.Name
		if unit, err := s.unitRepo.GetByID(ctx, product.UnitID); err == nil {
			unitSymbols[product.ID.String()] = unit.Symbol
		}
	}

	payload, err := einvoice.BuildPayload(invoice, settings, customer, productNames, unitSymbols)
	if err != nil {
		return nil, err
	}

	logRow, err := s.openLog(ctx, invoiceID, models.EInvoiceOpGenerate, payload)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Generate(ctx, payload)
	if err != nil {
		s.closeLogFailed(ctx, logRow.ID, err)

		code, message := providerErrorDetail(err)
		if dbErr := s.invoiceRepo.SetEInvoiceError(ctx, invoiceID, code, message); dbErr != nil {
			log.Printf("ERROR: failed to record e-invoice error on %s: %v", invoice.InvoiceNo, dbErr)
		}
		s.invalidateInvoice(ctx, invoiceID)
		return nil, err
	}

	s.closeLogSuccess(ctx, logRow.ID, result)

	ackDate := time.Now()
	if parsed, perr := time.Parse(ackDateLayout, result.AckDt); perr == nil {
		ackDate = parsed
	}
	if err := s.invoiceRepo.SetEInvoiceResult(ctx, invoiceID, result.IRN, result.AckNo, ackDate, result.SignedQR); err != nil {
		return nil, err
	}
	s.invalidateInvoice(ctx, invoiceID)

	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

func (s *einvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID, reason, remarks string) (*models.TaxInvoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if invoice.IRN == nil || *invoice.IRN == "" {
		return nil, ErrCancelWithoutIRN
	}

	request := &einvoice.CancelRequest{IRN: *invoice.IRN, CnlRsn: reason, CnlRem: remarks}
	logRow, err := s.openLog(ctx, invoiceID, models.EInvoiceOpCancel, request)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Cancel(ctx, *invoice.IRN, reason, remarks)
	if err != nil {
		s.closeLogFailed(ctx, logRow.ID, err)
		return nil, err
	}

	s.closeLogSuccess(ctx, logRow.ID, result)

	if err := s.invoiceRepo.SetCancelled(ctx, invoiceID); err != nil {
		return nil, err
	}
	s.invalidateInvoice(ctx, invoiceID)

	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

func (s *einvoiceService) Logs(ctx context.Context, invoiceID uuid.UUID) ([]*models.EInvoiceTransactionLog, error) {
	return s.logRepo.ListByInvoice(ctx, invoiceID)
}

func (s *einvoiceService) openLog(ctx context.Context, invoiceID uuid.UUID, operation string, request interface{}) (*models.EInvoiceTransactionLog, error) {
	var requestBody *string
	if data, err := json.Marshal(request); err == nil {
		body := string(data)
		requestBody = &body
	}

	logRow := &models.EInvoiceTransactionLog{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Operation:   operation,
		RequestBody: requestBody,
		Status:      models.EInvoiceLogPending,
	}
	if err := s.logRepo.Create(ctx, logRow); err != nil {
		return nil, fmt.Errorf("failed to open e-invoice transaction log: %w", err)
	}
	return logRow, nil
}

func (s *einvoiceService) closeLogSuccess(ctx context.Context, logID uuid.UUID, response interface{}) {
	var responseBody *string
	if data, err := json.Marshal(response); err == nil {
		body := string(data)
		responseBody = &body
	}
	if err := s.logRepo.Complete(ctx, logID, models.EInvoiceLogSuccess, responseBody, nil); err != nil {
		log.Printf("WARN: failed to close e-invoice log %s: %v", logID, err)
	}
}

func (s *einvoiceService) closeLogFailed(ctx context.Context, logID uuid.UUID, cause error) {
	message := cause.Error()
	if err := s.logRepo.Complete(ctx, logID, models.EInvoiceLogFailed, nil, &message); err != nil {
		log.Printf("WARN: failed to close e-invoice log %s: %v", logID, err)
	}
}

func (s *einvoiceService) invalidateInvoice(ctx context.Context, invoiceID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteInvoice(ctx, invoiceID); err != nil {
		log.Printf("WARN: failed to invalidate invoice cache: %v", err)
	}
}

func providerErrorDetail(err error) (code, message string) {
	var providerErr *einvoice.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code, providerErr.Message
	}
	return "EINV_HTTP", err.Error()
}
