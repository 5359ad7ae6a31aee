package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gstbill/internal/config"
	"gstbill/internal/einvoice"
	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EInvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo  *MockTaxInvoiceRepository
	logRepo      *MockEInvoiceLogRepository
	settingsRepo *MockGSTSettingsRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockFinishedProductRepository
	unitRepo     *MockUnitRepository
	server       *httptest.Server
	service      EInvoiceService

	invoiceID  uuid.UUID
	customerID uuid.UUID
	productID  uuid.UUID
	unitID     uuid.UUID
	ctx        context.Context

	generateResponse einvoice.GenerateResponse
	cancelResponse   einvoice.CancelResponse
}

func (suite *EInvoiceServiceTestSuite) SetupTest() {
	suite.invoiceRepo = new(MockTaxInvoiceRepository)
	suite.logRepo = new(MockEInvoiceLogRepository)
	suite.settingsRepo = new(MockGSTSettingsRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.productRepo = new(MockFinishedProductRepository)
	suite.unitRepo = new(MockUnitRepository)

	suite.generateResponse = einvoice.GenerateResponse{
		IRN:      "irn-abc123",
		AckNo:    "112010000000123",
		AckDt:    "2025-06-15 10:30:00",
		SignedQR: "signed-qr",
		Status:   "ACT",
	}
	suite.cancelResponse = einvoice.CancelResponse{IRN: "irn-abc123", Status: "CNL"}

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			json.NewEncoder(w).Encode(einvoice.AuthResponse{AccessToken: "tok", ExpiresIn: 3600})
		case "/invoice":
			json.NewEncoder(w).Encode(suite.generateResponse)
		case "/invoice/cancel":
			json.NewEncoder(w).Encode(suite.cancelResponse)
		}
	}))

	client := einvoice.NewClient(&config.EInvoiceConfig{
		Provider: config.ProviderConfig{BaseURL: suite.server.URL},
		HTTP:     config.HTTPConfig{TimeoutSeconds: 5},
	})
	suite.service = NewEInvoiceService(suite.invoiceRepo, suite.logRepo, suite.settingsRepo, suite.customerRepo, suite.productRepo, suite.unitRepo, client, nil)

	suite.invoiceID = uuid.New()
	suite.customerID = uuid.New()
	suite.productID = uuid.New()
	suite.unitID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *EInvoiceServiceTestSuite) TearDownTest() {
	suite.server.Close()
}

func TestEInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EInvoiceServiceTestSuite))
}

func (suite *EInvoiceServiceTestSuite) draftInvoice(grandTotal int64) *models.TaxInvoice {
	return &models.TaxInvoice{
		ID:            suite.invoiceID,
		InvoiceNo:     "INV/2025-26/00007",
		CustomerID:    suite.customerID,
		InvoiceDate:   time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "29",
		SupplyType:    models.SupplyTypeB2B,
		TaxableTotal:  decimal.NewFromInt(grandTotal),
		GrandTotal:    decimal.NewFromInt(grandTotal),
		Status:        models.InvoiceStatusDraft,
		Items: []*models.TaxInvoiceDetail{
			{
				ID:        uuid.New(),
				ProductID: suite.productID,
				HSNCode:   "31021000",
				Quantity:  decimal.NewFromInt(10),
				Rate:      decimal.NewFromInt(100),
				GSTRate:   decimal.NewFromInt(18),
			},
		},
	}
}

func (suite *EInvoiceServiceTestSuite) stubMasterData() {
	gstin := "29AABCU9603R1ZM"
	suite.settingsRepo.On("Get", suite.ctx).Return(&models.GSTSettings{
		LegalName:         "Acme Agro Pvt Ltd",
		GSTIN:             "27AAPFU0939F1ZV",
		StateCode:         "27",
		EInvoiceThreshold: decimal.NewFromInt(50000),
	}, nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customerID).Return(&models.Customer{
		ID:        suite.customerID,
		Name:      "Karnataka Traders",
		StateCode: "29",
		GSTIN:     &gstin,
	}, nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.productID).Return(&models.FinishedProduct{
		ID:     suite.productID,
		Name:   "Urea 50kg",
		UnitID: suite.unitID,
	}, nil)
	suite.unitRepo.On("GetByID", suite.ctx, suite.unitID).Return(&models.Unit{ID: suite.unitID, Symbol: "BAG"}, nil)
}

func (suite *EInvoiceServiceTestSuite) stubLog() {
	suite.logRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.EInvoiceTransactionLog")).Return(nil)
	suite.logRepo.On("Complete", suite.ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.Anything, mock.Anything).Return(nil)
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_Success() {
	draft := suite.draftInvoice(60000)
	registered := *draft
	registered.Status = models.InvoiceStatusGenerated

	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(draft, nil).Once()
	suite.stubMasterData()
	suite.stubLog()
	suite.invoiceRepo.On("SetEInvoiceResult", suite.ctx, suite.invoiceID, "irn-abc123", "112010000000123",
		time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC), "signed-qr").Return(nil)
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(&registered, nil).Once()

	result, err := suite.service.Generate(suite.ctx, suite.invoiceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusGenerated, result.Status)
	suite.invoiceRepo.AssertExpectations(suite.T())

	suite.logRepo.AssertCalled(suite.T(), "Complete", suite.ctx, mock.AnythingOfType("uuid.UUID"), models.EInvoiceLogSuccess, mock.Anything, mock.Anything)
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_AlreadyGenerated() {
	invoice := suite.draftInvoice(60000)
	invoice.Status = models.InvoiceStatusGenerated
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(invoice, nil)

	_, err := suite.service.Generate(suite.ctx, suite.invoiceID)
	assert.ErrorIs(suite.T(), err, ErrInvoiceNotSubmittable)
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_RetriesAfterProviderError() {
	failed := suite.draftInvoice(60000)
	failed.Status = models.InvoiceStatusError
	registered := *failed
	registered.Status = models.InvoiceStatusGenerated

	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(failed, nil).Once()
	suite.stubMasterData()
	suite.stubLog()
	suite.invoiceRepo.On("SetEInvoiceResult", suite.ctx, suite.invoiceID, "irn-abc123", "112010000000123",
		time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC), "signed-qr").Return(nil)
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(&registered, nil).Once()

	result, err := suite.service.Generate(suite.ctx, suite.invoiceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusGenerated, result.Status)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_BelowThreshold() {
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(suite.draftInvoice(49999), nil)
	suite.settingsRepo.On("Get", suite.ctx).Return(&models.GSTSettings{
		EInvoiceThreshold: decimal.NewFromInt(50000),
	}, nil)

	_, err := suite.service.Generate(suite.ctx, suite.invoiceID)
	assert.ErrorIs(suite.T(), err, ErrBelowThreshold)
	suite.logRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_ProviderRejection() {
	suite.generateResponse = einvoice.GenerateResponse{ErrorCode: "2150", ErrorMsg: "Duplicate IRN"}

	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(suite.draftInvoice(60000), nil)
	suite.stubMasterData()
	suite.stubLog()
	suite.invoiceRepo.On("SetEInvoiceError", suite.ctx, suite.invoiceID, "2150", "Duplicate IRN").Return(nil)

	_, err := suite.service.Generate(suite.ctx, suite.invoiceID)

	var provErr *einvoice.ProviderError
	assert.ErrorAs(suite.T(), err, &provErr)
	suite.invoiceRepo.AssertCalled(suite.T(), "SetEInvoiceError", suite.ctx, suite.invoiceID, "2150", "Duplicate IRN")
	suite.logRepo.AssertCalled(suite.T(), "Complete", suite.ctx, mock.AnythingOfType("uuid.UUID"), models.EInvoiceLogFailed, mock.Anything, mock.Anything)
}

func (suite *EInvoiceServiceTestSuite) TestGenerate_CustomerWithoutGSTIN() {
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(suite.draftInvoice(60000), nil)
	suite.settingsRepo.On("Get", suite.ctx).Return(&models.GSTSettings{
		GSTIN:             "27AAPFU0939F1ZV",
		StateCode:         "27",
		EInvoiceThreshold: decimal.NewFromInt(50000),
	}, nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customerID).Return(&models.Customer{
		ID:        suite.customerID,
		Name:      "Unregistered Buyer",
		StateCode: "29",
	}, nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.productID).Return(&models.FinishedProduct{
		ID:     suite.productID,
		UnitID: suite.unitID,
	}, nil)
	suite.unitRepo.On("GetByID", suite.ctx, suite.unitID).Return(&models.Unit{ID: suite.unitID, Symbol: "BAG"}, nil)

	_, err := suite.service.Generate(suite.ctx, suite.invoiceID)
	assert.ErrorContains(suite.T(), err, "has no GSTIN")
	suite.logRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *EInvoiceServiceTestSuite) TestCancel_Success() {
	irn := "irn-abc123"
	invoice := suite.draftInvoice(60000)
	invoice.Status = models.InvoiceStatusGenerated
	invoice.IRN = &irn
	cancelled := *invoice
	cancelled.Status = models.InvoiceStatusCancelled

	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(invoice, nil).Once()
	suite.stubLog()
	suite.invoiceRepo.On("SetCancelled", suite.ctx, suite.invoiceID).Return(nil)
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(&cancelled, nil).Once()

	result, err := suite.service.Cancel(suite.ctx, suite.invoiceID, "1", "duplicate")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusCancelled, result.Status)
}

func (suite *EInvoiceServiceTestSuite) TestCancel_WithoutIRN() {
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(suite.draftInvoice(60000), nil)

	_, err := suite.service.Cancel(suite.ctx, suite.invoiceID, "1", "")
	assert.ErrorIs(suite.T(), err, ErrCancelWithoutIRN)
}

func (suite *EInvoiceServiceTestSuite) TestCancel_AlreadyCancelled() {
	irn := "irn-abc123"
	invoice := suite.draftInvoice(60000)
	invoice.Status = models.InvoiceStatusCancelled
	invoice.IRN = &irn
	suite.invoiceRepo.On("GetByID", suite.ctx, suite.invoiceID).Return(invoice, nil)

	_, err := suite.service.Cancel(suite.ctx, suite.invoiceID, "1", "")
	assert.ErrorIs(suite.T(), err, ErrAlreadyCancelled)
}
