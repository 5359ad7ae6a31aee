package services

import (
	"context"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Mock repositories shared by the service tests.

type MockGodownStockRepository struct {
	mock.Mock
}

func (m *MockGodownStockRepository) GetByGodownAndItem(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error) {
	args := m.Called(ctx, godownID, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GodownStock), args.Error(1)
}

func (m *MockGodownStockRepository) Add(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, godownID, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockGodownStockRepository) Subtract(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, godownID, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockGodownStockRepository) SubtractTx(ctx context.Context, tx pgx.Tx, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, tx, godownID, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockGodownStockRepository) Set(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, godownID, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockGodownStockRepository) Transfer(ctx context.Context, fromGodownID, toGodownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, fromGodownID, toGodownID, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockGodownStockRepository) List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.GodownStock, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.GodownStock), args.Error(1)
}

func (m *MockGodownStockRepository) ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*models.GodownStock, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]*models.GodownStock), args.Error(1)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) CreateTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) List(ctx context.Context, godownID, itemID *uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, godownID, itemID, limit, offset)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

type MockTaxInvoiceRepository struct {
	mock.Mock
}

func (m *MockTaxInvoiceRepository) CreateWithItems(ctx context.Context, invoice *models.TaxInvoice, movements []*models.StockMovement) error {
	args := m.Called(ctx, invoice, movements)
	return args.Error(0)
}

func (m *MockTaxInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TaxInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxInvoice), args.Error(1)
}

func (m *MockTaxInvoiceRepository) List(ctx context.Context, filter *models.InvoiceSearchFilter) ([]*models.TaxInvoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.TaxInvoice), args.Error(1)
}

func (m *MockTaxInvoiceRepository) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxInvoiceRepository) SetEInvoiceResult(ctx context.Context, id uuid.UUID, irn, ackNo string, ackDate time.Time, signedQR string) error {
	args := m.Called(ctx, id, irn, ackNo, ackDate, signedQR)
	return args.Error(0)
}

func (m *MockTaxInvoiceRepository) SetEInvoiceError(ctx context.Context, id uuid.UUID, errorCode, errorMessage string) error {
	args := m.Called(ctx, id, errorCode, errorMessage)
	return args.Error(0)
}

func (m *MockTaxInvoiceRepository) SetCancelled(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxInvoiceRepository) SetPDFObject(ctx context.Context, id uuid.UUID, object string) error {
	args := m.Called(ctx, id, object)
	return args.Error(0)
}

type MockInvoiceSequenceRepository struct {
	mock.Mock
}

func (m *MockInvoiceSequenceRepository) NextNumber(ctx context.Context, financialYear string) (int64, error) {
	args := m.Called(ctx, financialYear)
	return args.Get(0).(int64), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type MockFinishedProductRepository struct {
	mock.Mock
}

func (m *MockFinishedProductRepository) Create(ctx context.Context, product *models.FinishedProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockFinishedProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FinishedProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FinishedProduct), args.Error(1)
}

func (m *MockFinishedProductRepository) Update(ctx context.Context, product *models.FinishedProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockFinishedProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFinishedProductRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.FinishedProduct, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.FinishedProduct), args.Error(1)
}

type MockHSNCodeRepository struct {
	mock.Mock
}

func (m *MockHSNCodeRepository) Create(ctx context.Context, code *models.HSNCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockHSNCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HSNCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HSNCode), args.Error(1)
}

func (m *MockHSNCodeRepository) GetByCode(ctx context.Context, code string) (*models.HSNCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HSNCode), args.Error(1)
}

func (m *MockHSNCodeRepository) Update(ctx context.Context, code *models.HSNCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockHSNCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHSNCodeRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.HSNCode, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.HSNCode), args.Error(1)
}

type MockGSTSettingsRepository struct {
	mock.Mock
}

func (m *MockGSTSettingsRepository) Get(ctx context.Context) (*models.GSTSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GSTSettings), args.Error(1)
}

func (m *MockGSTSettingsRepository) Upsert(ctx context.Context, settings *models.GSTSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) Update(ctx context.Context, unit *models.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Unit, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.Unit), args.Error(1)
}

type MockEInvoiceLogRepository struct {
	mock.Mock
}

func (m *MockEInvoiceLogRepository) Create(ctx context.Context, log *models.EInvoiceTransactionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockEInvoiceLogRepository) Complete(ctx context.Context, id uuid.UUID, status string, responseBody, errorMessage *string) error {
	args := m.Called(ctx, id, status, responseBody, errorMessage)
	return args.Error(0)
}

func (m *MockEInvoiceLogRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.EInvoiceTransactionLog, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]*models.EInvoiceTransactionLog), args.Error(1)
}

func (m *MockEInvoiceLogRepository) MarkStalePendingFailed(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) Create(ctx context.Context, permission *models.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) List(ctx context.Context) ([]*models.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Permission), args.Error(1)
}

func (m *MockPermissionRepository) GrantToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionID)
	return args.Error(0)
}

func (m *MockPermissionRepository) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
