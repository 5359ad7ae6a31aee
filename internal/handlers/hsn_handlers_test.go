package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func postHSNCode(h *HSNCodeHandlers, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/hsn-codes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.CreateHSNCode(e.NewContext(req, rec))
}

func TestCreateHSNCode(t *testing.T) {
	repo := new(MockHSNCodeRepository)
	h := NewHSNCodeHandlers(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(code *models.HSNCode) bool {
		return code.Code == "31021000" && code.GSTRate.Equal(decimal.NewFromInt(18))
	})).Return(nil)

	rec, err := postHSNCode(h, `{"code":"31021000","gst_rate":18}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestCreateHSNCode_RateOutsideSlabs(t *testing.T) {
	repo := new(MockHSNCodeRepository)
	h := NewHSNCodeHandlers(repo)

	rec, err := postHSNCode(h, `{"code":"31021000","gst_rate":15}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	repo.AssertNotCalled(t, "Create")
}

func TestCreateHSNCode_MissingCode(t *testing.T) {
	repo := new(MockHSNCodeRepository)
	h := NewHSNCodeHandlers(repo)

	rec, err := postHSNCode(h, `{"gst_rate":18}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateHSNCode_RateOutsideSlabs(t *testing.T) {
	repo := new(MockHSNCodeRepository)
	h := NewHSNCodeHandlers(repo)
	id := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"code":"31021000","gst_rate":7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/hsn-codes/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.UpdateHSNCode(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Update")
}
