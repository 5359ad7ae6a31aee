package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// SettingsHandlers handles the seller GST profile.
type SettingsHandlers struct {
	settingsRepo repositories.GSTSettingsRepository
}

func NewSettingsHandlers(settingsRepo repositories.GSTSettingsRepository) *SettingsHandlers {
	return &SettingsHandlers{settingsRepo: settingsRepo}
}

func (h *SettingsHandlers) GetGSTSettings(c echo.Context) error {
	settings, err := h.settingsRepo.Get(c.Request().Context())
	if err != nil {
		return common.SendNotFoundError(c, "GST settings")
	}
	return c.JSON(http.StatusOK, settings)
}

type GSTSettingsRequest struct {
	LegalName         string           `json:"legal_name"`
	TradeName         *string          `json:"trade_name"`
	GSTIN             string           `json:"gstin"`
	Address           string           `json:"address"`
	Location          string           `json:"location"`
	Pincode           string           `json:"pincode"`
	StateCode         string           `json:"state_code"`
	EInvoiceThreshold *decimal.Decimal `json:"einvoice_threshold"`
}

func (h *SettingsHandlers) UpdateGSTSettings(c echo.Context) error {
	var req GSTSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.LegalName, "legal_name"); err != nil {
		return common.SendValidationError(c, "legal_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.GSTIN, "gstin"); err != nil {
		return common.SendValidationError(c, "gstin", err.Error())
	}
	if err := common.ValidateGSTIN(req.GSTIN, "gstin"); err != nil {
		return common.SendValidationError(c, "gstin", err.Error())
	}

	stateCode := req.StateCode
	if stateCode == "" {
		stateCode = common.StateCodeFromGSTIN(req.GSTIN)
	}
	if err := common.ValidateStateCode(stateCode, "state_code"); err != nil {
		return common.SendValidationError(c, "state_code", err.Error())
	}

	ctx := c.Request().Context()
	settings, err := h.settingsRepo.Get(ctx)
	if err != nil {
		settings = &models.GSTSettings{
			ID:                uuid.New(),
			EInvoiceThreshold: decimal.NewFromInt(50000),
		}
	}

	settings.LegalName = req.LegalName
	settings.TradeName = req.TradeName
	settings.GSTIN = req.GSTIN
	settings.Address = req.Address
	settings.Location = req.Location
	settings.Pincode = req.Pincode
	settings.StateCode = stateCode
	if req.EInvoiceThreshold != nil {
		if req.EInvoiceThreshold.IsNegative() {
			return common.SendValidationError(c, "einvoice_threshold", "einvoice_threshold must not be negative")
		}
		settings.EInvoiceThreshold = *req.EInvoiceThreshold
	}

	if err := h.settingsRepo.Upsert(ctx, settings); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save GST settings")
	}
	return c.JSON(http.StatusOK, settings)
}
