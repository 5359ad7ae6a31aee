package handlers

import (
	"errors"
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// HSNCodeHandlers handles HSN/SAC master HTTP requests.
type HSNCodeHandlers struct {
	hsnRepo repositories.HSNCodeRepository
}

func NewHSNCodeHandlers(hsnRepo repositories.HSNCodeRepository) *HSNCodeHandlers {
	return &HSNCodeHandlers{hsnRepo: hsnRepo}
}

type HSNCodeRequest struct {
	Code        string          `json:"code"`
	Description *string         `json:"description"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// validate reports the first offending field. The caller turns it into
// the validation response.
func (r *HSNCodeRequest) validate() (string, error) {
	if err := common.ValidateRequiredString(r.Code, "code"); err != nil {
		return "code", err
	}
	if !models.IsValidGSTRate(r.GSTRate) {
		return "gst_rate", errors.New("gst_rate must be one of 0, 5, 12, 18, 28")
	}
	return "", nil
}

func (h *HSNCodeHandlers) CreateHSNCode(c echo.Context) error {
	var req HSNCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	hsnCode := &models.HSNCode{
		ID:          uuid.New(),
		Code:        req.Code,
		Description: req.Description,
		GSTRate:     req.GSTRate,
	}
	if err := h.hsnRepo.Create(c.Request().Context(), hsnCode); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create HSN code")
	}
	return c.JSON(http.StatusCreated, hsnCode)
}

func (h *HSNCodeHandlers) GetHSNCode(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hsnCode, err := h.hsnRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "HSN code")
	}
	return c.JSON(http.StatusOK, hsnCode)
}

func (h *HSNCodeHandlers) UpdateHSNCode(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req HSNCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	ctx := c.Request().Context()
	hsnCode, err := h.hsnRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "HSN code")
	}

	hsnCode.Code = req.Code
	hsnCode.Description = req.Description
	hsnCode.GSTRate = req.GSTRate
	if err := h.hsnRepo.Update(ctx, hsnCode); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update HSN code")
	}
	return c.JSON(http.StatusOK, hsnCode)
}

func (h *HSNCodeHandlers) DeleteHSNCode(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.hsnRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete HSN code")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HSNCodeHandlers) ListHSNCodes(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	hsnCodes, err := h.hsnRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list HSN codes")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hsn_codes": hsnCodes,
		"limit":     limit,
		"offset":    offset,
	})
}
