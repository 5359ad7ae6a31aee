package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UnitHandlers handles unit-of-measure master HTTP requests.
type UnitHandlers struct {
	unitRepo repositories.UnitRepository
}

func NewUnitHandlers(unitRepo repositories.UnitRepository) *UnitHandlers {
	return &UnitHandlers{unitRepo: unitRepo}
}

type UnitRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func (h *UnitHandlers) CreateUnit(c echo.Context) error {
	var req UnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Symbol, "symbol"); err != nil {
		return common.SendValidationError(c, "symbol", err.Error())
	}

	unit := &models.Unit{
		ID:     uuid.New(),
		Name:   req.Name,
		Symbol: req.Symbol,
	}
	if err := h.unitRepo.Create(c.Request().Context(), unit); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create unit")
	}
	return c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandlers) GetUnit(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	unit, err := h.unitRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Unit")
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandlers) UpdateUnit(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	ctx := c.Request().Context()
	unit, err := h.unitRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Unit")
	}

	unit.Name = req.Name
	unit.Symbol = req.Symbol
	if err := h.unitRepo.Update(ctx, unit); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update unit")
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandlers) DeleteUnit(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.unitRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete unit")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UnitHandlers) ListUnits(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	units, err := h.unitRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list units")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"units":  units,
		"limit":  limit,
		"offset": offset,
	})
}
