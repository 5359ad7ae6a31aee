package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GodownHandlers handles godown (warehouse) master HTTP requests.
type GodownHandlers struct {
	godownRepo repositories.GodownRepository
}

func NewGodownHandlers(godownRepo repositories.GodownRepository) *GodownHandlers {
	return &GodownHandlers{godownRepo: godownRepo}
}

type GodownRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

func (h *GodownHandlers) CreateGodown(c echo.Context) error {
	var req GodownRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	godown := &models.Godown{
		ID:      uuid.New(),
		Name:    req.Name,
		Address: req.Address,
	}
	if err := h.godownRepo.Create(c.Request().Context(), godown); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create godown")
	}
	return c.JSON(http.StatusCreated, godown)
}

func (h *GodownHandlers) GetGodown(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	godown, err := h.godownRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Godown")
	}
	return c.JSON(http.StatusOK, godown)
}

func (h *GodownHandlers) UpdateGodown(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req GodownRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	ctx := c.Request().Context()
	godown, err := h.godownRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Godown")
	}

	godown.Name = req.Name
	godown.Address = req.Address
	if err := h.godownRepo.Update(ctx, godown); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update godown")
	}
	return c.JSON(http.StatusOK, godown)
}

func (h *GodownHandlers) DeleteGodown(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.godownRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete godown")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GodownHandlers) ListGodowns(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	godowns, err := h.godownRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list godowns")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"godowns": godowns,
		"limit":   limit,
		"offset":  offset,
	})
}
