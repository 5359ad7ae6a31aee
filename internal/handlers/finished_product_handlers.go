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

// FinishedProductHandlers handles finished product master HTTP requests.
type FinishedProductHandlers struct {
	productRepo repositories.FinishedProductRepository
	unitRepo    repositories.UnitRepository
	hsnRepo     repositories.HSNCodeRepository
}

func NewFinishedProductHandlers(productRepo repositories.FinishedProductRepository, unitRepo repositories.UnitRepository, hsnRepo repositories.HSNCodeRepository) *FinishedProductHandlers {
	return &FinishedProductHandlers{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		hsnRepo:     hsnRepo,
	}
}

type FinishedProductRequest struct {
	Name        string          `json:"name"`
	UnitID      string          `json:"unit_id"`
	HSNCodeID   string          `json:"hsn_code_id"`
	SellingRate decimal.Decimal `json:"selling_rate"`
}

func (h *FinishedProductHandlers) resolveRefs(c echo.Context, req *FinishedProductRequest) (uuid.UUID, uuid.UUID, error) {
	unitID, err := common.ValidateUUID(req.UnitID, "unit_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hsnCodeID, err := common.ValidateUUID(req.HSNCodeID, "hsn_code_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.unitRepo.GetByID(ctx, unitID); err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Unit not found")
	}
	if _, err := h.hsnRepo.GetByID(ctx, hsnCodeID); err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "HSN code not found")
	}
	return unitID, hsnCodeID, nil
}

func (h *FinishedProductHandlers) CreateFinishedProduct(c echo.Context) error {
	var req FinishedProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.SellingRate.IsNegative() {
		return common.SendValidationError(c, "selling_rate", "selling_rate must not be negative")
	}
	unitID, hsnCodeID, err := h.resolveRefs(c, &req)
	if err != nil {
		return err
	}

	product := &models.FinishedProduct{
		ID:          uuid.New(),
		Name:        req.Name,
		UnitID:      unitID,
		HSNCodeID:   hsnCodeID,
		SellingRate: req.SellingRate,
	}
	if err := h.productRepo.Create(c.Request().Context(), product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create finished product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *FinishedProductHandlers) GetFinishedProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Finished product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *FinishedProductHandlers) UpdateFinishedProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req FinishedProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.SellingRate.IsNegative() {
		return common.SendValidationError(c, "selling_rate", "selling_rate must not be negative")
	}
	unitID, hsnCodeID, err := h.resolveRefs(c, &req)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Finished product")
	}

	product.Name = req.Name
	product.UnitID = unitID
	product.HSNCodeID = hsnCodeID
	product.SellingRate = req.SellingRate
	if err := h.productRepo.Update(ctx, product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update finished product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *FinishedProductHandlers) DeleteFinishedProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.productRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete finished product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FinishedProductHandlers) ListFinishedProducts(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	products, err := h.productRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list finished products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"finished_products": products,
		"limit":             limit,
		"offset":            offset,
	})
}
