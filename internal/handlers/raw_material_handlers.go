package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RawMaterialHandlers handles raw material master HTTP requests.
type RawMaterialHandlers struct {
	materialRepo repositories.RawMaterialRepository
	unitRepo     repositories.UnitRepository
	hsnRepo      repositories.HSNCodeRepository
}

func NewRawMaterialHandlers(materialRepo repositories.RawMaterialRepository, unitRepo repositories.UnitRepository, hsnRepo repositories.HSNCodeRepository) *RawMaterialHandlers {
	return &RawMaterialHandlers{
		materialRepo: materialRepo,
		unitRepo:     unitRepo,
		hsnRepo:      hsnRepo,
	}
}

type RawMaterialRequest struct {
	Name      string `json:"name"`
	UnitID    string `json:"unit_id"`
	HSNCodeID string `json:"hsn_code_id"`
}

func (h *RawMaterialHandlers) resolveRefs(c echo.Context, req *RawMaterialRequest) (uuid.UUID, uuid.UUID, error) {
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

func (h *RawMaterialHandlers) CreateRawMaterial(c echo.Context) error {
	var req RawMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	unitID, hsnCodeID, err := h.resolveRefs(c, &req)
	if err != nil {
		return err
	}

	material := &models.RawMaterial{
		ID:        uuid.New(),
		Name:      req.Name,
		UnitID:    unitID,
		HSNCodeID: hsnCodeID,
	}
	if err := h.materialRepo.Create(c.Request().Context(), material); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create raw material")
	}
	return c.JSON(http.StatusCreated, material)
}

func (h *RawMaterialHandlers) GetRawMaterial(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	material, err := h.materialRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Raw material")
	}
	return c.JSON(http.StatusOK, material)
}

func (h *RawMaterialHandlers) UpdateRawMaterial(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req RawMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	unitID, hsnCodeID, err := h.resolveRefs(c, &req)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	material, err := h.materialRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Raw material")
	}

	material.Name = req.Name
	material.UnitID = unitID
	material.HSNCodeID = hsnCodeID
	if err := h.materialRepo.Update(ctx, material); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update raw material")
	}
	return c.JSON(http.StatusOK, material)
}

func (h *RawMaterialHandlers) DeleteRawMaterial(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.materialRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete raw material")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RawMaterialHandlers) ListRawMaterials(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	materials, err := h.materialRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list raw materials")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"raw_materials": materials,
		"limit":         limit,
		"offset":        offset,
	})
}
