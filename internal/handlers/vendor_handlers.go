package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// VendorHandlers handles vendor master HTTP requests.
type VendorHandlers struct {
	vendorRepo repositories.VendorRepository
}

func NewVendorHandlers(vendorRepo repositories.VendorRepository) *VendorHandlers {
	return &VendorHandlers{vendorRepo: vendorRepo}
}

type VendorRequest struct {
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	StateCode string  `json:"state_code"`
	GSTIN     *string `json:"gstin"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// validate reports the first offending field. The caller turns it into
// the validation response.
func (r *VendorRequest) validate() (string, error) {
	if err := common.ValidateRequiredString(r.Name, "name"); err != nil {
		return "name", err
	}
	if err := common.ValidateStateCode(r.StateCode, "state_code"); err != nil {
		return "state_code", err
	}
	if err := common.ValidateGSTIN(common.SafeString(r.GSTIN), "gstin"); err != nil {
		return "gstin", err
	}
	return "", nil
}

func (h *VendorHandlers) CreateVendor(c echo.Context) error {
	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	vendor := &models.Vendor{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		StateCode: req.StateCode,
		GSTIN:     req.GSTIN,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.vendorRepo.Create(c.Request().Context(), vendor); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create vendor")
	}
	return c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandlers) GetVendor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vendor, err := h.vendorRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Vendor")
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandlers) UpdateVendor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	ctx := c.Request().Context()
	vendor, err := h.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Vendor")
	}

	vendor.Name = req.Name
	vendor.Address = req.Address
	vendor.StateCode = req.StateCode
	vendor.GSTIN = req.GSTIN
	vendor.Email = req.Email
	vendor.Phone = req.Phone
	if err := h.vendorRepo.Update(ctx, vendor); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update vendor")
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandlers) DeleteVendor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.vendorRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete vendor")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VendorHandlers) ListVendors(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	vendors, err := h.vendorRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list vendors")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"limit":   limit,
		"offset":  offset,
	})
}
