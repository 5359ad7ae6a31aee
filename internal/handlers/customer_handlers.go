package handlers

import (
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles customer master HTTP requests.
type CustomerHandlers struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerHandlers(customerRepo repositories.CustomerRepository) *CustomerHandlers {
	return &CustomerHandlers{customerRepo: customerRepo}
}

type CustomerRequest struct {
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	StateCode string  `json:"state_code"`
	GSTIN     *string `json:"gstin"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// validate reports the first offending field. The caller turns it into
// the validation response.
func (r *CustomerRequest) validate() (string, error) {
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

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	customer := &models.Customer{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		StateCode: req.StateCode,
		GSTIN:     req.GSTIN,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.customerRepo.Create(c.Request().Context(), customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create customer")
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Customer")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if field, err := req.validate(); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	ctx := c.Request().Context()
	customer, err := h.customerRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Customer")
	}

	customer.Name = req.Name
	customer.Address = req.Address
	customer.StateCode = req.StateCode
	customer.GSTIN = req.GSTIN
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := h.customerRepo.Update(ctx, customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update customer")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.customerRepo.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete customer")
	}
	return c.NoContent(http.StatusNoContent)
}

type ListQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	customers, err := h.customerRepo.List(c.Request().Context(), common.SanitizeSearchQuery(req.Search), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list customers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"limit":     limit,
		"offset":    offset,
	})
}
