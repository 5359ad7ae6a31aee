package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"
	"gstbill/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles tax invoice HTTP requests.
type InvoiceHandlers struct {
	invoiceService services.InvoiceService
	pdfService     services.PDFService
}

func NewInvoiceHandlers(invoiceService services.InvoiceService, pdfService services.PDFService) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		pdfService:     pdfService,
	}
}

func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	var req services.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx := c.Request().Context()
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		req.CreatedBy = &userID
	}

	invoice, err := h.invoiceService.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoLineItems),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidGSTRate),
			errors.Is(err, repositories.ErrInsufficientStock):
			return common.SendClientError(c, err.Error())
		case errors.Is(err, services.ErrCustomerNotFound),
			errors.Is(err, services.ErrProductNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create invoice")
		}
	}
	return c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.invoiceService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Invoice")
	}
	return c.JSON(http.StatusOK, invoice)
}

type InvoiceListQuery struct {
	Search     string `query:"search"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	var req InvoiceListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	filter := &models.InvoiceSearchFilter{
		Query:  common.SanitizeSearchQuery(req.Search),
		Status: req.Status,
	}
	filter.Limit, filter.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)
	if req.CustomerID != "" {
		customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.CustomerID = &customerID
	}

	invoices, err := h.invoiceService.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list invoices")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.invoiceService.DeleteDraft(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrInvoiceImmutable) {
			return common.SendClientError(c, "Only draft or error invoices can be deleted")
		}
		return common.SendNotFoundError(c, "Invoice")
	}
	return c.NoContent(http.StatusNoContent)
}

// InvoicePDF streams the rendered invoice as application/pdf.
func (h *InvoiceHandlers) InvoicePDF(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := h.pdfService.InvoicePDF(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Invoice")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render invoice PDF")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", c.Param("id")+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
