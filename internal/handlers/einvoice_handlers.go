package handlers

import (
	"errors"
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/einvoice"
	"gstbill/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// EInvoiceHandlers handles IRN generation and cancellation requests.
type EInvoiceHandlers struct {
	einvoiceService services.EInvoiceService
}

func NewEInvoiceHandlers(einvoiceService services.EInvoiceService) *EInvoiceHandlers {
	return &EInvoiceHandlers{einvoiceService: einvoiceService}
}

func (h *EInvoiceHandlers) GenerateEInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.einvoiceService.Generate(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return common.SendNotFoundError(c, "Invoice")
		case errors.Is(err, services.ErrCustomerNotFound),
			errors.Is(err, services.ErrProductNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrBelowThreshold),
			errors.Is(err, services.ErrInvoiceNotSubmittable):
			return common.SendClientError(c, err.Error())
		default:
			var providerErr *einvoice.ProviderError
			if errors.As(err, &providerErr) {
				return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("EINVOICE_REJECTED", "E-invoice provider rejected the submission", map[string]string{
					"provider_code":    providerErr.Code,
					"provider_message": providerErr.Message,
				}))
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate e-invoice")
		}
	}
	return c.JSON(http.StatusOK, invoice)
}

type CancelEInvoiceRequest struct {
	Reason  string `json:"reason"`
	Remarks string `json:"remarks"`
}

func (h *EInvoiceHandlers) CancelEInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CancelEInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Reason == "" {
		// IRP reason code 1: duplicate. Most cancellations are data entry.
		req.Reason = "1"
	}

	invoice, err := h.einvoiceService.Cancel(c.Request().Context(), id, req.Reason, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return common.SendNotFoundError(c, "Invoice")
		case errors.Is(err, services.ErrCancelWithoutIRN),
			errors.Is(err, services.ErrAlreadyCancelled):
			return common.SendClientError(c, err.Error())
		default:
			var providerErr *einvoice.ProviderError
			if errors.As(err, &providerErr) {
				return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("EINVOICE_REJECTED", "E-invoice provider rejected the cancellation", map[string]string{
					"provider_code":    providerErr.Code,
					"provider_message": providerErr.Message,
				}))
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to cancel e-invoice")
		}
	}
	return c.JSON(http.StatusOK, invoice)
}

// EInvoiceStatus returns the transaction log for an invoice, newest first.
func (h *EInvoiceHandlers) EInvoiceStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	logs, err := h.einvoiceService.Logs(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load e-invoice logs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"logs": logs})
}
