package handlers

import (
	"errors"
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"
	"gstbill/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// StockHandlers handles godown stock ledger HTTP requests.
type StockHandlers struct {
	stockService services.StockService
}

func NewStockHandlers(stockService services.StockService) *StockHandlers {
	return &StockHandlers{stockService: stockService}
}

type StockMutationRequest struct {
	GodownID  string          `json:"godown_id"`
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Movement  string          `json:"movement_type"`
	Reference *string         `json:"reference"`
}

func (r *StockMutationRequest) resolve() (uuid.UUID, uuid.UUID, error) {
	godownID, err := common.ValidateUUID(r.GodownID, "godown_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := common.ValidateUUID(r.ItemID, "item_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return godownID, itemID, nil
}

func stockErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrInsufficientStock):
		return common.SendClientError(c, "Insufficient stock")
	case errors.Is(err, repositories.ErrSameGodownTransfer):
		return common.SendClientError(c, "Source and destination godown must differ")
	case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, services.ErrInvalidItemType):
		return common.SendClientError(c, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Stock operation failed")
	}
}

// AddStock records inbound stock (purchases, returns).
func (h *StockHandlers) AddStock(c echo.Context) error {
	var req StockMutationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	godownID, itemID, err := req.resolve()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movement := req.Movement
	if movement == "" {
		movement = models.MovementPurchase
	}

	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	if err := h.stockService.Add(ctx, godownID, req.ItemType, itemID, req.Quantity, movement, req.Reference, &userID); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StockHandlers) SubtractStock(c echo.Context) error {
	var req StockMutationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	godownID, itemID, err := req.resolve()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movement := req.Movement
	if movement == "" {
		movement = models.MovementStockOut
	}

	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	if err := h.stockService.Subtract(ctx, godownID, req.ItemType, itemID, req.Quantity, movement, req.Reference, &userID); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StockHandlers) SetStock(c echo.Context) error {
	var req StockMutationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	godownID, itemID, err := req.resolve()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	if err := h.stockService.Set(ctx, godownID, req.ItemType, itemID, req.Quantity, &userID); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type StockTransferRequest struct {
	FromGodownID string          `json:"from_godown_id"`
	ToGodownID   string          `json:"to_godown_id"`
	ItemType     string          `json:"item_type"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

func (h *StockHandlers) TransferStock(c echo.Context) error {
	var req StockTransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	fromID, err := common.ValidateUUID(req.FromGodownID, "from_godown_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	toID, err := common.ValidateUUID(req.ToGodownID, "to_godown_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	itemID, err := common.ValidateUUID(req.ItemID, "item_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	if err := h.stockService.Transfer(ctx, fromID, toID, req.ItemType, itemID, req.Quantity, &userID); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StockHandlers) ListStock(c echo.Context) error {
	var filter models.StockSearchFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)

	stocks, err := h.stockService.List(c.Request().Context(), &filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list stock")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stocks": stocks,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

type MovementQuery struct {
	GodownID string `query:"godown_id"`
	ItemID   string `query:"item_id"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

func (h *StockHandlers) ListMovements(c echo.Context) error {
	var req MovementQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	var godownID, itemID *uuid.UUID
	if req.GodownID != "" {
		id, err := common.ValidateUUID(req.GodownID, "godown_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		godownID = &id
	}
	if req.ItemID != "" {
		id, err := common.ValidateUUID(req.ItemID, "item_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		itemID = &id
	}

	movements, err := h.stockService.Movements(c.Request().Context(), godownID, itemID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list stock movements")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}
