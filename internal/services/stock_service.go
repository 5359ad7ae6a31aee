package services

import (
	"context"
	"errors"
	"log"

	"gstbill/internal/caching"
	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidItemType = errors.New("item type must be raw_material or finished_product")
)

// StockService is the only writer to the godown stock ledger. Every
// mutation appends a stock movement row so the ledger stays auditable.
type StockService interface {
	Add(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, movementType string, reference *string, userID *uuid.UUID) error
	Subtract(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, movementType string, reference *string, userID *uuid.UUID) error
	Set(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, userID *uuid.UUID) error
	Transfer(ctx context.Context, fromGodownID, toGodownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, userID *uuid.UUID) error
	Get(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error)
	List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.GodownStock, error)
	Movements(ctx context.Context, godownID, itemID *uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
	LowStock(ctx context.Context, threshold decimal.Decimal) ([]*models.GodownStock, error)
}

type stockService struct {
	stockRepo    repositories.GodownStockRepository
	movementRepo repositories.StockMovementRepository
	cacheSvc     caching.CacheService
}

func NewStockService(stockRepo repositories.GodownStockRepository, movementRepo repositories.StockMovementRepository, cacheSvc caching.CacheService) StockService {
	return &stockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		cacheSvc:     cacheSvc,
	}
}

func validateStockArgs(itemType string, quantity decimal.Decimal) error {
	if itemType != models.ItemTypeRawMaterial && itemType != models.ItemTypeFinishedProduct {
		return ErrInvalidItemType
	}
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	return nil
}

func (s *stockService) Add(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, movementType string, reference *string, userID *uuid.UUID) error {
	if err := validateStockArgs(itemType, quantity); err != nil {
		return err
	}
	if err := s.stockRepo.Add(ctx, godownID, itemType, itemID, quantity); err != nil {
		return err
	}
	s.recordMovement(ctx, movementType, godownID, itemType, itemID, quantity, reference, userID)
	s.invalidate(ctx, godownID, itemType, itemID)
	return nil
}

func (s *stockService) Subtract(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, movementType string, reference *string, userID *uuid.UUID) error {
	if err := validateStockArgs(itemType, quantity); err != nil {
		return err
	}
	if err := s.stockRepo.Subtract(ctx, godownID, itemType, itemID, quantity); err != nil {
		return err
	}
	s.recordMovement(ctx, movementType, godownID, itemType, itemID, quantity.Neg(), reference, userID)
	s.invalidate(ctx, godownID, itemType, itemID)
	return nil
}

func (s *stockService) Set(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, userID *uuid.UUID) error {
	if itemType != models.ItemTypeRawMaterial && itemType != models.ItemTypeFinishedProduct {
		return ErrInvalidItemType
	}
	if quantity.IsNegative() {
		return ErrInvalidQuantity
	}
	if err := s.stockRepo.Set(ctx, godownID, itemType, itemID, quantity); err != nil {
		return err
	}
	s.recordMovement(ctx, models.MovementAdjustment, godownID, itemType, itemID, quantity, nil, userID)
	s.invalidate(ctx, godownID, itemType, itemID)
	return nil
}

func (s *stockService) Transfer(ctx context.Context, fromGodownID, toGodownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, userID *uuid.UUID) error {
	if err := validateStockArgs(itemType, quantity); err != nil {
		return err
	}
	if err := s.stockRepo.Transfer(ctx, fromGodownID, toGodownID, itemType, itemID, quantity); err != nil {
		return err
	}
	reference := "transfer:" + toGodownID.String()
	s.recordMovement(ctx, models.MovementTransferOut, fromGodownID, itemType, itemID, quantity.Neg(), &reference, userID)
	s.recordMovement(ctx, models.MovementTransferIn, toGodownID, itemType, itemID, quantity, &reference, userID)
	s.invalidate(ctx, fromGodownID, itemType, itemID)
	s.invalidate(ctx, toGodownID, itemType, itemID)
	return nil
}

func (s *stockService) Get(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetStock(ctx, godownID, itemType, itemID); err == nil && cached != nil {
			return cached, nil
		}
	}

	stock, err := s.stockRepo.GetByGodownAndItem(ctx, godownID, itemType, itemID)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		_ = s.cacheSvc.SetStock(ctx, stock, caching.StockTTL)
	}
	return stock, nil
}

func (s *stockService) List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.GodownStock, error) {
	return s.stockRepo.List(ctx, filter)
}

func (s *stockService) Movements(ctx context.Context, godownID, itemID *uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	return s.movementRepo.List(ctx, godownID, itemID, limit, offset)
}

func (s *stockService) LowStock(ctx context.Context, threshold decimal.Decimal) ([]*models.GodownStock, error) {
	return s.stockRepo.ListBelow(ctx, threshold)
}

// recordMovement appends the audit row. The ledger update has already
// committed, so a failed movement write is logged rather than unwound.
func (s *stockService) recordMovement(ctx context.Context, movementType string, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal, reference *string, userID *uuid.UUID) {
	movement := &models.StockMovement{
		ID:           uuid.New(),
		MovementType: movementType,
		GodownID:     godownID,
		ItemType:     itemType,
		ItemID:       itemID,
		Quantity:     quantity,
		Reference:    reference,
		CreatedBy:    userID,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		log.Printf("WARN: failed to record stock movement for item %s: %v", itemID, err)
	}
}

func (s *stockService) invalidate(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteStock(ctx, godownID, itemType, itemID); err != nil {
		log.Printf("WARN: failed to invalidate stock cache: %v", err)
	}
}
