package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockMovementRepository interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	CreateTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error
	List(ctx context.Context, godownID, itemID *uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
}

type stockMovementRepo struct {
	db Database
}

func NewStockMovementRepository(db Database) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

const insertMovementQuery = `
	INSERT INTO stock_movements (id, movement_type, godown_id, item_type, item_id, quantity, reference, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
`

func (r *stockMovementRepo) Create(ctx context.Context, movement *models.StockMovement) error {
	_, err := r.db.Exec(ctx, insertMovementQuery,
		movement.ID, movement.MovementType, movement.GodownID, movement.ItemType,
		movement.ItemID, movement.Quantity, movement.Reference, movement.CreatedBy)
	return err
}

func (r *stockMovementRepo) CreateTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error {
	_, err := tx.Exec(ctx, insertMovementQuery,
		movement.ID, movement.MovementType, movement.GodownID, movement.ItemType,
		movement.ItemID, movement.Quantity, movement.Reference, movement.CreatedBy)
	return err
}

func (r *stockMovementRepo) List(ctx context.Context, godownID, itemID *uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	query := `
		SELECT id, movement_type, godown_id, item_type, item_id, quantity, reference, created_by, created_at
		FROM stock_movements
		WHERE ($1::uuid IS NULL OR godown_id = $1)
		  AND ($2::uuid IS NULL OR item_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, godownID, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		movement := &models.StockMovement{}
		if err := rows.Scan(&movement.ID, &movement.MovementType, &movement.GodownID, &movement.ItemType,
			&movement.ItemID, &movement.Quantity, &movement.Reference, &movement.CreatedBy, &movement.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
