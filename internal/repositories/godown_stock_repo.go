package repositories

import (
	"context"
	"errors"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type GodownStockRepository interface {
	GetByGodownAndItem(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error)
	Add(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error
	Subtract(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error
	SubtractTx(ctx context.Context, tx pgx.Tx, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error
	Set(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error
	Transfer(ctx context.Context, fromGodownID, toGodownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error
	List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.GodownStock, error)
	ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*models.GodownStock, error)
}

type godownStockRepo struct {
	db Database
}

func NewGodownStockRepository(db Database) GodownStockRepository {
	return &godownStockRepo{db: db}
}

func (r *godownStockRepo) GetByGodownAndItem(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error) {
	stock := &models.GodownStock{}
	query := `
		SELECT id, godown_id, item_type, item_id, quantity, last_updated
		FROM godown_stocks
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3
	`
	err := r.db.QueryRow(ctx, query, godownID, itemType, itemID).Scan(&stock.ID, &stock.GodownID, &stock.ItemType, &stock.ItemID, &stock.Quantity, &stock.LastUpdated)
	if err != nil {
		return nil, err
	}
	return stock, nil
}

func (r *godownStockRepo) Add(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	query := `
		INSERT INTO godown_stocks (id, godown_id, item_type, item_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (godown_id, item_type, item_id)
		DO UPDATE SET quantity = godown_stocks.quantity + EXCLUDED.quantity, last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), godownID, itemType, itemID, quantity)
	return err
}

// Subtract only succeeds when the row holds at least the requested
// quantity, so the balance can never go negative.
func (r *godownStockRepo) Subtract(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	query := `
		UPDATE godown_stocks
		SET quantity = quantity - $4, last_updated = NOW()
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3 AND quantity >= $4
	`
	tag, err := r.db.Exec(ctx, query, godownID, itemType, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *godownStockRepo) SubtractTx(ctx context.Context, tx pgx.Tx, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	query := `
		UPDATE godown_stocks
		SET quantity = quantity - $4, last_updated = NOW()
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3 AND quantity >= $4
	`
	tag, err := tx.Exec(ctx, query, godownID, itemType, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *godownStockRepo) Set(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	query := `
		INSERT INTO godown_stocks (id, godown_id, item_type, item_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (godown_id, item_type, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), godownID, itemType, itemID, quantity)
	return err
}

// Transfer moves quantity between godowns in a single transaction. The
// source row is locked before the balance check so concurrent transfers
// cannot both drain it.
func (r *godownStockRepo) Transfer(ctx context.Context, fromGodownID, toGodownID uuid.UUID, itemType string, itemID uuid.UUID, quantity decimal.Decimal) error {
	if fromGodownID == toGodownID {
		return ErrSameGodownTransfer
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var available decimal.Decimal
	lockQuery := `
		SELECT quantity FROM godown_stocks
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3
		FOR UPDATE
	`
	err = tx.QueryRow(ctx, lockQuery, fromGodownID, itemType, itemID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInsufficientStock
	}
	if err != nil {
		return err
	}
	if available.LessThan(quantity) {
		return ErrInsufficientStock
	}

	deductQuery := `
		UPDATE godown_stocks
		SET quantity = quantity - $4, last_updated = NOW()
		WHERE godown_id = $1 AND item_type = $2 AND item_id = $3
	`
	if _, err := tx.Exec(ctx, deductQuery, fromGodownID, itemType, itemID, quantity); err != nil {
		return err
	}

	addQuery := `
		INSERT INTO godown_stocks (id, godown_id, item_type, item_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (godown_id, item_type, item_id)
		DO UPDATE SET quantity = godown_stocks.quantity + EXCLUDED.quantity, last_updated = NOW()
	`
	if _, err := tx.Exec(ctx, addQuery, uuid.New(), toGodownID, itemType, itemID, quantity); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *godownStockRepo) List(ctx context.Context, filter *models.StockSearchFilter) ([]*models.GodownStock, error) {
	query := `
		SELECT id, godown_id, item_type, item_id, quantity, last_updated
		FROM godown_stocks
		WHERE ($1::uuid IS NULL OR godown_id = $1)
		  AND ($2 = '' OR item_type = $2)
		ORDER BY last_updated DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, filter.GodownID, filter.ItemType, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*models.GodownStock
	for rows.Next() {
		stock := &models.GodownStock{}
		if err := rows.Scan(&stock.ID, &stock.GodownID, &stock.ItemType, &stock.ItemID, &stock.Quantity, &stock.LastUpdated); err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}

func (r *godownStockRepo) ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*models.GodownStock, error) {
	query := `
		SELECT id, godown_id, item_type, item_id, quantity, last_updated
		FROM godown_stocks
		WHERE quantity < $1
		ORDER BY quantity ASC
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*models.GodownStock
	for rows.Next() {
		stock := &models.GodownStock{}
		if err := rows.Scan(&stock.ID, &stock.GodownID, &stock.ItemType, &stock.ItemID, &stock.Quantity, &stock.LastUpdated); err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}
