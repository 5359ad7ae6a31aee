package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Unit, error)
}

type unitRepo struct {
	db Database
}

func NewUnitRepository(db Database) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO master_units (id, name, symbol, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, unit.ID, unit.Name, unit.Symbol)
	return err
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	unit := &models.Unit{}
	query := `
		SELECT id, name, symbol, created_at, updated_at
		FROM master_units
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&unit.ID, &unit.Name, &unit.Symbol, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *unitRepo) Update(ctx context.Context, unit *models.Unit) error {
	query := `
		UPDATE master_units
		SET name = $1, symbol = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, unit.Name, unit.Symbol, unit.ID)
	return err
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_units WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *unitRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Unit, error) {
	query := `
		SELECT id, name, symbol, created_at, updated_at
		FROM master_units
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR symbol ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit := &models.Unit{}
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Symbol, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}
