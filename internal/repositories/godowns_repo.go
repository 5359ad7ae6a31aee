package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type GodownRepository interface {
	Create(ctx context.Context, godown *models.Godown) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Godown, error)
	Update(ctx context.Context, godown *models.Godown) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Godown, error)
}

type godownRepo struct {
	db Database
}

func NewGodownRepository(db Database) GodownRepository {
	return &godownRepo{db: db}
}

func (r *godownRepo) Create(ctx context.Context, godown *models.Godown) error {
	query := `
		INSERT INTO master_godowns (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, godown.ID, godown.Name, godown.Address)
	return err
}

func (r *godownRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Godown, error) {
	godown := &models.Godown{}
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM master_godowns
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&godown.ID, &godown.Name, &godown.Address, &godown.CreatedAt, &godown.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return godown, nil
}

func (r *godownRepo) Update(ctx context.Context, godown *models.Godown) error {
	query := `
		UPDATE master_godowns
		SET name = $1, address = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, godown.Name, godown.Address, godown.ID)
	return err
}

func (r *godownRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_godowns WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *godownRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Godown, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM master_godowns
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var godowns []*models.Godown
	for rows.Next() {
		godown := &models.Godown{}
		if err := rows.Scan(&godown.ID, &godown.Name, &godown.Address, &godown.CreatedAt, &godown.UpdatedAt); err != nil {
			return nil, err
		}
		godowns = append(godowns, godown)
	}
	return godowns, rows.Err()
}
