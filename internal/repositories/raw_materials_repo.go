package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type RawMaterialRepository interface {
	Create(ctx context.Context, material *models.RawMaterial) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RawMaterial, error)
	Update(ctx context.Context, material *models.RawMaterial) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.RawMaterial, error)
}

type rawMaterialRepo struct {
	db Database
}

func NewRawMaterialRepository(db Database) RawMaterialRepository {
	return &rawMaterialRepo{db: db}
}

func (r *rawMaterialRepo) Create(ctx context.Context, material *models.RawMaterial) error {
	query := `
		INSERT INTO master_raw_materials (id, name, unit_id, hsn_code_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, material.ID, material.Name, material.UnitID, material.HSNCodeID)
	return err
}

func (r *rawMaterialRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RawMaterial, error) {
	material := &models.RawMaterial{}
	query := `
		SELECT id, name, unit_id, hsn_code_id, created_at, updated_at
		FROM master_raw_materials
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&material.ID, &material.Name, &material.UnitID, &material.HSNCodeID, &material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return material, nil
}

func (r *rawMaterialRepo) Update(ctx context.Context, material *models.RawMaterial) error {
	query := `
		UPDATE master_raw_materials
		SET name = $1, unit_id = $2, hsn_code_id = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, material.Name, material.UnitID, material.HSNCodeID, material.ID)
	return err
}

func (r *rawMaterialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_raw_materials WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *rawMaterialRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.RawMaterial, error) {
	query := `
		SELECT id, name, unit_id, hsn_code_id, created_at, updated_at
		FROM master_raw_materials
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*models.RawMaterial
	for rows.Next() {
		material := &models.RawMaterial{}
		if err := rows.Scan(&material.ID, &material.Name, &material.UnitID, &material.HSNCodeID, &material.CreatedAt, &material.UpdatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, rows.Err()
}
