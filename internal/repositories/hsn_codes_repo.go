package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type HSNCodeRepository interface {
	Create(ctx context.Context, code *models.HSNCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HSNCode, error)
	GetByCode(ctx context.Context, code string) (*models.HSNCode, error)
	Update(ctx context.Context, code *models.HSNCode) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.HSNCode, error)
}

type hsnCodeRepo struct {
	db Database
}

func NewHSNCodeRepository(db Database) HSNCodeRepository {
	return &hsnCodeRepo{db: db}
}

func (r *hsnCodeRepo) Create(ctx context.Context, code *models.HSNCode) error {
	query := `
		INSERT INTO master_hsn_codes (id, code, description, gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, code.ID, code.Code, code.Description, code.GSTRate)
	return err
}

func (r *hsnCodeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.HSNCode, error) {
	code := &models.HSNCode{}
	query := `
		SELECT id, code, description, gst_rate, created_at, updated_at
		FROM master_hsn_codes
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&code.ID, &code.Code, &code.Description, &code.GSTRate, &code.CreatedAt, &code.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (r *hsnCodeRepo) GetByCode(ctx context.Context, codeStr string) (*models.HSNCode, error) {
	code := &models.HSNCode{}
	query := `
		SELECT id, code, description, gst_rate, created_at, updated_at
		FROM master_hsn_codes
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, codeStr).Scan(&code.ID, &code.Code, &code.Description, &code.GSTRate, &code.CreatedAt, &code.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (r *hsnCodeRepo) Update(ctx context.Context, code *models.HSNCode) error {
	query := `
		UPDATE master_hsn_codes
		SET code = $1, description = $2, gst_rate = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, code.Code, code.Description, code.GSTRate, code.ID)
	return err
}

func (r *hsnCodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_hsn_codes WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *hsnCodeRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.HSNCode, error) {
	query := `
		SELECT id, code, description, gst_rate, created_at, updated_at
		FROM master_hsn_codes
		WHERE ($1 = '' OR code ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY code
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []*models.HSNCode
	for rows.Next() {
		code := &models.HSNCode{}
		if err := rows.Scan(&code.ID, &code.Code, &code.Description, &code.GSTRate, &code.CreatedAt, &code.UpdatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
