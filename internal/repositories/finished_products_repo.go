package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type FinishedProductRepository interface {
	Create(ctx context.Context, product *models.FinishedProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FinishedProduct, error)
	Update(ctx context.Context, product *models.FinishedProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.FinishedProduct, error)
}

type finishedProductRepo struct {
	db Database
}

func NewFinishedProductRepository(db Database) FinishedProductRepository {
	return &finishedProductRepo{db: db}
}

func (r *finishedProductRepo) Create(ctx context.Context, product *models.FinishedProduct) error {
	query := `
		INSERT INTO master_finished_products (id, name, unit_id, hsn_code_id, selling_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.UnitID, product.HSNCodeID, product.SellingRate)
	return err
}

func (r *finishedProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FinishedProduct, error) {
	product := &models.FinishedProduct{}
	query := `
		SELECT id, name, unit_id, hsn_code_id, selling_rate, created_at, updated_at
		FROM master_finished_products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.UnitID, &product.HSNCodeID, &product.SellingRate, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *finishedProductRepo) Update(ctx context.Context, product *models.FinishedProduct) error {
	query := `
		UPDATE master_finished_products
		SET name = $1, unit_id = $2, hsn_code_id = $3, selling_rate = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.UnitID, product.HSNCodeID, product.SellingRate, product.ID)
	return err
}

func (r *finishedProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_finished_products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *finishedProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.FinishedProduct, error) {
	query := `
		SELECT id, name, unit_id, hsn_code_id, selling_rate, created_at, updated_at
		FROM master_finished_products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.FinishedProduct
	for rows.Next() {
		product := &models.FinishedProduct{}
		if err := rows.Scan(&product.ID, &product.Name, &product.UnitID, &product.HSNCodeID, &product.SellingRate, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
