package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Vendor, error)
}

type vendorRepo struct {
	db Database
}

func NewVendorRepository(db Database) VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO master_vendors (id, name, address, state_code, gstin, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vendor.ID, vendor.Name, vendor.Address, vendor.StateCode, vendor.GSTIN, vendor.Email, vendor.Phone)
	return err
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	query := `
		SELECT id, name, address, state_code, gstin, email, phone, created_at, updated_at
		FROM master_vendors
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&vendor.ID, &vendor.Name, &vendor.Address, &vendor.StateCode, &vendor.GSTIN, &vendor.Email, &vendor.Phone, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE master_vendors
		SET name = $1, address = $2, state_code = $3, gstin = $4, email = $5, phone = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, vendor.Name, vendor.Address, vendor.StateCode, vendor.GSTIN, vendor.Email, vendor.Phone, vendor.ID)
	return err
}

func (r *vendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_vendors WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *vendorRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Vendor, error) {
	query := `
		SELECT id, name, address, state_code, gstin, email, phone, created_at, updated_at
		FROM master_vendors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR gstin ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		if err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.Address, &vendor.StateCode, &vendor.GSTIN, &vendor.Email, &vendor.Phone, &vendor.CreatedAt, &vendor.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
