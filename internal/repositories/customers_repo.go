package repositories

import (
	"context"

	"gstbill/internal/models"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error)
}

type customerRepo struct {
	db Database
}

func NewCustomerRepository(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO master_customers (id, name, address, state_code, gstin, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.Name, customer.Address, customer.StateCode, customer.GSTIN, customer.Email, customer.Phone)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, name, address, state_code, gstin, email, phone, created_at, updated_at
		FROM master_customers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Address, &customer.StateCode, &customer.GSTIN, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE master_customers
		SET name = $1, address = $2, state_code = $3, gstin = $4, email = $5, phone = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, customer.Name, customer.Address, customer.StateCode, customer.GSTIN, customer.Email, customer.Phone, customer.ID)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM master_customers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT id, name, address, state_code, gstin, email, phone, created_at, updated_at
		FROM master_customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR gstin ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Address, &customer.StateCode, &customer.GSTIN, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}
