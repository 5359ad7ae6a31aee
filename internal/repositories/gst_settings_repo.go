package repositories

import (
	"context"

	"gstbill/internal/models"
)

type GSTSettingsRepository interface {
	Get(ctx context.Context) (*models.GSTSettings, error)
	Upsert(ctx context.Context, settings *models.GSTSettings) error
}

type gstSettingsRepo struct {
	db Database
}

func NewGSTSettingsRepository(db Database) GSTSettingsRepository {
	return &gstSettingsRepo{db: db}
}

func (r *gstSettingsRepo) Get(ctx context.Context) (*models.GSTSettings, error) {
	settings := &models.GSTSettings{}
	query := `
		SELECT id, legal_name, trade_name, gstin, address, location, pincode, state_code, einvoice_threshold, updated_at
		FROM gst_settings
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&settings.ID, &settings.LegalName, &settings.TradeName,
		&settings.GSTIN, &settings.Address, &settings.Location, &settings.Pincode,
		&settings.StateCode, &settings.EInvoiceThreshold, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert keeps gst_settings a single row keyed by its id.
func (r *gstSettingsRepo) Upsert(ctx context.Context, settings *models.GSTSettings) error {
	query := `
		INSERT INTO gst_settings (id, legal_name, trade_name, gstin, address, location, pincode, state_code, einvoice_threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id)
		DO UPDATE SET legal_name = EXCLUDED.legal_name, trade_name = EXCLUDED.trade_name,
			gstin = EXCLUDED.gstin, address = EXCLUDED.address, location = EXCLUDED.location,
			pincode = EXCLUDED.pincode, state_code = EXCLUDED.state_code,
			einvoice_threshold = EXCLUDED.einvoice_threshold, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, settings.ID, settings.LegalName, settings.TradeName,
		settings.GSTIN, settings.Address, settings.Location, settings.Pincode,
		settings.StateCode, settings.EInvoiceThreshold)
	return err
}
