package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mercadito/internal/domain"
	"mercadito/internal/errors"
)

type MySQLStoreSettingsRepository struct {
	db *sql.DB
}

func NewMySQLStoreSettingsRepository(db *sql.DB) *MySQLStoreSettingsRepository {
	return &MySQLStoreSettingsRepository{db: db}
}

// Find returns the single settings row. The store is single tenant; the
// row with the lowest id wins if more than one exists.
func (r *MySQLStoreSettingsRepository) Find(ctx context.Context) (*domain.StoreSettings, error) {
	query := `
		SELECT id, storeName, currency, creditTermDays, hasStockControl, createdAt, updatedAt
		FROM StoreSettings
		ORDER BY id
		LIMIT 1
	`

	var settings domain.StoreSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.ID, &settings.StoreName, &settings.Currency,
		&settings.CreditTermDays, &settings.HasStockControl,
		&settings.CreatedAt, &settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("store settings not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying store settings: %w", err)
	}

	return &settings, nil
}
