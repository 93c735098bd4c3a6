package repository

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLStoreConfigRepository struct {
	db *sql.DB
}

func NewMySQLStoreConfigRepository(db *sql.DB) *MySQLStoreConfigRepository {
	return &MySQLStoreConfigRepository{db: db}
}

// FindCurrent returns the store settlement defaults. The table holds a single
// active row; the most recently updated one wins if an operator left more.
func (r *MySQLStoreConfigRepository) FindCurrent(ctx context.Context) (*domain.StoreConfig, error) {
	query := `
		SELECT id, currencyCode, taxRate, deliveryFee, createdAt, updatedAt
		FROM StoreConfig
		ORDER BY updatedAt DESC
		LIMIT 1
	`

	var config domain.StoreConfig
	err := r.db.QueryRowContext(ctx, query).Scan(
		&config.ID, &config.CurrencyCode, &config.TaxRate, &config.DeliveryFee,
		&config.CreatedAt, &config.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("store config not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying store config: %w", err)
	}

	return &config, nil
}
