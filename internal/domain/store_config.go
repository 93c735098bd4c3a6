package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreConfig holds the store-wide settlement defaults applied when a
// checkout request does not carry a pre-computed tax or delivery fee.
type StoreConfig struct {
	ID           int
	CurrencyCode string
	TaxRate      decimal.Decimal
	DeliveryFee  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
