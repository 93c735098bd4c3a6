package domain

import "github.com/shopspring/decimal"

// OrderItem is one purchased unit. Name and UnitPrice are snapshots taken at
// checkout time: the catalog entry behind MenuItemID may change or disappear
// later, the line item never does.
type OrderItem struct {
	ID             uint
	OrderID        uint
	MenuItemID     int
	Name           string
	Quantity       int
	UnitPrice      decimal.Decimal
	SpecialRequest *string
}
