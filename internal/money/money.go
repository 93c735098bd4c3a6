// Package money is the single source of truth for converting between the
// minor-unit integer amounts the payment gateway speaks and the decimal
// major-unit amounts persisted with the order.
package money

import (
	"github.com/shopspring/decimal"

	apperrors "orderdesk/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Normalizer performs pure amount conversions. maxAmount guards against
// overflow and gross input errors; it is a major-unit bound.
type Normalizer struct {
	maxAmount decimal.Decimal
}

func NewNormalizer(maxAmount decimal.Decimal) *Normalizer {
	return &Normalizer{maxAmount: maxAmount}
}

// ToMinorUnits converts a major-unit amount to minor units (cents). Rounding
// is banker's rounding (round half to even), applied consistently everywhere
// a fractional cent can appear.
func (n *Normalizer) ToMinorUnits(major decimal.Decimal) (int64, error) {
	if err := n.checkAmount("amount", major); err != nil {
		return 0, err
	}
	return major.Mul(hundred).RoundBank(0).IntPart(), nil
}

// ToMajorUnits converts a minor-unit amount to a major-unit decimal fixed to
// two decimal places.
func (n *Normalizer) ToMajorUnits(minor int64) (decimal.Decimal, error) {
	if minor < 0 {
		return decimal.Zero, apperrors.NewValidationError("amount must not be negative", apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}
	major := decimal.NewFromInt(minor).Shift(-2).Round(2)
	if major.GreaterThan(n.maxAmount) {
		return decimal.Zero, apperrors.NewValidationError("amount exceeds maximum", apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount exceeds configured maximum",
		})
	}
	return major, nil
}

// EstimateTax applies a flat rate and rounds to two decimal places. This is
// an approximation used only when the caller has not supplied a pre-computed
// tax figure; it is not a jurisdiction-aware tax engine.
func (n *Normalizer) EstimateTax(major, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := n.checkAmount("amount", major); err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("tax rate must not be negative", apperrors.ValidationDetail{
			Field:   "rate",
			Message: "rate must not be negative",
		})
	}
	return major.Mul(rate).RoundBank(2), nil
}

func (n *Normalizer) checkAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.NewValidationError(field+" must not be negative", apperrors.ValidationDetail{
			Field:   field,
			Message: "amount must not be negative",
		})
	}
	if amount.GreaterThan(n.maxAmount) {
		return apperrors.NewValidationError(field+" exceeds maximum", apperrors.ValidationDetail{
			Field:   field,
			Message: "amount exceeds configured maximum",
		})
	}
	return nil
}
