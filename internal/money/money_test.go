package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	apperrors "orderdesk/internal/errors"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(decimal.NewFromInt(10000))
}

func TestToMinorUnits(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		major string
		want  int64
	}{
		{"42.50", 4250},
		{"0.00", 0},
		{"0.01", 1},
		{"9999.99", 999999},
		{"10.005", 1000}, // banker's rounding: .5 cents rounds to even
		{"10.015", 1002},
		{"10.025", 1002},
	}

	for _, c := range cases {
		got, err := n.ToMinorUnits(decimal.RequireFromString(c.major))
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "major amount %s", c.major)
	}
}

func TestToMinorUnits_Negative(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ToMinorUnits(decimal.RequireFromString("-1.00"))

	assert.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestToMinorUnits_ExceedsMaximum(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ToMinorUnits(decimal.RequireFromString("10000.01"))

	assert.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestToMajorUnits(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.ToMajorUnits(4250)
	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "42.50", got.StringFixed(2))

	got, err = n.ToMajorUnits(1)
	assert.NoError(t, err)
	assert.Equal(t, "0.01", got.StringFixed(2))
}

func TestToMajorUnits_Negative(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ToMajorUnits(-100)

	assert.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestToMajorUnits_ExceedsMaximum(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ToMajorUnits(1000001)

	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	n := newTestNormalizer()

	for _, major := range []string{"0.01", "19.99", "42.50", "1234.56"} {
		minor, err := n.ToMinorUnits(decimal.RequireFromString(major))
		assert.NoError(t, err)

		back, err := n.ToMajorUnits(minor)
		assert.NoError(t, err)
		assert.True(t, back.Equal(decimal.RequireFromString(major)), "round trip of %s", major)
	}
}

func TestEstimateTax(t *testing.T) {
	n := newTestNormalizer()

	tax, err := n.EstimateTax(decimal.RequireFromString("100.00"), decimal.RequireFromString("0.13"))
	assert.NoError(t, err)
	assert.Equal(t, "13.00", tax.StringFixed(2))

	tax, err = n.EstimateTax(decimal.RequireFromString("37.45"), decimal.RequireFromString("0.13"))
	assert.NoError(t, err)
	assert.Equal(t, "4.87", tax.StringFixed(2))
}

func TestEstimateTax_ZeroRate(t *testing.T) {
	n := newTestNormalizer()

	tax, err := n.EstimateTax(decimal.RequireFromString("50.00"), decimal.Zero)
	assert.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestEstimateTax_NegativeInputs(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.EstimateTax(decimal.RequireFromString("-10.00"), decimal.RequireFromString("0.13"))
	assert.Error(t, err)

	_, err = n.EstimateTax(decimal.RequireFromString("10.00"), decimal.RequireFromString("-0.13"))
	assert.Error(t, err)
}
