package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "customerEmail", Message: "invalid email"},
		{Field: "lineItems", Message: "must not be empty"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := NewValidationError("bad input")

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)

	_, ok = IsValidationError(errors.New("some other error"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order not found")

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order not found", nfe.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("PENDING", "DELIVERED")

	ite, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "PENDING", ite.From)
	assert.Equal(t, "DELIVERED", ite.To)
	assert.Contains(t, err.Error(), "PENDING")
	assert.Contains(t, err.Error(), "DELIVERED")
}

func TestDuplicateOrderNumberError(t *testing.T) {
	err := NewDuplicateOrderNumberError("ORD-H7K2MN9P")

	de, ok := IsDuplicateOrderNumberError(err)
	assert.True(t, ok)
	assert.Equal(t, "ORD-H7K2MN9P", de.OrderNumber)
}

func TestPaymentDeclinedError(t *testing.T) {
	err := NewPaymentDeclinedError("FAILED", "CARD_DECLINED")

	pde, ok := IsPaymentDeclinedError(err)
	assert.True(t, ok)
	assert.Equal(t, "FAILED", pde.Status)
	assert.Contains(t, err.Error(), "CARD_DECLINED")

	noCode := NewPaymentDeclinedError("CANCELED", "")
	assert.Equal(t, "payment declined: CANCELED", noCode.Error())
}

func TestGatewayUnavailableError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewGatewayUnavailableError("gateway request failed", cause)

	ge, ok := IsGatewayUnavailableError(err)
	assert.True(t, ok)
	assert.Equal(t, cause, ge.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestPersistFailedError(t *testing.T) {
	cause := errors.New("deadlock found")
	err := NewPersistFailedError("pay_abc123", cause)

	pfe, ok := IsPersistFailedError(err)
	assert.True(t, ok)
	assert.Equal(t, "pay_abc123", pfe.PaymentID)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pay_abc123")
}

func TestPersistFailedError_DetectedThroughWrapping(t *testing.T) {
	err := fmt.Errorf("settling order: %w", NewPersistFailedError("pay_42", errors.New("timeout")))

	pfe, ok := IsPersistFailedError(err)
	assert.True(t, ok)
	assert.Equal(t, "pay_42", pfe.PaymentID)
}

func TestInternalError(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	ie, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, cause, ie.Unwrap())
	assert.Contains(t, err.Error(), "database error")

	noCause := NewInternalError("boom", nil)
	assert.Equal(t, "boom", noCause.Error())
}
