package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects malformed input before any external call is made.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if stderrors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// InvalidTransitionError is returned when a status update names a successor
// state that is not a legal edge of the state machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	var ite *InvalidTransitionError
	if stderrors.As(err, &ite) {
		return ite, true
	}
	return nil, false
}

// DuplicateOrderNumberError surfaces the storage unique-constraint backstop
// behind order number generation. The caller regenerates and retries once.
type DuplicateOrderNumberError struct {
	OrderNumber string
}

func (e *DuplicateOrderNumberError) Error() string {
	return fmt.Sprintf("order number %s already exists", e.OrderNumber)
}

func NewDuplicateOrderNumberError(orderNumber string) *DuplicateOrderNumberError {
	return &DuplicateOrderNumberError{OrderNumber: orderNumber}
}

func IsDuplicateOrderNumberError(err error) (*DuplicateOrderNumberError, bool) {
	var de *DuplicateOrderNumberError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// PaymentDeclinedError is a business outcome, not a system failure: the
// gateway explicitly rejected the charge and no order was created.
type PaymentDeclinedError struct {
	Status string
	Code   string
}

func (e *PaymentDeclinedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment declined: %s (%s)", e.Status, e.Code)
	}
	return fmt.Sprintf("payment declined: %s", e.Status)
}

func NewPaymentDeclinedError(status, code string) *PaymentDeclinedError {
	return &PaymentDeclinedError{Status: status, Code: code}
}

func IsPaymentDeclinedError(err error) (*PaymentDeclinedError, bool) {
	var pde *PaymentDeclinedError
	if stderrors.As(err, &pde) {
		return pde, true
	}
	return nil, false
}

// GatewayUnavailableError covers network and protocol failures talking to the
// payment processor. The whole settlement may be retried with a fresh
// idempotency key.
type GatewayUnavailableError struct {
	Message string
	Cause   error
}

func (e *GatewayUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayUnavailableError) Unwrap() error {
	return e.Cause
}

func NewGatewayUnavailableError(message string, cause error) *GatewayUnavailableError {
	return &GatewayUnavailableError{Message: message, Cause: cause}
}

func IsGatewayUnavailableError(err error) (*GatewayUnavailableError, bool) {
	var ge *GatewayUnavailableError
	if stderrors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// PersistFailedError is the critical partial-failure case: the charge
// completed but the order record could not be written. It carries the gateway
// payment id so the failure is recoverable by manual reconciliation.
type PersistFailedError struct {
	PaymentID string
	Cause     error
}

func (e *PersistFailedError) Error() string {
	return fmt.Sprintf("order persistence failed after successful charge %s: %v", e.PaymentID, e.Cause)
}

func (e *PersistFailedError) Unwrap() error {
	return e.Cause
}

func NewPersistFailedError(paymentID string, cause error) *PersistFailedError {
	return &PersistFailedError{PaymentID: paymentID, Cause: cause}
}

func IsPersistFailedError(err error) (*PersistFailedError, bool) {
	var pfe *PersistFailedError
	if stderrors.As(err, &pfe) {
		return pfe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
