package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type SettleOrderUseCase interface {
	SettleOrder(ctx context.Context, req dto.CheckoutRequest) (*dto.SettlementResult, error)
}

type ManageOrderUseCase interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*dto.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) error
	UpdateOrderPaymentStatus(ctx context.Context, orderID uint, newStatus string) error
}

type OrderController struct {
	settleUC SettleOrderUseCase
	manageUC ManageOrderUseCase
	logger   *zap.Logger
}

func NewOrderController(settleUC SettleOrderUseCase, manageUC ManageOrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		settleUC: settleUC,
		manageUC: manageUC,
		logger:   logger,
	}
}

func (c *OrderController) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.settleUC.SettleOrder(r.Context(), req)
	if err != nil {
		c.handleSettlementError(w, traceID, err, logger)
		return
	}

	response := dto.CheckoutResponse{
		TraceID:               traceID,
		Status:                string(result.Status),
		OrderNumber:           result.OrderNumber,
		PaymentID:             result.PaymentID,
		ReceiptReference:      result.ReceiptReference,
		TotalAmountMinorUnits: result.AmountMinorUnits,
		CurrencyCode:          result.CurrencyCode,
		Timestamp:             time.Now().UTC(),
	}

	// The degraded outcome is not a success and not a failure: payment went
	// through but confirmation is pending manual follow-up.
	statusCode := http.StatusCreated
	if result.Status == dto.SettlementPendingReconciliation {
		statusCode = http.StatusAccepted
	}

	c.writeJSON(w, statusCode, response)
}

func (c *OrderController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := c.manageUC.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		c.handleManagementError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

func (c *OrderController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	c.handleStatusUpdate(w, r, c.manageUC.UpdateOrderStatus)
}

func (c *OrderController) HandleUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	c.handleStatusUpdate(w, r, c.manageUC.UpdateOrderPaymentStatus)
}

func (c *OrderController) handleStatusUpdate(
	w http.ResponseWriter,
	r *http.Request,
	update func(ctx context.Context, orderID uint, newStatus string) error,
) {
	traceID := uuid.New().String()

	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := update(r.Context(), uint(orderID), req.Status); err != nil {
		c.handleManagementError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{
		"traceId": traceID,
		"status":  req.Status,
	})
}

func (c *OrderController) handleSettlementError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if pde, ok := apperrors.IsPaymentDeclinedError(err); ok {
		// Business outcome: the user may retry with different payment details.
		c.writeError(w, traceID, http.StatusPaymentRequired, "PAYMENT_DECLINED", pde.Error())
		return
	}

	if _, ok := apperrors.IsGatewayUnavailableError(err); ok {
		c.writeError(w, traceID, http.StatusBadGateway, "GATEWAY_UNAVAILABLE", "payment processor is unavailable, please retry")
		return
	}

	logger.Error("unexpected settlement error", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) handleManagementError(w http.ResponseWriter, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeError(w, traceID, http.StatusConflict, "INVALID_TRANSITION", err.Error())
		return
	}

	c.logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) writeError(w http.ResponseWriter, traceID string, statusCode int, code, message string) {
	c.writeJSON(w, statusCode, dto.CheckoutErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
