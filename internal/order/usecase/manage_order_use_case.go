package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type OrderRepository interface {
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, newStatus string) error
	UpdatePaymentStatus(ctx context.Context, id uint, newStatus string) error
}

// ManageOrderUseCase covers the post-settlement operations: order lookup by
// public number and the two independent status state machines.
type ManageOrderUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewManageOrderUseCase(orderRepo OrderRepository, logger *zap.Logger) *ManageOrderUseCase {
	return &ManageOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *ManageOrderUseCase) GetOrderByNumber(ctx context.Context, orderNumber string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.OrderItemDTO{
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.StringFixed(2),
			SpecialRequest: item.SpecialRequest,
		}
	}

	return &dto.OrderResponse{
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		OrderType:       order.OrderType,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryTime:    order.DeliveryTime,
		Instructions:    order.Instructions,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaidAt:          order.PaidAt,
		TotalAmount:     order.TotalAmount.StringFixed(2),
		TaxAmount:       order.TaxAmount.StringFixed(2),
		DeliveryFee:     order.DeliveryFee.StringFixed(2),
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}, nil
}

func (uc *ManageOrderUseCase) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) error {
	if !domain.IsValidOrderStatus(newStatus) {
		return apperrors.NewValidationError("unknown order status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is not a known order status",
		})
	}

	if err := uc.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	uc.logger.Info("order status updated",
		zap.Uint("orderId", orderID),
		zap.String("status", newStatus),
	)
	return nil
}

func (uc *ManageOrderUseCase) UpdateOrderPaymentStatus(ctx context.Context, orderID uint, newStatus string) error {
	if !domain.IsValidPaymentStatus(newStatus) {
		return apperrors.NewValidationError("unknown payment status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is not a known payment status",
		})
	}

	if err := uc.orderRepo.UpdatePaymentStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	uc.logger.Info("order payment status updated",
		zap.Uint("orderId", orderID),
		zap.String("paymentStatus", newStatus),
	)
	return nil
}
