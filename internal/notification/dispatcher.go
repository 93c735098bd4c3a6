// Package notification fans out best-effort messages after a settled order:
// a customer confirmation and an internal operational alert. Neither is on
// the critical path of the settlement result; every failure here is logged
// and swallowed.
package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

const (
	routingKeyCustomerConfirmation = "customer.order_confirmation"
	routingKeyInternalAlert        = "ops.new_order"

	publishTimeout = 5 * time.Second
)

type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type ConfirmationItem struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      string  `json:"unitPrice"`
	SpecialRequest *string `json:"specialRequest,omitempty"`
}

type CustomerConfirmation struct {
	OrderNumber     string             `json:"orderNumber"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	OrderType       string             `json:"orderType"`
	DeliveryAddress *string            `json:"deliveryAddress,omitempty"`
	DeliveryTime    *time.Time         `json:"deliveryTime,omitempty"`
	Items           []ConfirmationItem `json:"items"`
	TotalAmount     string             `json:"totalAmount"`
}

type InternalAlert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

type Dispatcher struct {
	publisher MessagePublisher
	logger    *zap.Logger
}

func NewDispatcher(publisher MessagePublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger,
	}
}

// DispatchOrderNotifications publishes the customer confirmation and the
// internal alert for a settled order. The two attempts are independent: a
// failure of one does not prevent the other, and neither affects the
// settlement outcome already returned to the caller.
func (d *Dispatcher) DispatchOrderNotifications(ctx context.Context, order *domain.Order) {
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirmation := buildCustomerConfirmation(order)
	if err := d.publisher.Publish(publishCtx, routingKeyCustomerConfirmation, confirmation); err != nil {
		d.logger.Warn("customer confirmation dispatch failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err),
		)
	}

	alert := buildInternalAlert(order)
	if err := d.publisher.Publish(publishCtx, routingKeyInternalAlert, alert); err != nil {
		d.logger.Warn("internal alert dispatch failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err),
		)
	}
}

func buildCustomerConfirmation(order *domain.Order) CustomerConfirmation {
	items := make([]ConfirmationItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = ConfirmationItem{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.StringFixed(2),
			SpecialRequest: item.SpecialRequest,
		}
	}

	return CustomerConfirmation{
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		OrderType:       order.OrderType,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryTime:    order.DeliveryTime,
		Items:           items,
		TotalAmount:     order.TotalAmount.StringFixed(2),
	}
}

func buildInternalAlert(order *domain.Order) InternalAlert {
	return InternalAlert{
		Title: "New order " + order.OrderNumber,
		Message: fmt.Sprintf("%s order for %s, total %s",
			order.OrderType, order.CustomerName, order.TotalAmount.StringFixed(2)),
		Link: "/admin/orders/" + order.OrderNumber,
	}
}
