package dto

import "time"

type OrderResponse struct {
	OrderNumber     string             `json:"orderNumber"`
	CustomerName    string             `json:"customerName"`
	OrderType       string             `json:"orderType"`
	DeliveryAddress *string            `json:"deliveryAddress,omitempty"`
	DeliveryTime    *time.Time         `json:"deliveryTime,omitempty"`
	Instructions    *string            `json:"instructions,omitempty"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"paymentStatus"`
	PaidAt          *time.Time         `json:"paidAt,omitempty"`
	TotalAmount     string             `json:"totalAmount"`
	TaxAmount       string             `json:"taxAmount"`
	DeliveryFee     string             `json:"deliveryFee"`
	Items           []OrderItemDTO     `json:"items"`
	CreatedAt       time.Time          `json:"createdAt"`
}

type OrderItemDTO struct {
	MenuItemID     int     `json:"menuItemId"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      string  `json:"unitPrice"`
	SpecialRequest *string `json:"specialRequest,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
