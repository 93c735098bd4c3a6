package usecase

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/gateway"
	"orderdesk/internal/money"
)

type PaymentGateway interface {
	Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error)
}

type OrderPersistence interface {
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type CatalogService interface {
	GetMenuItemsByIDs(ctx context.Context, ids []int) (found []domain.MenuItem, notFoundIDs []int, err error)
}

type StoreConfigRepository interface {
	FindCurrent(ctx context.Context) (*domain.StoreConfig, error)
}

type NotificationDispatcher interface {
	DispatchOrderNotifications(ctx context.Context, order *domain.Order)
}

type OrderNumberGenerator interface {
	Generate() (string, error)
}

const paymentProvider = "square"

// amountEpsilon bounds the acceptable drift between the stated total and the
// sum of its parts after rounding.
var amountEpsilon = decimal.NewFromFloat(0.01)

// SettleOrderUseCase sequences one settlement attempt: charge the payment
// source, persist the order, fan out notifications. It owns the
// failure-compensation policy between the non-retryable external charge and
// the local write.
type SettleOrderUseCase struct {
	gateway         PaymentGateway
	persistence     OrderPersistence
	catalogSvc      CatalogService
	storeConfigRepo StoreConfigRepository
	dispatcher      NotificationDispatcher
	numbers         OrderNumberGenerator
	normalizer      *money.Normalizer
	logger          *zap.Logger

	currencyCode string
	taxRate      decimal.Decimal
	deliveryFee  decimal.Decimal
	retryBackoff time.Duration
}

func NewSettleOrderUseCase(
	paymentGateway PaymentGateway,
	persistence OrderPersistence,
	catalogSvc CatalogService,
	storeConfigRepo StoreConfigRepository,
	dispatcher NotificationDispatcher,
	numbers OrderNumberGenerator,
	normalizer *money.Normalizer,
	logger *zap.Logger,
	currencyCode string,
	taxRate decimal.Decimal,
	deliveryFee decimal.Decimal,
	retryBackoff time.Duration,
) *SettleOrderUseCase {
	return &SettleOrderUseCase{
		gateway:         paymentGateway,
		persistence:     persistence,
		catalogSvc:      catalogSvc,
		storeConfigRepo: storeConfigRepo,
		dispatcher:      dispatcher,
		numbers:         numbers,
		normalizer:      normalizer,
		logger:          logger,
		currencyCode:    currencyCode,
		taxRate:         taxRate,
		deliveryFee:     deliveryFee,
		retryBackoff:    retryBackoff,
	}
}

// SettleOrder turns a client-held payment source token into a completed
// charge, a durable order record, and best-effort notifications.
//
// No order is ever created for a charge that did not complete. Conversely,
// once the charge completes the attempt runs to a terminal state: persisted,
// or the distinguishable pending-reconciliation outcome with the payment id
// logged for manual follow-up.
func (uc *SettleOrderUseCase) SettleOrder(ctx context.Context, req dto.CheckoutRequest) (*dto.SettlementResult, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	items, err := uc.snapshotLineItems(ctx, req.LineItems)
	if err != nil {
		return nil, err
	}

	taxAmount, deliveryFee, err := uc.resolveDerivedAmounts(ctx, req, items)
	if err != nil {
		return nil, err
	}

	if err := uc.checkAmountConservation(req.Amount, taxAmount, deliveryFee, items); err != nil {
		return nil, err
	}

	amountMinor, err := uc.normalizer.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = uc.currencyCode
	}

	// Fresh key per settlement attempt: a client-side retry of the same
	// submission reuses it at the gateway, a new checkout gets a new one.
	idempotencyKey := uuid.NewString()

	uc.logger.Info("settlement started",
		zap.String("idempotencyKey", idempotencyKey),
		zap.Int64("amountMinorUnits", amountMinor),
		zap.String("currency", currency),
		zap.Int("itemCount", len(items)),
	)

	charge, err := uc.gateway.Charge(ctx, gateway.ChargeRequest{
		SourceToken:      req.SourceToken,
		AmountMinorUnits: amountMinor,
		CurrencyCode:     currency,
		IdempotencyKey:   idempotencyKey,
	})
	if err != nil {
		// Declined or unavailable: no order exists, safe to surface as-is.
		return nil, err
	}

	// Money has moved. From here the attempt must reach a terminal state
	// even if the caller goes away.
	postChargeCtx := context.WithoutCancel(ctx)

	now := time.Now()
	paymentID := charge.PaymentID
	order := domain.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   req.CustomerPhone,
		OrderType:       req.OrderType,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryTime:    req.DeliveryTime,
		Instructions:    req.Instructions,
		TotalAmount:     req.Amount.Round(2),
		TaxAmount:       taxAmount,
		DeliveryFee:     deliveryFee,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   paymentMethodLabel(req),
		PaymentProvider: paymentProvider,
		PaymentID:       &paymentID,
		PaymentStatus:   domain.PaymentStatusCompleted,
		PaidAt:          &now,
		Items:           items,
	}

	persisted, err := uc.persistWithRetry(postChargeCtx, order)
	if err != nil {
		// The critical partial-failure case: payment succeeded, no order
		// record. Log everything needed for manual reconciliation and return
		// the distinguishable degraded outcome; the caller must not be told
		// to pay again.
		uc.logger.Error("order persistence failed after successful charge",
			zap.String("event", "payment_without_order"),
			zap.String("paymentId", charge.PaymentID),
			zap.String("receiptReference", charge.ReceiptReference),
			zap.Int64("amountMinorUnits", charge.AmountMinorUnits),
			zap.String("currency", charge.CurrencyCode),
			zap.String("customerName", order.CustomerName),
			zap.String("customerEmail", order.CustomerEmail),
			zap.String("totalAmount", order.TotalAmount.StringFixed(2)),
			zap.Error(err),
		)
		return &dto.SettlementResult{
			Status:           dto.SettlementPendingReconciliation,
			PaymentID:        charge.PaymentID,
			ReceiptReference: charge.ReceiptReference,
			AmountMinorUnits: charge.AmountMinorUnits,
			CurrencyCode:     charge.CurrencyCode,
		}, nil
	}

	uc.dispatcher.DispatchOrderNotifications(postChargeCtx, persisted)

	uc.logger.Info("settlement completed",
		zap.String("orderNumber", persisted.OrderNumber),
		zap.String("paymentId", charge.PaymentID),
	)

	return &dto.SettlementResult{
		Status:           dto.SettlementCompleted,
		Order:            persisted,
		OrderNumber:      persisted.OrderNumber,
		PaymentID:        charge.PaymentID,
		ReceiptReference: charge.ReceiptReference,
		AmountMinorUnits: charge.AmountMinorUnits,
		CurrencyCode:     charge.CurrencyCode,
	}, nil
}

// persistWithRetry attempts the atomic order write. An order-number collision
// is retried with a freshly generated number exactly once; any other failure
// gets one retry after a short backoff. The gateway is never re-invoked here.
func (uc *SettleOrderUseCase) persistWithRetry(ctx context.Context, order domain.Order) (*domain.Order, error) {
	number, err := uc.numbers.Generate()
	if err != nil {
		return nil, err
	}
	order.OrderNumber = number

	regenerated := false
	retried := false

	for {
		persisted, err := uc.persistence.CreateOrder(ctx, order)
		if err == nil {
			return persisted, nil
		}

		if _, ok := apperrors.IsDuplicateOrderNumberError(err); ok {
			if regenerated {
				return nil, err
			}
			regenerated = true
			number, genErr := uc.numbers.Generate()
			if genErr != nil {
				return nil, genErr
			}
			uc.logger.Warn("order number collision, regenerating",
				zap.String("orderNumber", order.OrderNumber),
				zap.String("regenerated", number),
			)
			order.OrderNumber = number
			continue
		}

		if retried {
			return nil, err
		}
		retried = true
		// ±20% jitter around the configured backoff.
		jitter := time.Duration(float64(uc.retryBackoff) * (0.8 + rand.Float64()*0.4))
		uc.logger.Warn("order persistence failed, retrying once",
			zap.String("orderNumber", order.OrderNumber),
			zap.Duration("backoff", jitter),
			zap.Error(err),
		)
		time.Sleep(jitter)
	}
}

// snapshotLineItems resolves catalog names for the requested items. The order
// line item keeps an immutable copy of the name; the catalog entry may change
// or be removed later. An unknown id fails the whole request before any
// charge is attempted.
func (uc *SettleOrderUseCase) snapshotLineItems(ctx context.Context, lineItems []dto.CheckoutLineItem) ([]domain.OrderItem, error) {
	ids := make([]int, len(lineItems))
	for i, li := range lineItems {
		ids[i] = li.MenuItemID
	}

	found, notFoundIDs, err := uc.catalogSvc.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewInternalError("looking up menu items", err)
	}
	if len(notFoundIDs) > 0 {
		return nil, apperrors.NewValidationError("unknown menu items", apperrors.ValidationDetail{
			Field:   "lineItems",
			Message: "one or more menuItemIds do not exist",
		})
	}

	names := make(map[int]string, len(found))
	for _, item := range found {
		names[item.ID] = item.Name
	}

	items := make([]domain.OrderItem, len(lineItems))
	for i, li := range lineItems {
		items[i] = domain.OrderItem{
			MenuItemID:     li.MenuItemID,
			Name:           names[li.MenuItemID],
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice.Round(2),
			SpecialRequest: li.SpecialRequest,
		}
	}
	return items, nil
}

// resolveDerivedAmounts fills in tax and delivery fee when the request did
// not carry them, from the store settings row or the configured defaults.
// The tax path is a flat-rate estimate, not an authoritative tax engine.
func (uc *SettleOrderUseCase) resolveDerivedAmounts(
	ctx context.Context,
	req dto.CheckoutRequest,
	items []domain.OrderItem,
) (taxAmount, deliveryFee decimal.Decimal, err error) {
	taxRate := uc.taxRate
	feeDefault := uc.deliveryFee

	if req.TaxAmount == nil || (req.DeliveryFee == nil && req.OrderType == domain.OrderTypeDelivery) {
		storeCfg, cfgErr := uc.storeConfigRepo.FindCurrent(ctx)
		if cfgErr == nil {
			taxRate = storeCfg.TaxRate
			feeDefault = storeCfg.DeliveryFee
		} else if _, ok := apperrors.IsNotFoundError(cfgErr); !ok {
			return decimal.Zero, decimal.Zero, apperrors.NewInternalError("loading store config", cfgErr)
		}
	}

	deliveryFee = decimal.Zero
	if req.DeliveryFee != nil {
		deliveryFee = req.DeliveryFee.Round(2)
	} else if req.OrderType == domain.OrderTypeDelivery {
		deliveryFee = feeDefault.Round(2)
	}
	if deliveryFee.IsNegative() {
		return decimal.Zero, decimal.Zero, apperrors.NewValidationError("deliveryFee must not be negative", apperrors.ValidationDetail{
			Field:   "deliveryFee",
			Message: "deliveryFee must not be negative",
		})
	}

	if req.TaxAmount != nil {
		taxAmount = req.TaxAmount.Round(2)
		if taxAmount.IsNegative() {
			return decimal.Zero, decimal.Zero, apperrors.NewValidationError("taxAmount must not be negative", apperrors.ValidationDetail{
				Field:   "taxAmount",
				Message: "taxAmount must not be negative",
			})
		}
	} else {
		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		taxAmount, err = uc.normalizer.EstimateTax(subtotal, taxRate)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	return taxAmount, deliveryFee, nil
}

// checkAmountConservation verifies the stated total equals line items plus
// tax plus delivery fee within rounding epsilon, so an order can never be
// stored with internally inconsistent amounts.
func (uc *SettleOrderUseCase) checkAmountConservation(total, taxAmount, deliveryFee decimal.Decimal, items []domain.OrderItem) error {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	expected := subtotal.Add(taxAmount).Add(deliveryFee)

	if total.Sub(expected).Abs().GreaterThan(amountEpsilon) {
		return apperrors.NewValidationError("amount does not match line items", apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must equal line items plus tax and delivery fee",
		})
	}
	return nil
}

func (uc *SettleOrderUseCase) validate(req dto.CheckoutRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.SourceToken) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "sourceToken",
			Message: "sourceToken is required",
		})
	}

	if !req.Amount.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}

	if req.CurrencyCode != "" && len(req.CurrencyCode) != 3 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "currencyCode",
			Message: "currencyCode must be a 3-letter code",
		})
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerEmail",
			Message: "customerEmail must be a valid email address",
		})
	}

	if req.OrderType != domain.OrderTypeDelivery && req.OrderType != domain.OrderTypePickup {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderType",
			Message: "orderType must be DELIVERY or PICKUP",
		})
	}

	if req.OrderType == domain.OrderTypeDelivery && (req.DeliveryAddress == nil || strings.TrimSpace(*req.DeliveryAddress) == "") {
		details = append(details, apperrors.ValidationDetail{
			Field:   "deliveryAddress",
			Message: "deliveryAddress is required for delivery orders",
		})
	}

	if len(req.LineItems) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lineItems",
			Message: "lineItems must not be empty",
		})
	}

	for _, li := range req.LineItems {
		if li.MenuItemID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "lineItems",
				Message: "each menuItemId must be a positive integer",
			})
		}
		if li.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "lineItems",
				Message: "each quantity must be a positive integer",
			})
		}
		if li.UnitPrice.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "lineItems",
				Message: "each unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func paymentMethodLabel(req dto.CheckoutRequest) string {
	if req.PaymentMethod != "" {
		return req.PaymentMethod
	}
	return "card"
}
