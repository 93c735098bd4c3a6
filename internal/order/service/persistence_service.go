package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
}

// OrderPersistenceService writes an order and its line items as one unit of
// work: either all of it is visible to subsequent reads or none of it is.
type OrderPersistenceService struct {
	db        TransactionManager
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewOrderPersistenceService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderPersistenceService {
	return &OrderPersistenceService{
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// CreateOrder persists the order atomically and reads it back after commit.
// DuplicateOrderNumberError from the order insert passes through untouched so
// the caller can regenerate the number.
func (s *OrderPersistenceService) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		return nil, err
	}

	for i := range order.Items {
		order.Items[i].OrderID = orderID
		itemID, err := s.itemRepo.Insert(txCtx, tx, order.Items[i])
		if err != nil {
			s.logger.Error("failed to insert order item",
				zap.String("orderNumber", order.OrderNumber),
				zap.Int("menuItemId", order.Items[i].MenuItemID),
				zap.Error(err),
			)
			return nil, err
		}
		order.Items[i].ID = itemID
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order persisted",
		zap.String("orderNumber", order.OrderNumber),
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(order.Items)),
	)

	// Read-back after write. The commit already succeeded, so a read failure
	// here must not bubble up as a persistence failure: a retry would create
	// a second order for the same charge.
	persisted, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Warn("order read-back failed, returning draft copy",
			zap.Uint("orderId", orderID),
			zap.Error(err),
		)
		order.ID = orderID
		return &order, nil
	}

	return persisted, nil
}
