package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert writes the order row inside the caller's transaction. A unique
// constraint on orderNumber is the collision backstop for the generator; a
// violation surfaces as DuplicateOrderNumberError so the caller can
// regenerate instead of treating it as a fatal storage failure.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (
			orderNumber, customerName, customerEmail, customerPhone,
			orderType, deliveryAddress, deliveryTime, instructions,
			totalAmount, taxAmount, deliveryFee,
			status, paymentMethod, paymentProvider, paymentId, paymentStatus, paidAt
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.OrderType, order.DeliveryAddress, order.DeliveryTime, order.Instructions,
		order.TotalAmount, order.TaxAmount, order.DeliveryFee,
		order.Status, order.PaymentMethod, order.PaymentProvider, order.PaymentID, order.PaymentStatus, order.PaidAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, errors.NewDuplicateOrderNumberError(order.OrderNumber)
		}
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := r.findOne(ctx, `WHERE id = ?`, id)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
		}
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := r.findOne(ctx, `WHERE orderNumber = ?`, orderNumber)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
		}
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.Order, error) {
	query := `
		SELECT id, orderNumber, customerName, customerEmail, customerPhone,
		       orderType, deliveryAddress, deliveryTime, instructions,
		       totalAmount, taxAmount, deliveryFee,
		       status, paymentMethod, paymentProvider, paymentId, paymentStatus, paidAt,
		       createdAt, updatedAt
		FROM Orders ` + where

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.OrderType, &order.DeliveryAddress, &order.DeliveryTime, &order.Instructions,
		&order.TotalAmount, &order.TaxAmount, &order.DeliveryFee,
		&order.Status, &order.PaymentMethod, &order.PaymentProvider, &order.PaymentID, &order.PaymentStatus, &order.PaidAt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}

	items, err := r.findItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `
		SELECT id, orderId, menuItemId, name, quantity, unitPrice, specialRequest
		FROM OrderItems
		WHERE orderId = ?
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.SpecialRequest,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

// UpdateStatus transitions the kitchen workflow status. The current status is
// read under lock so concurrent transitions serialize; an illegal successor
// fails with InvalidTransitionError instead of silently succeeding.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, newStatus string) error {
	return r.transition(ctx, id, newStatus, "status", domain.CanTransitionOrderStatus, nil)
}

// UpdatePaymentStatus transitions the payment status, which is tracked
// independently of the order status. Transitioning to COMPLETED stamps paidAt
// if it was not already set.
func (r *MySQLOrderRepository) UpdatePaymentStatus(ctx context.Context, id uint, newStatus string) error {
	var extra *string
	if newStatus == domain.PaymentStatusCompleted {
		set := ", paidAt = COALESCE(paidAt, NOW())"
		extra = &set
	}
	return r.transition(ctx, id, newStatus, "paymentStatus", domain.CanTransitionPaymentStatus, extra)
}

func (r *MySQLOrderRepository) transition(
	ctx context.Context,
	id uint,
	newStatus string,
	column string,
	canTransition func(from, to string) bool,
	extraSet *string,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT `+column+` FROM Orders WHERE id = ? FOR UPDATE`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return fmt.Errorf("locking order row: %w", err)
	}

	if !canTransition(current, newStatus) {
		return errors.NewInvalidTransitionError(current, newStatus)
	}

	set := column + " = ?"
	if extraSet != nil {
		set += *extraSet
	}
	if _, err := tx.ExecContext(ctx, `UPDATE Orders SET `+set+` WHERE id = ?`, newStatus, id); err != nil {
		return fmt.Errorf("updating order %s: %w", column, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transition: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return stderrors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
