package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/testutil"
)

func testOrder(orderNumber string) domain.Order {
	paymentID := "pay_test_1"
	paidAt := time.Now().UTC().Truncate(time.Second)
	request := "extra spicy"
	return domain.Order{
		OrderNumber:     orderNumber,
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		OrderType:       domain.OrderTypePickup,
		TotalAmount:     decimal.RequireFromString("42.50"),
		TaxAmount:       decimal.RequireFromString("2.50"),
		DeliveryFee:     decimal.Zero,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   "card",
		PaymentProvider: "square",
		PaymentID:       &paymentID,
		PaymentStatus:   domain.PaymentStatusCompleted,
		PaidAt:          &paidAt,
		Items: []domain.OrderItem{
			{MenuItemID: 5, Name: "Butter Chicken", Quantity: 2, UnitPrice: decimal.RequireFromString("14.50"), SpecialRequest: &request},
			{MenuItemID: 9, Name: "Garlic Naan", Quantity: 3, UnitPrice: decimal.RequireFromString("3.00")},
		},
	}
}

func insertTestOrder(t *testing.T, db *sql.DB, order domain.Order) uint {
	t.Helper()

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	orderID, err := orderRepo.Insert(context.Background(), tx, order)
	require.NoError(t, err)

	for _, item := range order.Items {
		item.OrderID = orderID
		_, err := itemRepo.Insert(context.Background(), tx, item)
		require.NoError(t, err)
	}

	require.NoError(t, tx.Commit())
	return orderID
}

func TestOrderRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	orderID := insertTestOrder(t, db, testOrder("ORD-TEST0001"))
	repo := NewMySQLOrderRepository(db)

	byNumber, err := repo.FindByNumber(context.Background(), "ORD-TEST0001")
	require.NoError(t, err)
	assert.Equal(t, orderID, byNumber.ID)
	assert.Equal(t, "John Doe", byNumber.CustomerName)
	assert.True(t, byNumber.TotalAmount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, domain.PaymentStatusCompleted, byNumber.PaymentStatus)
	assert.NotNil(t, byNumber.PaymentID)
	assert.Equal(t, "pay_test_1", *byNumber.PaymentID)
	assert.NotNil(t, byNumber.PaidAt)

	require.Len(t, byNumber.Items, 2)
	assert.Equal(t, "Butter Chicken", byNumber.Items[0].Name)
	assert.Equal(t, 2, byNumber.Items[0].Quantity)
	assert.True(t, byNumber.Items[0].UnitPrice.Equal(decimal.RequireFromString("14.50")))
	require.NotNil(t, byNumber.Items[0].SpecialRequest)
	assert.Equal(t, "extra spicy", *byNumber.Items[0].SpecialRequest)
	assert.Nil(t, byNumber.Items[1].SpecialRequest)

	byID, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST0001", byID.OrderNumber)
}

func TestOrderRepository_FindByNumber_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)

	_, err := repo.FindByNumber(context.Background(), "ORD-MISSING1")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_Insert_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	insertTestOrder(t, db, testOrder("ORD-TEST0002"))

	repo := NewMySQLOrderRepository(db)
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.Insert(context.Background(), tx, testOrder("ORD-TEST0002"))

	dupErr, ok := apperrors.IsDuplicateOrderNumberError(err)
	require.True(t, ok, "expected DuplicateOrderNumberError, got %v", err)
	assert.Equal(t, "ORD-TEST0002", dupErr.OrderNumber)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	orderID := insertTestOrder(t, db, testOrder("ORD-TEST0003"))
	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), orderID, domain.OrderStatusConfirmed)
	require.NoError(t, err)

	order, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestOrderRepository_UpdateStatus_InvalidTransition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	orderID := insertTestOrder(t, db, testOrder("ORD-TEST0004"))
	repo := NewMySQLOrderRepository(db)

	// PENDING may not jump straight to READY
	err := repo.UpdateStatus(context.Background(), orderID, domain.OrderStatusReady)

	transErr, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok, "expected InvalidTransitionError, got %v", err)
	assert.Equal(t, domain.OrderStatusPending, transErr.From)
	assert.Equal(t, domain.OrderStatusReady, transErr.To)

	order, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), 999999, domain.OrderStatusConfirmed)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdatePaymentStatus_StampsPaidAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	order := testOrder("ORD-TEST0005")
	order.PaymentStatus = domain.PaymentStatusPending
	order.PaymentID = nil
	order.PaidAt = nil
	orderID := insertTestOrder(t, db, order)

	repo := NewMySQLOrderRepository(db)

	err := repo.UpdatePaymentStatus(context.Background(), orderID, domain.PaymentStatusCompleted)
	require.NoError(t, err)

	updated, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, updated.PaymentStatus)
	assert.NotNil(t, updated.PaidAt, "paidAt must be stamped on completion")
}

func TestOrderRepository_UpdatePaymentStatus_PreservesPaidAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	orderID := insertTestOrder(t, db, testOrder("ORD-TEST0006"))
	repo := NewMySQLOrderRepository(db)

	before, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	require.NotNil(t, before.PaidAt)

	err = repo.UpdatePaymentStatus(context.Background(), orderID, domain.PaymentStatusRefunded)
	require.NoError(t, err)

	after, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, after.PaymentStatus)
	assert.True(t, before.PaidAt.Equal(*after.PaidAt), "refund must not rewrite paidAt")
}

func TestOrderRepository_UpdatePaymentStatus_InvalidTransition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	orderID := insertTestOrder(t, db, testOrder("ORD-TEST0007"))
	repo := NewMySQLOrderRepository(db)

	// COMPLETED may only move to REFUNDED
	err := repo.UpdatePaymentStatus(context.Background(), orderID, domain.PaymentStatusPending)

	_, ok := apperrors.IsInvalidTransitionError(err)
	assert.True(t, ok, "expected InvalidTransitionError, got %v", err)
}
