package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests are skipped when a
// local MySQL named 'orderdesk_test' is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/orderdesk_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "MenuItems", "StoreConfig"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables used by the integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createMenuItemsTable := `
	CREATE TABLE IF NOT EXISTS MenuItems (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		category VARCHAR(100),
		isActive TINYINT(1) DEFAULT 1,
		isDeleted TINYINT(1) DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_deleted (isDeleted)
	)`

	createStoreConfigTable := `
	CREATE TABLE IF NOT EXISTS StoreConfig (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		currencyCode CHAR(3) NOT NULL DEFAULT 'CAD',
		taxRate DECIMAL(5,4) NOT NULL DEFAULT 0.1300,
		deliveryFee DECIMAL(10,2) NOT NULL DEFAULT 5.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderNumber VARCHAR(20) NOT NULL,
		customerName VARCHAR(100) NOT NULL,
		customerEmail VARCHAR(150) NOT NULL,
		customerPhone VARCHAR(30),
		orderType VARCHAR(20) NOT NULL,
		deliveryAddress VARCHAR(255),
		deliveryTime DATETIME,
		instructions TEXT,
		totalAmount DECIMAL(10,2) NOT NULL,
		taxAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		deliveryFee DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		paymentMethod VARCHAR(50),
		paymentProvider VARCHAR(50),
		paymentId VARCHAR(100),
		paymentStatus VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		paidAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_order_number (orderNumber),
		INDEX idx_status (status)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		menuItemId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		unitPrice DECIMAL(10,2) NOT NULL,
		specialRequest TEXT,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"MenuItems", createMenuItemsTable},
		{"StoreConfig", createStoreConfigTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
