package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/dailycare/internal/config"
	"github.com/example/dailycare/internal/database"
	"github.com/example/dailycare/internal/models"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory SQLite database with the full
// schema migrated. Each call gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		TokenExpires:     time.Hour,
		OTPExpires:       5 * time.Minute,
		OTPDebugResponse: true,
	}
}

func seedUser(t *testing.T, db *gorm.DB, email, phone string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		FullName:     "Test User",
		IsActive:     true,
	}
	if phone != "" {
		user.Phone = &phone
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Slug:     fmt.Sprintf("%s-%d", name, atomic.AddInt64(&testDBCounter, 1)),
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func addToCart(t *testing.T, db *gorm.DB, user *models.User, product *models.Product, qty int) {
	t.Helper()

	item := &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: qty}
	require.NoError(t, db.Create(item).Error)
}
