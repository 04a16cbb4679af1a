package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/dailycare/internal/config"
	"github.com/example/dailycare/internal/database"
	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/routes"
)

var testDBCounter int64

// setupApp builds the full application against an in-memory SQLite
// database, with SMS and image hosting unconfigured.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "integration-test-secret",
		TokenExpires:     time.Hour,
		OTPExpires:       5 * time.Minute,
		OTPDebugResponse: true,
	}

	app := fiber.New()
	routes.Register(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":     email,
		"password":  "password1234",
		"full_name": "Integration Tester",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
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

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := setupApp(t)

	token := registerAndLogin(t, app, "flow@example.com")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := body["data"].(map[string]interface{})
	assert.Equal(t, "flow@example.com", data["email"])

	// Duplicate registration is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":     "flow@example.com",
		"password":  "password1234",
		"full_name": "Someone Else",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password and unknown email are indistinguishable over HTTP.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "missing@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartCheckoutFlow(t *testing.T) {
	app, db := setupApp(t)

	token := registerAndLogin(t, app, "shopper@example.com")
	product := seedProduct(t, db, "Aloe Gel", 20.00, 5)

	// Adding the same product twice merges into one line.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/cart", token, fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ := body["data"].([]interface{})
	require.Len(t, items, 1)
	line, _ := items[0].(map[string]interface{})
	assert.EqualValues(t, 2, line["quantity"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/orders", token, fiber.Map{
		"shipping_address": fiber.Map{"street": "1 Main St", "city": "Springfield"},
		"payment_method":   "card",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order, _ := body["data"].(map[string]interface{})
	assert.InDelta(t, 40.00*1.18, order["total_amount"].(float64), 1e-9)
	assert.Equal(t, "pending", order["status"])

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", product.ID).Error)
	assert.Equal(t, 3, p.Stock)

	resp, body = doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["data"].([]interface{})
	assert.Empty(t, items)

	// The order shows up in the user's history.
	resp, body = doJSON(t, app, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders, _ := body["data"].([]interface{})
	assert.Len(t, orders, 1)
}

func TestCheckoutInsufficientStockOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	token := registerAndLogin(t, app, "toolate@example.com")
	product := seedProduct(t, db, "Tiny Batch", 10.00, 2)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cart", token, fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", token, fiber.Map{
		"shipping_address": fiber.Map{"street": "1 Main St"},
		"payment_method":   "card",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", product.ID).Error)
	assert.Equal(t, 2, p.Stock)
}

func TestOTPLoginFlow(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":     "otpuser@example.com",
		"password":  "password1234",
		"full_name": "OTP User",
		"phone":     "+15551234567",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// SMS is unconfigured and debug responses are on, so the code comes
	// back in the response.
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/send-otp", "", fiber.Map{
		"phone": "+15551234567",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code, _ := body["otp_debug"].(string)
	require.Len(t, code, 6)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/verify-otp", "", fiber.Map{
		"phone": "+15551234567",
		"otp":   code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])

	// The code is burned by the first verification.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/verify-otp", "", fiber.Map{
		"phone": "+15551234567",
		"otp":   code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unregistered phones are refused.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/send-otp", "", fiber.Map{
		"phone": "+15550000001",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthorizationBoundaries(t *testing.T) {
	app, db := setupApp(t)

	// No token at all.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token, but not an admin.
	token := registerAndLogin(t, app, "plain@example.com")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Promote and retry.
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "plain@example.com").Update("is_admin", true).Error)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminOrderStatusOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	token := registerAndLogin(t, app, "statusadmin@example.com")
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "statusadmin@example.com").Update("is_admin", true).Error)

	product := seedProduct(t, db, "Status Cream", 10.00, 5)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/cart", token, fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", token, fiber.Map{
		"shipping_address": fiber.Map{"street": "1 Main St"},
		"payment_method":   "card",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order, _ := body["data"].(map[string]interface{})
	orderID, _ := order["id"].(string)
	require.NotEmpty(t, orderID)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/admin/orders/"+orderID+"/status", token, fiber.Map{
		"status": "confirmed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Backward transition is rejected.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/admin/orders/"+orderID+"/status", token, fiber.Map{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
