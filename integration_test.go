package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/router"
	"github.com/tableside/tableside/services"
	"github.com/tableside/tableside/store"
	"github.com/tableside/tableside/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndOrderFlow walks the main path:
// 1. Seed an admin user, log in for a token
// 2. Admin creates a menu item and a table
// 3. A guest orders from the table, no login
// 4. The guest completes the order and the bill lands in history
// 5. Admin raises the tax rate; the stored bill is untouched
func TestEndToEndOrderFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupIntegrationDB(t)

	kv, err := store.NewGormStore(db)
	assert.NoError(t, err)
	orders, err := services.NewOrderService(kv)
	assert.NoError(t, err)

	r := router.SetupRouter(db, orders, services.NewCheckoutService())

	token := loginAdmin(t, r)

	itemID := createMenuItemTest(t, r, token)
	createTableTest(t, r, token)

	addItemTest(t, r, itemID)
	total := completeOrderTest(t, r)
	assert.InDelta(t, 22.60, total, 0.001)

	updateBillingTest(t, r, token)

	// History still carries the bill computed at completion time.
	resp := doJSON(t, r, http.MethodGet, "/orders/12/history", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var historyBody struct {
		Data []models.CompletedOrder `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &historyBody))
	assert.Len(t, historyBody.Data, 1)
	assert.InDelta(t, 22.60, historyBody.Data[0].Total, 0.001)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.MenuItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	resp := doJSON(t, r, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func createMenuItemTest(t *testing.T, r *gin.Engine, token string) string {
	resp := doJSON(t, r, http.MethodPost, "/menu", token, map[string]interface{}{
		"name":     "Set Menu",
		"price":    10.00,
		"category": "Main Course",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Data models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID)
	return body.Data.ID
}

func createTableTest(t *testing.T, r *gin.Engine, token string) {
	resp := doJSON(t, r, http.MethodPost, "/tables", token, map[string]interface{}{
		"number":  12,
		"section": "window",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func addItemTest(t *testing.T, r *gin.Engine, itemID string) {
	resp := doJSON(t, r, http.MethodPost, "/orders/12/items", "", map[string]interface{}{
		"item_id":  itemID,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, r, http.MethodGet, "/orders/12", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func completeOrderTest(t *testing.T, r *gin.Engine) float64 {
	resp := doJSON(t, r, http.MethodPost, "/orders/12/complete", "", map[string]interface{}{
		"payment_method": "cash",
		"customer":       map[string]string{"name": "Dana"},
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.CompletedOrder `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.OrderID)
	return body.Data.Total
}

func updateBillingTest(t *testing.T, r *gin.Engine, token string) {
	resp := doJSON(t, r, http.MethodPut, "/billing/config", token, map[string]float64{
		"tax_rate": 0.20,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	// The same call without a token is rejected.
	resp = doJSON(t, r, http.MethodPut, "/billing/config", "", map[string]float64{
		"tax_rate": 0.25,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
