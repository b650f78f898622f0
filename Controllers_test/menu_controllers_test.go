package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tableside/tableside/controllers"
	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/utils"
)

func setupTestDBForMenus(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	menuCtrl := controllers.NewMenuController(db)
	router.GET("/menu", menuCtrl.GetAllMenus)
	router.GET("/menu/category/:category", menuCtrl.GetMenusByCategory)
	router.GET("/menu/:menu_id", menuCtrl.GetMenuByID)
	router.POST("/menu", menuCtrl.CreateMenu)
	router.PUT("/menu/:menu_id", menuCtrl.UpdateMenu)
	router.DELETE("/menu/:menu_id", menuCtrl.DeleteMenu)
	return router
}

func seedMenuItem(t *testing.T, db *gorm.DB, item models.MenuItem) models.MenuItem {
	t.Helper()
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return item
}

func TestGetAllMenus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)

	seedMenuItem(t, db, models.MenuItem{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true})
	seedMenuItem(t, db, models.MenuItem{ID: "item2", Name: "Coffee", Price: 2.99, Category: "Beverages", Available: true})

	router := setupMenuRouter(db)
	req, err := http.NewRequest("GET", "/menu", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestGetMenusByCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)

	seedMenuItem(t, db, models.MenuItem{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true})
	seedMenuItem(t, db, models.MenuItem{ID: "item2", Name: "Coffee", Price: 2.99, Category: "Beverages", Available: true})

	router := setupMenuRouter(db)
	req, _ := http.NewRequest("GET", "/menu/category/Beverages", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Coffee", first["name"])
}

func TestGetMenuByIDNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)
	router := setupMenuRouter(db)

	req, _ := http.NewRequest("GET", "/menu/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuWithOptions(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)
	router := setupMenuRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":     "Burger",
		"price":    8.99,
		"category": "Main Course",
		"options": []map[string]interface{}{
			{
				"name": "Size",
				"choices": []map[string]interface{}{
					{"name": "Regular", "price": 0},
					{"name": "Large", "price": 1.50},
				},
			},
		},
	})
	req, _ := http.NewRequest("POST", "/menu", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, true, data["available"])

	options := data["options"].([]interface{})
	assert.Len(t, options, 1)
}

func TestCreateMenuRejectsMissingPrice(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)
	router := setupMenuRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":     "Mystery",
		"category": "Main Course",
	})
	req, _ := http.NewRequest("POST", "/menu", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuKeepsID(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)

	seedMenuItem(t, db, models.MenuItem{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true})

	router := setupMenuRouter(db)
	payload, _ := json.Marshal(map[string]interface{}{
		"name":     "Double Burger",
		"price":    10.99,
		"category": "Main Course",
	})
	req, _ := http.NewRequest("PUT", "/menu/item1", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "item1", data["id"])
	assert.Equal(t, "Double Burger", data["name"])
}

func TestDeleteMenu(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus(t)

	seedMenuItem(t, db, models.MenuItem{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true})

	router := setupMenuRouter(db)
	req, _ := http.NewRequest("DELETE", "/menu/item1", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", "/menu/item1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
