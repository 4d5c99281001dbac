package controllers

import (
	"net/http"
	"testing"

	"detailpro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInventoryItem(t *testing.T) {
	setupTestDB(t)

	r := newTestRouter()
	r.POST("/api/inventory", CreateInventoryItem)

	w := performRequest(r, "POST", "/api/inventory", map[string]interface{}{
		"name":        "Microfiber towels",
		"sku":         "mf-towel-12",
		"price":       15.99,
		"cost":        8.5,
		"quantity":    40,
		"minQuantity": 10,
	})
	assertStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	item := body["item"].(map[string]interface{})
	assert.Equal(t, "MF-TOWEL-12", item["sku"])
	assert.Equal(t, "General", item["category"])
}

func TestCreateInventoryItemDuplicateSKU(t *testing.T) {
	db := setupTestDB(t)
	sku := "WAX-500"
	require.NoError(t, db.Create(&models.InventoryItem{
		Name:     "Carnauba wax",
		Category: "Wax",
		SKU:      &sku,
		Price:    25,
		IsActive: true,
	}).Error)

	r := newTestRouter()
	r.POST("/api/inventory", CreateInventoryItem)

	w := performRequest(r, "POST", "/api/inventory", map[string]interface{}{
		"name":  "Another wax",
		"sku":   "wax-500",
		"price": 20,
	})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "SKU already exists", decodeBody(t, w)["error"])
}

func TestGetInventoryItemsLowStockFilter(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.InventoryItem{
		Name:        "Clay bars",
		Category:    "Detailing",
		Price:       12,
		Quantity:    2,
		MinQuantity: 5,
		IsActive:    true,
	}).Error)
	require.NoError(t, db.Create(&models.InventoryItem{
		Name:        "Tire shine",
		Category:    "Detailing",
		Price:       9,
		Quantity:    30,
		MinQuantity: 5,
		IsActive:    true,
	}).Error)

	r := newTestRouter()
	r.GET("/api/inventory", GetInventoryItems)

	w := performRequest(r, "GET", "/api/inventory?lowStock=true", nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Clay bars", item["name"])
	assert.Equal(t, true, item["lowStock"])
}

func TestUpdateInventoryItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	stock := models.InventoryItem{
		Name:        "Glass cleaner",
		Category:    "Cleaning",
		Price:       6,
		Quantity:    20,
		MinQuantity: 4,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&stock).Error)

	r := newTestRouter()
	r.PUT("/api/inventory/:id", UpdateInventoryItem)

	w := performRequest(r, "PUT", "/api/inventory/"+stock.ID.String(), map[string]interface{}{
		"quantity": 3,
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", stock.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
	assert.True(t, reloaded.LowStock())
}

func TestDeleteInventoryItemSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	stock := models.InventoryItem{
		Name:     "Foam cannon",
		Price:    45,
		IsActive: true,
	}
	require.NoError(t, db.Create(&stock).Error)

	r := newTestRouter()
	r.DELETE("/api/inventory/:id", DeleteInventoryItem)
	r.GET("/api/inventory", GetInventoryItems)

	w := performRequest(r, "DELETE", "/api/inventory/"+stock.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	w = performRequest(r, "GET", "/api/inventory", nil)
	assertStatus(t, w, http.StatusOK)
	assert.Empty(t, decodeBody(t, w)["items"])
}
