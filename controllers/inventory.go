package controllers

import (
	"errors"
	"net/http"
	"strings"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInventoryItemInput defines the expected JSON structure for creating an inventory item
type CreateInventoryItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	SKU         *string `json:"sku"`
	Supplier    string  `json:"supplier"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Cost        float64 `json:"cost" binding:"min=0"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	MinQuantity int     `json:"minQuantity" binding:"min=0"`
}

// UpdateInventoryItemInput defines the expected JSON structure for updating an inventory item
type UpdateInventoryItemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
	Supplier    *string  `json:"supplier"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Cost        *float64 `json:"cost" binding:"omitempty,min=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,min=0"`
	MinQuantity *int     `json:"minQuantity" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive"`
}

// CreateInventoryItem adds a new inventory item
func CreateInventoryItem(c *gin.Context) {
	var input CreateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var sku *string
	if input.SKU != nil && *input.SKU != "" {
		normalized := strings.ToUpper(strings.TrimSpace(*input.SKU))
		if !utils.ValidateSKU(normalized) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid SKU format")
			return
		}
		var existing models.InventoryItem
		if err := config.DB.Where("sku = ?", normalized).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "SKU already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		sku = &normalized
	}

	category := input.Category
	if category == "" {
		category = "General"
	}

	item := models.InventoryItem{
		Name:        input.Name,
		Description: input.Description,
		Category:    category,
		SKU:         sku,
		Supplier:    input.Supplier,
		Price:       input.Price,
		Cost:        input.Cost,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
		IsActive:    true,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetInventoryItems retrieves inventory with search, category filter and pagination
func GetInventoryItems(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.InventoryItem{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", pattern, pattern)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("lowStock") == "true" {
		query = query.Where("quantity <= min_quantity")
	}
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count inventory items")
		return
	}

	var items []models.InventoryItem
	if err := query.Scopes(utils.Paginate(p)).Order("name ASC").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory items")
		return
	}

	type itemWithStock struct {
		models.InventoryItem
		LowStock bool `json:"lowStock"`
	}
	result := make([]itemWithStock, 0, len(items))
	for _, item := range items {
		result = append(result, itemWithStock{InventoryItem: item, LowStock: item.LowStock()})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result,
		"pagination": p.Meta(total),
	})
}

// GetInventoryItem retrieves a specific inventory item by ID
func GetInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", itemUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem updates an existing inventory item
func UpdateInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", itemUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.SKU != nil {
		if *input.SKU == "" {
			item.SKU = nil
		} else {
			normalized := strings.ToUpper(strings.TrimSpace(*input.SKU))
			if !utils.ValidateSKU(normalized) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid SKU format")
				return
			}
			if item.SKU == nil || normalized != *item.SKU {
				var existing models.InventoryItem
				if err := config.DB.Where("sku = ?", normalized).First(&existing).Error; err == nil {
					utils.RespondWithError(c, http.StatusBadRequest, "SKU already exists")
					return
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
					return
				}
			}
			item.SKU = &normalized
		}
	}
	if input.Supplier != nil {
		item.Supplier = *input.Supplier
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Cost != nil {
		item.Cost = *input.Cost
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem soft deletes an inventory item
func DeleteInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	result := config.DB.Model(&models.InventoryItem{}).
		Where("id = ?", itemUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete inventory item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
