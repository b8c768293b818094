// controllers/product.go
package controllers

import (
	"errors"
	"net/http"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	UnitPrice     int64  `json:"unitPrice" binding:"required,min=0"`
	StockForSale  int    `json:"stockForSale" binding:"min=0"`
	StockSalonUse int    `json:"stockSalonUse" binding:"min=0"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	UnitPrice     *int64  `json:"unitPrice"`
	StockForSale  *int    `json:"stockForSale"`
	StockSalonUse *int    `json:"stockSalonUse"`
	IsActive      *bool   `json:"isActive"`
}

// CreateProduct creates a new retail product for the salon
func CreateProduct(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		SalonID:       salonUUID,
		Name:          input.Name,
		Description:   input.Description,
		UnitPrice:     input.UnitPrice,
		StockForSale:  input.StockForSale,
		StockSalonUse: input.StockSalonUse,
		IsActive:      true,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts retrieves all products for the salon
func GetProducts(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var products []models.Product
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a specific product by ID
func GetProduct(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates an existing product, including restocking
// either pool
func UpdateProduct(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.StockForSale != nil {
		if *input.StockForSale < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		product.StockForSale = *input.StockForSale
	}
	if input.StockSalonUse != nil {
		if *input.StockSalonUse < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		product.StockSalonUse = *input.StockSalonUse
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog
func DeleteProduct(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, productUUID).
		Delete(&models.Product{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
