package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-backend/models"
)

// PaymentController is plain ledger CRUD: no reconciliation or rollup
// logic lives here.
type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetPayments (GET /api/payments?tenant_id=&status=)
func (pc *PaymentController) GetPayments(c *gin.Context) {
	q := pc.DB.Preload("Tenant")
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := q.Order("date DESC").Find(&payments).Error; err != nil {
		log.Printf("failed to list payments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// CreatePayment (POST /api/payments)
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	if payment.TenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "tenant_id is required."})
		return
	}

	// Referential check: payments must point at a real tenant.
	var count int64
	if err := pc.DB.Model(&models.Tenant{}).Where("id = ?", payment.TenantID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": fmt.Sprintf("Tenant %s does not exist.", payment.TenantID)})
		return
	}

	if err := pc.DB.Create(&payment).Error; err != nil {
		log.Printf("failed to create payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment (PATCH /api/payments/:id)
func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	id := c.Param("id")

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")

	res := pc.DB.Model(&models.Payment{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		log.Printf("failed to update payment %s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Payment with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Payment updated successfully"})
}

// DeletePayment (DELETE /api/payments/:id)
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	id := c.Param("id")

	result := pc.DB.Where("id = ?", id).Delete(&models.Payment{})
	if result.Error != nil {
		log.Printf("failed to delete payment %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete payment."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Payment with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Payment deleted successfully"})
}

// GetPayment (GET /api/payments/:id)
func (pc *PaymentController) GetPayment(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := pc.DB.Preload("Tenant").First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Payment with ID %s not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, payment)
}
