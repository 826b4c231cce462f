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

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

// GetExpenses (GET /api/expenses?category=)
func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	q := ec.DB.Model(&models.Expense{})
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		log.Printf("failed to list expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpense (GET /api/expenses/:id)
func (ec *ExpenseController) GetExpense(c *gin.Context) {
	id := c.Param("id")

	var expense models.Expense
	if err := ec.DB.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Expense with ID %s not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// CreateExpense (POST /api/expenses)
func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	if expense.Category == "" || expense.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Category and date are required."})
		return
	}

	if err := ec.DB.Create(&expense).Error; err != nil {
		log.Printf("failed to create expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense (PATCH /api/expenses/:id)
func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	id := c.Param("id")

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")

	res := ec.DB.Model(&models.Expense{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		log.Printf("failed to update expense %s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Expense with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Expense updated successfully"})
}

// DeleteExpense (DELETE /api/expenses/:id)
func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id := c.Param("id")

	result := ec.DB.Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		log.Printf("failed to delete expense %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete expense."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Expense with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Expense deleted successfully"})
}
