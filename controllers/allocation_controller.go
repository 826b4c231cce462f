package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-backend/models"
	"hostel-backend/utils"
)

// AllocationController exposes the historical tenant↔room links. Creation
// happens only through the tenant allocation workflow; this surface is
// read-only plus status updates for lease expiry bookkeeping.
type AllocationController struct {
	DB *gorm.DB
}

func NewAllocationController(db *gorm.DB) *AllocationController {
	return &AllocationController{DB: db}
}

// GetAllocations (GET /api/allocations?room_id=&tenant_id=&status=)
func (ac *AllocationController) GetAllocations(c *gin.Context) {
	q := ac.DB.Preload("Room").Preload("Tenant")
	if roomID := c.Query("room_id"); roomID != "" {
		q = q.Where("room_id = ?", roomID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var allocations []models.RoomAllocation
	if err := q.Order("created_at DESC").Find(&allocations).Error; err != nil {
		log.Printf("failed to list allocations: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, allocations)
}

// GetAllocation (GET /api/allocations/:id)
func (ac *AllocationController) GetAllocation(c *gin.Context) {
	id := c.Param("id")

	var allocation models.RoomAllocation
	if err := ac.DB.Preload("Room").Preload("Tenant").First(&allocation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("Allocation with ID %s not found.", id))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, allocation)
}

type updateAllocationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAllocationStatus (PATCH /api/allocations/:id/status)
func (ac *AllocationController) UpdateAllocationStatus(c *gin.Context) {
	id := c.Param("id")

	var req updateAllocationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	switch req.Status {
	case models.AllocationStatusActive, models.AllocationStatusUpcoming, models.AllocationStatusExpired:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": fmt.Sprintf("Unknown allocation status %q.", req.Status)})
		return
	}

	res := ac.DB.Model(&models.RoomAllocation{}).Where("id = ?", id).Update("status", req.Status)
	if res.Error != nil {
		log.Printf("failed to update allocation %s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Allocation with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Allocation status updated"})
}
