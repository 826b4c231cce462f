package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-backend/models"
	"hostel-backend/services"
)

type TenantController struct {
	DB         *gorm.DB
	Allocation *services.AllocationService
}

func NewTenantController(db *gorm.DB, allocation *services.AllocationService) *TenantController {
	return &TenantController{DB: db, Allocation: allocation}
}

// AllocateTenantRequest mirrors the add-tenant wizard payload: tenant
// fields plus the hostel → floor → room cascade and the lease terms.
type AllocateTenantRequest struct {
	Name             string                      `json:"name" binding:"required"`
	Email            string                      `json:"email" binding:"required"`
	Phone            string                      `json:"phone" binding:"required"`
	EmergencyContact string                      `json:"emergency_contact" binding:"required"`
	JoinDate         string                      `json:"join_date" binding:"required"`
	LeaseEnd         string                      `json:"lease_end"`
	Preferences      *services.TenantPreferences `json:"preferences"`

	HostelID string `json:"hostel_id" binding:"required"`
	Floor    string `json:"floor" binding:"required"`
	RoomID   string `json:"room_id" binding:"required"`

	StartDate      string `json:"start_date" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required"`

	IdempotencyKey string `json:"idempotency_key"`
}

// AllocateTenant (POST /api/tenants/allocate) runs the room-allocation
// workflow: create tenant, create allocation, bump room occupancy.
//
// Failure mapping matters here: a 400 means nothing was written, while a
// 409 with a "stage" field means the workflow failed part-way and rows may
// already exist. The UI must not show a blind "try again" for the latter.
func (tc *TenantController) AllocateTenant(c *gin.Context) {
	var req AllocateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	// Replay the wizard cascade; a room submitted without its hostel and
	// floor parents is a stale form state, not a valid selection.
	selection := services.SelectionState{}.
		WithHostel(req.HostelID).
		WithFloor(req.Floor).
		WithRoom(req.RoomID)
	if !selection.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Hostel, floor and room must all be selected."})
		return
	}

	result, err := tc.Allocation.Allocate(c.Request.Context(), services.AllocationInput{
		Tenant: services.TenantDraft{
			Name:             req.Name,
			Email:            req.Email,
			Phone:            req.Phone,
			EmergencyContact: req.EmergencyContact,
			JoinDate:         req.JoinDate,
			LeaseEnd:         req.LeaseEnd,
			Preferences:      req.Preferences,
			IdempotencyKey:   req.IdempotencyKey,
		},
		RoomID:         selection.RoomID,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Error()})
			return
		}

		var aerr *services.AllocationError
		if errors.As(err, &aerr) {
			log.Printf("allocation failed at stage %s: %v", aerr.Stage, aerr)
			body := gin.H{
				"status":  "error",
				"message": "Room allocation failed. Records may have been partially created.",
				"stage":   aerr.Stage,
			}
			if aerr.NeedsReconciliation() {
				body["orphan_tenant_id"] = aerr.OrphanTenantID
				body["orphan_allocation_id"] = aerr.OrphanAllocationID
			}
			c.JSON(http.StatusConflict, body)
			return
		}

		log.Printf("allocation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetTenants (GET /api/tenants)
func (tc *TenantController) GetTenants(c *gin.Context) {
	var tenants []models.Tenant
	if err := tc.DB.Preload("Room").Order("created_at DESC").Find(&tenants).Error; err != nil {
		log.Printf("failed to list tenants: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// GetTenant (GET /api/tenants/:id)
func (tc *TenantController) GetTenant(c *gin.Context) {
	id := c.Param("id")

	var tenant models.Tenant
	if err := tc.DB.Preload("Room").First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Tenant with ID %s not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// UpdateTenant (PATCH /api/tenants/:id)
func (tc *TenantController) UpdateTenant(c *gin.Context) {
	id := c.Param("id")

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")
	// Room assignment is owned by the allocation workflow; there is no
	// reassignment flow on this endpoint.
	delete(patch, "room_id")

	res := tc.DB.Model(&models.Tenant{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		log.Printf("failed to update tenant %s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Tenant with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tenant updated successfully"})
}

// DeleteTenant (DELETE /api/tenants/:id)
func (tc *TenantController) DeleteTenant(c *gin.Context) {
	id := c.Param("id")

	result := tc.DB.Where("id = ?", id).Delete(&models.Tenant{})
	if result.Error != nil {
		log.Printf("failed to delete tenant %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete tenant."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Tenant with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tenant deleted successfully"})
}
