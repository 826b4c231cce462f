package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-backend/models"
	"hostel-backend/services"
)

type HostelController struct {
	Svc *services.HostelService
}

func NewHostelController(svc *services.HostelService) *HostelController {
	return &HostelController{Svc: svc}
}

// GetHostels (GET /api/hostels)
func (hc *HostelController) GetHostels(c *gin.Context) {
	hostels, err := hc.Svc.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("failed to list hostels: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, hostels)
}

// GetHostel (GET /api/hostels/:id)
func (hc *HostelController) GetHostel(c *gin.Context) {
	id := c.Param("id")

	hostel, err := hc.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Hostel with ID %s not found.", id)})
			return
		}
		log.Printf("failed to fetch hostel %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, hostel)
}

// CreateHostel (POST /api/hostels)
func (hc *HostelController) CreateHostel(c *gin.Context) {
	var hostel models.Hostel
	if err := c.ShouldBindJSON(&hostel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	hostel.Name = strings.TrimSpace(hostel.Name)
	if hostel.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Hostel name is required."})
		return
	}
	if strings.TrimSpace(hostel.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Hostel address is required."})
		return
	}

	if err := hc.Svc.Create(c.Request.Context(), &hostel); err != nil {
		log.Printf("failed to create hostel: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, hostel)
}

// UpdateHostel (PATCH /api/hostels/:id)
func (hc *HostelController) UpdateHostel(c *gin.Context) {
	id := c.Param("id")

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")
	// Recomputed on read; writing it would only reintroduce drift.
	delete(patch, "occupied_rooms")

	if err := hc.Svc.Update(c.Request.Context(), id, patch); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Hostel with ID %s not found.", id)})
			return
		}
		log.Printf("failed to update hostel %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Hostel updated successfully"})
}

// DeleteHostel (DELETE /api/hostels/:id)
func (hc *HostelController) DeleteHostel(c *gin.Context) {
	id := c.Param("id")

	if err := hc.Svc.Delete(c.Request.Context(), id); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Hostel with ID %s not found.", id)})
			return
		}
		log.Printf("failed to delete hostel %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete hostel."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Hostel deleted successfully"})
}
