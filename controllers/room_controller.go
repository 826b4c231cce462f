package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-backend/models"
	"hostel-backend/services"
	"hostel-backend/store"
)

type RoomController struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
}

func NewRoomController(db *gorm.DB, availability *services.AvailabilityService) *RoomController {
	return &RoomController{DB: db, Availability: availability}
}

// GetRooms (GET /api/rooms?hostel_id=&floor=&status=)
func (rc *RoomController) GetRooms(c *gin.Context) {
	q := rc.DB.Model(&models.Room{})
	if hostelID := c.Query("hostel_id"); hostelID != "" {
		q = q.Where("hostel_id = ?", hostelID)
	}
	if floor := c.Query("floor"); floor != "" {
		q = q.Where("floor = ?", floor)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		log.Printf("failed to list rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetAvailableRooms (GET /api/rooms/available?hostel_id=&floor=)
// Lists rooms with spare capacity for the add-tenant wizard. Missing
// hostel or floor yields an empty list, matching the wizard's behavior
// before both dropdowns are chosen.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := rc.Availability.FindAvailable(c.Request.Context(), c.Query("hostel_id"), c.Query("floor"))
	if err != nil {
		log.Printf("failed to resolve available rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom (GET /api/rooms/:id)
func (rc *RoomController) GetRoom(c *gin.Context) {
	id := c.Param("id")

	var room models.Room
	if err := rc.DB.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %s not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom (POST /api/rooms)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("room payload binding failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Room number is required."})
		return
	}
	if _, err := room.CapacityCount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}

	if result := rc.DB.Create(&room); result.Error != nil {
		if store.IsUniqueViolation(result.Error) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": fmt.Sprintf("Room number '%s' already exists.", room.Number)})
			return
		}
		log.Printf("failed to create room: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom (PATCH /api/rooms/:id)
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id := c.Param("id")

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")
	// The live counter moves only through the allocation workflow.
	delete(patch, "current_occupancy")

	res := rc.DB.Model(&models.Room{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		log.Printf("failed to update room %s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room updated successfully"})
}

// DeleteRoom (DELETE /api/rooms/:id)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	result := rc.DB.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		log.Printf("failed to delete room %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete room."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %s not found.", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}
