package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HostelStatusActive      = "active"
	HostelStatusMaintenance = "maintenance"
)

type Hostel struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`

	Address     string `json:"address" gorm:"type:text;not null"`
	TotalFloors int    `json:"total_floors"`
	TotalRooms  int    `json:"total_rooms"`

	Buildings datatypes.JSON `json:"buildings,omitempty" gorm:"column:buildings"`
	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	Status string `json:"status" gorm:"type:varchar(20);default:active"`

	WardenName    string `json:"warden_name" gorm:"type:varchar(100)"`
	WardenContact string `json:"warden_contact" gorm:"type:varchar(20)"`
	WardenEmail   string `json:"warden_email,omitempty" gorm:"type:varchar(100)"`

	// Denormalized counter. Never trusted as-is: list reads recompute it
	// from the rooms table (see services.HostelService).
	OccupiedRooms int `json:"occupied_rooms" gorm:"column:occupied_rooms;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
