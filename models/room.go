package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HostelID *string `json:"hostel_id,omitempty" gorm:"column:hostel_id;type:varchar(36);index"`

	Number   string `json:"number" gorm:"type:varchar(50);not null"`
	Floor    string `json:"floor" gorm:"type:varchar(10);index"`
	Building string `json:"building" gorm:"type:varchar(50)"`
	Type     string `json:"type" gorm:"type:varchar(50)"`

	// Capacity and price arrive from the dashboard as text and are stored
	// as text; CapacityCount parses and validates on use.
	Capacity string `json:"capacity" gorm:"type:varchar(10)"`
	Price    string `json:"price" gorm:"type:varchar(20)"`

	Status           string `json:"status" gorm:"type:varchar(20);default:available"`
	CurrentOccupancy *int   `json:"current_occupancy" gorm:"column:current_occupancy;default:0"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
	PhotoURL  string         `json:"photo_url,omitempty" gorm:"column:photo_url;type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hostel *Hostel `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Occupancy returns the live tenant count, treating the nullable column as 0.
func (r *Room) Occupancy() int {
	if r.CurrentOccupancy == nil {
		return 0
	}
	return *r.CurrentOccupancy
}

// CapacityCount parses the text capacity column. Non-numeric or
// non-positive capacity marks the room record as malformed.
func (r *Room) CapacityCount() (int, error) {
	capacity, err := strconv.Atoi(strings.TrimSpace(r.Capacity))
	if err != nil {
		return 0, &InvalidRoomError{RoomID: r.ID, Reason: "capacity is not numeric: " + r.Capacity}
	}
	if capacity <= 0 {
		return 0, &InvalidRoomError{RoomID: r.ID, Reason: "capacity must be positive: " + r.Capacity}
	}
	return capacity, nil
}
