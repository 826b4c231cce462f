package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AllocationStatusActive   = "active"
	AllocationStatusUpcoming = "upcoming"
	AllocationStatusExpired  = "expired"
)

// RoomAllocation is the dated, duration-bound link between one tenant and
// one room. Distinct from Room.CurrentOccupancy, which is a live counter
// incremented when the allocation is created.
type RoomAllocation struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RoomID   string `json:"room_id" gorm:"column:room_id;type:varchar(36);index;not null"`
	TenantID string `json:"tenant_id" gorm:"column:tenant_id;type:varchar(36);index;not null"`

	StartDate string `json:"start_date" gorm:"column:start_date;type:varchar(10);not null"`
	Duration  int    `json:"duration" gorm:"not null"` // months

	Status string `json:"status" gorm:"type:varchar(20);default:active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

func (a *RoomAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
