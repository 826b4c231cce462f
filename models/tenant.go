package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tenant struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`

	Name             string `json:"name" gorm:"type:varchar(100);not null"`
	Email            string `json:"email" gorm:"type:varchar(100);not null"`
	Phone            string `json:"phone" gorm:"type:varchar(20);not null"`
	EmergencyContact string `json:"emergency_contact" gorm:"column:emergency_contact;type:varchar(100)"`

	// Dates kept as yyyy-mm-dd text, matching the dashboard payloads.
	JoinDate string `json:"join_date" gorm:"column:join_date;type:varchar(10)"`
	LeaseEnd string `json:"lease_end,omitempty" gorm:"column:lease_end;type:varchar(10)"`

	// Back-reference to the room the tenant currently lives in; ownership
	// of the link is the allocation row, this is a lookup convenience.
	RoomID *string `json:"room_id,omitempty" gorm:"column:room_id;type:varchar(36);index"`

	// Advisory only; never enforced against the allocated room.
	Preferences datatypes.JSON `json:"preferences,omitempty" gorm:"column:preferences"`
	Documents   datatypes.JSON `json:"documents,omitempty" gorm:"column:documents"`

	// Client-generated token: resubmitting the same add-tenant form reuses
	// the token and fails the duplicate insert instead of double-booking.
	IdempotencyKey *string `json:"-" gorm:"column:idempotency_key;type:varchar(64);uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
