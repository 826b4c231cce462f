package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID string `json:"tenant_id" gorm:"column:tenant_id;type:varchar(36);index;not null"`

	Amount        float64 `json:"amount" gorm:"not null"`
	Date          string  `json:"date" gorm:"type:varchar(10);not null"`
	Status        string  `json:"status" gorm:"type:varchar(20);not null"`
	PaymentMethod string  `json:"payment_method" gorm:"column:payment_method;type:varchar(50);not null"`
	Notes         string  `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
