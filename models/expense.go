package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`

	Amount      float64 `json:"amount" gorm:"not null"`
	Date        string  `json:"date" gorm:"type:varchar(10);not null"`
	Category    string  `json:"category" gorm:"type:varchar(50);not null"`
	SubCategory string  `json:"sub_category" gorm:"column:sub_category;type:varchar(50)"`
	PaymentMode string  `json:"payment_mode" gorm:"column:payment_mode;type:varchar(50)"`
	Description string  `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
