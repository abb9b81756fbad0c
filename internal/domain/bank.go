package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bank is a system-registered withdrawal destination.
type Bank struct {
	BankID        uuid.UUID `gorm:"column:bank_id;type:uuid;primaryKey" json:"bank_id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	IBAN          string    `gorm:"column:iban;not null" json:"iban"`
	AccountHolder string    `gorm:"column:account_holder;not null" json:"account_holder"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Bank) TableName() string {
	return "banks"
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.BankID == uuid.Nil {
		b.BankID = uuid.New()
	}
	return nil
}
