package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentCardModel mirrors the 'payment_cards' table.
type PaymentCardModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	CardType   string    `gorm:"type:varchar(20);not null"`
	FourDigits int       `gorm:"not null;check:four_digits >= 0 AND four_digits <= 9999"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentCardModel) TableName() string {
	return "payment_cards"
}
