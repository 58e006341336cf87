package model

import "github.com/google/uuid"

// MerchantCategoryCodeModel mirrors the 'merchant_category_codes' reference table.
type MerchantCategoryCodeModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code                int       `gorm:"not null;uniqueIndex"`
	EditedDescription   string    `gorm:"type:text"`
	CombinedDescription string    `gorm:"type:text"`
	USDADescription     string    `gorm:"type:text"`
	IRSDescription      string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (MerchantCategoryCodeModel) TableName() string {
	return "merchant_category_codes"
}
