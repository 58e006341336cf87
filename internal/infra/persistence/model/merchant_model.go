package model

import (
	"time"

	"github.com/google/uuid"
)

// MerchantModel mirrors the 'merchants' table. Location and the coordinate pair
// are always written together; a merchant without a location has all three empty.
type MerchantModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index:idx_merchants_owner_name_location,priority:1"`
	Name              string     `gorm:"type:varchar(255);not null;index:idx_merchants_owner_name_location,priority:2"`
	Location          string     `gorm:"type:varchar(255);index:idx_merchants_owner_name_location,priority:3"`
	Latitude          *float64   `gorm:"type:double precision"`
	Longitude         *float64   `gorm:"type:double precision"`
	DefaultCategoryID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	DefaultCategory *UserCategoryModel `gorm:"foreignKey:DefaultCategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (MerchantModel) TableName() string {
	return "merchants"
}
