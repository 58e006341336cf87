package model

import (
	"time"

	"github.com/google/uuid"
)

// UserCategoryModel mirrors the 'user_categories' table.
type UserCategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	HexColor  string    `gorm:"type:varchar(7);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserCategoryModel) TableName() string {
	return "user_categories"
}
