package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel mirrors the 'transactions' table. RewardMappingID is
// derived state, recomputed by the service on every write.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ParentID        *uuid.UUID      `gorm:"type:uuid;index"`
	CardID          *uuid.UUID      `gorm:"type:uuid"`
	UserCategoryID  *uuid.UUID      `gorm:"type:uuid"`
	MerchantID      *uuid.UUID      `gorm:"type:uuid"`
	RewardMappingID *uuid.UUID      `gorm:"type:uuid"`
	Type            string          `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	AuthorizedDate  time.Time       `gorm:"not null;index"`
	Details         string          `gorm:"type:text"`
	HasChildren     bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Parent        *TransactionModel   `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Card          *PaymentCardModel   `gorm:"foreignKey:CardID;constraint:OnDelete:SET NULL"`
	UserCategory  *UserCategoryModel  `gorm:"foreignKey:UserCategoryID;constraint:OnDelete:SET NULL"`
	Merchant      *MerchantModel      `gorm:"foreignKey:MerchantID;constraint:OnDelete:SET NULL"`
	RewardMapping *RewardMappingModel `gorm:"foreignKey:RewardMappingID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
