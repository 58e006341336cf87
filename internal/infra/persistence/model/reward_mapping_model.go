package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RewardMappingModel mirrors the 'reward_mappings' table. The composite unique
// index on (user_id, card_id, merchant_id) is the database backstop for the
// duplicate-pairing check the service performs inside the same transaction.
type RewardMappingModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reward_pairing,priority:1"`
	CardID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reward_pairing,priority:2"`
	MerchantID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reward_pairing,priority:3"`
	MCCID            *uuid.UUID      `gorm:"type:uuid"`
	CashBack         decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	PointsMultiplier int             `gorm:"not null;default:0;check:points_multiplier >= 0 AND points_multiplier <= 9"`
	RewardKind       string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Card     *PaymentCardModel          `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Merchant *MerchantModel             `gorm:"foreignKey:MerchantID;constraint:OnDelete:CASCADE"`
	MCC      *MerchantCategoryCodeModel `gorm:"foreignKey:MCCID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (RewardMappingModel) TableName() string {
	return "reward_mappings"
}
