package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RewardKind represents the kind of reward a card earns at a merchant.
type RewardKind string

const (
	// RewardKindPoints means the mapping earns a points multiplier.
	RewardKindPoints RewardKind = "Points"
	// RewardKindCashBack means the mapping earns a cash-back percentage.
	RewardKindCashBack RewardKind = "CashBack"
)

// String returns the string representation of the RewardKind.
func (k RewardKind) String() string {
	return string(k)
}

// IsValid checks if the RewardKind is a valid value.
func (k RewardKind) IsValid() bool {
	switch k {
	case RewardKindPoints, RewardKindCashBack:
		return true
	default:
		return false
	}
}

// RewardMapping associates a payment card with a merchant and records the
// reward earned on that pairing. For a given user the (card, merchant) pair is
// unique across all mappings; the ledger enforces this before every write.
type RewardMapping struct {
	ID               uuid.UUID       // The unique identifier for the mapping.
	UserID           uuid.UUID       // The owning user.
	CardID           uuid.UUID       // The paired payment card.
	MerchantID       uuid.UUID       // The paired merchant.
	MCCID            *uuid.UUID      // Optional reference MCC. Cleared when the MCC is deleted.
	CashBack         decimal.Decimal // Cash-back percentage, 0-100.
	PointsMultiplier int             // Points multiplier, 0-9.
	RewardKind       RewardKind      // Which of the two reward fields applies.
	CreatedAt        time.Time       // Timestamp of when this mapping was created.
	UpdatedAt        time.Time       // Timestamp of the last modification.
}
