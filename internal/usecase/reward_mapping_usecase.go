package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRewardMappingInput represents the input for creating a reward mapping.
type CreateRewardMappingInput struct {
	CardID           uuid.UUID         `json:"card_id"`
	MerchantID       uuid.UUID         `json:"merchant_id"`
	MCCID            *uuid.UUID        `json:"mcc_id,omitempty"`
	CashBack         decimal.Decimal   `json:"cash_back"`
	PointsMultiplier int               `json:"points_multiplier"`
	RewardKind       entity.RewardKind `json:"reward_kind"`
}

// UpdateRewardMappingInput represents the input for a partial mapping update.
// Nil fields are left untouched. The duplicate-pairing check runs regardless
// of which fields change.
type UpdateRewardMappingInput struct {
	CardID           *uuid.UUID         `json:"card_id,omitempty"`
	MerchantID       *uuid.UUID         `json:"merchant_id,omitempty"`
	MCCID            *uuid.UUID         `json:"mcc_id,omitempty"`
	CashBack         *decimal.Decimal   `json:"cash_back,omitempty"`
	PointsMultiplier *int               `json:"points_multiplier,omitempty"`
	RewardKind       *entity.RewardKind `json:"reward_kind,omitempty"`
}

// RewardMappingUsecase is the ledger of (card, merchant) reward pairings.
// For a given owner each pairing maps to at most one reward mapping; the
// check is executed inside the same database transaction as every write.
type RewardMappingUsecase interface {
	// CreateMapping creates a mapping, rejecting a duplicated pairing with
	// domainerrors.ErrDuplicatePairing.
	CreateMapping(ctx context.Context, userID uuid.UUID, input *CreateRewardMappingInput) (*entity.RewardMapping, error)

	// UpdateMapping applies a partial update, re-running the duplicate-pairing
	// check against all other mappings of the owner.
	UpdateMapping(ctx context.Context, userID, mappingID uuid.UUID, input *UpdateRewardMappingInput) (*entity.RewardMapping, error)

	// FindForPairing is a pure lookup of the mapping for the exact
	// (card, merchant) pairing. Returns nil without error when none exists.
	FindForPairing(ctx context.Context, userID, cardID, merchantID uuid.UUID) (*entity.RewardMapping, error)

	// GetMappings retrieves all mappings for a user.
	GetMappings(ctx context.Context, userID uuid.UUID) ([]*entity.RewardMapping, error)

	// DeleteMapping removes a mapping the user owns.
	DeleteMapping(ctx context.Context, userID, mappingID uuid.UUID) error
}
