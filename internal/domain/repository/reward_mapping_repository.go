package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for reward mapping persistence.
var (
	// ErrRewardMappingNotFound is returned when a reward mapping is not found.
	ErrRewardMappingNotFound = errors.New("reward mapping not found")
	// ErrPairingTaken is returned when the (card, merchant) unique constraint is violated.
	ErrPairingTaken = errors.New("card and merchant pairing already mapped")
)

// RewardMappingRepository defines the interface for reward mapping database operations.
// The ledger's duplicate-pairing invariant relies on ExistsOtherForPairing being
// executed inside the same database transaction as the subsequent write.
type RewardMappingRepository interface {
	// CreateMapping persists a new reward mapping.
	// Returns ErrPairingTaken when the composite unique index is violated.
	CreateMapping(ctx context.Context, mapping *entity.RewardMapping) error

	// FindMappingByID retrieves a mapping by its unique ID.
	// Returns ErrRewardMappingNotFound if no mapping exists.
	FindMappingByID(ctx context.Context, id uuid.UUID) (*entity.RewardMapping, error)

	// FindMappingForPairing retrieves the mapping for the exact
	// (owner, card, merchant) pairing.
	// Returns ErrRewardMappingNotFound if no mapping exists.
	FindMappingForPairing(ctx context.Context, userID, cardID, merchantID uuid.UUID) (*entity.RewardMapping, error)

	// FindMappingsByUser retrieves all mappings belonging to a user.
	FindMappingsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RewardMapping, error)

	// ExistsOtherForPairing reports whether any mapping other than excludeID
	// already uses the (card, merchant) pairing for this owner. excludeID is
	// uuid.Nil on insert.
	ExistsOtherForPairing(ctx context.Context, userID, cardID, merchantID, excludeID uuid.UUID) (bool, error)

	// UpdateMapping updates an existing mapping record.
	// Returns ErrPairingTaken when the composite unique index is violated.
	UpdateMapping(ctx context.Context, mapping *entity.RewardMapping) error

	// DeleteMapping removes a mapping by its ID.
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}
