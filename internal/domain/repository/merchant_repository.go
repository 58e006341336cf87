package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// ErrMerchantNotFound is returned when a merchant is not found.
var ErrMerchantNotFound = errors.New("merchant not found")

// MerchantRepository defines the interface for merchant database operations.
type MerchantRepository interface {
	// CreateMerchant persists a new merchant.
	CreateMerchant(ctx context.Context, merchant *entity.Merchant) error

	// FindMerchantByID retrieves a merchant by its unique ID.
	// Returns ErrMerchantNotFound if no merchant exists.
	FindMerchantByID(ctx context.Context, id uuid.UUID) (*entity.Merchant, error)

	// FindMerchantByNameAndLocation retrieves the merchant matching
	// (owner, name, location) exactly. Used for get-or-create semantics.
	// Returns ErrMerchantNotFound if no merchant matches.
	FindMerchantByNameAndLocation(ctx context.Context, userID uuid.UUID, name, location string) (*entity.Merchant, error)

	// FindMerchantsByUser retrieves all merchants belonging to a user.
	FindMerchantsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Merchant, error)

	// UpdateMerchant updates an existing merchant record. Location and both
	// coordinate fields are written in the same statement, never independently.
	UpdateMerchant(ctx context.Context, merchant *entity.Merchant) error

	// DeleteMerchant removes a merchant by its ID. Reward mappings referencing
	// the merchant are removed by the database cascade.
	DeleteMerchant(ctx context.Context, id uuid.UUID) error
}
