package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateMerchantInput represents the input for creating a merchant.
type CreateMerchantInput struct {
	Name              string     `json:"name"`
	Location          string     `json:"location"`
	DefaultCategoryID *uuid.UUID `json:"default_category_id,omitempty"`
}

// UpdateMerchantInput represents the input for updating an existing merchant.
// Nil fields are left untouched.
type UpdateMerchantInput struct {
	Name              *string    `json:"name,omitempty"`
	Location          *string    `json:"location,omitempty"`
	DefaultCategoryID *uuid.UUID `json:"default_category_id,omitempty"`
}

// MerchantUsecase owns merchant records and keeps their coordinates consistent
// with their free-text location through the geo resolver.
type MerchantUsecase interface {
	// CreateMerchant creates a merchant, resolving its location if one is given.
	CreateMerchant(ctx context.Context, userID uuid.UUID, input *CreateMerchantInput) (*entity.Merchant, error)

	// GetOrCreateMerchant returns the merchant matching (owner, name, location)
	// or creates one, running the same location-resolution rule on creation.
	GetOrCreateMerchant(ctx context.Context, userID uuid.UUID, name, location string) (*entity.Merchant, error)

	// UpsertLocation stores a new location for the merchant. An empty location
	// clears both coordinates unconditionally. A changed location, or one
	// without resolved coordinates, triggers a resolver call; the resolver's
	// normalized text replaces the supplied text when resolution succeeds.
	// An unchanged location with coordinates present performs no lookup.
	UpsertLocation(ctx context.Context, userID, merchantID uuid.UUID, newLocation string) (*entity.Merchant, error)

	// GetMerchants retrieves all merchants for a user.
	GetMerchants(ctx context.Context, userID uuid.UUID) ([]*entity.Merchant, error)

	// GetMerchant retrieves a single merchant owned by the user.
	GetMerchant(ctx context.Context, userID, merchantID uuid.UUID) (*entity.Merchant, error)

	// UpdateMerchant applies a partial update, re-running location resolution
	// when the location changes.
	UpdateMerchant(ctx context.Context, userID, merchantID uuid.UUID, input *UpdateMerchantInput) (*entity.Merchant, error)

	// DeleteMerchant removes a merchant the user owns.
	DeleteMerchant(ctx context.Context, userID, merchantID uuid.UUID) error
}
