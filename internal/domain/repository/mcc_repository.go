package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// ErrMCCNotFound is returned when a merchant category code is not found.
var ErrMCCNotFound = errors.New("merchant category code not found")

// MCCRepository defines the interface for merchant category code database operations.
type MCCRepository interface {
	// CreateMCCs persists a batch of merchant category codes.
	CreateMCCs(ctx context.Context, codes []*entity.MerchantCategoryCode) error

	// FindMCCByID retrieves a code record by its unique ID.
	// Returns ErrMCCNotFound if no record exists.
	FindMCCByID(ctx context.Context, id uuid.UUID) (*entity.MerchantCategoryCode, error)

	// ListMCCs retrieves all merchant category codes ordered by code.
	ListMCCs(ctx context.Context) ([]*entity.MerchantCategoryCode, error)

	// CountMCCs returns the total number of merchant category codes.
	// Used by the bulk import to detect an already-populated table.
	CountMCCs(ctx context.Context) (int64, error)

	// DeleteMCC removes a code record by its ID. Reward mappings referencing
	// it keep existing with the link cleared.
	DeleteMCC(ctx context.Context, id uuid.UUID) error
}
