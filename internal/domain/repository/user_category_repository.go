package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// ErrUserCategoryNotFound is returned when a user category is not found.
var ErrUserCategoryNotFound = errors.New("user category not found")

// UserCategoryRepository defines the interface for user category database operations.
type UserCategoryRepository interface {
	// CreateCategory persists a new user category.
	CreateCategory(ctx context.Context, category *entity.UserCategory) error

	// FindCategoryByID retrieves a category by its unique ID.
	// Returns ErrUserCategoryNotFound if no category exists.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.UserCategory, error)

	// FindCategoriesByUser retrieves all categories belonging to a user.
	FindCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserCategory, error)

	// UpdateCategory updates an existing category record.
	UpdateCategory(ctx context.Context, category *entity.UserCategory) error

	// DeleteCategory removes a category by its ID. Merchants and transactions
	// referencing it keep existing with the reference cleared.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
