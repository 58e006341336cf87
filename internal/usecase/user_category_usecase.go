package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateUserCategoryInput represents the input for creating a user category.
type CreateUserCategoryInput struct {
	Name     string `json:"name"`
	HexColor string `json:"hexcolor"`
}

// UpdateUserCategoryInput represents the input for a partial category update.
type UpdateUserCategoryInput struct {
	Name     *string `json:"name,omitempty"`
	HexColor *string `json:"hexcolor,omitempty"`
}

// UserCategoryUsecase manages user-defined transaction categories.
type UserCategoryUsecase interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, input *CreateUserCategoryInput) (*entity.UserCategory, error)
	GetCategories(ctx context.Context, userID uuid.UUID) ([]*entity.UserCategory, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, input *UpdateUserCategoryInput) (*entity.UserCategory, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}
