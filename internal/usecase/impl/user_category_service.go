package impl

import (
	"context"
	"regexp"
	"time"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// ErrCategoryNotOwned is returned when a user touches a category they don't own.
var ErrCategoryNotOwned = errors.New("unauthorized to access this category")

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type userCategoryService struct {
	categoryRepo repository.UserCategoryRepository
}

// UserCategoryServiceParams holds dependencies for UserCategoryService, injected by Fx.
type UserCategoryServiceParams struct {
	fx.In

	CategoryRepo repository.UserCategoryRepository
}

// NewUserCategoryService creates a new user category service instance.
func NewUserCategoryService(params UserCategoryServiceParams) usecase.UserCategoryUsecase {
	return &userCategoryService{
		categoryRepo: params.CategoryRepo,
	}
}

func (s *userCategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, input *usecase.CreateUserCategoryInput) (*entity.UserCategory, error) {
	category := &entity.UserCategory{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      input.Name,
		HexColor:  input.HexColor,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if category.HexColor == "" {
		category.HexColor = entity.DefaultHexColor
	}
	if !hexColorPattern.MatchString(category.HexColor) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("wrong hexadecimal color format")
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

func (s *userCategoryService) GetCategories(ctx context.Context, userID uuid.UUID) ([]*entity.UserCategory, error) {
	categories, err := s.categoryRepo.FindCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find categories by user")
	}

	return categories, nil
}

func (s *userCategoryService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, input *usecase.UpdateUserCategoryInput) (*entity.UserCategory, error) {
	category, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.HexColor != nil {
		if !hexColorPattern.MatchString(*input.HexColor) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("wrong hexadecimal color format")
		}
		category.HexColor = *input.HexColor
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

func (s *userCategoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.ownedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}

func (s *userCategoryService) ownedCategory(ctx context.Context, userID, categoryID uuid.UUID) (*entity.UserCategory, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrUserCategoryNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	if category.UserID != userID {
		return nil, ErrCategoryNotOwned
	}

	return category, nil
}
