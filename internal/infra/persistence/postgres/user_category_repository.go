package postgres

import (
	"context"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userCategoryRepository implements the repository.UserCategoryRepository interface using GORM.
type userCategoryRepository struct {
	db *gorm.DB
}

// NewUserCategoryRepository is the constructor for userCategoryRepository.
func NewUserCategoryRepository(db *gorm.DB) repository.UserCategoryRepository {
	return &userCategoryRepository{db: db}
}

// CreateCategory persists a new user category entity to the database.
func (repo *userCategoryRepository) CreateCategory(ctx context.Context, category *entity.UserCategory) error {
	categoryM := fromUserCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindCategoryByID retrieves a single category by its unique ID.
func (repo *userCategoryRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.UserCategory, error) {
	var categoryM model.UserCategoryModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find user category by id")
	}

	return toUserCategoryDomain(&categoryM), nil
}

// FindCategoriesByUser retrieves all categories belonging to a user.
func (repo *userCategoryRepository) FindCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserCategory, error) {
	var categoryMs []model.UserCategoryModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&categoryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user categories by user")
	}

	categories := make([]*entity.UserCategory, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toUserCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

// UpdateCategory modifies an existing category record.
func (repo *userCategoryRepository) UpdateCategory(ctx context.Context, category *entity.UserCategory) error {
	categoryM := fromUserCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Save(categoryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user category")
	}

	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// DeleteCategory removes a category by its ID. Merchants and transactions
// referencing it survive with the reference set to NULL by the database.
func (repo *userCategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserCategoryModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserCategoryNotFound
	}

	return nil
}

// toUserCategoryDomain maps the persistence model back to a pure domain entity.
func toUserCategoryDomain(categoryM *model.UserCategoryModel) *entity.UserCategory {
	return &entity.UserCategory{
		ID:        categoryM.ID,
		UserID:    categoryM.UserID,
		Name:      categoryM.Name,
		HexColor:  categoryM.HexColor,
		CreatedAt: categoryM.CreatedAt,
		UpdatedAt: categoryM.UpdatedAt,
	}
}

// fromUserCategoryDomain maps a pure domain entity to a GORM persistence model.
func fromUserCategoryDomain(category *entity.UserCategory) *model.UserCategoryModel {
	return &model.UserCategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		HexColor:  category.HexColor,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
