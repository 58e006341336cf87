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

// merchantRepository implements the repository.MerchantRepository interface using GORM.
type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository is the constructor for merchantRepository.
func NewMerchantRepository(db *gorm.DB) repository.MerchantRepository {
	return &merchantRepository{db: db}
}

// CreateMerchant persists a new merchant entity to the database.
func (repo *merchantRepository) CreateMerchant(ctx context.Context, merchant *entity.Merchant) error {
	merchantM := fromMerchantDomain(merchant)

	if err := repo.db.WithContext(ctx).Create(merchantM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create merchant")
	}

	merchant.ID = merchantM.ID
	merchant.CreatedAt = merchantM.CreatedAt
	merchant.UpdatedAt = merchantM.UpdatedAt

	return nil
}

// FindMerchantByID retrieves a single merchant by its unique ID.
func (repo *merchantRepository) FindMerchantByID(ctx context.Context, id uuid.UUID) (*entity.Merchant, error) {
	var merchantM model.MerchantModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&merchantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMerchantNotFound
		}

		return nil, errors.Wrap(err, "failed to find merchant by id")
	}

	return toMerchantDomain(&merchantM), nil
}

// FindMerchantByNameAndLocation retrieves the merchant matching the owner, name
// and location triple exactly. The composite index on those columns backs this
// lookup for the get-or-create path on transaction entry.
func (repo *merchantRepository) FindMerchantByNameAndLocation(ctx context.Context, userID uuid.UUID, name, location string) (*entity.Merchant, error) {
	var merchantM model.MerchantModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND location = ?", userID, name, location).
		First(&merchantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMerchantNotFound
		}

		return nil, errors.Wrap(err, "failed to find merchant by name and location")
	}

	return toMerchantDomain(&merchantM), nil
}

// FindMerchantsByUser retrieves all merchants belonging to a user.
func (repo *merchantRepository) FindMerchantsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Merchant, error) {
	var merchantMs []model.MerchantModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&merchantMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find merchants by user")
	}

	merchants := make([]*entity.Merchant, 0, len(merchantMs))
	for i := range merchantMs {
		merchants = append(merchants, toMerchantDomain(&merchantMs[i]))
	}

	return merchants, nil
}

// UpdateMerchant modifies an existing merchant record. Save writes every
// column, so location and the coordinate pair always land in one statement.
func (repo *merchantRepository) UpdateMerchant(ctx context.Context, merchant *entity.Merchant) error {
	merchantM := fromMerchantDomain(merchant)

	if err := repo.db.WithContext(ctx).Save(merchantM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update merchant")
	}

	merchant.UpdatedAt = merchantM.UpdatedAt

	return nil
}

// DeleteMerchant removes a merchant by its ID. The ON DELETE CASCADE constraint
// on reward_mappings removes any mapping pairing this merchant.
func (repo *merchantRepository) DeleteMerchant(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MerchantModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete merchant")
	}

	if result.RowsAffected == 0 {
		return repository.ErrMerchantNotFound
	}

	return nil
}

// toMerchantDomain maps the persistence model back to a pure domain entity.
func toMerchantDomain(merchantM *model.MerchantModel) *entity.Merchant {
	return &entity.Merchant{
		ID:                merchantM.ID,
		UserID:            merchantM.UserID,
		Name:              merchantM.Name,
		Location:          merchantM.Location,
		Latitude:          merchantM.Latitude,
		Longitude:         merchantM.Longitude,
		DefaultCategoryID: merchantM.DefaultCategoryID,
		CreatedAt:         merchantM.CreatedAt,
		UpdatedAt:         merchantM.UpdatedAt,
	}
}

// fromMerchantDomain maps a pure domain entity to a GORM persistence model.
func fromMerchantDomain(merchant *entity.Merchant) *model.MerchantModel {
	return &model.MerchantModel{
		ID:                merchant.ID,
		UserID:            merchant.UserID,
		Name:              merchant.Name,
		Location:          merchant.Location,
		Latitude:          merchant.Latitude,
		Longitude:         merchant.Longitude,
		DefaultCategoryID: merchant.DefaultCategoryID,
		CreatedAt:         merchant.CreatedAt,
		UpdatedAt:         merchant.UpdatedAt,
	}
}
