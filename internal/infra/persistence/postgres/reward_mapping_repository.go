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

// rewardMappingRepository implements the repository.RewardMappingRepository interface using GORM.
type rewardMappingRepository struct {
	db *gorm.DB
}

// NewRewardMappingRepository is the constructor for rewardMappingRepository.
func NewRewardMappingRepository(db *gorm.DB) repository.RewardMappingRepository {
	return &rewardMappingRepository{db: db}
}

// CreateMapping persists a new reward mapping entity to the database.
// The composite unique index on (user_id, card_id, merchant_id) backstops the
// duplicate-pairing check the service performs in the same transaction.
func (repo *rewardMappingRepository) CreateMapping(ctx context.Context, mapping *entity.RewardMapping) error {
	mappingM := fromRewardMappingDomain(mapping)

	if err := repo.db.WithContext(ctx).Create(mappingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrPairingTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reward mapping")
	}

	mapping.ID = mappingM.ID
	mapping.CreatedAt = mappingM.CreatedAt
	mapping.UpdatedAt = mappingM.UpdatedAt

	return nil
}

// FindMappingByID retrieves a single mapping by its unique ID.
func (repo *rewardMappingRepository) FindMappingByID(ctx context.Context, id uuid.UUID) (*entity.RewardMapping, error) {
	var mappingM model.RewardMappingModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&mappingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRewardMappingNotFound
		}

		return nil, errors.Wrap(err, "failed to find reward mapping by id")
	}

	return toRewardMappingDomain(&mappingM), nil
}

// FindMappingForPairing retrieves the mapping for the exact (owner, card, merchant) pairing.
func (repo *rewardMappingRepository) FindMappingForPairing(ctx context.Context, userID, cardID, merchantID uuid.UUID) (*entity.RewardMapping, error) {
	var mappingM model.RewardMappingModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ? AND merchant_id = ?", userID, cardID, merchantID).
		First(&mappingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRewardMappingNotFound
		}

		return nil, errors.Wrap(err, "failed to find reward mapping for pairing")
	}

	return toRewardMappingDomain(&mappingM), nil
}

// FindMappingsByUser retrieves all mappings belonging to a user.
func (repo *rewardMappingRepository) FindMappingsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RewardMapping, error) {
	var mappingMs []model.RewardMappingModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&mappingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reward mappings by user")
	}

	mappings := make([]*entity.RewardMapping, 0, len(mappingMs))
	for i := range mappingMs {
		mappings = append(mappings, toRewardMappingDomain(&mappingMs[i]))
	}

	return mappings, nil
}

// ExistsOtherForPairing reports whether any mapping other than excludeID
// already uses the (card, merchant) pairing for this owner.
func (repo *rewardMappingRepository) ExistsOtherForPairing(ctx context.Context, userID, cardID, merchantID, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.RewardMappingModel{}).
		Where("user_id = ? AND card_id = ? AND merchant_id = ? AND id <> ?", userID, cardID, merchantID, excludeID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check reward pairing uniqueness")
	}

	return count > 0, nil
}

// UpdateMapping modifies an existing mapping record.
func (repo *rewardMappingRepository) UpdateMapping(ctx context.Context, mapping *entity.RewardMapping) error {
	mappingM := fromRewardMappingDomain(mapping)

	if err := repo.db.WithContext(ctx).Save(mappingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrPairingTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update reward mapping")
	}

	mapping.UpdatedAt = mappingM.UpdatedAt

	return nil
}

// DeleteMapping removes a mapping by its ID.
func (repo *rewardMappingRepository) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RewardMappingModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete reward mapping")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRewardMappingNotFound
	}

	return nil
}

// toRewardMappingDomain maps the persistence model back to a pure domain entity.
func toRewardMappingDomain(mappingM *model.RewardMappingModel) *entity.RewardMapping {
	return &entity.RewardMapping{
		ID:               mappingM.ID,
		UserID:           mappingM.UserID,
		CardID:           mappingM.CardID,
		MerchantID:       mappingM.MerchantID,
		MCCID:            mappingM.MCCID,
		CashBack:         mappingM.CashBack,
		PointsMultiplier: mappingM.PointsMultiplier,
		RewardKind:       entity.RewardKind(mappingM.RewardKind),
		CreatedAt:        mappingM.CreatedAt,
		UpdatedAt:        mappingM.UpdatedAt,
	}
}

// fromRewardMappingDomain maps a pure domain entity to a GORM persistence model.
func fromRewardMappingDomain(mapping *entity.RewardMapping) *model.RewardMappingModel {
	return &model.RewardMappingModel{
		ID:               mapping.ID,
		UserID:           mapping.UserID,
		CardID:           mapping.CardID,
		MerchantID:       mapping.MerchantID,
		MCCID:            mapping.MCCID,
		CashBack:         mapping.CashBack,
		PointsMultiplier: mapping.PointsMultiplier,
		RewardKind:       mapping.RewardKind.String(),
		CreatedAt:        mapping.CreatedAt,
		UpdatedAt:        mapping.UpdatedAt,
	}
}
