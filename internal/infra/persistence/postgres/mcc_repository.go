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

// mccCreateBatchSize bounds the INSERT statements the bulk import produces.
const mccCreateBatchSize = 200

// mccRepository implements the repository.MCCRepository interface using GORM.
type mccRepository struct {
	db *gorm.DB
}

// NewMCCRepository is the constructor for mccRepository.
func NewMCCRepository(db *gorm.DB) repository.MCCRepository {
	return &mccRepository{db: db}
}

// CreateMCCs persists a batch of merchant category codes.
func (repo *mccRepository) CreateMCCs(ctx context.Context, codes []*entity.MerchantCategoryCode) error {
	if len(codes) == 0 {
		return nil
	}

	codeMs := make([]model.MerchantCategoryCodeModel, 0, len(codes))
	for _, code := range codes {
		codeMs = append(codeMs, *fromMCCDomain(code))
	}

	if err := repo.db.WithContext(ctx).CreateInBatches(codeMs, mccCreateBatchSize).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create merchant category codes")
	}

	for i := range codeMs {
		codes[i].ID = codeMs[i].ID
	}

	return nil
}

// FindMCCByID retrieves a single code record by its unique ID.
func (repo *mccRepository) FindMCCByID(ctx context.Context, id uuid.UUID) (*entity.MerchantCategoryCode, error) {
	var codeM model.MerchantCategoryCodeModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMCCNotFound
		}

		return nil, errors.Wrap(err, "failed to find merchant category code by id")
	}

	return toMCCDomain(&codeM), nil
}

// ListMCCs retrieves all merchant category codes ordered by code.
func (repo *mccRepository) ListMCCs(ctx context.Context) ([]*entity.MerchantCategoryCode, error) {
	var codeMs []model.MerchantCategoryCodeModel
	err := repo.db.WithContext(ctx).
		Order("code").
		Find(&codeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant category codes")
	}

	codes := make([]*entity.MerchantCategoryCode, 0, len(codeMs))
	for i := range codeMs {
		codes = append(codes, toMCCDomain(&codeMs[i]))
	}

	return codes, nil
}

// CountMCCs returns the total number of merchant category codes.
func (repo *mccRepository) CountMCCs(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.MerchantCategoryCodeModel{}).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count merchant category codes")
	}

	return count, nil
}

// DeleteMCC removes a code record by its ID. Reward mappings referencing it
// survive with the link set to NULL by the database.
func (repo *mccRepository) DeleteMCC(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MerchantCategoryCodeModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete merchant category code")
	}

	if result.RowsAffected == 0 {
		return repository.ErrMCCNotFound
	}

	return nil
}

// toMCCDomain maps the persistence model back to a pure domain entity.
func toMCCDomain(codeM *model.MerchantCategoryCodeModel) *entity.MerchantCategoryCode {
	return &entity.MerchantCategoryCode{
		ID:                  codeM.ID,
		Code:                codeM.Code,
		EditedDescription:   codeM.EditedDescription,
		CombinedDescription: codeM.CombinedDescription,
		USDADescription:     codeM.USDADescription,
		IRSDescription:      codeM.IRSDescription,
	}
}

// fromMCCDomain maps a pure domain entity to a GORM persistence model.
func fromMCCDomain(code *entity.MerchantCategoryCode) *model.MerchantCategoryCodeModel {
	return &model.MerchantCategoryCodeModel{
		ID:                  code.ID,
		Code:                code.Code,
		EditedDescription:   code.EditedDescription,
		CombinedDescription: code.CombinedDescription,
		USDADescription:     code.USDADescription,
		IRSDescription:      code.IRSDescription,
	}
}
