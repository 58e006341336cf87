package impl

import (
	"context"
	"time"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ErrMappingNotOwned is returned when a user touches a mapping they don't own.
var ErrMappingNotOwned = errors.New("unauthorized to access this reward mapping")

var (
	cashBackMin = decimal.Zero
	cashBackMax = decimal.NewFromInt(100)
)

const pointsMultiplierMax = 9

type rewardMappingService struct {
	txManager   repository.TransactionManager
	mappingRepo repository.RewardMappingRepository
}

// RewardMappingServiceParams holds dependencies for RewardMappingService, injected by Fx.
type RewardMappingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	MappingRepo repository.RewardMappingRepository
}

// NewRewardMappingService creates a new reward mapping service instance.
func NewRewardMappingService(params RewardMappingServiceParams) usecase.RewardMappingUsecase {
	return &rewardMappingService{
		txManager:   params.TxManager,
		mappingRepo: params.MappingRepo,
	}
}

// CreateMapping creates a mapping. The duplicate-pairing scan and the insert
// share one database transaction so concurrent writers cannot both pass the
// check; the composite unique index is the backstop, reported as the same
// error.
func (s *rewardMappingService) CreateMapping(ctx context.Context, userID uuid.UUID, input *usecase.CreateRewardMappingInput) (*entity.RewardMapping, error) {
	mapping := &entity.RewardMapping{
		ID:               uuid.New(),
		UserID:           userID,
		CardID:           input.CardID,
		MerchantID:       input.MerchantID,
		MCCID:            input.MCCID,
		CashBack:         input.CashBack,
		PointsMultiplier: input.PointsMultiplier,
		RewardKind:       input.RewardKind,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if mapping.RewardKind == "" {
		mapping.RewardKind = entity.RewardKindCashBack
	}
	if err := validateMapping(mapping); err != nil {
		return nil, err
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.RewardMappingRepo()

		if err := s.rejectDuplicatePairing(ctx, repo, mapping, uuid.Nil); err != nil {
			return err
		}

		if err := repo.CreateMapping(ctx, mapping); err != nil {
			if errors.Is(err, repository.ErrPairingTaken) {
				return domainerrors.ErrDuplicatePairing
			}

			return errors.Wrap(err, "failed to create reward mapping")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapping, nil
}

// UpdateMapping applies a partial update. The duplicate scan excludes the
// record itself and runs even when the pairing fields are untouched.
func (s *rewardMappingService) UpdateMapping(ctx context.Context, userID, mappingID uuid.UUID, input *usecase.UpdateRewardMappingInput) (*entity.RewardMapping, error) {
	var mapping *entity.RewardMapping
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.RewardMappingRepo()

		var txErr error
		mapping, txErr = s.ownedMapping(ctx, repo, userID, mappingID)
		if txErr != nil {
			return txErr
		}

		if input.CardID != nil {
			mapping.CardID = *input.CardID
		}
		if input.MerchantID != nil {
			mapping.MerchantID = *input.MerchantID
		}
		if input.MCCID != nil {
			mapping.MCCID = input.MCCID
		}
		if input.CashBack != nil {
			mapping.CashBack = *input.CashBack
		}
		if input.PointsMultiplier != nil {
			mapping.PointsMultiplier = *input.PointsMultiplier
		}
		if input.RewardKind != nil {
			mapping.RewardKind = *input.RewardKind
		}
		mapping.UpdatedAt = time.Now()

		if txErr = validateMapping(mapping); txErr != nil {
			return txErr
		}

		if txErr = s.rejectDuplicatePairing(ctx, repo, mapping, mapping.ID); txErr != nil {
			return txErr
		}

		if txErr = repo.UpdateMapping(ctx, mapping); txErr != nil {
			if errors.Is(txErr, repository.ErrPairingTaken) {
				return domainerrors.ErrDuplicatePairing
			}

			return errors.Wrap(txErr, "failed to update reward mapping")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapping, nil
}

// FindForPairing is a pure lookup with no side effects. A missing mapping is
// reported as (nil, nil).
func (s *rewardMappingService) FindForPairing(ctx context.Context, userID, cardID, merchantID uuid.UUID) (*entity.RewardMapping, error) {
	mapping, err := s.mappingRepo.FindMappingForPairing(ctx, userID, cardID, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrRewardMappingNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find mapping for pairing")
	}

	return mapping, nil
}

// GetMappings retrieves all mappings for a user.
func (s *rewardMappingService) GetMappings(ctx context.Context, userID uuid.UUID) ([]*entity.RewardMapping, error) {
	mappings, err := s.mappingRepo.FindMappingsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find mappings by user")
	}

	return mappings, nil
}

// DeleteMapping removes a mapping the user owns.
func (s *rewardMappingService) DeleteMapping(ctx context.Context, userID, mappingID uuid.UUID) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.RewardMappingRepo()

		if _, err := s.ownedMapping(ctx, repo, userID, mappingID); err != nil {
			return err
		}

		return repo.DeleteMapping(ctx, mappingID)
	})
}

// rejectDuplicatePairing enforces the per-owner uniqueness of the
// (card, merchant) pairing, excluding the record under update.
func (s *rewardMappingService) rejectDuplicatePairing(ctx context.Context, repo repository.RewardMappingRepository, mapping *entity.RewardMapping, excludeID uuid.UUID) error {
	exists, err := repo.ExistsOtherForPairing(ctx, mapping.UserID, mapping.CardID, mapping.MerchantID, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to check pairing uniqueness")
	}
	if exists {
		return domainerrors.ErrDuplicatePairing
	}

	return nil
}

// validateMapping checks the reward field ranges.
func validateMapping(mapping *entity.RewardMapping) error {
	if mapping.CashBack.LessThan(cashBackMin) || mapping.CashBack.GreaterThan(cashBackMax) {
		return domainerrors.ErrValidationFailed.WrapMessage("cash back percent must be between 0 and 100")
	}
	if mapping.PointsMultiplier < 0 || mapping.PointsMultiplier > pointsMultiplierMax {
		return domainerrors.ErrValidationFailed.WrapMessage("points multiplier must be between 0 and 9")
	}
	if !mapping.RewardKind.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown reward kind")
	}

	return nil
}

// ownedMapping fetches a mapping and verifies ownership.
func (s *rewardMappingService) ownedMapping(ctx context.Context, repo repository.RewardMappingRepository, userID, mappingID uuid.UUID) (*entity.RewardMapping, error) {
	mapping, err := repo.FindMappingByID(ctx, mappingID)
	if err != nil {
		if errors.Is(err, repository.ErrRewardMappingNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find mapping by ID")
	}

	if mapping.UserID != userID {
		return nil, ErrMappingNotOwned
	}

	return mapping, nil
}
