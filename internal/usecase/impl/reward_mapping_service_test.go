package impl

import (
	"context"
	"sync"
	"testing"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRewardMappingService(repos *memRepos) *rewardMappingService {
	return &rewardMappingService{
		txManager:   newMemTxManager(repos),
		mappingRepo: repos,
	}
}

func TestRewardMappingServiceCreate(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()

	mapping, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     uuid.New(),
		MerchantID: uuid.New(),
		CashBack:   decimal.RequireFromString("2.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RewardKindCashBack, mapping.RewardKind)
	assert.True(t, mapping.CashBack.Equal(decimal.RequireFromString("2.5")))
}

func TestRewardMappingServiceCreateRejectsDuplicatePairing(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()
	cardID := uuid.New()
	merchantID := uuid.New()

	_, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     cardID,
		MerchantID: merchantID,
		CashBack:   decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	_, err = svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     cardID,
		MerchantID: merchantID,
		CashBack:   decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicatePairing)

	mappings, err := svc.GetMappings(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, mappings, 1)
}

func TestRewardMappingServiceCreateSamePairingDifferentUsers(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	cardID := uuid.New()
	merchantID := uuid.New()

	_, err := svc.CreateMapping(context.Background(), uuid.New(), &usecase.CreateRewardMappingInput{
		CardID: cardID, MerchantID: merchantID, CashBack: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	// Uniqueness is scoped per owner.
	_, err = svc.CreateMapping(context.Background(), uuid.New(), &usecase.CreateRewardMappingInput{
		CardID: cardID, MerchantID: merchantID, CashBack: decimal.NewFromInt(1),
	})
	assert.NoError(t, err)
}

func TestRewardMappingServiceConcurrentCreateOneWinner(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()
	cardID := uuid.New()
	merchantID := uuid.New()

	const writers = 8

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, errs[i] = svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
				CardID:     cardID,
				MerchantID: merchantID,
				CashBack:   decimal.NewFromInt(1),
			})
		}()
	}
	wg.Wait()

	var created, rejected int
	for _, err := range errs {
		if err == nil {
			created++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrDuplicatePairing)
		rejected++
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, writers-1, rejected)

	mappings, err := svc.GetMappings(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, mappings, 1)
}

func TestRewardMappingServiceUpdateKeepingPairing(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()

	mapping, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     uuid.New(),
		MerchantID: uuid.New(),
		CashBack:   decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	// The duplicate check excludes the record itself, so an update that keeps
	// the pairing must pass.
	newCashBack := decimal.RequireFromString("4.0")
	updated, err := svc.UpdateMapping(context.Background(), userID, mapping.ID, &usecase.UpdateRewardMappingInput{
		CashBack: &newCashBack,
	})
	require.NoError(t, err)
	assert.True(t, updated.CashBack.Equal(newCashBack))
}

func TestRewardMappingServiceUpdateOntoTakenPairing(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()
	cardID := uuid.New()
	takenMerchantID := uuid.New()

	_, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID: cardID, MerchantID: takenMerchantID, CashBack: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	other, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID: cardID, MerchantID: uuid.New(), CashBack: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	_, err = svc.UpdateMapping(context.Background(), userID, other.ID, &usecase.UpdateRewardMappingInput{
		MerchantID: &takenMerchantID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicatePairing)
}

func TestRewardMappingServiceValidation(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()

	_, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     uuid.New(),
		MerchantID: uuid.New(),
		CashBack:   decimal.NewFromInt(101),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:           uuid.New(),
		MerchantID:       uuid.New(),
		PointsMultiplier: 10,
		RewardKind:       entity.RewardKindPoints,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID:     uuid.New(),
		MerchantID: uuid.New(),
		RewardKind: entity.RewardKind("Stickers"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestRewardMappingServiceFindForPairing(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()
	cardID := uuid.New()
	merchantID := uuid.New()

	mapping, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID: cardID, MerchantID: merchantID, CashBack: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	found, err := svc.FindForPairing(context.Background(), userID, cardID, merchantID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, mapping.ID, found.ID)

	// An absent pairing is a nil result, not an error.
	found, err = svc.FindForPairing(context.Background(), userID, cardID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRewardMappingServiceDeleteOwnership(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestRewardMappingService(repos)
	userID := uuid.New()

	mapping, err := svc.CreateMapping(context.Background(), userID, &usecase.CreateRewardMappingInput{
		CardID: uuid.New(), MerchantID: uuid.New(), CashBack: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	err = svc.DeleteMapping(context.Background(), uuid.New(), mapping.ID)
	assert.ErrorIs(t, err, ErrMappingNotOwned)

	require.NoError(t, svc.DeleteMapping(context.Background(), userID, mapping.ID))

	mappings, err := svc.GetMappings(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, mappings)
}
