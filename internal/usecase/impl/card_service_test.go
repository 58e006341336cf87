package impl

import (
	"context"
	"testing"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCardService(repos *memRepos) *cardService {
	return &cardService{
		txManager: newMemTxManager(repos),
		cardRepo:  repos,
	}
}

func TestCardServiceCreate(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestCardService(repos)
	userID := uuid.New()

	card, err := svc.CreateCard(context.Background(), userID, &usecase.CreateCardInput{
		Name:       "Cobalt",
		CardType:   entity.CardTypeAmex,
		FourDigits: 1234,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, card.UserID)

	cards, err := svc.GetCards(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCardServiceCreateValidation(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestCardService(repos)

	_, err := svc.CreateCard(context.Background(), uuid.New(), &usecase.CreateCardInput{
		Name:       "Mystery",
		CardType:   entity.CardType("Diners"),
		FourDigits: 1234,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.CreateCard(context.Background(), uuid.New(), &usecase.CreateCardInput{
		Name:       "Too Long",
		CardType:   entity.CardTypeVisa,
		FourDigits: 12345,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCardServiceUpdateOwnership(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestCardService(repos)
	userID := uuid.New()

	card, err := svc.CreateCard(context.Background(), userID, &usecase.CreateCardInput{
		Name:       "Cobalt",
		CardType:   entity.CardTypeAmex,
		FourDigits: 1234,
	})
	require.NoError(t, err)

	newName := "Gold"
	_, err = svc.UpdateCard(context.Background(), uuid.New(), card.ID, &usecase.UpdateCardInput{Name: &newName})
	assert.ErrorIs(t, err, ErrCardNotOwned)

	updated, err := svc.UpdateCard(context.Background(), userID, card.ID, &usecase.UpdateCardInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Gold", updated.Name)
	assert.Equal(t, entity.CardTypeAmex, updated.CardType)
}

func TestCardServiceDeleteCascadesMappings(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestCardService(repos)
	userID := uuid.New()

	card, err := svc.CreateCard(context.Background(), userID, &usecase.CreateCardInput{
		Name:       "Cobalt",
		CardType:   entity.CardTypeAmex,
		FourDigits: 1234,
	})
	require.NoError(t, err)

	mapping := &entity.RewardMapping{
		ID:         uuid.New(),
		UserID:     userID,
		CardID:     card.ID,
		MerchantID: uuid.New(),
		CashBack:   decimal.NewFromInt(2),
		RewardKind: entity.RewardKindCashBack,
	}
	require.NoError(t, repos.CreateMapping(context.Background(), mapping))

	require.NoError(t, svc.DeleteCard(context.Background(), userID, card.ID))

	_, err = repos.FindMappingByID(context.Background(), mapping.ID)
	assert.Error(t, err)
}
