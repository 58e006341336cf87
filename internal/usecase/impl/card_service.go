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
	"go.uber.org/fx"
)

// ErrCardNotOwned is returned when a user touches a card they don't own.
var ErrCardNotOwned = errors.New("unauthorized to access this card")

const fourDigitsMax = 9999

type cardService struct {
	txManager repository.TransactionManager
	cardRepo  repository.PaymentCardRepository
}

// CardServiceParams holds dependencies for CardService, injected by Fx.
type CardServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CardRepo  repository.PaymentCardRepository
}

// NewCardService creates a new card service instance.
func NewCardService(params CardServiceParams) usecase.CardUsecase {
	return &cardService{
		txManager: params.TxManager,
		cardRepo:  params.CardRepo,
	}
}

func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, input *usecase.CreateCardInput) (*entity.PaymentCard, error) {
	card := &entity.PaymentCard{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       input.Name,
		CardType:   input.CardType,
		FourDigits: input.FourDigits,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := validateCard(card); err != nil {
		return nil, err
	}

	if err := s.cardRepo.CreateCard(ctx, card); err != nil {
		return nil, errors.Wrap(err, "failed to create card")
	}

	return card, nil
}

func (s *cardService) GetCards(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentCard, error) {
	cards, err := s.cardRepo.FindCardsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cards by user")
	}

	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, input *usecase.UpdateCardInput) (*entity.PaymentCard, error) {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		card.Name = *input.Name
	}
	if input.CardType != nil {
		card.CardType = *input.CardType
	}
	if input.FourDigits != nil {
		card.FourDigits = *input.FourDigits
	}
	card.UpdatedAt = time.Now()

	if err := validateCard(card); err != nil {
		return nil, err
	}

	if err := s.cardRepo.UpdateCard(ctx, card); err != nil {
		return nil, errors.Wrap(err, "failed to update card")
	}

	return card, nil
}

// DeleteCard removes a card. Reward mappings on the card go with it; the
// transaction resolver clears dangling references on the next reconcile.
func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.CardRepo()

		card, err := repo.FindCardByID(ctx, cardID)
		if err != nil {
			return err
		}
		if card.UserID != userID {
			return ErrCardNotOwned
		}

		return repo.DeleteCard(ctx, cardID)
	})
}

func (s *cardService) ownedCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.PaymentCard, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find card by ID")
	}

	if card.UserID != userID {
		return nil, ErrCardNotOwned
	}

	return card, nil
}

func validateCard(card *entity.PaymentCard) error {
	if !card.CardType.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown card type")
	}
	if card.FourDigits < 0 || card.FourDigits > fourDigitsMax {
		return domainerrors.ErrValidationFailed.WrapMessage("must be 4 digits")
	}

	return nil
}
