package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCardInput represents the input for registering a payment card.
type CreateCardInput struct {
	Name       string          `json:"name"`
	CardType   entity.CardType `json:"card_type"`
	FourDigits int             `json:"four_digits"`
}

// UpdateCardInput represents the input for a partial card update.
type UpdateCardInput struct {
	Name       *string          `json:"name,omitempty"`
	CardType   *entity.CardType `json:"card_type,omitempty"`
	FourDigits *int             `json:"four_digits,omitempty"`
}

// CardUsecase manages a user's payment cards.
type CardUsecase interface {
	CreateCard(ctx context.Context, userID uuid.UUID, input *CreateCardInput) (*entity.PaymentCard, error)
	GetCards(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentCard, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, input *UpdateCardInput) (*entity.PaymentCard, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}
