package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// ErrCardNotFound is returned when a payment card is not found.
var ErrCardNotFound = errors.New("payment card not found")

// PaymentCardRepository defines the interface for payment card database operations.
type PaymentCardRepository interface {
	// CreateCard persists a new payment card.
	CreateCard(ctx context.Context, card *entity.PaymentCard) error

	// FindCardByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if no card exists.
	FindCardByID(ctx context.Context, id uuid.UUID) (*entity.PaymentCard, error)

	// FindCardsByUser retrieves all cards belonging to a user.
	FindCardsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentCard, error)

	// UpdateCard updates an existing card record.
	UpdateCard(ctx context.Context, card *entity.PaymentCard) error

	// DeleteCard removes a card by its ID. Reward mappings referencing the
	// card are removed by the database cascade.
	DeleteCard(ctx context.Context, id uuid.UUID) error
}
