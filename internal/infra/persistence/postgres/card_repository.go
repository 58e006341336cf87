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

// cardRepository implements the repository.PaymentCardRepository interface using GORM.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository is the constructor for cardRepository.
func NewCardRepository(db *gorm.DB) repository.PaymentCardRepository {
	return &cardRepository{db: db}
}

// CreateCard persists a new payment card entity to the database.
func (repo *cardRepository) CreateCard(ctx context.Context, card *entity.PaymentCard) error {
	cardM := fromCardDomain(card)

	if err := repo.db.WithContext(ctx).Create(cardM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment card")
	}

	card.ID = cardM.ID
	card.CreatedAt = cardM.CreatedAt
	card.UpdatedAt = cardM.UpdatedAt

	return nil
}

// FindCardByID retrieves a single card by its unique ID.
func (repo *cardRepository) FindCardByID(ctx context.Context, id uuid.UUID) (*entity.PaymentCard, error) {
	var cardM model.PaymentCardModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cardM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment card by id")
	}

	return toCardDomain(&cardM), nil
}

// FindCardsByUser retrieves all cards belonging to a user.
func (repo *cardRepository) FindCardsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentCard, error) {
	var cardMs []model.PaymentCardModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&cardMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment cards by user")
	}

	cards := make([]*entity.PaymentCard, 0, len(cardMs))
	for i := range cardMs {
		cards = append(cards, toCardDomain(&cardMs[i]))
	}

	return cards, nil
}

// UpdateCard modifies an existing card record.
func (repo *cardRepository) UpdateCard(ctx context.Context, card *entity.PaymentCard) error {
	cardM := fromCardDomain(card)

	if err := repo.db.WithContext(ctx).Save(cardM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update payment card")
	}

	card.UpdatedAt = cardM.UpdatedAt

	return nil
}

// DeleteCard removes a card by its ID. The ON DELETE CASCADE constraint on
// reward_mappings removes any mapping pairing this card.
func (repo *cardRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PaymentCardModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete payment card")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// toCardDomain maps the persistence model back to a pure domain entity.
func toCardDomain(cardM *model.PaymentCardModel) *entity.PaymentCard {
	return &entity.PaymentCard{
		ID:         cardM.ID,
		UserID:     cardM.UserID,
		Name:       cardM.Name,
		CardType:   entity.CardType(cardM.CardType),
		FourDigits: cardM.FourDigits,
		CreatedAt:  cardM.CreatedAt,
		UpdatedAt:  cardM.UpdatedAt,
	}
}

// fromCardDomain maps a pure domain entity to a GORM persistence model.
func fromCardDomain(card *entity.PaymentCard) *model.PaymentCardModel {
	return &model.PaymentCardModel{
		ID:         card.ID,
		UserID:     card.UserID,
		Name:       card.Name,
		CardType:   card.CardType.String(),
		FourDigits: card.FourDigits,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}
}
