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

// transactionRepository implements the repository.TransactionRepository interface using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateTransaction persists a new transaction entity to the database.
func (repo *transactionRepository) CreateTransaction(ctx context.Context, txn *entity.Transaction) error {
	txnM := fromTransactionDomain(txn)

	if err := repo.db.WithContext(ctx).Create(txnM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create transaction")
	}

	txn.ID = txnM.ID
	txn.CreatedAt = txnM.CreatedAt
	txn.UpdatedAt = txnM.UpdatedAt

	return nil
}

// FindTransactionByID retrieves a single transaction by its unique ID.
func (repo *transactionRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txnM model.TransactionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&txnM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction by id")
	}

	return toTransactionDomain(&txnM), nil
}

// FindTransactionsByUser retrieves all transactions belonging to a user,
// most recent first.
func (repo *transactionRepository) FindTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var txnMs []model.TransactionModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("authorized_date DESC, created_at DESC").
		Find(&txnMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find transactions by user")
	}

	txns := make([]*entity.Transaction, 0, len(txnMs))
	for i := range txnMs {
		txns = append(txns, toTransactionDomain(&txnMs[i]))
	}

	return txns, nil
}

// CountChildren returns the number of transactions referencing id as parent.
func (repo *transactionRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count child transactions")
	}

	return count, nil
}

// UpdateTransaction modifies an existing transaction record.
func (repo *transactionRepository) UpdateTransaction(ctx context.Context, txn *entity.Transaction) error {
	txnM := fromTransactionDomain(txn)

	if err := repo.db.WithContext(ctx).Save(txnM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update transaction")
	}

	txn.UpdatedAt = txnM.UpdatedAt

	return nil
}

// DeleteTransaction removes a transaction by its ID. The ON DELETE CASCADE
// constraint on parent_id removes its children in the same statement.
func (repo *transactionRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete transaction")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTransactionNotFound
	}

	return nil
}

// toTransactionDomain maps the persistence model back to a pure domain entity.
func toTransactionDomain(txnM *model.TransactionModel) *entity.Transaction {
	return &entity.Transaction{
		ID:              txnM.ID,
		UserID:          txnM.UserID,
		ParentID:        txnM.ParentID,
		CardID:          txnM.CardID,
		UserCategoryID:  txnM.UserCategoryID,
		MerchantID:      txnM.MerchantID,
		RewardMappingID: txnM.RewardMappingID,
		Type:            entity.TransactionType(txnM.Type),
		Amount:          txnM.Amount,
		Currency:        txnM.Currency,
		AuthorizedDate:  txnM.AuthorizedDate,
		Details:         txnM.Details,
		HasChildren:     txnM.HasChildren,
		CreatedAt:       txnM.CreatedAt,
		UpdatedAt:       txnM.UpdatedAt,
	}
}

// fromTransactionDomain maps a pure domain entity to a GORM persistence model.
func fromTransactionDomain(txn *entity.Transaction) *model.TransactionModel {
	return &model.TransactionModel{
		ID:              txn.ID,
		UserID:          txn.UserID,
		ParentID:        txn.ParentID,
		CardID:          txn.CardID,
		UserCategoryID:  txn.UserCategoryID,
		MerchantID:      txn.MerchantID,
		RewardMappingID: txn.RewardMappingID,
		Type:            txn.Type.String(),
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		AuthorizedDate:  txn.AuthorizedDate,
		Details:         txn.Details,
		HasChildren:     txn.HasChildren,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}
