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

// ErrTransactionNotOwned is returned when a user touches a transaction they don't own.
var ErrTransactionNotOwned = errors.New("unauthorized to access this transaction")

type transactionService struct {
	txManager repository.TransactionManager
	resolver  usecase.GeoResolver
}

// TransactionServiceParams holds dependencies for TransactionService, injected by Fx.
type TransactionServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Resolver  usecase.GeoResolver
}

// NewTransactionService creates a new transaction service instance.
func NewTransactionService(params TransactionServiceParams) usecase.TransactionUsecase {
	return &transactionService{
		txManager: params.TxManager,
		resolver:  params.Resolver,
	}
}

// reconcile derives the transaction's reward mapping and card from its current
// state, in fixed priority order:
//
//  1. an explicit mapping owned by the same user and with no card back-fills
//     the card from the mapping;
//  2. a present (card, merchant) pair with a ledger hit attaches that mapping;
//  3. otherwise the mapping is cleared, so a stale mapping is never left
//     attached after the card or merchant moved to an unmapped combination.
//
// The pass is idempotent: a mapping whose card was back-filled and which has
// no merchant to re-derive from is left attached as-is on later passes.
func reconcile(ctx context.Context, repo repository.RewardMappingRepository, txn *entity.Transaction) error {
	if txn.RewardMappingID != nil {
		mapping, err := repo.FindMappingByID(ctx, *txn.RewardMappingID)
		switch {
		case err == nil && mapping.UserID == txn.UserID:
			if txn.CardID == nil {
				txn.CardID = &mapping.CardID

				return nil
			}
			if txn.MerchantID == nil && *txn.CardID == mapping.CardID {
				return nil
			}
		case err == nil, errors.Is(err, repository.ErrRewardMappingNotFound):
			// Another user's mapping reads the same as a dangling
			// reference; fall through to re-derive or clear.
		default:
			return errors.Wrap(err, "failed to find mapping by ID")
		}
	}

	if txn.CardID != nil && txn.MerchantID != nil {
		mapping, err := repo.FindMappingForPairing(ctx, txn.UserID, *txn.CardID, *txn.MerchantID)
		if err == nil {
			txn.RewardMappingID = &mapping.ID

			return nil
		}
		if !errors.Is(err, repository.ErrRewardMappingNotFound) {
			return errors.Wrap(err, "failed to find mapping for pairing")
		}
	}

	txn.RewardMappingID = nil

	return nil
}

// CreateTransaction records a transaction. Merchant resolution, parent
// validation, reconciliation and the insert all share one database
// transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input *usecase.CreateTransactionInput) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		ParentID:        input.ParentID,
		CardID:          input.CardID,
		UserCategoryID:  input.UserCategoryID,
		RewardMappingID: input.RewardMappingID,
		Type:            input.Type,
		Amount:          input.Amount,
		Currency:        input.Currency,
		AuthorizedDate:  input.AuthorizedDate,
		Details:         input.Details,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if txn.Type == "" {
		txn.Type = entity.TransactionTypeExpense
	}
	if !txn.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown transaction type")
	}
	if txn.Currency == "" {
		txn.Currency = entity.DefaultCurrency
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		txnRepo := repoFactory.TransactionRepo()

		if txn.ParentID != nil {
			if err := s.attachParent(ctx, txnRepo, userID, txn); err != nil {
				return err
			}
		}

		if input.Merchant != nil {
			merchant, err := getOrCreateMerchant(ctx, repoFactory.MerchantRepo(), s.resolver, userID, input.Merchant.Name, input.Merchant.Location)
			if err != nil {
				return err
			}
			txn.MerchantID = &merchant.ID
		}

		if err := reconcile(ctx, repoFactory.RewardMappingRepo(), txn); err != nil {
			return err
		}

		return txnRepo.CreateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// UpdateTransaction applies a partial update and re-reconciles before saving.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, input *usecase.UpdateTransactionInput) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		txnRepo := repoFactory.TransactionRepo()

		var txErr error
		txn, txErr = s.ownedTransaction(ctx, txnRepo, userID, transactionID)
		if txErr != nil {
			return txErr
		}

		previousParentID := txn.ParentID

		if input.ParentID.Set {
			txn.ParentID = input.ParentID.Value
		}
		if input.CardID.Set {
			txn.CardID = input.CardID.Value
		}
		if input.UserCategoryID.Set {
			txn.UserCategoryID = input.UserCategoryID.Value
		}
		if input.MerchantID.Set {
			txn.MerchantID = input.MerchantID.Value
		}
		if input.RewardMappingID.Set {
			txn.RewardMappingID = input.RewardMappingID.Value
		}
		if input.Type != nil {
			if !input.Type.IsValid() {
				return domainerrors.ErrValidationFailed.WrapMessage("unknown transaction type")
			}
			txn.Type = *input.Type
		}
		if input.Amount != nil {
			txn.Amount = *input.Amount
		}
		if input.Currency != nil {
			txn.Currency = *input.Currency
		}
		if input.AuthorizedDate != nil {
			txn.AuthorizedDate = *input.AuthorizedDate
		}
		if input.Details != nil {
			txn.Details = *input.Details
		}

		if txn.ParentID != nil && (previousParentID == nil || *previousParentID != *txn.ParentID) {
			if txErr = s.attachParent(ctx, txnRepo, userID, txn); txErr != nil {
				return txErr
			}
		}

		if input.Merchant != nil {
			merchant, mErr := getOrCreateMerchant(ctx, repoFactory.MerchantRepo(), s.resolver, userID, input.Merchant.Name, input.Merchant.Location)
			if mErr != nil {
				return mErr
			}
			txn.MerchantID = &merchant.ID
		}

		if txErr = reconcile(ctx, repoFactory.RewardMappingRepo(), txn); txErr != nil {
			return txErr
		}
		txn.UpdatedAt = time.Now()

		if txErr = txnRepo.UpdateTransaction(ctx, txn); txErr != nil {
			return errors.Wrap(txErr, "failed to update transaction")
		}

		if previousParentID != nil && (txn.ParentID == nil || *txn.ParentID != *previousParentID) {
			return s.refreshHasChildren(ctx, txnRepo, *previousParentID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransactions retrieves all transactions for a user, most recent first.
func (s *transactionService) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var txns []*entity.Transaction
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		txns, txErr = repoFactory.TransactionRepo().FindTransactionsByUser(ctx, userID)

		return txErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find transactions by user")
	}

	return txns, nil
}

// GetTransaction retrieves a single transaction owned by the user.
func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		txn, txErr = s.ownedTransaction(ctx, repoFactory.TransactionRepo(), userID, transactionID)

		return txErr
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// DeleteTransaction removes a transaction and its children, refreshing the
// former parent's HasChildren flag.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		txnRepo := repoFactory.TransactionRepo()

		txn, err := s.ownedTransaction(ctx, txnRepo, userID, transactionID)
		if err != nil {
			return err
		}

		if err := txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
			return errors.Wrap(err, "failed to delete transaction")
		}

		if txn.ParentID != nil {
			return s.refreshHasChildren(ctx, txnRepo, *txn.ParentID)
		}

		return nil
	})
}

// attachParent validates the one-level grouping rule and marks the parent.
// The rule holds in both directions: the chosen parent must not itself be a
// child, and the transaction joining a group must not be a parent already or
// point at itself.
func (s *transactionService) attachParent(ctx context.Context, repo repository.TransactionRepository, userID uuid.UUID, txn *entity.Transaction) error {
	if *txn.ParentID == txn.ID || txn.HasChildren {
		return domainerrors.ErrNestedSplit
	}

	parent, err := repo.FindTransactionByID(ctx, *txn.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return err
		}

		return errors.Wrap(err, "failed to find parent transaction")
	}
	if parent.UserID != userID {
		return ErrTransactionNotOwned
	}
	if parent.ParentID != nil {
		return domainerrors.ErrNestedSplit
	}

	if !parent.HasChildren {
		parent.HasChildren = true
		parent.UpdatedAt = time.Now()
		if err := repo.UpdateTransaction(ctx, parent); err != nil {
			return errors.Wrap(err, "failed to mark parent transaction")
		}
	}

	return nil
}

// refreshHasChildren recomputes a parent's HasChildren flag after a child
// left the group.
func (s *transactionService) refreshHasChildren(ctx context.Context, repo repository.TransactionRepository, parentID uuid.UUID) error {
	parent, err := repo.FindTransactionByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find parent transaction")
	}

	count, err := repo.CountChildren(ctx, parentID)
	if err != nil {
		return errors.Wrap(err, "failed to count children")
	}

	hasChildren := count > 0
	if parent.HasChildren != hasChildren {
		parent.HasChildren = hasChildren
		parent.UpdatedAt = time.Now()

		return errors.Wrap(repo.UpdateTransaction(ctx, parent), "failed to refresh parent transaction")
	}

	return nil
}

// ownedTransaction fetches a transaction and verifies ownership.
func (s *transactionService) ownedTransaction(ctx context.Context, repo repository.TransactionRepository, userID, transactionID uuid.UUID) (*entity.Transaction, error) {
	txn, err := repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find transaction by ID")
	}

	if txn.UserID != userID {
		return nil, ErrTransactionNotOwned
	}

	return txn, nil
}
