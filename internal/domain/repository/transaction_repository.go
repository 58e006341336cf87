package repository

import (
	"context"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/errors"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when a transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository defines the interface for transaction database operations.
type TransactionRepository interface {
	// CreateTransaction persists a new transaction.
	CreateTransaction(ctx context.Context, txn *entity.Transaction) error

	// FindTransactionByID retrieves a transaction by its unique ID.
	// Returns ErrTransactionNotFound if no transaction exists.
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindTransactionsByUser retrieves all transactions belonging to a user,
	// most recent first.
	FindTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// CountChildren returns the number of transactions referencing id as parent.
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)

	// UpdateTransaction updates an existing transaction record.
	UpdateTransaction(ctx context.Context, txn *entity.Transaction) error

	// DeleteTransaction removes a transaction by its ID along with its children.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}
