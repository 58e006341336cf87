package usecase

import (
	"context"
	"time"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantRef embeds a merchant by value in a transaction write. The merchant
// is resolved with get-or-create semantics inside the same database
// transaction as the transaction record itself.
type MerchantRef struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateTransactionInput represents the input for recording a transaction.
type CreateTransactionInput struct {
	ParentID        *uuid.UUID             `json:"parent_id,omitempty"`
	CardID          *uuid.UUID             `json:"card_id,omitempty"`
	UserCategoryID  *uuid.UUID             `json:"user_category_id,omitempty"`
	Merchant        *MerchantRef           `json:"merchant,omitempty"`
	RewardMappingID *uuid.UUID             `json:"reward_mapping_id,omitempty"`
	Type            entity.TransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	Currency        string                 `json:"currency"`
	AuthorizedDate  time.Time              `json:"authorized_date"`
	Details         string                 `json:"details"`
}

// UpdateTransactionInput represents the input for a partial transaction update.
// Absent fields are left untouched. The nullable link fields accept an
// explicit null to detach the card, category, merchant, parent or mapping.
// Reconciliation always runs.
type UpdateTransactionInput struct {
	ParentID        NullableField[uuid.UUID] `json:"parent_id"`
	CardID          NullableField[uuid.UUID] `json:"card_id"`
	UserCategoryID  NullableField[uuid.UUID] `json:"user_category_id"`
	MerchantID      NullableField[uuid.UUID] `json:"merchant_id"`
	Merchant        *MerchantRef             `json:"merchant,omitempty"`
	RewardMappingID NullableField[uuid.UUID] `json:"reward_mapping_id"`
	Type            *entity.TransactionType  `json:"type,omitempty"`
	Amount          *decimal.Decimal         `json:"amount,omitempty"`
	Currency        *string                  `json:"currency,omitempty"`
	AuthorizedDate  *time.Time               `json:"authorized_date,omitempty"`
	Details         *string                  `json:"details,omitempty"`
}

// TransactionUsecase records transactions and reconciles their derived reward
// mapping on every write, inside the same database transaction as the save.
type TransactionUsecase interface {
	// CreateTransaction records a transaction, resolving its merchant and
	// reconciling the reward mapping before persisting.
	CreateTransaction(ctx context.Context, userID uuid.UUID, input *CreateTransactionInput) (*entity.Transaction, error)

	// UpdateTransaction applies a partial update and re-reconciles.
	UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, input *UpdateTransactionInput) (*entity.Transaction, error)

	// GetTransactions retrieves all transactions for a user, most recent first.
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// GetTransaction retrieves a single transaction owned by the user.
	GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*entity.Transaction, error)

	// DeleteTransaction removes a transaction the user owns, along with its
	// children, and refreshes the former parent's HasChildren flag.
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}
