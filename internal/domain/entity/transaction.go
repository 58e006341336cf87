package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of money movement.
type TransactionType string

const (
	// TransactionTypeIncome is money received.
	TransactionTypeIncome TransactionType = "Income"
	// TransactionTypeExpense is money spent.
	TransactionTypeExpense TransactionType = "Expense"
)

// String returns the string representation of the TransactionType.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the TransactionType is a valid value.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// DefaultCurrency is applied when a transaction is created without one.
const DefaultCurrency = "CAD"

// Transaction is a single money movement recorded by a user. Transactions may
// be grouped one level deep through ParentID: a transaction with a parent must
// not itself have children. RewardMappingID is derived state, reconciled from
// the (card, merchant) pair on every write and never left stale.
type Transaction struct {
	ID              uuid.UUID       // The unique identifier for the transaction.
	UserID          uuid.UUID       // The owning user.
	ParentID        *uuid.UUID      // Optional parent for split groupings. One level only.
	CardID          *uuid.UUID      // The payment card used. May be nil when ParentID is set.
	UserCategoryID  *uuid.UUID      // The user category. May be nil when ParentID is set.
	MerchantID      *uuid.UUID      // The merchant, if known.
	RewardMappingID *uuid.UUID      // Derived: the reward mapping for (card, merchant), if one exists.
	Type            TransactionType // Income or Expense.
	Amount          decimal.Decimal // The monetary amount.
	Currency        string          // ISO 4217 currency code of the amount.
	AuthorizedDate  time.Time       // The date the transaction was authorized.
	Details         string          // Free-text details.
	HasChildren     bool            // Whether any child transactions reference this one.
	CreatedAt       time.Time       // Timestamp of when this transaction was created.
	UpdatedAt       time.Time       // Timestamp of the last modification.
}

// IsChild reports whether the transaction belongs to a split group.
func (t *Transaction) IsChild() bool {
	return t.ParentID != nil
}
