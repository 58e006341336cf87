package entity

import (
	"time"

	"github.com/google/uuid"
)

// CardType represents the payment network a card belongs to.
type CardType string

const (
	// CardTypeInterac is a debit card on the Interac network.
	CardTypeInterac CardType = "Interac"
	// CardTypeMastercard is a Mastercard credit card.
	CardTypeMastercard CardType = "Mastercard"
	// CardTypeVisa is a Visa credit card.
	CardTypeVisa CardType = "Visa"
	// CardTypeAmex is an American Express credit card.
	CardTypeAmex CardType = "Amex"
)

// String returns the string representation of the CardType.
func (t CardType) String() string {
	return string(t)
}

// IsValid checks if the CardType is a valid value.
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeInterac, CardTypeMastercard, CardTypeVisa, CardTypeAmex:
		return true
	default:
		return false
	}
}

// PaymentCard is a payment card registered by a user. Reward mappings pair a
// card with a merchant to derive the reward earned on a transaction.
type PaymentCard struct {
	ID         uuid.UUID // The unique identifier for the card.
	UserID     uuid.UUID // The owning user.
	Name       string    // A user-defined label, e.g., "Cobalt".
	CardType   CardType  // The payment network.
	FourDigits int       // The last four digits of the card number, 0-9999.
	CreatedAt  time.Time // Timestamp of when this card was created.
	UpdatedAt  time.Time // Timestamp of the last modification.
}
