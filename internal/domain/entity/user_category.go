package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserCategory is a transaction category defined by the user, e.g., "Groceries".
// It carries a display color for client UIs.
type UserCategory struct {
	ID        uuid.UUID // The unique identifier for the category.
	UserID    uuid.UUID // The owning user.
	Name      string    // The category name.
	HexColor  string    // Display color in "#rgb" or "#rrggbb" format.
	CreatedAt time.Time // Timestamp of when this category was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// DefaultHexColor is used when a category is created without an explicit color.
const DefaultHexColor = "#ffffff"
