// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the owning identity for every record in the system. All cards,
// categories, merchants, mappings and transactions are scoped to a user.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, used as the login identifier. Required and unique.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt hash of the user's password. Never exposed.
	IsActive     bool      // Whether the account is active.
	IsStaff      bool      // Whether the account has staff privileges.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
