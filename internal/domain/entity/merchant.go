package entity

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is a merchant added by a user. Its coordinates are derived state:
// they are only ever populated by a geocode resolution against the current
// Location value, and both are cleared whenever Location is emptied. A manual
// location edit invalidates prior coordinates until re-resolved.
type Merchant struct {
	ID                uuid.UUID  // The unique identifier for the merchant.
	UserID            uuid.UUID  // The owning user.
	Name              string     // The merchant name as the user knows it.
	Location          string     // Free-text location. Empty means no location.
	Latitude          *float64   // Resolved latitude. Set together with Longitude or not at all.
	Longitude         *float64   // Resolved longitude. Set together with Latitude or not at all.
	DefaultCategoryID *uuid.UUID // Optional default user category for transactions at this merchant.
	CreatedAt         time.Time  // Timestamp of when this merchant was created.
	UpdatedAt         time.Time  // Timestamp of the last modification.
}

// HasCoordinates reports whether both coordinate fields are present.
func (m *Merchant) HasCoordinates() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// ClearCoordinates drops both coordinate fields as a pair.
func (m *Merchant) ClearCoordinates() {
	m.Latitude = nil
	m.Longitude = nil
}

// SetCoordinates stores both coordinate fields as a pair.
func (m *Merchant) SetCoordinates(lat, lon float64) {
	m.Latitude = &lat
	m.Longitude = &lon
}
