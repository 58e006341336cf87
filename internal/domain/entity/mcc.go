package entity

import "github.com/google/uuid"

// MerchantCategoryCode (MCC) is the standardized numeric classification of a
// merchant's business type. The table is reference data populated by bulk
// import and shared across all users.
type MerchantCategoryCode struct {
	ID                  uuid.UUID // The unique identifier for the record.
	Code                int       // The numeric MCC, e.g., 5411 for grocery stores.
	EditedDescription   string
	CombinedDescription string
	USDADescription     string
	IRSDescription      string
}
