package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"
)

// MCCSource yields the raw merchant category code rows to import.
type MCCSource interface {
	// Read returns all code rows from the source, header excluded.
	Read(ctx context.Context) ([]*entity.MerchantCategoryCode, error)
}

// MCCUsecase exposes the merchant category code reference table.
type MCCUsecase interface {
	// Import populates the table from the source. When the table already has
	// data the import is skipped with a warning, not an error.
	Import(ctx context.Context, source MCCSource) error

	// ListCodes retrieves the full reference table.
	ListCodes(ctx context.Context) ([]*entity.MerchantCategoryCode, error)
}
