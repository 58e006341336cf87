package postgres

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper for PostgreSQL error checking. gorm.Open runs with TranslateError,
// so driver errors arrive as GORM sentinel errors.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
