package dberrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Translate maps a gorm error onto the sentinel taxonomy. The returned error
// matches both the sentinel and the original error with errors.Is. Errors
// that have no sentinel equivalent are returned unchanged, as is nil.
//
// Engines opened by this library run with gorm error translation enabled, so
// driver specific constraint failures arrive here as gorm sentinels.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", ErrCheckConstraint, err)
	case errors.Is(err, gorm.ErrMissingWhereClause),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidField),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrInvalidValueOfLength),
		errors.Is(err, gorm.ErrEmptySlice),
		errors.Is(err, gorm.ErrPrimaryKeyRequired):
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	case errors.Is(err, gorm.ErrInvalidDB),
		errors.Is(err, gorm.ErrInvalidTransaction),
		errors.Is(err, gorm.ErrUnsupportedDriver):
		return fmt.Errorf("%w: %w", ErrImproperConfiguration, err)
	default:
		return err
	}
}
