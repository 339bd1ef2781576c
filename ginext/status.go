package ginext

import (
	"errors"
	"net/http"

	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
)

// HTTPStatus maps a database or binding error onto the status reported to
// clients. Unknown errors map to 500
func HTTPStatus(err error) int {
	var bindErr *filters.BindError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dberrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dberrors.ErrDuplicateKey),
		errors.Is(err, dberrors.ErrForeignKey),
		errors.Is(err, dberrors.ErrCheckConstraint),
		errors.Is(err, dberrors.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, dberrors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &bindErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
