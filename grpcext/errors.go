package grpcext

import (
	"errors"

	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
)

// Code maps a database or binding error onto the gRPC code reported to
// clients. Unknown errors map to Internal
func Code(err error) codes.Code {
	var bindErr *filters.BindError

	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, dberrors.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, dberrors.ErrDuplicateKey):
		return codes.AlreadyExists
	case errors.Is(err, dberrors.ErrForeignKey),
		errors.Is(err, dberrors.ErrCheckConstraint),
		errors.Is(err, dberrors.ErrIntegrity):
		return codes.FailedPrecondition
	case errors.Is(err, dberrors.ErrInvalidRequest):
		return codes.InvalidArgument
	case errors.As(err, &bindErr):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// StatusError wraps err into a gRPC status error carrying the mapped code.
// Errors that already are status errors pass through unchanged
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := grpcstatus.FromError(err); ok {
		return err
	}
	return grpcstatus.Error(Code(err), err.Error())
}
