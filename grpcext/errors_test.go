//go:build unit
// +build unit

package grpcext

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"nil", nil, codes.OK},
		{"not found", dberrors.ErrNotFound, codes.NotFound},
		{"wrapped not found", fmt.Errorf("failed to fetch record: %w", dberrors.ErrNotFound), codes.NotFound},
		{"duplicate key", dberrors.ErrDuplicateKey, codes.AlreadyExists},
		{"foreign key", dberrors.ErrForeignKey, codes.FailedPrecondition},
		{"check constraint", dberrors.ErrCheckConstraint, codes.FailedPrecondition},
		{"integrity", dberrors.ErrIntegrity, codes.FailedPrecondition},
		{"invalid request", dberrors.ErrInvalidRequest, codes.InvalidArgument},
		{"bind error", &filters.BindError{Param: "ids", Value: "x", Reason: "must be a UUID"}, codes.InvalidArgument},
		{"improper configuration", dberrors.ErrImproperConfiguration, codes.Internal},
		{"unknown", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestStatusErrorWrapsTaxonomy(t *testing.T) {
	err := StatusError(fmt.Errorf("failed to fetch record: %w", dberrors.ErrNotFound))

	st, ok := grpcstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Contains(t, st.Message(), "failed to fetch record")
}

func TestStatusErrorKeepsStatusErrors(t *testing.T) {
	original := grpcstatus.Error(codes.PermissionDenied, "no access")

	st, ok := grpcstatus.FromError(StatusError(original))
	require.True(t, ok)
	assert.Equal(t, codes.PermissionDenied, st.Code())
	assert.Equal(t, "no access", st.Message())
}

func TestStatusErrorNil(t *testing.T) {
	assert.NoError(t, StatusError(nil))
}
