// Package grpcext binds request-scoped database sessions into the gRPC
// request lifecycle.
//
// The server interceptors inject a lazily created session into the handler
// context, resolve it from the handler outcome once the call returns, and
// translate database errors into gRPC status errors.
package grpcext
