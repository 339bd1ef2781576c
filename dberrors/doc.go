// Package dberrors defines the error taxonomy shared by the repository,
// session and framework extension packages.
//
// Driver specific failures are translated into a small set of sentinel
// errors so that callers can branch with errors.Is instead of matching on
// driver error strings. The framework extensions map these sentinels onto
// transport status codes.
package dberrors
