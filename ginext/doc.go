// Package ginext binds database engines and request-scoped sessions into the
// gin request lifecycle.
//
// A Plugin opens one engine per config, publishes the engine and a lazily
// created session in the request context, and resolves the session against
// the response status once the handler chain returns. The package also
// carries the error handler middleware that maps database errors onto HTTP
// responses and the filter middleware that binds query parameters into
// statement filters.
package ginext
