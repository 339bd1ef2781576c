// Package filters provides composable query filters and a binder that builds
// them from HTTP query parameters.
//
// Filter values describe pagination, time windows, collection membership,
// searching and ordering without reference to any specific model. Each filter
// knows how to apply itself to a gorm statement, so handlers can pass a bound
// filter list straight to the repository layer.
//
// The binder is compiled from a declarative Config describing which query
// parameters a route accepts. Compiled binders are cached per configuration,
// so middlewares created from the same Config share one binder.
package filters
