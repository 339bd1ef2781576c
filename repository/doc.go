// Package repository provides a generic gorm-backed repository with filter
// support.
//
// A Repository is bound to one session and one model type. Handlers usually
// build repositories from the request session so every operation in a request
// shares its transaction. All database errors are translated into the
// dberrors taxonomy before they are returned.
package repository
