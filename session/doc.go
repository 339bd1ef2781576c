// Package session manages database engines and request-scoped sessions.
//
// Open builds a gorm engine from config.DatabaseSettings with pooling, error
// translation and logging wired in. Maker hands out sessions for individual
// requests and resolves their transactions from the response status once a
// handler has finished, so frameworks only decide when to call Finalize, not
// how.
package session
