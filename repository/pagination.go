package repository

import "github.com/Harshal6927/advanced-alchemy/filters"

// OffsetPagination is the envelope for paginated listings
type OffsetPagination[T any] struct {
	Items  []T   `json:"items"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// Paginate wraps a listing in the pagination envelope, taking limit and
// offset from the filter list the listing was produced with. Without a
// pagination filter the envelope covers the whole listing
func Paginate[T any](items []T, total int64, fs []filters.StatementFilter) OffsetPagination[T] {
	p := OffsetPagination[T]{Items: items, Total: total}

	if lo := filters.FindLimitOffset(fs); lo != nil {
		p.Limit = lo.Limit
		p.Offset = lo.Offset
	} else {
		p.Limit = len(items)
	}
	return p
}
