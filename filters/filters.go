package filters

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort order constants
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// StatementFilter modifies a gorm statement, adding conditions, ordering or
// pagination to it
type StatementFilter interface {
	Apply(tx *gorm.DB) *gorm.DB
}

// Apply runs every filter against the statement in order
func Apply(tx *gorm.DB, fs ...StatementFilter) *gorm.DB {
	for _, f := range fs {
		tx = f.Apply(tx)
	}
	return tx
}

// LimitOffset paginates a result set. A zero limit leaves the statement
// unpaginated
type LimitOffset struct {
	Limit  int
	Offset int
}

// Apply adds LIMIT and OFFSET clauses to the statement
func (f LimitOffset) Apply(tx *gorm.DB) *gorm.DB {
	if f.Limit <= 0 {
		return tx
	}
	tx = tx.Limit(f.Limit)
	if f.Offset > 0 {
		tx = tx.Offset(f.Offset)
	}
	return tx
}

// BeforeAfter bounds a time column exclusively. Nil bounds are skipped
type BeforeAfter struct {
	FieldName string
	Before    *time.Time
	After     *time.Time
}

// Apply adds strict comparison conditions for the configured column
func (f BeforeAfter) Apply(tx *gorm.DB) *gorm.DB {
	col := clause.Column{Name: f.FieldName}
	if f.Before != nil {
		tx = tx.Where("? < ?", col, *f.Before)
	}
	if f.After != nil {
		tx = tx.Where("? > ?", col, *f.After)
	}
	return tx
}

// OnBeforeAfter bounds a time column inclusively. Nil bounds are skipped
type OnBeforeAfter struct {
	FieldName  string
	OnOrBefore *time.Time
	OnOrAfter  *time.Time
}

// Apply adds inclusive comparison conditions for the configured column
func (f OnBeforeAfter) Apply(tx *gorm.DB) *gorm.DB {
	col := clause.Column{Name: f.FieldName}
	if f.OnOrBefore != nil {
		tx = tx.Where("? <= ?", col, *f.OnOrBefore)
	}
	if f.OnOrAfter != nil {
		tx = tx.Where("? >= ?", col, *f.OnOrAfter)
	}
	return tx
}

// CollectionFilter keeps rows whose column value is in Values. Nil values
// leave the statement untouched, while an empty non-nil slice matches no rows
type CollectionFilter struct {
	FieldName string
	Values    []string
}

// Apply adds an IN condition for the configured column
func (f CollectionFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Values == nil {
		return tx
	}
	if len(f.Values) == 0 {
		return tx.Where("1 = 0")
	}
	return tx.Where("? IN ?", clause.Column{Name: f.FieldName}, f.Values)
}

// NotInCollectionFilter removes rows whose column value is in Values. Nil or
// empty values leave the statement untouched
type NotInCollectionFilter struct {
	FieldName string
	Values    []string
}

// Apply adds a NOT IN condition for the configured column
func (f NotInCollectionFilter) Apply(tx *gorm.DB) *gorm.DB {
	if len(f.Values) == 0 {
		return tx
	}
	return tx.Where("? NOT IN ?", clause.Column{Name: f.FieldName}, f.Values)
}

// SearchFilter keeps rows where at least one of the configured columns
// contains Value. An empty value leaves the statement untouched
type SearchFilter struct {
	Fields     []string
	Value      string
	IgnoreCase bool
}

// Apply adds LIKE conditions joined with OR across the configured columns
func (f SearchFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Value == "" || len(f.Fields) == 0 {
		return tx
	}
	conds, args := likeConditions(f.Fields, f.Value, f.IgnoreCase, "? LIKE ?", "LOWER(?) LIKE ?")
	return tx.Where(strings.Join(conds, " OR "), args...)
}

// NotInSearchFilter removes rows where any of the configured columns contains
// Value. An empty value leaves the statement untouched
type NotInSearchFilter struct {
	Fields     []string
	Value      string
	IgnoreCase bool
}

// Apply adds NOT LIKE conditions joined with AND across the configured columns
func (f NotInSearchFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Value == "" || len(f.Fields) == 0 {
		return tx
	}
	conds, args := likeConditions(f.Fields, f.Value, f.IgnoreCase, "? NOT LIKE ?", "LOWER(?) NOT LIKE ?")
	return tx.Where(strings.Join(conds, " AND "), args...)
}

func likeConditions(fields []string, value string, ignoreCase bool, cond string, condLower string) ([]string, []interface{}) {
	pattern := "%" + value + "%"
	conds := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)*2)

	for _, field := range fields {
		if ignoreCase {
			conds = append(conds, condLower)
			args = append(args, clause.Column{Name: field}, strings.ToLower(pattern))
		} else {
			conds = append(conds, cond)
			args = append(args, clause.Column{Name: field}, pattern)
		}
	}
	return conds, args
}

// OrderBy sorts the result set by a column. An empty field name leaves the
// statement untouched and any sort order other than desc sorts ascending
type OrderBy struct {
	FieldName string
	SortOrder string
}

// Apply adds an ORDER BY clause for the configured column
func (f OrderBy) Apply(tx *gorm.DB) *gorm.DB {
	if f.FieldName == "" {
		return tx
	}
	return tx.Order(clause.OrderByColumn{
		Column: clause.Column{Name: f.FieldName},
		Desc:   strings.EqualFold(f.SortOrder, SortDesc),
	})
}

// FindLimitOffset returns the first LimitOffset in fs, or nil when the list
// carries no pagination
func FindLimitOffset(fs []StatementFilter) *LimitOffset {
	for _, f := range fs {
		if lo, ok := f.(LimitOffset); ok {
			return &lo
		}
		if lo, ok := f.(*LimitOffset); ok {
			return lo
		}
	}
	return nil
}

// WithoutPagination returns fs stripped of LimitOffset filters, for queries
// such as counts that must see the whole result set
func WithoutPagination(fs []StatementFilter) []StatementFilter {
	out := make([]StatementFilter, 0, len(fs))
	for _, f := range fs {
		switch f.(type) {
		case LimitOffset, *LimitOffset:
			continue
		}
		out = append(out, f)
	}
	return out
}
