//go:build integration
// +build integration

package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type note struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Status    string
	Tag       string
	CreatedAt time.Time
}

func setupFilterDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open database")

	require.NoError(t, db.AutoMigrate(&note{}), "Failed to migrate schema")

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
	}
	seed := []note{
		{ID: 1, Name: "alpha", Status: "active", Tag: "go", CreatedAt: day(1)},
		{ID: 2, Name: "beta", Status: "active", Tag: "python", CreatedAt: day(2)},
		{ID: 3, Name: "gamma", Status: "archived", Tag: "go", CreatedAt: day(3)},
		{ID: 4, Name: "delta", Status: "pending", Tag: "rust", CreatedAt: day(4)},
		{ID: 5, Name: "Alphabet", Status: "active", Tag: "go", CreatedAt: day(5)},
	}
	require.NoError(t, db.Create(&seed).Error, "Failed to seed rows")

	return db
}

func listNames(t *testing.T, db *gorm.DB, fs ...StatementFilter) []string {
	t.Helper()

	var rows []note
	require.NoError(t, Apply(db.Model(&note{}), fs...).Find(&rows).Error)

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names
}

func TestLimitOffsetPaginatesRows(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		OrderBy{FieldName: "id", SortOrder: SortAsc},
		LimitOffset{Limit: 2, Offset: 2},
	)
	assert.Equal(t, []string{"gamma", "delta"}, names)

	// A zero limit leaves the result set unpaginated
	assert.Len(t, listNames(t, db, LimitOffset{}), 5)
}

func TestBeforeAfterBoundsAreExclusive(t *testing.T) {
	db := setupFilterDB(t)

	after := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	before := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	names := listNames(t, db,
		BeforeAfter{FieldName: "created_at", Before: &before, After: &after},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"beta", "gamma"}, names)
}

func TestOnBeforeAfterBoundsAreInclusive(t *testing.T) {
	db := setupFilterDB(t)

	onOrAfter := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	onOrBefore := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	names := listNames(t, db,
		OnBeforeAfter{FieldName: "created_at", OnOrBefore: &onOrBefore, OnOrAfter: &onOrAfter},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, names)
}

func TestCollectionFilterMatchesValues(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		CollectionFilter{FieldName: "tag", Values: []string{"go"}},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "gamma", "Alphabet"}, names)

	// An empty non-nil value list matches nothing
	assert.Empty(t, listNames(t, db, CollectionFilter{FieldName: "tag", Values: []string{}}))

	// A nil value list matches everything
	assert.Len(t, listNames(t, db, CollectionFilter{FieldName: "tag"}), 5)
}

func TestNotInCollectionFilterExcludesValues(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		NotInCollectionFilter{FieldName: "status", Values: []string{"archived", "pending"}},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "beta", "Alphabet"}, names)

	// A nil value list excludes nothing
	assert.Len(t, listNames(t, db, NotInCollectionFilter{FieldName: "status"}), 5)
}

func TestSearchFilterMatchesSubstring(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		SearchFilter{Fields: []string{"name"}, Value: "eta"},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"beta", "delta"}, names)

	// An empty search value matches everything
	assert.Len(t, listNames(t, db, SearchFilter{Fields: []string{"name"}}), 5)
}

func TestSearchFilterIgnoreCase(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		SearchFilter{Fields: []string{"name"}, Value: "ALPHA", IgnoreCase: true},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "Alphabet"}, names)
}

func TestSearchFilterSpansFields(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		SearchFilter{Fields: []string{"name", "tag"}, Value: "go"},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "gamma", "Alphabet"}, names)
}

func TestNotInSearchFilterExcludesMatches(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		NotInSearchFilter{Fields: []string{"name"}, Value: "a"},
		OrderBy{FieldName: "id"},
	)
	assert.Empty(t, names)

	names = listNames(t, db,
		NotInSearchFilter{Fields: []string{"name"}, Value: "eta"},
		OrderBy{FieldName: "id"},
	)
	assert.Equal(t, []string{"alpha", "gamma", "Alphabet"}, names)
}

func TestOrderByDirections(t *testing.T) {
	db := setupFilterDB(t)

	asc := listNames(t, db, OrderBy{FieldName: "name", SortOrder: SortAsc})
	assert.Equal(t, "Alphabet", asc[0])

	desc := listNames(t, db, OrderBy{FieldName: "name", SortOrder: SortDesc})
	assert.Equal(t, "gamma", desc[0])
}

func TestApplyCombinesFilters(t *testing.T) {
	db := setupFilterDB(t)

	names := listNames(t, db,
		CollectionFilter{FieldName: "status", Values: []string{"active"}},
		SearchFilter{Fields: []string{"name"}, Value: "alpha", IgnoreCase: true},
		OrderBy{FieldName: "id", SortOrder: SortDesc},
		LimitOffset{Limit: 1},
	)
	assert.Equal(t, []string{"Alphabet"}, names)
}
