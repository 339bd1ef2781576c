package base

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase provides a random UUID primary key
type UUIDBase struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate assigns a random ID unless one is already set
func (b *UUIDBase) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UUIDv7Base provides a time ordered UUIDv7 primary key, which keeps index
// pages append friendly under write heavy load
type UUIDv7Base struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate assigns a UUIDv7 ID unless one is already set
func (b *UUIDv7Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate UUIDv7: %w", err)
	}
	b.ID = id
	return nil
}

// BigIntBase provides an auto incrementing integer primary key
type BigIntBase struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
}

// AuditColumns records when a row was created and last updated
type AuditColumns struct {
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

// SoftDelete marks rows as deleted instead of removing them. Queries skip
// soft deleted rows unless they opt in with Unscoped
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SlugKey adds a URL friendly unique key alongside the primary key
type SlugKey struct {
	Slug string `gorm:"uniqueIndex;size:100" json:"slug"`
}

// UUIDAuditBase combines a random UUID primary key with audit timestamps
type UUIDAuditBase struct {
	UUIDBase
	AuditColumns
}

// UUIDv7AuditBase combines a UUIDv7 primary key with audit timestamps
type UUIDv7AuditBase struct {
	UUIDv7Base
	AuditColumns
}

// BigIntAuditBase combines an integer primary key with audit timestamps
type BigIntAuditBase struct {
	BigIntBase
	AuditColumns
}

// Slugify derives a slug from a display value: lower case, with runs of
// non-alphanumeric characters collapsed into single dashes
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	dash := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
