package filters

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Pagination type constants
const (
	PaginationLimitOffset = "limit_offset"
)

// ID value type constants
const (
	IDTypeString = "string"
	IDTypeUUID   = "uuid"
	IDTypeInt    = "int"
)

// DefaultPaginationSize is the page size used when a route enables pagination
// without choosing one
const DefaultPaginationSize = 20

// Config declares which query parameters a route accepts and how they map
// onto statement filters. The zero value accepts no parameters; enable each
// filter group by setting its fields
type Config struct {
	// IDFilter enables the ids parameter, matched against IDField. IDType
	// selects how the incoming values are checked before binding
	IDFilter bool
	IDField  string
	IDType   string `validate:"omitempty,oneof=string uuid int"`

	// CreatedAt and UpdatedAt enable the createdBefore/createdAfter and
	// updatedBefore/updatedAfter parameters for their columns
	CreatedAt      bool
	CreatedAtField string
	UpdatedAt      bool
	UpdatedAtField string

	// PaginationType enables the currentPage and pageSize parameters.
	// PaginationSize is the default page size and MaxPaginationSize caps
	// what clients may request, zero meaning no cap
	PaginationType    string `validate:"omitempty,oneof=limit_offset"`
	PaginationSize    int    `validate:"omitempty,min=1"`
	MaxPaginationSize int    `validate:"omitempty,min=1"`

	// Search lists the columns searched by the searchString parameter,
	// comma separated. SearchIgnoreCase sets the default case behavior,
	// which clients can override with searchIgnoreCase
	Search           string
	SearchIgnoreCase bool

	// SortField enables the orderBy and sortOrder parameters and names the
	// default sort column
	SortField string
	SortOrder string `validate:"omitempty,oneof=asc desc"`

	// InFields and NotInFields add one <field>In or <field>NotIn parameter
	// per listed column
	InFields    []string
	NotInFields []string
}

// Validate checks that all fields in Config are valid
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for filter Config: %w", err)
	}

	if c.MaxPaginationSize > 0 {
		size := c.PaginationSize
		if size == 0 {
			size = DefaultPaginationSize
		}
		if size > c.MaxPaginationSize {
			return fmt.Errorf("pagination size %d exceeds max pagination size %d", size, c.MaxPaginationSize)
		}
	}
	for _, field := range c.InFields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("in_fields must not contain empty field names")
		}
	}
	for _, field := range c.NotInFields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("not_in_fields must not contain empty field names")
		}
	}

	return nil
}

// normalized returns a copy of the config with defaults filled in
func (c Config) normalized() Config {
	if c.IDField == "" {
		c.IDField = "id"
	}
	if c.IDType == "" {
		c.IDType = IDTypeString
	}
	if c.CreatedAtField == "" {
		c.CreatedAtField = "created_at"
	}
	if c.UpdatedAtField == "" {
		c.UpdatedAtField = "updated_at"
	}
	if c.PaginationSize == 0 {
		c.PaginationSize = DefaultPaginationSize
	}
	if c.SortOrder == "" {
		c.SortOrder = SortAsc
	}
	return c
}

// fingerprint identifies a config for binder caching
func (c Config) fingerprint() string {
	return fmt.Sprintf("%+v", c.normalized())
}

// searchFields splits the Search declaration into column names
func (c Config) searchFields() []string {
	if c.Search == "" {
		return nil
	}
	fields := make([]string, 0, 2)
	for _, field := range strings.Split(c.Search, ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// camelize converts a snake_case column name into the camelCase prefix used
// for its query parameter
func camelize(field string) string {
	parts := strings.Split(field, "_")
	out := parts[0]
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		out += strings.ToUpper(part[:1]) + part[1:]
	}
	return out
}
