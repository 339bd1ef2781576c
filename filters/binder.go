package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Query parameter names understood by the binder
const (
	ParamIDs              = "ids"
	ParamCreatedBefore    = "createdBefore"
	ParamCreatedAfter     = "createdAfter"
	ParamUpdatedBefore    = "updatedBefore"
	ParamUpdatedAfter     = "updatedAfter"
	ParamCurrentPage      = "currentPage"
	ParamPageSize         = "pageSize"
	ParamSearchString     = "searchString"
	ParamSearchIgnoreCase = "searchIgnoreCase"
	ParamOrderBy          = "orderBy"
	ParamSortOrder        = "sortOrder"
)

// BindError reports a query parameter the binder could not accept
type BindError struct {
	Param  string
	Value  string
	Reason string
}

// Error returns the human readable description of the failed parameter
func (e *BindError) Error() string {
	return fmt.Sprintf("invalid query parameter %s=%q: %s", e.Param, e.Value, e.Reason)
}

type collectionParam struct {
	param string
	field string
}

// Binder turns request query parameters into statement filters according to
// a compiled Config
type Binder struct {
	cfg          Config
	searchFields []string
	inParams     []collectionParam
	notInParams  []collectionParam
}

// NewBinder validates and compiles a filter config
func NewBinder(cfg Config) (*Binder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()

	b := &Binder{
		cfg:          cfg,
		searchFields: cfg.searchFields(),
		inParams:     make([]collectionParam, 0, len(cfg.InFields)),
		notInParams:  make([]collectionParam, 0, len(cfg.NotInFields)),
	}
	for _, field := range cfg.NotInFields {
		b.notInParams = append(b.notInParams, collectionParam{param: camelize(field) + "NotIn", field: field})
	}
	for _, field := range cfg.InFields {
		b.inParams = append(b.inParams, collectionParam{param: camelize(field) + "In", field: field})
	}
	return b, nil
}

// Bind builds the filter list for one request. Parameters that are absent
// contribute no filter, with the exception of pagination which always yields
// a LimitOffset when configured. Unparseable values return a *BindError
func (b *Binder) Bind(query url.Values) ([]StatementFilter, error) {
	fs := make([]StatementFilter, 0, 8)

	if b.cfg.IDFilter {
		ids := query[ParamIDs]
		if len(ids) > 0 {
			if err := b.checkIDs(ids); err != nil {
				return nil, err
			}
			fs = append(fs, CollectionFilter{FieldName: b.cfg.IDField, Values: ids})
		}
	}

	if b.cfg.CreatedAt {
		f, err := bindBeforeAfter(query, b.cfg.CreatedAtField, ParamCreatedBefore, ParamCreatedAfter)
		if err != nil {
			return nil, err
		}
		if f != nil {
			fs = append(fs, *f)
		}
	}

	if b.cfg.UpdatedAt {
		f, err := bindBeforeAfter(query, b.cfg.UpdatedAtField, ParamUpdatedBefore, ParamUpdatedAfter)
		if err != nil {
			return nil, err
		}
		if f != nil {
			fs = append(fs, *f)
		}
	}

	if len(b.searchFields) > 0 {
		if value := query.Get(ParamSearchString); value != "" {
			ignoreCase := b.cfg.SearchIgnoreCase
			if raw := query.Get(ParamSearchIgnoreCase); raw != "" {
				parsed, err := strconv.ParseBool(raw)
				if err != nil {
					return nil, &BindError{Param: ParamSearchIgnoreCase, Value: raw, Reason: "must be a boolean"}
				}
				ignoreCase = parsed
			}
			fs = append(fs, SearchFilter{Fields: b.searchFields, Value: value, IgnoreCase: ignoreCase})
		}
	}

	if b.cfg.PaginationType == PaginationLimitOffset {
		f, err := b.bindLimitOffset(query)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}

	if b.cfg.SortField != "" {
		field := query.Get(ParamOrderBy)
		if field == "" {
			field = b.cfg.SortField
		}
		order := b.cfg.SortOrder
		if raw := query.Get(ParamSortOrder); raw != "" {
			raw = strings.ToLower(raw)
			if raw != SortAsc && raw != SortDesc {
				return nil, &BindError{Param: ParamSortOrder, Value: raw, Reason: "must be asc or desc"}
			}
			order = raw
		}
		fs = append(fs, OrderBy{FieldName: field, SortOrder: order})
	}

	for _, p := range b.notInParams {
		if values := query[p.param]; len(values) > 0 {
			fs = append(fs, NotInCollectionFilter{FieldName: p.field, Values: values})
		}
	}
	for _, p := range b.inParams {
		if values := query[p.param]; len(values) > 0 {
			fs = append(fs, CollectionFilter{FieldName: p.field, Values: values})
		}
	}

	return fs, nil
}

func (b *Binder) checkIDs(ids []string) error {
	switch b.cfg.IDType {
	case IDTypeUUID:
		for _, id := range ids {
			if _, err := uuid.Parse(id); err != nil {
				return &BindError{Param: ParamIDs, Value: id, Reason: "must be a UUID"}
			}
		}
	case IDTypeInt:
		for _, id := range ids {
			if _, err := strconv.ParseInt(id, 10, 64); err != nil {
				return &BindError{Param: ParamIDs, Value: id, Reason: "must be an integer"}
			}
		}
	}
	return nil
}

func (b *Binder) bindLimitOffset(query url.Values) (LimitOffset, error) {
	page := 1
	if raw := query.Get(ParamCurrentPage); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return LimitOffset{}, &BindError{Param: ParamCurrentPage, Value: raw, Reason: "must be a positive integer"}
		}
		page = parsed
	}

	size := b.cfg.PaginationSize
	if raw := query.Get(ParamPageSize); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return LimitOffset{}, &BindError{Param: ParamPageSize, Value: raw, Reason: "must be a positive integer"}
		}
		if b.cfg.MaxPaginationSize > 0 && parsed > b.cfg.MaxPaginationSize {
			return LimitOffset{}, &BindError{
				Param:  ParamPageSize,
				Value:  raw,
				Reason: fmt.Sprintf("must not exceed %d", b.cfg.MaxPaginationSize),
			}
		}
		size = parsed
	}

	return LimitOffset{Limit: size, Offset: (page - 1) * size}, nil
}

func bindBeforeAfter(query url.Values, field string, beforeParam string, afterParam string) (*BeforeAfter, error) {
	before, err := parseTimeParam(query, beforeParam)
	if err != nil {
		return nil, err
	}
	after, err := parseTimeParam(query, afterParam)
	if err != nil {
		return nil, err
	}
	if before == nil && after == nil {
		return nil, nil
	}
	return &BeforeAfter{FieldName: field, Before: before, After: after}, nil
}

func parseTimeParam(query url.Values, param string) (*time.Time, error) {
	raw := query.Get(param)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &BindError{Param: param, Value: raw, Reason: "must be an RFC 3339 timestamp"}
	}
	return &t, nil
}
