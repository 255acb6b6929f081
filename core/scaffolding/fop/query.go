// Package fop provides the filter, order and pagination primitives shared by
// every resource list endpoint.
package fop

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// Set of list query errors.
var (
	ErrInvalidSortColumn  = errors.New("invalid sort column")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidQuerySpec   = errors.New("invalid query spec")
)

// Reserved request parameter keys. They are never treated as filters.
const (
	ParamSearch  = "search"
	ParamSort    = "sort"
	ParamOrder   = "order"
	ParamPage    = "page"
	ParamPerPage = "per_page"
)

// perPageAliases are accepted in addition to ParamPerPage, in priority order.
var perPageAliases = []string{"perPage", "limit"}

// DefaultPrimaryKey is used when a QuerySpec does not name one.
const DefaultPrimaryKey = "id"

// QuerySpec describes how a resource may be listed. It is authored once per
// resource and never derived from request input.
type QuerySpec struct {
	// From is rendered after FROM: a table name plus optional join clauses.
	From string

	// VisibleFields are the columns returned to the caller, in order. They
	// are also the only columns callers may filter or sort on.
	VisibleFields []string

	// SearchableFields are matched case insensitively against the search term.
	SearchableFields []string

	// PrimaryKey orders results when no valid sort is requested.
	PrimaryKey string

	// Paginate enables counting and page number pagination.
	Paginate bool

	// StrictSort rejects unknown sort columns with ErrInvalidSortColumn
	// instead of falling back to the primary key.
	StrictSort bool
}

// PK returns the primary key column, falling back to DefaultPrimaryKey.
func (s QuerySpec) PK() string {
	if s.PrimaryKey == "" {
		return DefaultPrimaryKey
	}
	return s.PrimaryKey
}

// IsVisible reports whether field is one of the visible fields.
func (s QuerySpec) IsVisible(field string) bool {
	return slices.Contains(s.VisibleFields, field)
}

// Params holds untrusted caller supplied key/value input.
type Params map[string]string

// Get returns the trimmed value for key.
func (p Params) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// Search returns the free text search term.
func (p Params) Search() string {
	return p.Get(ParamSearch)
}

// Order returns the requested sort column and direction.
func (p Params) Order() By {
	return NewBy(p.Get(ParamSort), ParseDirection(p.Get(ParamOrder)))
}

// PageNumber returns the normalized page request.
func (p Params) PageNumber() PageNumber {
	perPage := p.Get(ParamPerPage)
	for _, alias := range perPageAliases {
		if perPage != "" {
			break
		}
		perPage = p.Get(alias)
	}
	return ParsePageNumber(p.Get(ParamPage), perPage)
}

// Filter returns the exact match value for field. Reserved keys and empty
// values never produce a filter.
func (p Params) Filter(field string) (string, bool) {
	if IsReserved(field) {
		return "", false
	}
	v, ok := p[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// IsReserved reports whether key is a list control parameter.
func IsReserved(key string) bool {
	switch key {
	case ParamSearch, ParamSort, ParamOrder, ParamPage, ParamPerPage:
		return true
	}
	return slices.Contains(perPageAliases, key)
}

// QueryResult is a page of projected rows plus optional pagination data.
type QueryResult struct {
	Items []Record  `json:"items"`
	Meta  *PageInfo `json:"meta,omitempty"`
}

// Record is a single row projected to a fixed, ordered set of columns.
type Record struct {
	Columns []string
	Values  []any
}

// Get returns the value of column and whether it is present.
func (r Record) Get(column string) (any, bool) {
	i := slices.Index(r.Columns, column)
	if i < 0 || i >= len(r.Values) {
		return nil, false
	}
	return r.Values[i], true
}

// MarshalJSON encodes the record as an object keeping column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var v any
		if i < len(r.Values) {
			v = r.Values[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
