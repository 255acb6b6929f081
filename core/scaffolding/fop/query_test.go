package fop_test

import (
	"encoding/json"
	"testing"

	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySpecPK(t *testing.T) {
	assert.Equal(t, "id", fop.QuerySpec{}.PK())
	assert.Equal(t, "uuid", fop.QuerySpec{PrimaryKey: "uuid"}.PK())
}

func TestQuerySpecIsVisible(t *testing.T) {
	spec := fop.QuerySpec{VisibleFields: []string{"id", "name"}}

	assert.True(t, spec.IsVisible("name"))
	assert.False(t, spec.IsVisible("password"))
}

func TestParamsFilter(t *testing.T) {
	params := fop.Params{
		"name":     "Alice",
		"email":    "",
		"search":   "ali",
		"page":     "2",
		"per_page": "10",
		"limit":    "5",
	}

	v, ok := params.Filter("name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)

	_, ok = params.Filter("email")
	assert.False(t, ok, "empty values are not filters")

	for _, key := range []string{"search", "page", "per_page", "limit"} {
		_, ok := params.Filter(key)
		assert.False(t, ok, "%s is reserved", key)
	}

	_, ok = params.Filter("missing")
	assert.False(t, ok)
}

func TestParamsPageNumberAliases(t *testing.T) {
	assert.Equal(t, 10, fop.Params{"per_page": "10", "perPage": "20"}.PageNumber().PerPage)
	assert.Equal(t, 20, fop.Params{"perPage": "20", "limit": "30"}.PageNumber().PerPage)
	assert.Equal(t, 30, fop.Params{"limit": "30"}.PageNumber().PerPage)
	assert.Equal(t, fop.DefaultPerPage, fop.Params{}.PageNumber().PerPage)
}

func TestParamsOrder(t *testing.T) {
	by := fop.Params{"sort": " name ", "order": "desc"}.Order()
	assert.Equal(t, fop.NewBy("name", fop.DESC), by)

	by = fop.Params{}.Order()
	assert.Equal(t, fop.NewBy("", fop.ASC), by)
}

func TestParamsSearch(t *testing.T) {
	assert.Equal(t, "ali", fop.Params{"search": "  ali "}.Search())
	assert.Empty(t, fop.Params{}.Search())
}

func TestIsReserved(t *testing.T) {
	for _, key := range []string{"search", "sort", "order", "page", "per_page", "perPage", "limit"} {
		assert.True(t, fop.IsReserved(key), key)
	}
	assert.False(t, fop.IsReserved("name"))
}

func TestRecordMarshalJSONKeepsColumnOrder(t *testing.T) {
	rec := fop.Record{
		Columns: []string{"id", "user_status_name", "user_status_description"},
		Values:  []any{int64(7), "active", nil},
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"id":7,"user_status_name":"active","user_status_description":null}`, string(b))
}

func TestRecordGet(t *testing.T) {
	rec := fop.Record{
		Columns: []string{"id", "name"},
		Values:  []any{1, "Alice"},
	}

	v, ok := rec.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)

	_, ok = rec.Get("email")
	assert.False(t, ok)
}

func TestQueryResultJSON(t *testing.T) {
	result := fop.QueryResult{Items: []fop.Record{}}

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(b))

	info := fop.NewPageInfo(fop.PageNumber{Page: 1, PerPage: 15}, 0)
	result.Meta = &info

	b, err = json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"meta":{"page":1,"perPage":15,"totalCount":0,"totalPages":0}}`, string(b))
}
