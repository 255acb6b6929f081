package fopbridge_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/backoffice/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListResponse(t *testing.T) {
	info := fop.NewPageInfo(fop.PageNumber{Page: 1, PerPage: 15}, 1)
	resp := fopbridge.NewListResponse("Users retrieved successfully", fop.QueryResult{
		Items: []fop.Record{{Columns: []string{"id", "name"}, Values: []any{1, "Alice"}}},
		Meta:  &info,
	})

	data, contentType, err := resp.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.Equal(t, http.StatusOK, resp.HTTPStatus())
	assert.JSONEq(t, `{
		"message": "Users retrieved successfully",
		"data": {
			"items": [{"id": 1, "name": "Alice"}],
			"meta": {"page": 1, "perPage": 15, "totalCount": 1, "totalPages": 1}
		}
	}`, string(data))
}

func TestNewListResponseEmpty(t *testing.T) {
	resp := fopbridge.NewListResponse("Users retrieved successfully", fop.QueryResult{})

	data, _, err := resp.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Users retrieved successfully","data":{"items":[]}}`, string(data))
}

func TestNewItemResponse(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	resp := fopbridge.NewItemResponse("User retrieved successfully", item{ID: 7, Name: "Alice"}).
		WithStatus(http.StatusCreated)

	data, _, err := resp.Encode()
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.HTTPStatus())
	assert.JSONEq(t, `{"message":"User retrieved successfully","data":{"item":{"id":7,"name":"Alice"}}}`, string(data))
}

func TestNewMessageResponse(t *testing.T) {
	data, _, err := fopbridge.NewMessageResponse("User deleted successfully").Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(data))
}

func TestParseParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/users?search=ali", strings.NewReader(`{"page":2,"per_page":5}`))
	r.Header.Set("Content-Type", "application/json")

	params, err := fopbridge.ParseParams(r)
	require.NoError(t, err)

	assert.Equal(t, "ali", params.Search())
	assert.Equal(t, fop.PageNumber{Page: 2, PerPage: 5}, params.PageNumber())
}
