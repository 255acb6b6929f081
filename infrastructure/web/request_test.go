package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesQueryOnly(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/users?search=ali&page=2&page=3", nil)

	values, err := web.Values(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"search": "ali", "page": "2"}, values)
}

func TestValuesJSONBodyOverridesQuery(t *testing.T) {
	body := `{"page": 3, "per_page": 10.0, "active": true, "name": "Bob", "nested": {"a": 1}, "list": [1], "gone": null}`
	r := httptest.NewRequest(http.MethodGet, "/users?page=1&search=b", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	values, err := web.Values(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"page":     "3",
		"per_page": "10.0",
		"active":   "true",
		"name":     "Bob",
		"search":   "b",
	}, values)

	// The body stays readable for later decoding.
	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(rest))
}

func TestValuesFormBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/users?sort=id", strings.NewReader("sort=name&order=desc"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := web.Values(r)
	require.NoError(t, err)
	assert.Equal(t, "name", values["sort"])
	assert.Equal(t, "desc", values["order"])
}

func TestValuesMalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/users", strings.NewReader(`{"page":`))
	r.Header.Set("Content-Type", "application/json")

	_, err := web.Values(r)
	assert.Error(t, err)
}

func TestValuesEmptyJSONBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/users?page=2", strings.NewReader("  "))
	r.Header.Set("Content-Type", "application/json")

	values, err := web.Values(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"page": "2"}, values)
}

type decodable struct {
	raw string
}

func (d *decodable) Decode(data []byte) error {
	d.raw = string(data)
	return nil
}

func TestDecode(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))

		var v struct {
			Name string `json:"name"`
		}
		require.NoError(t, web.Decode(r, &v))
		assert.Equal(t, "Alice", v.Name)
	})

	t.Run("decoder", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("raw body"))

		var d decodable
		require.NoError(t, web.Decode(r, &d))
		assert.Equal(t, "raw body", d.raw)
	})

	t.Run("form", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Alice&user_role_id=2&active=true&note=hi&ignored=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var v struct {
			Name   string  `json:"name"`
			RoleID int     `json:"user_role_id"`
			Active bool    `json:"active"`
			Note   *string `json:"note,omitempty"`
			Skip   string  `json:"-"`
		}
		require.NoError(t, web.Decode(r, &v))
		assert.Equal(t, "Alice", v.Name)
		assert.Equal(t, 2, v.RoleID)
		assert.True(t, v.Active)
		require.NotNil(t, v.Note)
		assert.Equal(t, "hi", *v.Note)
		assert.Empty(t, v.Skip)
	})

	t.Run("form with bad number", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("user_role_id=two"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var v struct {
			RoleID int `json:"user_role_id"`
		}
		assert.ErrorContains(t, web.Decode(r, &v), "user_role_id")
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		var v map[string]any
		assert.ErrorIs(t, web.Decode(r, &v), web.ErrEmptyBody)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		var v map[string]any
		assert.Error(t, web.Decode(r, &v))
	})
}
