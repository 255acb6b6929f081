// Package fopbridge provides the response envelopes shared by every
// resource and the conversion of request input into list params.
package fopbridge

import (
	"encoding/json"
	"net/http"

	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/infrastructure/web"
)

// ListData is the data of a list response.
type ListData struct {
	Items []fop.Record  `json:"items"`
	Meta  *fop.PageInfo `json:"meta,omitempty"`
}

// ItemData is the data of a single record response.
type ItemData[T any] struct {
	Item T `json:"item"`
}

// Response is the envelope every successful request is answered with.
type Response[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
	status  int
}

// NewListResponse wraps a list query result.
func NewListResponse(message string, result fop.QueryResult) Response[ListData] {
	items := result.Items
	if items == nil {
		items = []fop.Record{}
	}
	return Response[ListData]{
		Message: message,
		Data:    &ListData{Items: items, Meta: result.Meta},
	}
}

// NewItemResponse wraps a single record.
func NewItemResponse[T any](message string, item T) Response[ItemData[T]] {
	return Response[ItemData[T]]{
		Message: message,
		Data:    &ItemData[T]{Item: item},
	}
}

// NewMessageResponse is a response carrying only a message.
func NewMessageResponse(message string) Response[struct{}] {
	return Response[struct{}]{Message: message}
}

// WithStatus overrides the http status of the response.
func (r Response[T]) WithStatus(status int) Response[T] {
	r.status = status
	return r
}

// Encode implements the web.Encoder interface.
func (r Response[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus implements the web package httpStatus interface.
func (r Response[T]) HTTPStatus() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// ParseParams merges the query string and body of r into list params.
func ParseParams(r *http.Request) (fop.Params, error) {
	values, err := web.Values(r)
	if err != nil {
		return nil, err
	}
	return fop.Params(values), nil
}
