// Package repositories holds what every resource repository shares.
package repositories

import (
	"context"
	"errors"

	"github.com/jrazmi/backoffice/core/scaffolding/fop"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Lister is implemented by every store that backs a list endpoint.
type Lister interface {
	List(ctx context.Context, spec fop.QuerySpec, params fop.Params) (fop.QueryResult, error)
}

// Checker runs the store side validation rules.
type Checker interface {
	Exists(ctx context.Context, table, column string, value any) (bool, error)
	IsUnique(ctx context.Context, table, column string, value any, exceptColumn string, except any) (bool, error)
}
