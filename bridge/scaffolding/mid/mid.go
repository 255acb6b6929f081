// Package mid provides app level middleware support.
package mid

import (
	"net/http"

	"github.com/jrazmi/backoffice/infrastructure/web"
)

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}

type httpStatus interface {
	HTTPStatus() int
}

// statusOf returns the status code web.Respond will write for e.
func statusOf(e web.Encoder) int {
	switch v := e.(type) {
	case nil:
		return http.StatusNoContent
	case httpStatus:
		return v.HTTPStatus()
	case error:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
