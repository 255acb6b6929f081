package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a bare error message for failures raised inside the
// framework itself.
type ErrorResponse struct {
	Message string `json:"message"`
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

func (e ErrorResponse) Error() string {
	return e.Message
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

func (e ErrorResponse) HTTPStatus() int {
	return http.StatusInternalServerError
}
