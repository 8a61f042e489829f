package httputils

import (
	"errors"
	"net/http"
)

// HTTPError is an error with the status code and message sent to the client.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewError returns an HTTPError.
func NewError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// HandleError writes err as a JSON error body. Errors that are not an
// HTTPError become a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		_ = JSONError(w, httpErr.Code, httpErr.Message)
	} else {
		_ = JSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
