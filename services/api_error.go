// services/api_error.go
package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// APIError is the uniform failure shape every component boundary reports:
// a message for the operator, plus the HTTP status when one exists. Transport
// failures carry no status.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

const fallbackErrorMessage = "An unknown error occurred"

// NormalizeError maps any gateway failure onto an APIError. A structured
// {message} response body wins, then the transport error text, then a generic
// fallback. It never panics and always returns a value for a non-nil error.
func NormalizeError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		msg := ""
		var body struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(statusErr.Body, &body); jsonErr == nil {
			msg = body.Message
		}
		if msg == "" {
			msg = http.StatusText(statusErr.Status)
		}
		if msg == "" {
			msg = fallbackErrorMessage
		}
		return &APIError{Message: msg, Status: statusErr.Status}
	}

	if msg := err.Error(); msg != "" {
		return &APIError{Message: msg}
	}
	return &APIError{Message: fallbackErrorMessage}
}
