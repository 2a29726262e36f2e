package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// ErrRejected marks a 4xx response that resending will not fix. 408 and 429
// are not rejections: the same request can succeed later.
var ErrRejected = errors.New("request rejected by server")

// StatusError is a non-2xx response. It unwraps to the domain error matching
// the status, and to ErrRejected for client errors.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() []error {
	var out []error
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		out = append(out, domain.ErrInvalidInput)
	case http.StatusUnauthorized, http.StatusForbidden:
		out = append(out, domain.ErrUnauthorized)
	case http.StatusNotFound:
		out = append(out, domain.ErrResultNotFound)
	case http.StatusTooManyRequests:
		out = append(out, domain.ErrTooManyAttempts)
	}
	switch {
	case e.StatusCode >= 500, e.StatusCode == http.StatusTooManyRequests, e.StatusCode == http.StatusRequestTimeout:
		out = append(out, domain.ErrUnavailable)
	case e.StatusCode >= 400:
		out = append(out, ErrRejected)
	}
	return out
}

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}
