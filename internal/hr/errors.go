package hr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// ErrNotConfigured is returned by the client when no credentials are set
var ErrNotConfigured = errors.New("hr source not configured")

// StatusError is a non-2xx answer from the HR API
type StatusError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hr %s: unexpected status %d: %s", e.Resource, e.StatusCode, e.Body)
}

// Is maps 403/404 to domain.ErrModuleUnavailable: the HR platform answers that way
// for modules the account has not subscribed to.
func (e *StatusError) Is(target error) bool {
	if target == domain.ErrModuleUnavailable {
		return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusNotFound
	}
	return false
}
