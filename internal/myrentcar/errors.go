package myrentcar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// ErrNotConfigured is returned when no credentials are set
var ErrNotConfigured = errors.New("myrentcar source not configured")

// StatusError is a non-2xx answer from the rental API
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("myrentcar %s: unexpected status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Is maps 403/404 to domain.ErrModuleUnavailable, the rental platform's
// answer for accounts without the fleet module.
func (e *StatusError) Is(target error) bool {
	if target == domain.ErrModuleUnavailable {
		return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusNotFound
	}
	return false
}
