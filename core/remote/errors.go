package remote

import (
	"errors"
	"fmt"
)

// MaxDescriptionLength is the service-side limit on description fields.
// The client enforces it before sending so the caller gets the same error
// regardless of which side rejects first.
const MaxDescriptionLength = 10000

// ErrDescriptionTooLong reports that a description field exceeds
// MaxDescriptionLength. It is distinct from generic request failure so the
// caller can surface it per record without aborting the whole plan.
var ErrDescriptionTooLong = errors.New("description exceeds maximum length")

// APIError is a non-2xx response from the campaign service.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Body is the raw response body, truncated for logging.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("campaign service returned status %d: %s", e.StatusCode, e.Body)
}
