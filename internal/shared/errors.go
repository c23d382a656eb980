package shared

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Validation errors: surfaced immediately, no network call is made
	ErrValidation      = fmt.Errorf("validation failed")
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", ErrValidation)
	ErrFileTooLarge    = fmt.Errorf("%w: file too large", ErrValidation)
	ErrEmptyQuery      = fmt.Errorf("%w: no search terms", ErrValidation)
	ErrDuplicateName   = fmt.Errorf("%w: duplicate list name", ErrValidation)
	ErrNoListChosen    = fmt.Errorf("%w: no list chosen", ErrValidation)
	ErrEmptySelection  = fmt.Errorf("%w: no contacts selected", ErrValidation)

	// Transport and service errors
	ErrUnreachable        = fmt.Errorf("service unreachable")
	ErrTimeout            = fmt.Errorf("operation timed out")
	ErrServerRejected     = fmt.Errorf("request rejected by server")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAPIRequest         = fmt.Errorf("API request failed")

	// Partial success: a remote side effect occurred but did not fully
	// complete as requested
	ErrPartial = fmt.Errorf("operation partially succeeded")

	// Workflow errors
	ErrSyncInFlight = fmt.Errorf("a sync operation is already in flight")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ClassifyTransport converts a raw transport error into one of the sentinel
// classifications (ErrTimeout, ErrUnreachable) with a message naming the
// endpoint that was expected to answer.
//
// Server responses with non-success statuses are classified by the service
// clients themselves (see ErrServerRejected); this helper only handles
// errors where no response arrived at all.
func ClassifyTransport(err error, endpoint string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: no response from %s", ErrTimeout, endpoint)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: no response from %s", ErrTimeout, endpoint)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: no response from %s", ErrTimeout, endpoint)
	}

	return fmt.Errorf("%w: could not reach %s: %v", ErrUnreachable, endpoint, err)
}

// IsValidation reports whether err belongs to the validation class, meaning
// the operation was rejected locally and no network call was attempted.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
