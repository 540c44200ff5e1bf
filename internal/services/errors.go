package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/ajramos/echo-tui/internal/api"
)

// Standard service errors
var (
	// Input errors
	ErrEmptyPrompt  = errors.New("prompt text is empty")
	ErrInvalidInput = errors.New("invalid input provided")

	// Network and connectivity errors
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrTimeout            = errors.New("operation timed out")
	ErrUnauthorized       = errors.New("unauthorized access")

	// Data errors
	ErrNotFound = errors.New("resource not found")

	// Service errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrStoreUnavailable   = errors.New("local store unavailable")
)

// classifyError tags a client error with the matching service sentinel.
// The original error stays in the chain so callers can still pull out
// the API status and message.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Join(ErrUnauthorized, err)
		case http.StatusNotFound:
			return errors.Join(ErrNotFound, err)
		case http.StatusBadRequest:
			return errors.Join(ErrInvalidInput, err)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.Join(ErrServiceUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.Join(ErrNetworkUnavailable, err)
	}

	return err
}

// IsRetryableError determines if an error could succeed on resubmission
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServiceUnavailable)
}

// IsPermanentError determines if an error is permanent and should not be retried
func IsPermanentError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmptyPrompt) ||
		errors.Is(err, ErrInvalidInput)
}
