package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the Echo backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Echo API returned status %d", e.StatusCode)
}

// errorBody covers both shapes the backend emits: the enhancement views
// return {"error": ..., "details": ...} and DRF auth/validation failures
// return {"detail": ...}
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Detail  string `json:"detail"`
}

// parseAPIError extracts a server-provided message from an error response,
// falling back to the HTTP status
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		parsed := errorBody{}
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil {
			switch {
			case parsed.Error != "":
				apiErr.Message = parsed.Error
				apiErr.Details = parsed.Details
			case parsed.Detail != "":
				apiErr.Message = parsed.Detail
			}
		}
	}

	return apiErr
}

// StatusOf returns the HTTP status code of err when it is an APIError
func StatusOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
