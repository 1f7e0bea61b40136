package providers

import (
	"fmt"
	"net/http"

	"design-studio/backend/internal/constants"
)

// ProviderError describes a failed call to an upstream provider
type ProviderError struct {
	Code       string
	Message    string
	Details    string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// buildHTTPError creates appropriate error based on status code
func buildHTTPError(statusCode int, endpoint string, body string) *ProviderError {
	err := &ProviderError{StatusCode: statusCode, Details: body}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		err.Code = constants.ErrCodeInvalidAPIKey
		err.Message = fmt.Sprintf("Authentication failed for endpoint %s", endpoint)
	case http.StatusNotFound:
		err.Code = constants.ErrCodeResourceNotFound
		err.Message = fmt.Sprintf("Resource not found: %s", endpoint)
	case http.StatusTooManyRequests:
		err.Code = constants.ErrCodeRateLimited
		err.Message = constants.GetErrorMessage(constants.ErrCodeRateLimited)
	case http.StatusBadRequest:
		err.Code = constants.ErrCodeInvalidDataFormat
		err.Message = fmt.Sprintf("Bad request to %s", endpoint)
	default:
		err.Code = constants.ErrCodeUpstreamUnavailable
		err.Message = fmt.Sprintf("HTTP %d from %s", statusCode, endpoint)
	}
	return err
}
