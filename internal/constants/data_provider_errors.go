package constants

// Upstream provider error codes

// Credential-related errors
const (
	ErrCodeInvalidAPIKey = "INVALID_API_KEY"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeNetworkError  = "NETWORK_ERROR"
)

// Response-related errors
const (
	ErrCodeResourceNotFound    = "RESOURCE_NOT_FOUND"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedResponse   = "MALFORMED_RESPONSE"
	ErrCodeInvalidDataFormat   = "INVALID_DATA_FORMAT"
)

// Media library errors
const (
	ErrCodeMediaAPIError = "MEDIA_API_ERROR"
)

var DataProviderErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey: "The Klippy API key is missing, invalid or has been revoked",
	ErrCodeRateLimited:   "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:  "Unable to connect to the Klippy API",

	ErrCodeResourceNotFound:    "The requested Klippy resource was not found",
	ErrCodeUpstreamUnavailable: "The Klippy API returned an unexpected status",
	ErrCodeMalformedResponse:   "The Klippy API returned a body that is not valid JSON",
	ErrCodeInvalidDataFormat:   "The request sent to the Klippy API was rejected",

	ErrCodeMediaAPIError: "Cloudinary rejected the request",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
