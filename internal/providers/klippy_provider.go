package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"design-studio/backend/internal/constants"

	"github.com/imroc/req/v3"
)

const (
	DefaultKlippyBaseURL = "https://api.klippy.ai/v1"
	DefaultKlippyTimeout = 10 * time.Second

	// CategoryAll is the sentinel that means "no category filter"
	CategoryAll = "all"

	elementsEndpoint = "/elements"
	searchEndpoint   = "/search"
	elementFormat    = "svg"
)

// KlippyProvider calls the Klippy element catalog API
type KlippyProvider struct {
	BaseURL string
	APIKey  string
	Client  *req.Client
}

// NewKlippyProvider creates a provider with a fixed request timeout and no retries
func NewKlippyProvider(baseURL, apiKey string, timeout time.Duration) *KlippyProvider {
	if baseURL == "" {
		baseURL = DefaultKlippyBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultKlippyTimeout
	}

	return &KlippyProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: req.C().
			SetTimeout(timeout).
			SetCommonRetryCount(0).
			SetCommonHeader("Accept", "application/json"),
	}
}

// GetProviderType returns the provider type identifier
func (p *KlippyProvider) GetProviderType() string {
	return "klippy_catalog_api"
}

// ListElements fetches a page of catalog elements. The body is returned
// verbatim when the upstream answers 200 with valid JSON.
func (p *KlippyProvider) ListElements(ctx context.Context, q ElementsQuery) (json.RawMessage, int, error) {
	params := map[string]string{
		"limit":  strconv.Itoa(q.Limit),
		"format": elementFormat,
		"sort":   q.Sort,
	}
	addCategory(params, q.Category)

	return p.doGET(ctx, elementsEndpoint, params)
}

// SearchElements runs a free-text search over the catalog
func (p *KlippyProvider) SearchElements(ctx context.Context, q SearchQuery) (json.RawMessage, int, error) {
	params := map[string]string{
		"q":      q.Query,
		"limit":  strconv.Itoa(q.Limit),
		"format": elementFormat,
	}
	addCategory(params, q.Category)

	return p.doGET(ctx, searchEndpoint, params)
}

func addCategory(params map[string]string, category string) {
	if category != "" && category != CategoryAll {
		params["category"] = category
	}
}

// doGET performs a GET request with authentication
func (p *KlippyProvider) doGET(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, int, error) {
	// Validate API key
	if p.APIKey == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "KLIPPY_API_KEY is not set",
		}
	}

	resp, err := p.Client.R().
		SetContext(ctx).
		SetBearerAuthToken(p.APIKey).
		SetQueryParams(params).
		Get(p.BaseURL + endpoint)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, buildHTTPError(resp.StatusCode, endpoint, string(body))
	}

	if !json.Valid(body) {
		return nil, resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeMalformedResponse,
			Message:    constants.GetErrorMessage(constants.ErrCodeMalformedResponse),
			Details:    string(body),
			StatusCode: resp.StatusCode,
		}
	}

	return json.RawMessage(body), resp.StatusCode, nil
}
