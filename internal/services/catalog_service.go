package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/providers"
)

const (
	DefaultElementsLimit = 20
	DefaultElementsSort  = "popular"

	opListElements   = "list_elements"
	opSearchElements = "search_elements"
)

// CatalogProvider is the upstream element catalog
type CatalogProvider interface {
	ListElements(ctx context.Context, q providers.ElementsQuery) (json.RawMessage, int, error)
	SearchElements(ctx context.Context, q providers.SearchQuery) (json.RawMessage, int, error)
}

// CatalogService proxies the element catalog. Upstream failures never reach
// the caller: ListElements falls back to a static two-element set and
// SearchElements to an empty list.
type CatalogService struct {
	provider CatalogProvider
	metrics  *metrics.MetricsRegistry
}

func NewCatalogService(provider CatalogProvider, m *metrics.MetricsRegistry) *CatalogService {
	return &CatalogService{provider: provider, metrics: m}
}

// ListElements returns the upstream listing or the static fallback
func (svc *CatalogService) ListElements(ctx context.Context, limit int, category, sort string) json.RawMessage {
	if sort == "" {
		sort = DefaultElementsSort
	}

	start := time.Now()
	body, status, err := svc.provider.ListElements(ctx, providers.ElementsQuery{
		Limit:    limit,
		Category: category,
		Sort:     sort,
	})
	svc.observe(opListElements, start, err)

	if err != nil {
		logging.Error("Klippy API error",
			"operation", opListElements,
			"category", category,
			"status_code", status,
			"error", err.Error(),
		)
		svc.fallback(opListElements)
		return FallbackElements()
	}
	return body
}

// SearchElements returns the upstream search result or an empty element list
func (svc *CatalogService) SearchElements(ctx context.Context, query string, limit int, category string) json.RawMessage {
	start := time.Now()
	body, status, err := svc.provider.SearchElements(ctx, providers.SearchQuery{
		Query:    query,
		Limit:    limit,
		Category: category,
	})
	svc.observe(opSearchElements, start, err)

	if err != nil {
		logging.Error("Klippy search error",
			"operation", opSearchElements,
			"category", category,
			"status_code", status,
			"error", err.Error(),
		)
		svc.fallback(opSearchElements)
		return EmptyElements()
	}
	return body
}

func (svc *CatalogService) observe(op string, start time.Time, err error) {
	if svc.metrics == nil {
		return
	}
	svc.metrics.UpstreamRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
	svc.metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (svc *CatalogService) fallback(op string) {
	if svc.metrics == nil {
		return
	}
	svc.metrics.UpstreamFallbacksTotal.WithLabelValues(op).Inc()
}

// outcome labels an upstream call by its provider error code
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var provErr *providers.ProviderError
	if errors.As(err, &provErr) && provErr.Code != "" {
		return provErr.Code
	}
	return "error"
}
