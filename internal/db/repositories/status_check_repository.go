package repositories

import (
	"context"
	"fmt"
	"time"

	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/models/entities"
)

// DefaultListLimit bounds every ListRecent call.
const DefaultListLimit = 1000

// StatusCheckRepository persists and reads status check records.
type StatusCheckRepository interface {
	// Save writes one new document with the timestamp serialized as ISO-8601.
	Save(ctx context.Context, check entities.StatusCheck) error

	// ListRecent returns up to limit of the most recently stored records,
	// oldest first, with store internal identifiers stripped.
	ListRecent(ctx context.Context, limit int) ([]entities.StatusCheck, error)

	// Ping checks the underlying connection
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close(ctx context.Context) error

	// Driver returns the store driver name
	Driver() string
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Driver string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store %s failed: %v", e.Driver, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

// decodeDocuments maps raw store documents to entities. docs must be ordered
// newest first; the result is oldest first.
func decodeDocuments(driver string, docs []entities.Document) ([]entities.StatusCheck, error) {
	checks := make([]entities.StatusCheck, len(docs))
	for i, doc := range docs {
		check, err := entities.StatusCheckFromDocument(doc)
		if err != nil {
			return nil, &StorageError{Driver: driver, Op: "decode", Err: err}
		}
		checks[len(docs)-1-i] = check
	}
	return checks, nil
}

// instrumentedRepository records store metrics around another repository.
type instrumentedRepository struct {
	next    StatusCheckRepository
	metrics *metrics.MetricsRegistry
}

// WithMetrics wraps repo so that every operation is counted and timed.
func WithMetrics(repo StatusCheckRepository, m *metrics.MetricsRegistry) StatusCheckRepository {
	if m == nil {
		return repo
	}
	return &instrumentedRepository{next: repo, metrics: m}
}

func (r *instrumentedRepository) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	driver := r.next.Driver()
	r.metrics.StoreOperationsTotal.WithLabelValues(driver, op, result).Inc()
	r.metrics.StoreOperationDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
}

func (r *instrumentedRepository) Save(ctx context.Context, check entities.StatusCheck) error {
	start := time.Now()
	err := r.next.Save(ctx, check)
	r.observe("save", start, err)
	return err
}

func (r *instrumentedRepository) ListRecent(ctx context.Context, limit int) ([]entities.StatusCheck, error) {
	start := time.Now()
	checks, err := r.next.ListRecent(ctx, limit)
	r.observe("list_recent", start, err)
	return checks, err
}

func (r *instrumentedRepository) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.next.Ping(ctx)
	r.observe("ping", start, err)
	return err
}

func (r *instrumentedRepository) Close(ctx context.Context) error {
	return r.next.Close(ctx)
}

func (r *instrumentedRepository) Driver() string {
	return r.next.Driver()
}
