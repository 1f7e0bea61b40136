package services

import (
	"context"
	"fmt"

	"design-studio/backend/internal/db/repositories"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/models/entities"
)

// StatusService records and lists client status checks
type StatusService struct {
	repo    repositories.StatusCheckRepository
	metrics *metrics.MetricsRegistry
}

func NewStatusService(repo repositories.StatusCheckRepository, m *metrics.MetricsRegistry) *StatusService {
	return &StatusService{repo: repo, metrics: m}
}

// Create persists a new status check for clientName. Storage errors are
// wrapped and returned.
func (svc *StatusService) Create(ctx context.Context, clientName string) (*entities.StatusCheck, error) {
	check := entities.NewStatusCheck(clientName)

	if err := svc.repo.Save(ctx, check); err != nil {
		return nil, fmt.Errorf("save status check: %w", err)
	}

	if svc.metrics != nil {
		svc.metrics.StatusChecksCreatedTotal.Inc()
	}
	logging.Debug("Status check recorded", "id", check.ID, "client_name", check.ClientName)
	return &check, nil
}

// List returns up to the 1000 most recently stored status checks
func (svc *StatusService) List(ctx context.Context) ([]entities.StatusCheck, error) {
	checks, err := svc.repo.ListRecent(ctx, repositories.DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	if checks == nil {
		checks = []entities.StatusCheck{}
	}
	return checks, nil
}

// Ping reports whether the underlying store is reachable
func (svc *StatusService) Ping(ctx context.Context) error {
	return svc.repo.Ping(ctx)
}

// StoreDriver names the store backing the service
func (svc *StatusService) StoreDriver() string {
	return svc.repo.Driver()
}
