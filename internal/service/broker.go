package service

import (
	"context"
	"fmt"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/report"
	"github.com/guttosm/floorsheet/internal/storage"
)

// MaxListLimit caps the number of rows a single listing may return.
const MaxListLimit = 1000

// BrokerService answers queries against the stored buyer/seller report.
type BrokerService interface {
	ListActivity(ctx context.Context, filter models.BrokerFilter) ([]models.ReportRow, error)
	Lookup(ctx context.Context, key string) (*models.ReportRow, error)
	LatestRun(ctx context.Context) (*models.Run, error)
}

type brokerService struct {
	repo storage.ReportRepository
}

// NewBrokerService wraps repo with listing limits and key validation.
func NewBrokerService(repo storage.ReportRepository) BrokerService {
	return &brokerService{repo: repo}
}

func (s *brokerService) ListActivity(ctx context.Context, filter models.BrokerFilter) ([]models.ReportRow, error) {
	if filter.Limit <= 0 {
		filter.Limit = storage.DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return s.repo.ListBrokerActivity(ctx, filter)
}

// Lookup finds the report row stored under a textual "date;symbol;broker"
// key.
//
// Behavior:
//   - A key with fewer than three parts yields an error wrapping
//     report.ErrKeyShape and never reaches the repository.
//   - Otherwise the key is matched exactly against the stored row key, so
//     a field containing the delimiter is still found and extra parts never
//     match a shorter key.
//
// Returns nil, nil when no row has that key.
func (s *brokerService) Lookup(ctx context.Context, key string) (*models.ReportRow, error) {
	if _, err := report.ParseKey(key); err != nil {
		return nil, fmt.Errorf("lookup %q: %w", key, err)
	}
	return s.repo.FindByKey(ctx, key)
}

func (s *brokerService) LatestRun(ctx context.Context) (*models.Run, error) {
	return s.repo.LatestRun(ctx)
}
