package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/guttosm/spimexpulse/internal/domain/models"
	"github.com/guttosm/spimexpulse/internal/storage"
)

// Limits applied to list queries.
const (
	MaxResultsLimit  = 1000
	DefaultDateLimit = 10
	MaxDateLimit     = 100
)

// ErrInvalidRange is returned when the start date is after the end date.
var ErrInvalidRange = errors.New("start_date must not be after end_date")

// ResultsService defines read-side business logic over stored trading results.
type ResultsService interface {
	GetAggregate(ctx context.Context, oilID string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error)
	ListResults(ctx context.Context, filter models.ResultsFilter) ([]models.TradingRecord, error)
	LastTradingDates(ctx context.Context, limit int) ([]time.Time, error)
}

type resultsService struct {
	repo storage.TradingResultsRepository
}

func NewResultsService(repo storage.TradingResultsRepository) ResultsService {
	return &resultsService{repo: repo}
}

func (s *resultsService) GetAggregate(ctx context.Context, oilID string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error) {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, ErrInvalidRange
	}
	return s.repo.GetAggregateByOil(ctx, strings.TrimSpace(oilID), startDate, endDate)
}

// ListResults trims identifier filters and clamps the limit to
// (0, MaxResultsLimit]; a non-positive limit selects storage.DefaultResultsLimit.
func (s *resultsService) ListResults(ctx context.Context, filter models.ResultsFilter) ([]models.TradingRecord, error) {
	filter.OilID = strings.TrimSpace(filter.OilID)
	filter.DeliveryBasisID = strings.TrimSpace(filter.DeliveryBasisID)
	filter.DeliveryTypeID = strings.TrimSpace(filter.DeliveryTypeID)
	switch {
	case filter.Limit <= 0:
		filter.Limit = storage.DefaultResultsLimit
	case filter.Limit > MaxResultsLimit:
		filter.Limit = MaxResultsLimit
	}
	return s.repo.ListResults(ctx, filter)
}

func (s *resultsService) LastTradingDates(ctx context.Context, limit int) ([]time.Time, error) {
	switch {
	case limit <= 0:
		limit = DefaultDateLimit
	case limit > MaxDateLimit:
		limit = MaxDateLimit
	}
	return s.repo.LastTradingDates(ctx, limit)
}
