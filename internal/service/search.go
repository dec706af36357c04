package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"trends-go/pkg/logger"
	"trends-go/pkg/metrics"
	"trends-go/pkg/trends"
)

// Searcher is the part of *trends.Client the service needs.
type Searcher interface {
	Search(ctx context.Context, report trends.ReportType, filter trends.SearchFilter) (trends.ResultCollection, error)
}

// Search wraps a trends client with metrics and logging.
type Search struct {
	client  Searcher
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewSearch(client Searcher, m *metrics.Metrics, log *logger.Logger) *Search {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Search{
		client:  client,
		metrics: m,
		log:     log.WithComponent("search_service"),
	}
}

func (s *Search) Search(ctx context.Context, report trends.ReportType, filter trends.SearchFilter) (trends.ResultCollection, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncSearchesInFlight()
		defer s.metrics.DecSearchesInFlight()
	}

	log := s.log.WithFields(map[string]interface{}{
		"report":   report.String(),
		"term":     filter.SearchTerm(),
		"location": filter.Location(),
	})

	result, err := s.client.Search(ctx, report, filter)
	status := statusOf(err)
	if s.metrics != nil {
		s.metrics.RecordSearch(report.String(), status, time.Since(start))
	}
	if err != nil {
		log.WithError(err).WithField("status", status).Warn("Search failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"results":     result.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Search completed")
	return result, nil
}

// SearchAll runs reports concurrently and fails on the first error.
func (s *Search) SearchAll(ctx context.Context, reports []trends.ReportType, filter trends.SearchFilter) (map[trends.ReportType]trends.ResultCollection, error) {
	var mu sync.Mutex
	out := make(map[trends.ReportType]trends.ResultCollection, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	for _, report := range reports {
		report := report
		g.Go(func() error {
			result, err := s.Search(gctx, report, filter)
			if err != nil {
				return err
			}
			mu.Lock()
			out[report] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func statusOf(err error) string {
	var domainErr *trends.Error
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.As(err, &domainErr):
		return "upstream_error"
	default:
		return "error"
	}
}
