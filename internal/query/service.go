package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aevon-lab/autosales/internal/core/aggregation"
	"github.com/aevon-lab/autosales/internal/core/chart"
	"github.com/aevon-lab/autosales/internal/core/sales"
)

// ErrInvalidQuery marks run requests that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid query request")

// Service renders saved queries against the loaded dataset.
type Service struct {
	table *sales.Table
	repo  Repository
}

// NewService creates a saved query service over a read-only table.
func NewService(table *sales.Table, repo Repository) *Service {
	return &Service{table: table, repo: repo}
}

// RunRequest selects a saved query and, for per-year queries, the year.
type RunRequest struct {
	Name string
	Year int // 0 when not supplied
}

// Run evaluates a saved query and builds its chart.
func (s *Service) Run(ctx context.Context, req RunRequest) (chart.Spec, error) {
	q, err := s.repo.Get(ctx, req.Name)
	if err != nil {
		return chart.Spec{}, err
	}

	table := s.table
	if q.RecessionOnly {
		table = table.Recession()
	}
	title := q.Title
	if q.PerYear {
		if req.Year == 0 {
			return chart.Spec{}, fmt.Errorf("%w: query %q requires a year", ErrInvalidQuery, q.Name)
		}
		table = table.ForYear(req.Year)
		title = strings.ReplaceAll(title, "{year}", strconv.Itoa(req.Year))
	}

	res, err := aggregation.GroupBy(table, q.GroupBy, q.Metric, q.Operator)
	if err != nil {
		return chart.Spec{}, fmt.Errorf("run query %q: %w", q.Name, err)
	}

	spec, err := chart.Build(q.Chart, res, chart.Fields{X: q.X, Y: q.Metric, Color: q.Color}, title)
	if err != nil {
		return chart.Spec{}, fmt.Errorf("run query %q: %w", q.Name, err)
	}

	slog.Debug("Ran saved query",
		"query", q.Name,
		"year", req.Year,
		"rows", res.Len())
	return spec, nil
}

// List returns the saved query definitions.
func (s *Service) List(ctx context.Context) ([]Query, error) {
	return s.repo.List(ctx)
}
