// Package query holds saved chart queries: named group-by/reduce definitions
// loaded from YAML files and rendered as charts over the loaded dataset.
package query

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aevon-lab/autosales/internal/core/aggregation"
	"github.com/aevon-lab/autosales/internal/core/chart"
	"gopkg.in/yaml.v3"
)

// ErrQueryNotFound is returned when no saved query has the requested name.
var ErrQueryNotFound = errors.New("saved query not found")

// Query is one saved chart definition.
// Queries are loaded at startup and fingerprinted so clients can detect edits.
type Query struct {
	Name          string              `json:"name"`
	Title         string              `json:"title"`
	GroupBy       []aggregation.Field `json:"group_by"`
	Metric        aggregation.Field   `json:"metric"`
	Operator      string              `json:"operator"`
	RecessionOnly bool                `json:"recession_only"`
	PerYear       bool                `json:"per_year"` // requires a year at run time
	Chart         chart.Kind          `json:"chart"`
	X             aggregation.Field   `json:"x"`
	Color         aggregation.Field   `json:"color,omitempty"`
	Fingerprint   string              `json:"fingerprint"`
}

// rawQuery is the on-disk YAML shape.
type rawQuery struct {
	Name          string   `yaml:"name"`
	Title         string   `yaml:"title"`
	GroupBy       []string `yaml:"group_by"`
	Metric        string   `yaml:"metric"`
	Operator      string   `yaml:"operator"`
	RecessionOnly bool     `yaml:"recession_only"`
	PerYear       bool     `yaml:"per_year"`
	Chart         string   `yaml:"chart"`
	X             string   `yaml:"x"`
	Color         string   `yaml:"color"`
}

// Repository defines the interface for looking up saved queries.
type Repository interface {
	// Get returns the query with the given name, or ErrQueryNotFound.
	Get(ctx context.Context, name string) (*Query, error)

	// List returns all loaded queries sorted by name.
	List(ctx context.Context) ([]Query, error)
}

// FileSystemRepository loads saved queries from *.yaml files in a directory.
// Each file holds exactly one query. Files are read once at construction.
type FileSystemRepository struct {
	dir     string
	queries map[string]Query
}

// NewFileSystemRepository creates a repository and eagerly loads every query
// in dir. A missing directory means zero queries.
func NewFileSystemRepository(dir string) (*FileSystemRepository, error) {
	repo := &FileSystemRepository{
		dir:     dir,
		queries: make(map[string]Query),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewRepository builds an in-memory repository from already-validated queries.
func NewRepository(queries []Query) *FileSystemRepository {
	repo := &FileSystemRepository{queries: make(map[string]Query, len(queries))}
	for _, q := range queries {
		repo.queries[q.Name] = q
	}
	return repo
}

func (r *FileSystemRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("query path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading query dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading query file %s: %w", path, err)
		}

		var raw rawQuery
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing query file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // empty or comment-only file
		}

		q, err := raw.validate()
		if err != nil {
			return fmt.Errorf("query %q: %w", raw.Name, err)
		}
		q.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))

		if _, exists := r.queries[q.Name]; exists {
			return fmt.Errorf("query %q: duplicate query name (check multiple YAML files)", q.Name)
		}
		r.queries[q.Name] = q
	}
	return nil
}

func (raw rawQuery) validate() (Query, error) {
	q := Query{
		Name:          raw.Name,
		Title:         raw.Title,
		Metric:        aggregation.Field(raw.Metric),
		Operator:      raw.Operator,
		RecessionOnly: raw.RecessionOnly,
		PerYear:       raw.PerYear,
		X:             aggregation.Field(raw.X),
		Color:         aggregation.Field(raw.Color),
	}
	if q.Title == "" {
		q.Title = q.Name
	}

	if len(raw.GroupBy) == 0 {
		return Query{}, fmt.Errorf("group_by must not be empty")
	}
	seen := make(map[aggregation.Field]bool, len(raw.GroupBy))
	for _, name := range raw.GroupBy {
		f := aggregation.Field(name)
		if !aggregation.IsGroupField(f) {
			return Query{}, fmt.Errorf("unsupported group_by field %q", name)
		}
		if seen[f] {
			return Query{}, fmt.Errorf("duplicate group_by field %q", name)
		}
		seen[f] = true
		q.GroupBy = append(q.GroupBy, f)
	}

	if !aggregation.IsMetricField(q.Metric) {
		return Query{}, fmt.Errorf("unsupported metric %q", raw.Metric)
	}
	if !aggregation.ValidOperator(q.Operator) {
		return Query{}, fmt.Errorf("unsupported operator %q", raw.Operator)
	}

	kind, err := chart.ParseKind(raw.Chart)
	if err != nil {
		return Query{}, err
	}
	q.Chart = kind

	if q.X == "" {
		q.X = q.GroupBy[0]
	}
	if !seen[q.X] {
		return Query{}, fmt.Errorf("x field %q is not in group_by", q.X)
	}
	if q.Color != "" && (q.Color == q.X || !seen[q.Color]) {
		return Query{}, fmt.Errorf("color field %q must be another group_by field", q.Color)
	}
	if kind == chart.Pie && (len(q.GroupBy) != 1 || q.Color != "") {
		return Query{}, fmt.Errorf("pie charts take exactly one group_by field and no color")
	}
	return q, nil
}

// Get returns the query with the given name.
func (r *FileSystemRepository) Get(_ context.Context, name string) (*Query, error) {
	q, ok := r.queries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQueryNotFound, name)
	}
	return &q, nil
}

// List returns all loaded queries sorted by name.
func (r *FileSystemRepository) List(_ context.Context) ([]Query, error) {
	return r.Queries(), nil
}

// Queries returns all loaded queries sorted by name.
func (r *FileSystemRepository) Queries() []Query {
	out := make([]Query, 0, len(r.queries))
	for _, q := range r.queries {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
