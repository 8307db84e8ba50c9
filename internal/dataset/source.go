// Package dataset loads the automobile sales table once at startup from a
// CSV file, a CSV over HTTP, or a SQL store.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aevon-lab/autosales/internal/core/config"
	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/aevon-lab/autosales/internal/core/storage"
)

var (
	// ErrDataUnavailable covers unreachable, unreadable and malformed datasets.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrMissingColumn is returned when a required column is absent.
	// It always travels together with ErrDataUnavailable.
	ErrMissingColumn = errors.New("missing column")
)

// Source yields the raw dataset rows.
type Source interface {
	Records(ctx context.Context) ([]sales.Record, error)
	String() string
}

// FileSource reads a CSV file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Records(_ context.Context) ([]sales.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

func (s FileSource) String() string { return "file:" + s.Path }

// URLSource fetches a CSV over HTTP with a single GET.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Records(ctx context.Context) ([]sales.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrDataUnavailable, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrDataUnavailable, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", ErrDataUnavailable, s.URL, resp.StatusCode)
	}
	return ParseCSV(resp.Body)
}

func (s URLSource) String() string { return s.URL }

// StoreSource reads previously imported rows from a SQL store.
type StoreSource struct {
	Store storage.RecordReader
	Name  string
}

func (s StoreSource) Records(ctx context.Context) ([]sales.Record, error) {
	recs, err := s.Store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return recs, nil
}

func (s StoreSource) String() string { return s.Name }

// NewSource selects the configured source. store is only used for the
// postgres and sqlite source types and may be nil otherwise.
func NewSource(cfg config.DatasetConfig, store storage.RecordReader) (Source, error) {
	switch cfg.SourceType {
	case config.SourceURL:
		return URLSource{URL: cfg.Location, Client: &http.Client{Timeout: cfg.Timeout}}, nil
	case config.SourceFile:
		return FileSource{Path: cfg.Location}, nil
	case config.SourcePostgres, config.SourceSQLite:
		if store == nil {
			return nil, fmt.Errorf("dataset source %q needs a record store", cfg.SourceType)
		}
		return StoreSource{Store: store, Name: cfg.SourceType + ":automobile_sales"}, nil
	default:
		return nil, fmt.Errorf("unsupported dataset source type %q", cfg.SourceType)
	}
}

// SourceForLocation picks a URL or file source from the shape of loc.
func SourceForLocation(loc string, timeout time.Duration) Source {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return URLSource{URL: loc, Client: &http.Client{Timeout: timeout}}
	}
	return FileSource{Path: loc}
}
