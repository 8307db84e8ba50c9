package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const totalSalesQuery = `
name: "total_sales_by_year"
title: "Total sales by year"
group_by: ["Year"]
metric: "Automobile_Sales"
operator: "sum"
chart: "line"
`

func TestLoad_ValidConfigAndQueries(t *testing.T) {
	root := t.TempDir()
	queryDir := filepath.Join(root, "queries")
	csvPath := filepath.Join(root, "sales.csv")
	requireNoError(t, os.MkdirAll(queryDir, 0o755))
	requireNoError(t, os.WriteFile(csvPath, []byte("Year\n"), 0o644))
	requireNoError(t, os.WriteFile(filepath.Join(queryDir, "total_sales.yaml"), []byte(totalSalesQuery), 0o644))

	cfgPath := filepath.Join(root, "autosales.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
server:
  port: 8050
  host: "127.0.0.1"
  mode: "debug"
dataset:
  source_type: "file"
  location: "%s"
  timeout: "5s"
queries:
  config_dir: "%s"
  require_queries: true
`, csvPath, queryDir)), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if len(cfg.QueryLoading.Queries) != 1 {
		t.Fatalf("expected 1 loaded query, got %d", len(cfg.QueryLoading.Queries))
	}
	if cfg.Dataset.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Dataset.Timeout)
	}
	if cfg.Dashboard.MinYear != 1980 || cfg.Dashboard.MaxYear != 2023 {
		t.Fatalf("unexpected default year range %d-%d", cfg.Dashboard.MinYear, cfg.Dashboard.MaxYear)
	}
	if got := cfg.Server.Addr(); got != "127.0.0.1:8050" {
		t.Fatalf("unexpected addr %q", got)
	}
}

func TestLoad_DefaultsUseRemoteDataset(t *testing.T) {
	t.Setenv("AUTOSALES_QUERIES__CONFIG_DIR", filepath.Join(t.TempDir(), "missing"))

	cfg, err := Load("")
	requireNoError(t, err)
	if cfg.Dataset.SourceType != SourceURL || cfg.Dataset.Location != DefaultDatasetURL {
		t.Fatalf("unexpected dataset defaults %+v", cfg.Dataset)
	}
	if cfg.Server.Port != 8050 {
		t.Fatalf("expected default port 8050, got %d", cfg.Server.Port)
	}
	if len(cfg.QueryLoading.Queries) != 0 {
		t.Fatalf("expected no queries, got %d", len(cfg.QueryLoading.Queries))
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "autosales.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
server:
  port: 8050
queries:
  config_dir: "%s"
`, filepath.Join(root, "queries"))), 0o644))

	t.Setenv("AUTOSALES_SERVER__PORT", "9090")
	t.Setenv("AUTOSALES_DASHBOARD__MAX_YEAR", "2020")

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Dashboard.MaxYear != 2020 {
		t.Fatalf("expected env max_year 2020, got %d", cfg.Dashboard.MaxYear)
	}
}

func TestLoad_InvalidConfigFailsStartup(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "invalid port",
			yaml: `
server:
  port: -1
`,
			wantErr: "invalid server.port",
		},
		{
			name: "unknown source type",
			yaml: `
dataset:
  source_type: "s3"
`,
			wantErr: "unsupported dataset.source_type",
		},
		{
			name: "non http location",
			yaml: `
dataset:
  source_type: "url"
  location: "ftp://example.com/sales.csv"
`,
			wantErr: "is not an http(s) URL",
		},
		{
			name: "missing file",
			yaml: `
dataset:
  source_type: "file"
  location: "/does/not/exist.csv"
`,
			wantErr: "is not accessible",
		},
		{
			name: "postgres without dsn",
			yaml: `
dataset:
  source_type: "postgres"
database:
  dsn: ""
`,
			wantErr: "database.dsn is required",
		},
		{
			name: "inverted year range",
			yaml: `
dashboard:
  min_year: 2023
  max_year: 1980
`,
			wantErr: "invalid dashboard year range",
		},
		{
			name: "bad timeout",
			yaml: `
dataset:
  timeout: "nope"
`,
			wantErr: "failed to unmarshal config",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "autosales.yaml")
			requireNoError(t, os.WriteFile(cfgPath, []byte(tc.yaml), 0o644))

			_, err := Load(cfgPath)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q error, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_InvalidQueryFileFailsStartup(t *testing.T) {
	root := t.TempDir()
	queryDir := filepath.Join(root, "queries")
	requireNoError(t, os.MkdirAll(queryDir, 0o755))
	requireNoError(t, os.WriteFile(filepath.Join(queryDir, "bad.yaml"), []byte(`
name: "bad_query"
group_by: ["Year"]
metric: "Automobile_Sales"
operator: "average"
chart: "line"
`), 0o644))

	cfgPath := filepath.Join(root, "autosales.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
queries:
  config_dir: "%s"
`, queryDir)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "failed to load saved queries") {
		t.Fatalf("expected query load error, got %v", err)
	}
}

func TestLoad_RequiredQueriesMissingFailsStartup(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "autosales.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
queries:
  config_dir: "%s"
  require_queries: true
`, root)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "no saved queries found") {
		t.Fatalf("expected no queries error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
