//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aevon-lab/autosales/internal/core/config"
	"github.com/aevon-lab/autosales/internal/dashboard"
	"github.com/aevon-lab/autosales/internal/dataset"
	"github.com/aevon-lab/autosales/internal/query"
	"github.com/aevon-lab/autosales/internal/server"
	"github.com/stretchr/testify/require"
)

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	store      dataset.Store
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case <-h.serverDone:
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}

	require.NoError(t, h.store.Close())
}

type layoutBody struct {
	Statistic string `json:"statistic"`
	Year      int    `json:"year"`
	Rows      []struct {
		ClassName string `json:"class_name"`
		Charts    []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
		} `json:"charts"`
	} `json:"rows"`
}

func TestDashboardAPI_RecessionLayout(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	status, body := get(t, h.client, h.baseURL+"/v1/dashboard/layout?statistic=recession")
	require.Equal(t, http.StatusOK, status, string(body))

	var layout layoutBody
	require.NoError(t, json.Unmarshal(body, &layout))
	require.Equal(t, "recession", layout.Statistic)
	require.Len(t, layout.Rows, 2)
	require.Equal(t, "recession_figures1", layout.Rows[0].ClassName)
	require.Equal(t, "recession_figures2", layout.Rows[1].ClassName)
	require.Equal(t, "line", layout.Rows[0].Charts[0].Kind)
	require.Equal(t, "pie", layout.Rows[1].Charts[0].Kind)
	require.Equal(t, "bar", layout.Rows[1].Charts[1].Kind)
}

func TestDashboardAPI_YearlyLayout(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	status, body := get(t, h.client, h.baseURL+"/v1/dashboard/layout?statistic=yearly&year=1981")
	require.Equal(t, http.StatusOK, status, string(body))

	var layout layoutBody
	require.NoError(t, json.Unmarshal(body, &layout))
	require.Equal(t, 1981, layout.Year)
	require.Len(t, layout.Rows, 2)
	require.Equal(t, "Year_figure1", layout.Rows[0].ClassName)
	require.Equal(t, "Automobile Sales fluctuation in 1981", layout.Rows[0].Charts[1].Title)

	// Yearly without a year renders nothing.
	status, body = get(t, h.client, h.baseURL+"/v1/dashboard/layout?statistic=yearly")
	require.Equal(t, http.StatusOK, status)
	layout = layoutBody{}
	require.NoError(t, json.Unmarshal(body, &layout))
	require.Empty(t, layout.Rows)

	status, _ = get(t, h.client, h.baseURL+"/v1/dashboard/layout?statistic=yearly&year=abc")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestDashboardAPI_SavedQueries(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	status, body := get(t, h.client, h.baseURL+"/v1/queries")
	require.Equal(t, http.StatusOK, status, string(body))
	require.Contains(t, string(body), "sales_by_vehicle_type")

	status, body = get(t, h.client, h.baseURL+"/v1/queries/monthly_advertising?year=1981")
	require.Equal(t, http.StatusOK, status, string(body))
	require.Contains(t, string(body), "Advertising expenditure by month in 1981")

	status, _ = get(t, h.client, h.baseURL+"/v1/queries/monthly_advertising")
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, h.client, h.baseURL+"/v1/queries/missing")
	require.Equal(t, http.StatusNotFound, status)
}

func TestDashboardAPI_HealthReportsRows(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	status, body := get(t, h.client, h.baseURL+"/health")
	require.Equal(t, http.StatusOK, status)

	var health struct {
		Status string `json:"status"`
		Rows   int    `json:"dataset_rows"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, 7, health.Rows)
}

// startHarness imports the fixture CSV into a fresh SQLite store, loads the
// dashboard from that store and serves it on a free port.
func startHarness(t *testing.T) *integrationHarness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	dbCfg := config.DatabaseConfig{
		SQLitePath:  filepath.Join(t.TempDir(), "autosales.db"),
		AutoMigrate: true,
	}
	store, err := dataset.OpenStore(ctx, config.SourceSQLite, dbCfg)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join("testdata", "historical_automobile_sales.csv"))
	require.NoError(t, err)
	records, err := dataset.ParseCSV(f)
	_ = f.Close()
	require.NoError(t, err)
	_, err = store.ReplaceRecords(ctx, records)
	require.NoError(t, err)

	table, err := dataset.Load(ctx, dataset.StoreSource{Store: store, Name: "sqlite"})
	require.NoError(t, err)

	repo, err := query.NewFileSystemRepository(filepath.Join(projectRoot(t), "config", "queries"))
	require.NoError(t, err)

	controller := dashboard.NewController(table, dashboard.Config{
		Title:   "Automobile Sales Statistics Dashboard",
		MinYear: 1980,
		MaxYear: 2023,
	})
	querySvc := query.NewService(table, repo)

	addr := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	srv := server.New(addr, dataset.Health{Table: table, Store: store}, "release")
	controller.RegisterRoutes(srv.Engine)
	querySvc.RegisterRoutes(srv.Engine)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	h := &integrationHarness{
		baseURL:    "http://" + addr,
		client:     &http.Client{Timeout: 5 * time.Second},
		store:      store,
		cancel:     cancel,
		serverDone: done,
	}
	waitForHealthy(t, h.baseURL)
	return h
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server did not become healthy at %s", baseURL)
}

func get(t *testing.T, client *http.Client, endpoint string) (int, []byte) {
	t.Helper()

	resp, err := client.Get(endpoint)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return root
}
