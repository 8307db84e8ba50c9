package query

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aevon-lab/autosales/internal/core/aggregation"
	"github.com/aevon-lab/autosales/internal/core/chart"
	"github.com/stretchr/testify/require"
)

func writeQuery(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func TestFileSystemRepository_Load(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "monthly.yaml", `
name: "monthly_sales"
title: "Monthly sales in {year}"
group_by: ["Month"]
metric: "Automobile_Sales"
operator: "sum"
per_year: true
chart: "bar"
`)
	writeQuery(t, dir, "by_type.yml", `
name: "avg_by_type"
group_by: ["Year", "Vehicle_Type"]
metric: "Automobile_Sales"
operator: "mean"
recession_only: true
chart: "line"
color: "Vehicle_Type"
`)
	writeQuery(t, dir, "empty.yaml", "# nothing here\n")
	writeQuery(t, dir, "README.md", "not a query")

	repo, err := NewFileSystemRepository(dir)
	require.NoError(t, err)

	queries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, queries, 2)
	require.Equal(t, "avg_by_type", queries[0].Name)
	require.Equal(t, "monthly_sales", queries[1].Name)

	q, err := repo.Get(context.Background(), "avg_by_type")
	require.NoError(t, err)
	require.Equal(t, "avg_by_type", q.Title)
	require.Equal(t, aggregation.FieldYear, q.X)
	require.Equal(t, aggregation.FieldVehicleType, q.Color)
	require.Equal(t, chart.Line, q.Chart)
	require.True(t, q.RecessionOnly)
	require.Len(t, q.Fingerprint, 64)

	_, err = repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrQueryNotFound)
}

func TestFileSystemRepository_MissingDirIsEmpty(t *testing.T) {
	repo, err := NewFileSystemRepository(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, repo.Queries())
}

func TestFileSystemRepository_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "unknown operator",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["Year"]
metric: "Automobile_Sales"
operator: "median"
chart: "line"
`},
			wantErr: `unsupported operator "median"`,
		},
		{
			name: "unknown group field",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["City"]
metric: "Automobile_Sales"
operator: "sum"
chart: "line"
`},
			wantErr: `unsupported group_by field "City"`,
		},
		{
			name: "metric is not numeric",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["Year"]
metric: "Vehicle_Type"
operator: "sum"
chart: "line"
`},
			wantErr: "unsupported metric",
		},
		{
			name: "unknown chart",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["Year"]
metric: "Automobile_Sales"
operator: "sum"
chart: "scatter"
`},
			wantErr: "unknown chart kind",
		},
		{
			name: "color outside group_by",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["Year"]
metric: "Automobile_Sales"
operator: "sum"
chart: "line"
color: "Vehicle_Type"
`},
			wantErr: "must be another group_by field",
		},
		{
			name: "pie with two groups",
			files: map[string]string{"a.yaml": `
name: "a"
group_by: ["Year", "Vehicle_Type"]
metric: "Advertising_Expenditure"
operator: "sum"
chart: "pie"
`},
			wantErr: "pie charts take exactly one group_by field",
		},
		{
			name: "duplicate names",
			files: map[string]string{
				"a.yaml": "name: dup\ngroup_by: [Year]\nmetric: Automobile_Sales\noperator: sum\nchart: line\n",
				"b.yaml": "name: dup\ngroup_by: [Month]\nmetric: Automobile_Sales\noperator: sum\nchart: bar\n",
			},
			wantErr: "duplicate query name",
		},
		{
			name:    "malformed yaml",
			files:   map[string]string{"a.yaml": "name: [unterminated\n"},
			wantErr: "parsing query file",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for file, body := range tc.files {
				writeQuery(t, dir, file, body)
			}
			_, err := NewFileSystemRepository(dir)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
