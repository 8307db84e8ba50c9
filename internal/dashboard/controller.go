package dashboard

import (
	"fmt"

	"github.com/aevon-lab/autosales/internal/core/aggregation"
	"github.com/aevon-lab/autosales/internal/core/chart"
	"github.com/aevon-lab/autosales/internal/core/sales"
)

// Config holds the static dashboard settings.
type Config struct {
	Title   string
	MinYear int
	MaxYear int
}

// Option is one entry of a select control.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options describes both selector controls.
type Options struct {
	Title              string   `json:"title"`
	StatisticLabel     string   `json:"statistic_label"`
	StatisticHint      string   `json:"statistic_placeholder"`
	Statistics         []Option `json:"statistics"`
	Years              []int    `json:"years"`
	YearSelectorActive bool     `json:"year_selector_enabled"`
}

// YearSelector is the state of the year control for a statistic type.
type YearSelector struct {
	Statistic StatisticType `json:"statistic"`
	Enabled   bool          `json:"enabled"`
	Years     []int         `json:"years"`
}

// Row is one line of charts in the output grid.
type Row struct {
	ClassName string       `json:"class_name"`
	Charts    []chart.Spec `json:"charts"`
}

// Layout is the rendered output: zero or two rows of two charts.
type Layout struct {
	Statistic StatisticType `json:"statistic"`
	Year      int           `json:"year,omitempty"`
	Rows      []Row         `json:"rows"`
}

// ChartCount is the number of charts across all rows.
func (l Layout) ChartCount() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r.Charts)
	}
	return n
}

// IsEmpty reports whether nothing is rendered.
func (l Layout) IsEmpty() bool { return l.ChartCount() == 0 }

// Controller renders layouts from a shared read-only table.
// Every call recomputes from the table; nothing is cached.
type Controller struct {
	table *sales.Table
	cfg   Config
}

func NewController(table *sales.Table, cfg Config) *Controller {
	return &Controller{table: table, cfg: cfg}
}

// Options returns the initial control state: nothing selected, year selector disabled.
func (c *Controller) Options() Options {
	return Options{
		Title:          c.cfg.Title,
		StatisticLabel: "Select Statistics:",
		StatisticHint:  "Select a report type",
		Statistics: []Option{
			{Label: YearlyStatistics.Label(), Value: YearlyStatistics.Label()},
			{Label: RecessionPeriodStatistics.Label(), Value: RecessionPeriodStatistics.Label()},
		},
		Years:              c.years(),
		YearSelectorActive: YearSelectorEnabled(Unselected),
	}
}

// YearSelector returns the year control state after the statistic changes.
func (c *Controller) YearSelector(stat StatisticType) YearSelector {
	return YearSelector{
		Statistic: stat,
		Enabled:   YearSelectorEnabled(stat),
		Years:     c.years(),
	}
}

// Normalize clears the year when the selector is disabled or the year is
// not one of its options.
func (c *Controller) Normalize(sel Selection) Selection {
	if !YearSelectorEnabled(sel.Statistic) || sel.Year < c.cfg.MinYear || sel.Year > c.cfg.MaxYear {
		sel.Year = 0
	}
	return sel
}

func (c *Controller) years() []int {
	years := make([]int, 0, c.cfg.MaxYear-c.cfg.MinYear+1)
	for y := c.cfg.MinYear; y <= c.cfg.MaxYear; y++ {
		years = append(years, y)
	}
	return years
}

// plot is one chart of a report: its data, chart kind, channels and title.
type plot struct {
	kind   chart.Kind
	result aggregation.Result
	fields chart.Fields
	title  string
}

// Render maps a selection onto the output layout. Incomplete selections
// yield an empty layout, not an error.
func (c *Controller) Render(sel Selection) (Layout, error) {
	sel = c.Normalize(sel)
	layout := Layout{Statistic: sel.Statistic, Year: sel.Year, Rows: []Row{}}

	var plots []plot
	var classes [2]string
	switch {
	case sel.Statistic == RecessionPeriodStatistics:
		plots = recessionPlots(c.table)
		classes = [2]string{"recession_figures1", "recession_figures2"}
	case sel.Statistic == YearlyStatistics && sel.Year != 0:
		plots = yearlyPlots(c.table, sel.Year)
		classes = [2]string{"Year_figure1", "Year_figure2"}
	default:
		return layout, nil
	}

	specs := make([]chart.Spec, 0, len(plots))
	for _, p := range plots {
		spec, err := chart.Build(p.kind, p.result, p.fields, p.title)
		if err != nil {
			return Layout{}, fmt.Errorf("render %s: %w", sel.Statistic, err)
		}
		specs = append(specs, spec)
	}

	layout.Rows = []Row{
		{ClassName: classes[0], Charts: specs[:2]},
		{ClassName: classes[1], Charts: specs[2:]},
	}
	return layout, nil
}

var (
	salesByYear      = chart.Fields{X: aggregation.FieldYear, Y: aggregation.FieldAutomobileSales}
	salesByMonth     = chart.Fields{X: aggregation.FieldMonth, Y: aggregation.FieldAutomobileSales}
	expenditureShare = chart.Fields{X: aggregation.FieldVehicleType, Y: aggregation.FieldAdvertisingExpenditure}
)

func recessionPlots(t *sales.Table) []plot {
	return []plot{
		{
			kind:   chart.Line,
			result: aggregation.RecessionTotalSalesByYear(t),
			fields: salesByYear,
			title:  "Automobile Sales fluctuation over Recession Period",
		},
		{
			kind:   chart.Line,
			result: aggregation.RecessionAvgSalesByYearAndVehicleType(t),
			fields: chart.Fields{X: aggregation.FieldYear, Y: aggregation.FieldAutomobileSales, Color: aggregation.FieldVehicleType},
			title:  "Average Automobile Sales fluctuation over Recession Period",
		},
		{
			kind:   chart.Pie,
			result: aggregation.RecessionTotalExpenditureByVehicleType(t),
			fields: expenditureShare,
			title:  "Total advertising expenditure of vehicle type over recessions",
		},
		{
			kind:   chart.Bar,
			result: aggregation.RecessionTotalSalesByUnemploymentAndVehicleType(t),
			fields: chart.Fields{X: aggregation.FieldUnemploymentRate, Y: aggregation.FieldAutomobileSales, Color: aggregation.FieldVehicleType},
			title:  "Effect of unemployment rate on vehicle type and sales",
		},
	}
}

func yearlyPlots(t *sales.Table, year int) []plot {
	return []plot{
		{
			kind:   chart.Line,
			result: aggregation.TotalSalesByYear(t),
			fields: salesByYear,
			title:  "Automobile Sales fluctuation over whole Period",
		},
		{
			kind:   chart.Line,
			result: aggregation.TotalSalesByMonth(t, year),
			fields: salesByMonth,
			title:  fmt.Sprintf("Automobile Sales fluctuation in %d", year),
		},
		{
			kind:   chart.Bar,
			result: aggregation.AvgSalesByMonth(t, year),
			fields: salesByMonth,
			title:  fmt.Sprintf("Average Vehicles Sold by Vehicle Type in the year %d", year),
		},
		{
			kind:   chart.Pie,
			result: aggregation.TotalExpenditureByVehicleType(t.ForYear(year)),
			fields: expenditureShare,
			title:  fmt.Sprintf("Total advertising expenditure of vehicle type in %d", year),
		},
	}
}
