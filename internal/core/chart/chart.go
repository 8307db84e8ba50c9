// Package chart turns reduced aggregation results into renderer-agnostic
// chart specifications. No aggregation happens here.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aevon-lab/autosales/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// Kind is the chart type.
type Kind string

const (
	Line Kind = "line"
	Bar  Kind = "bar"
	Pie  Kind = "pie"
)

var (
	ErrUnknownKind  = errors.New("unknown chart kind")
	ErrUnknownField = errors.New("unknown chart field")
)

// ParseKind validates a chart kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Line, Bar, Pie:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Fields maps result columns onto chart channels.
// For pie charts X names the slice label and Y the slice value; Color is ignored.
type Fields struct {
	X     aggregation.Field
	Y     aggregation.Field
	Color aggregation.Field
}

// Datum is one plotted row, kept in result order.
type Datum struct {
	X     string
	Y     decimal.Decimal
	Color string
}

// MarshalJSON emits y as a JSON number.
func (d Datum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X     string      `json:"x"`
		Y     json.Number `json:"y"`
		Color string      `json:"color,omitempty"`
	}{X: d.X, Y: json.Number(d.Y.String()), Color: d.Color})
}

// Series is the subset of data sharing one color value.
type Series struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Data  []Datum `json:"data"`
}

// Spec describes one chart for the rendering collaborator.
type Spec struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XField     string   `json:"x_field"`
	YField     string   `json:"y_field"`
	ColorField string   `json:"color_field,omitempty"`
	Data       []Datum  `json:"data"`
	Series     []Series `json:"series"`
	Colors     []string `json:"colors,omitempty"`
	ShowLegend bool     `json:"show_legend"`
	ShowGrid   bool     `json:"show_grid"`
}

// IsEmpty reports whether the chart has no data.
func (s Spec) IsEmpty() bool { return len(s.Data) == 0 }

// Points returns the plotted (x, y, color) rows in the order they were built.
func (s Spec) Points() []Datum {
	return append([]Datum(nil), s.Data...)
}

// Build produces a chart from an already-reduced result.
// An empty result yields an empty chart, not an error.
func Build(kind Kind, result aggregation.Result, fields Fields, title string) (Spec, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Spec{}, err
	}
	if err := checkFields(kind, result, fields); err != nil {
		return Spec{}, err
	}

	spec := Spec{
		Kind:       kind,
		Title:      title,
		XField:     string(fields.X),
		YField:     string(fields.Y),
		ShowLegend: true,
		ShowGrid:   kind != Pie,
		Data:       make([]Datum, 0, result.Len()),
	}
	if kind != Pie {
		spec.ColorField = string(fields.Color)
	}

	for _, row := range result.Rows {
		d := Datum{X: row.Label(fields.X), Y: row.Value}
		if spec.ColorField != "" {
			d.Color = row.Label(fields.Color)
		}
		spec.Data = append(spec.Data, d)
	}

	if kind == Pie {
		spec.Series = []Series{{Name: title, Data: spec.Data}}
		spec.Colors = assignColors(len(spec.Data))
	} else {
		spec.Series = buildSeries(spec.Data, title)
		spec.Colors = assignColors(len(spec.Series))
	}
	return spec, nil
}

func checkFields(kind Kind, result aggregation.Result, fields Fields) error {
	if fields.Y != result.Metric {
		return fmt.Errorf("%w: y field %q is not the result metric %q", ErrUnknownField, fields.Y, result.Metric)
	}
	if !result.Groups(fields.X) {
		return fmt.Errorf("%w: x field %q is not a group key", ErrUnknownField, fields.X)
	}
	if kind != Pie && fields.Color != "" {
		if fields.Color == fields.X || !result.Groups(fields.Color) {
			return fmt.Errorf("%w: color field %q is not a secondary group key", ErrUnknownField, fields.Color)
		}
	}
	return nil
}

// buildSeries splits data by color in first-seen order.
// Without a color field everything lands in a single series named after the chart.
func buildSeries(data []Datum, title string) []Series {
	index := make(map[string]int)
	series := make([]Series, 0, 1)
	for _, d := range data {
		i, ok := index[d.Color]
		if !ok {
			name := d.Color
			if name == "" {
				name = title
			}
			i = len(series)
			index[d.Color] = i
			series = append(series, Series{
				Name:  name,
				Color: defaultColors[i%len(defaultColors)],
			})
		}
		series[i].Data = append(series[i].Data, d)
	}
	return series
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
