// Package dashboard maps the two selector values onto the chart layout.
package dashboard

import (
	"encoding/json"
	"strings"
)

// StatisticType is the report-type selector value.
type StatisticType int

const (
	Unselected StatisticType = iota
	YearlyStatistics
	RecessionPeriodStatistics
)

var statisticLabels = [...]string{
	Unselected:                "",
	YearlyStatistics:          "Yearly Statistics",
	RecessionPeriodStatistics: "Recession Period Statistics",
}

var statisticSlugs = [...]string{
	Unselected:                "",
	YearlyStatistics:          "yearly",
	RecessionPeriodStatistics: "recession",
}

// ParseStatisticType accepts the option label or its short slug, ignoring
// case and surrounding space. Anything else, including the placeholder,
// is Unselected.
func ParseStatisticType(s string) StatisticType {
	s = strings.TrimSpace(s)
	for _, st := range []StatisticType{YearlyStatistics, RecessionPeriodStatistics} {
		if strings.EqualFold(s, statisticLabels[st]) || strings.EqualFold(s, statisticSlugs[st]) {
			return st
		}
	}
	return Unselected
}

// Label is the option text shown to users.
func (s StatisticType) Label() string {
	if s < Unselected || s > RecessionPeriodStatistics {
		return ""
	}
	return statisticLabels[s]
}

// Slug is the short machine value.
func (s StatisticType) Slug() string {
	if s < Unselected || s > RecessionPeriodStatistics {
		return ""
	}
	return statisticSlugs[s]
}

func (s StatisticType) String() string {
	if s == Unselected {
		return "unselected"
	}
	return s.Slug()
}

func (s StatisticType) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slug())
}

// YearSelectorEnabled reports whether the year selector accepts input.
// Only the yearly report uses a year.
func YearSelectorEnabled(s StatisticType) bool {
	return s == YearlyStatistics
}

// Selection is the current value of both selectors. Year is 0 when unselected.
type Selection struct {
	Statistic StatisticType
	Year      int
}
