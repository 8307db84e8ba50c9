package sales

import (
	"fmt"
	"strings"
)

// Month is a calendar month, January = 1.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// monthNames is indexed by Month; slot 0 is unused.
var monthNames = [13]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthLookup maps lower-cased short and long names to their ordinal.
var monthLookup = map[string]Month{
	"jan": January, "january": January,
	"feb": February, "february": February,
	"mar": March, "march": March,
	"apr": April, "april": April,
	"may": May,
	"jun": June, "june": June,
	"jul": July, "july": July,
	"aug": August, "august": August,
	"sep": September, "sept": September, "september": September,
	"oct": October, "october": October,
	"nov": November, "november": November,
	"dec": December, "december": December,
}

// ParseMonth accepts "Jan", "jan" or "January".
func ParseMonth(s string) (Month, error) {
	m, ok := monthLookup[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown month %q", s)
	}
	return m, nil
}

// Valid reports whether m is within January..December.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the three-letter abbreviation used by the dataset.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}
