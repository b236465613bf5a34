package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is the closed range [Start, End].
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// MONTH - A calendar month ("2025-07")
// =============================================================================

type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) Month { return Month{Year: d.Year(), Month: d.Month()} }

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok || len(y) != 4 || len(m) != 2 {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Period() Period {
	return Period{Start: StartOfMonth(m.Year, m.Month), End: EndOfMonth(m.Year, m.Month)}
}

// String returns the month key "YYYY-MM".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// Label returns e.g. "July 2025".
func (m Month) Label() string { return fmt.Sprintf("%s %d", m.Month, m.Year) }

// =============================================================================
// PERIOD KEYS - Labels for the year/month/week/day report hierarchy
// =============================================================================

// YearBounds returns the inclusive ISO bounds used for lexical year selection.
func YearBounds(year int) (from, to string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// InYear compares zero-padded ISO strings; lexical order is chronological.
func InYear(iso string, year int) bool {
	from, to := YearBounds(year)
	return iso >= from && iso <= to
}

// MonthKey returns the "YYYY-MM" prefix of an ISO date, or "" if too short.
func MonthKey(iso string) string {
	if len(iso) < 7 {
		return ""
	}
	return iso[:7]
}

// WeekKey returns "{YYYY-MM}-W{nn}": the ISO week number of d nested under
// the calendar month d belongs to. A week straddling two months therefore
// appears under both.
func WeekKey(d Date) string {
	if d.IsZero() {
		return ""
	}
	_, week := d.ISOWeek()
	return fmt.Sprintf("%s-W%02d", MonthOf(d), week)
}

// WeekKeyISO is WeekKey for a raw ISO string. Unparseable dates get week 00.
func WeekKeyISO(iso string) string {
	d, err := ParseDate(iso)
	if err != nil || d.IsZero() {
		return MonthKey(iso) + "-W00"
	}
	return WeekKey(d)
}
