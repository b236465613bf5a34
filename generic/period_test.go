package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/generic"
)

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, "2025-03-09", d.String())

	zero, err := generic.ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = generic.ParseDate("09/03/2025")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

func TestInYear_LexicalBounds(t *testing.T) {
	assert.True(t, generic.InYear("2025-01-01", 2025))
	assert.True(t, generic.InYear("2025-12-31", 2025))
	assert.False(t, generic.InYear("2024-12-31", 2025))
	assert.False(t, generic.InYear("2026-01-01", 2025))
	assert.False(t, generic.InYear("", 2025))
}

func TestWeekKey_ISOWeekUnderCalendarMonth(t *testing.T) {
	// 2025-03-31 (Mon) and 2025-04-01 (Tue) share ISO week 14
	assert.Equal(t, "2025-03-W14", generic.WeekKey(generic.MustDate("2025-03-31")))
	assert.Equal(t, "2025-04-W14", generic.WeekKey(generic.MustDate("2025-04-01")))

	// Jan 1 2027 is a Friday: ISO week 53 of 2026, still filed under 2027-01
	assert.Equal(t, "2027-01-W53", generic.WeekKey(generic.MustDate("2027-01-01")))

	// Sunday belongs to the week that started on Monday
	assert.Equal(t, "2025-03-W10", generic.WeekKey(generic.MustDate("2025-03-09")))
	assert.Equal(t, "2025-03-W11", generic.WeekKey(generic.MustDate("2025-03-10")))
}

func TestMonth_Navigation(t *testing.T) {
	m, err := generic.ParseMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", m.Add(-1).String())
	assert.Equal(t, "2024-11", m.Add(-2).String())
	assert.Equal(t, "2025-02", m.Add(1).String())
	assert.True(t, m.Period().Contains(generic.MustDate("2025-01-31")))
	assert.False(t, m.Period().Contains(generic.MustDate("2025-02-01")))

	_, err = generic.ParseMonth("2025-13")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	p := generic.Month{Year: 2024, Month: time.February}.Period()

	assert.Equal(t, "[2024-02-01, 2024-02-29]", p.String())
	assert.True(t, p.Contains(generic.MustDate("2024-02-01")))
	assert.True(t, p.Contains(generic.MustDate("2024-02-29")))
	assert.False(t, p.Contains(generic.MustDate("2024-03-01")))
}
