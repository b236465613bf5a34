package reporting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/reporting"
)

func TestDedup_LastWins(t *testing.T) {
	// GIVEN: A and A' share (recruiter, date, rowKey)
	a := shift("ana", "2025-03-10", 5, 1)
	a.RowKey = rowKey(0)
	a2 := shift("ana", "2025-03-10", 5, 4)
	a2.RowKey = rowKey(0)

	// WHEN
	got := reporting.Dedup([]compensation.ShiftRecord{a, a2})

	// THEN: only A' remains
	require.Len(t, got, 1)
	assert.Equal(t, generic.Counter(4), got[0].Box2Full)
}

func TestDedup_MissingRowKeyIsItsOwnKey(t *testing.T) {
	withKey := shift("ana", "2025-03-10", 5, 1)
	withKey.RowKey = rowKey(0)
	noKey := shift("ana", "2025-03-10", 5, 2)
	minusOne := shift("ana", "2025-03-10", 5, 3)
	minusOne.RowKey = rowKey(-1)

	got := reporting.Dedup([]compensation.ShiftRecord{withKey, noKey, minusOne})

	require.Len(t, got, 2)
	assert.Equal(t, generic.Counter(3), got[1].Box2Full)
}

func TestDedup_KeepsFirstPosition(t *testing.T) {
	records := []compensation.ShiftRecord{
		shift("ana", "2025-03-10", 5, 1),
		shift("ben", "2025-03-10", 5, 1),
		shift("ana", "2025-03-10", 5, 2),
	}

	got := reporting.Dedup(records)

	require.Len(t, got, 2)
	assert.Equal(t, generic.RecruiterID("ana"), got[0].RecruiterID)
	assert.Equal(t, generic.Counter(2), got[0].Box2Full)
	assert.Equal(t, generic.RecruiterID("ben"), got[1].RecruiterID)
}

func TestDedup_Idempotent(t *testing.T) {
	records := []compensation.ShiftRecord{
		shift("ana", "2025-03-10", 5, 1),
		shift("ana", "2025-03-10", 5, 2),
		shift("ana", "2025-03-11", 5, 3),
	}
	once := reporting.Dedup(records)
	assert.Equal(t, once, reporting.Dedup(once))
	assert.Len(t, records, 3, "input untouched")
}

func TestFilterByStatus(t *testing.T) {
	records := []compensation.ShiftRecord{
		shift("ana", "2025-03-10", 1, 0),
		shift("cleo", "2025-03-10", 1, 0),
		shift("ghost", "2025-03-10", 1, 0),
		shift("", "2025-03-10", 1, 0),
	}

	ids := func(rs []compensation.ShiftRecord) []generic.RecruiterID {
		var out []generic.RecruiterID
		for _, r := range rs {
			out = append(out, r.RecruiterID)
		}
		return out
	}

	assert.Equal(t, []generic.RecruiterID{"ana"}, ids(reporting.FilterByStatus(records, roster(), reporting.StatusActive)))
	assert.Equal(t, []generic.RecruiterID{"cleo"}, ids(reporting.FilterByStatus(records, roster(), reporting.StatusInactive)))
	assert.Len(t, reporting.FilterByStatus(records, roster(), reporting.StatusAll), 4)
}

func TestParseStatus(t *testing.T) {
	st, err := reporting.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, reporting.StatusAll, st)

	st, err = reporting.ParseStatus("Active")
	require.NoError(t, err)
	assert.Equal(t, reporting.StatusActive, st)

	_, err = reporting.ParseStatus("retired")
	assert.True(t, generic.IsClientError(err))
}
