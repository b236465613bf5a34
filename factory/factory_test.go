package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/factory"
	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// SETTINGS
// =============================================================================

func TestParseSettings_LocaleRatesAndLegacyKeys(t *testing.T) {
	s, err := factory.ParseSettings([]byte(`{
		"rateBands": [
			{"startISO": "2025-01-01", "rate": "15,5"},
			{"effectiveFrom": "2025-05-01", "hourlyRate": 16},
			{"startISO": "someday", "rate": 99},
			{"startISO": "2025-09-01", "rate": "n/a"}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, s.RateBands, 3, "band with bad date dropped")
	assert.Equal(t, "15.50", s.RateBands[0].Rate.Fixed())
	assert.Equal(t, "16.00", s.RateBands[1].Rate.Fixed())
	assert.True(t, s.RateBands[2].Rate.IsZero(), "non-numeric rate is 0")

	// conversion and projects absent -> defaults
	assert.Equal(t, compensation.DefaultConversion(), s.Conversion)
	assert.Equal(t, []string{"Hello Fresh"}, s.Projects)
}

func TestParseSettings_ConversionCellsDefaultToZero(t *testing.T) {
	s, err := factory.ParseSettings([]byte(`{
		"conversionType": {
			"D2D": {"noDiscount": {"box2": "95"}, "discount": {"box2": 35, "box4": "70,5"}}
		}
	}`))
	require.NoError(t, err)

	table := s.Conversion
	assert.Equal(t, "95.00", table.Rate(compensation.ShiftD2D, compensation.FullPrice, compensation.Box2).Fixed())
	assert.True(t, table.Rate(compensation.ShiftD2D, compensation.FullPrice, compensation.Box4).IsZero())
	assert.Equal(t, "70.50", table.Rate(compensation.ShiftD2D, compensation.Discounted, compensation.Box4).Fixed())
	assert.True(t, table.Rate(compensation.ShiftEvent, compensation.Discounted, compensation.Box2).IsZero())

	// rate bands absent -> default band
	assert.Equal(t, compensation.DefaultRateBands(), s.RateBands)
}

func TestParseSettings_CanonicalDiscountKeyWinsOverAlias(t *testing.T) {
	// GIVEN: both the canonical and the alias key for each discount state
	doc := []byte(`{
		"conversionType": {
			"D2D": {
				"full": {"box2": 1}, "noDiscount": {"box2": 95},
				"discounted": {"box4": 2}, "discount": {"box4": 70}
			},
			"EVENT": {"full": {"box2": 40}}
		}
	}`)

	// WHEN: parsed repeatedly
	for range 20 {
		s, err := factory.ParseSettings(doc)
		require.NoError(t, err)

		// THEN
		table := s.Conversion
		assert.Equal(t, "95.00", table.Rate(compensation.ShiftD2D, compensation.FullPrice, compensation.Box2).Fixed())
		assert.Equal(t, "70.00", table.Rate(compensation.ShiftD2D, compensation.Discounted, compensation.Box4).Fixed())
		assert.Equal(t, "40.00", table.Rate(compensation.ShiftEvent, compensation.FullPrice, compensation.Box2).Fixed(), "alias alone still accepted")
	}
}

func TestParseSettings_Malformed(t *testing.T) {
	_, err := factory.ParseSettings([]byte(`{"rateBands": 7}`))
	assert.True(t, generic.IsClientError(err))
}

// =============================================================================
// SHIFT ROWS
// =============================================================================

func TestNormalizeShiftRow_LooseValues(t *testing.T) {
	rows, err := factory.ParseShiftRows([]byte(`[{
		"_rowKey": 2,
		"recruiterId": "r1",
		"date": "2025-03-10",
		"shiftType": "event",
		"roleAtShift": "tc",
		"hours": "",
		"commissionMult": "1,75",
		"score": "6",
		"box2_noDisc": "3",
		"box2_disc": null,
		"box4_noDisc": "lots",
		"box4_disc": 1
	}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	r := rows[0]

	assert.Equal(t, 2, *r.RowKey)
	assert.Equal(t, generic.RecruiterID("r1"), r.RecruiterID)
	assert.Equal(t, "2025-03-10", r.Date, "legacy date key")
	assert.Equal(t, compensation.ShiftEvent, r.ShiftType)
	assert.Equal(t, compensation.RoleTeamCaptain, r.RoleAtShift)
	assert.Nil(t, r.Hours, "blank hours fall back to role default")
	require.NotNil(t, r.CommissionMult)
	assert.Equal(t, "1.75", r.CommissionMult.String())
	assert.Equal(t, 6, r.ScoreValue())
	assert.Equal(t, generic.Counter(3), r.Box2Full)
	assert.Equal(t, generic.Counter(0), r.Box2Discounted)
	assert.Equal(t, generic.Counter(0), r.Box4Full)
	assert.Equal(t, generic.Counter(1), r.Box4Discounted)
}

func TestNormalizeShiftRow_DateISOWinsAndBlanks(t *testing.T) {
	r := factory.NormalizeShiftRow(map[string]any{
		"dateISO":        "2025-03-11",
		"date":           "2025-03-10",
		"commissionMult": "abc",
		"score":          "",
	})
	assert.Equal(t, "2025-03-11", r.Date)
	assert.Nil(t, r.CommissionMult, "non-numeric multiplier falls back to role default")
	assert.Nil(t, r.Score)
	assert.Nil(t, r.RowKey)
	assert.Equal(t, compensation.ShiftD2D, r.ShiftType)
}

func TestParseShiftRows_NotAnArray(t *testing.T) {
	_, err := factory.ParseShiftRows([]byte(`{"rows": []}`))
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
}
