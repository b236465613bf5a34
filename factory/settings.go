/*
Package factory converts loosely-typed JSON into engine types.

PURPOSE:

	Settings and shift rows arrive from a browser form or an older export.
	Numbers may be strings, use a decimal comma, or be blank; keys may use
	older names. The factory is the single place this is normalized, so
	calculations never re-parse anything.

WHY A FACTORY?
  - One normalization boundary (parse once, then typed arithmetic)
  - A bad field degrades to 0 or a role default instead of failing the row
  - Legacy keys (date vs dateISO) are handled in one spot

SETTINGS JSON:

	{
	  "projects": ["Hello Fresh"],
	  "rateBands": [{"startISO": "2025-01-01", "rate": "15,50"}],
	  "conversionType": {
	    "D2D":   {"noDiscount": {"box2": 50, "box4": 90}, "discount": {"box2": 35, "box4": 70}},
	    "EVENT": {"noDiscount": {"box2": 40, "box4": 80}, "discount": {"box2": 30, "box4": 60}}
	  }
	}

SHIFT ROW JSON:

	{"_rowKey": 0, "recruiterId": "r1", "dateISO": "2025-03-10", "shiftType": "D2D",
	 "roleAtShift": "Rookie", "hours": "", "commissionMult": "1,25", "score": "5",
	 "box2_noDisc": 3, "box2_disc": "", "box4_noDisc": 1, "box4_disc": 0}

USAGE:

	settings, err := factory.ParseSettings(body)
	rows, err := factory.ParseShiftRows(body)

SEE ALSO:
  - generic/types.go: ParseDecimal, CoerceDecimal, CoerceCounter
  - compensation/settings.go: Settings
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SettingsJSON is the wire shape of settings. Values are left untyped.
type SettingsJSON struct {
	Projects   []string                             `json:"projects"`
	RateBands  []RateBandJSON                       `json:"rateBands"`
	Conversion map[string]map[string]map[string]any `json:"conversionType"`
}

// RateBandJSON accepts both the short and the descriptive key names.
type RateBandJSON struct {
	StartISO      string `json:"startISO"`
	EffectiveFrom string `json:"effectiveFrom"`
	Rate          any    `json:"rate"`
	HourlyRate    any    `json:"hourlyRate"`
}

// discountKeys lists the accepted names per discount state, canonical name first.
var discountKeys = []struct {
	State compensation.DiscountState
	Names []string
}{
	{compensation.FullPrice, []string{"noDiscount", "full"}},
	{compensation.Discounted, []string{"discount", "discounted"}},
}

// =============================================================================
// SETTINGS
// =============================================================================

// ParseSettings decodes and normalizes a settings document. Absent sections
// take their defaults; bands with an unparseable date are dropped; unset or
// non-numeric values are 0.
func ParseSettings(data []byte) (compensation.Settings, error) {
	var raw SettingsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return compensation.Settings{}, fmt.Errorf("%w: settings: %v", generic.ErrInvalidInput, err)
	}
	return NormalizeSettings(raw), nil
}

func NormalizeSettings(raw SettingsJSON) compensation.Settings {
	s := compensation.Settings{}

	for _, p := range raw.Projects {
		if p = strings.TrimSpace(p); p != "" {
			s.Projects = append(s.Projects, p)
		}
	}

	for _, b := range raw.RateBands {
		from := firstNonEmpty(b.StartISO, b.EffectiveFrom)
		d, err := generic.ParseDate(strings.TrimSpace(from))
		if err != nil || d.IsZero() {
			continue
		}
		rate := b.Rate
		if rate == nil {
			rate = b.HourlyRate
		}
		value, _ := generic.CoerceDecimal(rate)
		s.RateBands = append(s.RateBands, compensation.RateBand{
			EffectiveFrom: d.String(),
			Rate:          generic.Money{Value: value},
		})
	}

	if raw.Conversion != nil {
		s.Conversion = compensation.ConversionTable{}
		for _, st := range []compensation.ShiftType{compensation.ShiftD2D, compensation.ShiftEvent} {
			s.Conversion[st] = discountValues(raw.Conversion[string(st)])
		}
	}

	return s.WithDefaults()
}

func discountValues(raw map[string]map[string]any) compensation.DiscountValues {
	var out compensation.DiscountValues
	for _, dk := range discountKeys {
		boxes, ok := firstPresent(raw, dk.Names)
		if !ok {
			continue
		}
		bv := compensation.BoxValues{
			Box2: money(boxes[string(compensation.Box2)]),
			Box4: money(boxes[string(compensation.Box4)]),
		}
		if dk.State == compensation.FullPrice {
			out.Full = bv
		} else {
			out.Discounted = bv
		}
	}
	return out
}

func firstPresent(raw map[string]map[string]any, names []string) (map[string]any, bool) {
	for _, name := range names {
		if boxes, ok := raw[name]; ok {
			return boxes, true
		}
	}
	return nil, false
}

func money(v any) generic.Money {
	d, _ := generic.CoerceDecimal(v)
	return generic.Money{Value: d}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
