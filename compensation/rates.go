package compensation

import (
	"slices"

	"github.com/proago/crm-engine/generic"
)

// ResolveRate returns the hourly rate in effect on date (ISO "YYYY-MM-DD").
//
// Bands are ordered by EffectiveFrom with a stable sort, so among bands
// sharing a date the one defined last wins. A date before every band gets
// the earliest band's rate. An empty list falls back to DefaultRateBands.
func ResolveRate(date string, bands []RateBand) generic.Money {
	if len(bands) == 0 {
		bands = DefaultRateBands()
	}
	sorted := slices.Clone(bands)
	slices.SortStableFunc(sorted, func(a, b RateBand) int {
		switch {
		case a.EffectiveFrom < b.EffectiveFrom:
			return -1
		case a.EffectiveFrom > b.EffectiveFrom:
			return 1
		}
		return 0
	})

	// Floor: the last band among those sharing the earliest date.
	rate := sorted[0].Rate
	for _, b := range sorted {
		if b.EffectiveFrom == sorted[0].EffectiveFrom || b.EffectiveFrom <= date {
			rate = b.Rate
			continue
		}
		break
	}
	return rate
}
