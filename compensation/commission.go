package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// TIER BONUS
// =============================================================================

var tierTable = [...]int64{0, 0, 25, 40, 70, 85, 120, 135, 175, 190, 235}

// tierSlope is paid per box2 sale above the last tier.
const tierSlope = 15

// TierBonus returns the base bonus for n box2 sales, before the multiplier.
func TierBonus(n int) generic.Money {
	if n <= 0 {
		return generic.ZeroMoney()
	}
	last := len(tierTable) - 1
	if n <= last {
		return generic.MoneyFromInt(tierTable[n])
	}
	return generic.MoneyFromInt(tierTable[last] + int64(n-last)*tierSlope)
}

// =============================================================================
// ENRICHMENT
// =============================================================================

// EnrichedShift is a ShiftRecord with its derived money fields.
// Derived fields are computed, never persisted.
type EnrichedShift struct {
	ShiftRecord

	EffectiveHours      generic.Hours
	EffectiveRate       generic.Money
	EffectiveMultiplier generic.Multiplier

	Income generic.Money
	Wages  generic.Money
	Bonus  generic.Money
	Profit generic.Money
}

// Enrich computes income, wages, bonus and profit for one record.
// It is pure: the same record and settings always give the same result.
func Enrich(r ShiftRecord, s Settings) EnrichedShift {
	role := r.Role()

	hours := role.DefaultHours()
	if r.Hours != nil {
		hours = *r.Hours
	}
	mult := role.DefaultMultiplier()
	if r.CommissionMult != nil {
		mult = *r.CommissionMult
	}
	rate := ResolveRate(r.Date, s.RateBands)
	if r.HourlyRate != nil {
		rate = *r.HourlyRate
	}

	income := Income(r, s.Conversion)
	wages := rate.Mul(hours.Value)
	bonus := TierBonus(r.Box2()).Mul(mult.Value)

	return EnrichedShift{
		ShiftRecord:         r,
		EffectiveHours:      hours,
		EffectiveRate:       rate,
		EffectiveMultiplier: mult,
		Income:              income,
		Wages:               wages,
		Bonus:               bonus,
		Profit:              income.Sub(wages.Add(bonus)),
	}
}

// Income sums counter x unit value over both boxes and both discount states.
func Income(r ShiftRecord, table ConversionTable) generic.Money {
	st := NormalizeShiftType(string(r.ShiftType))
	total := generic.ZeroMoney()
	for _, ds := range []DiscountState{FullPrice, Discounted} {
		for _, b := range []Box{Box2, Box4} {
			n := decimal.NewFromInt(int64(r.Counter(ds, b)))
			total = total.Add(table.Rate(st, ds, b).Mul(n))
		}
	}
	return total
}

// EnrichAll enriches records in order into a fresh slice.
func EnrichAll(records []ShiftRecord, s Settings) []EnrichedShift {
	out := make([]EnrichedShift, len(records))
	for i, r := range records {
		out[i] = Enrich(r, s)
	}
	return out
}
