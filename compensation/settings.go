package compensation

import "github.com/proago/crm-engine/generic"

// =============================================================================
// SETTINGS - Read-only snapshot passed into every calculation
// =============================================================================

// RateBand sets the hourly wage from EffectiveFrom until the next band.
type RateBand struct {
	EffectiveFrom string        `json:"startISO"`
	Rate          generic.Money `json:"rate"`
}

// BoxValues holds the per-unit value of each counter.
type BoxValues struct {
	Box2 generic.Money `json:"box2"`
	Box4 generic.Money `json:"box4"`
}

type DiscountValues struct {
	Full       BoxValues `json:"noDiscount"`
	Discounted BoxValues `json:"discount"`
}

// ConversionTable maps shift type -> discount state -> box to a unit value.
type ConversionTable map[ShiftType]DiscountValues

// Rate returns the unit value of one counter. Unset cells are 0.
func (t ConversionTable) Rate(st ShiftType, ds DiscountState, b Box) generic.Money {
	values, ok := t[st]
	if !ok {
		return generic.ZeroMoney()
	}
	bv := values.Full
	if ds == Discounted {
		bv = values.Discounted
	}
	if b == Box4 {
		return bv.Box4
	}
	return bv.Box2
}

type Settings struct {
	Projects   []string        `json:"projects"`
	RateBands  []RateBand      `json:"rateBands"`
	Conversion ConversionTable `json:"conversionType"`
}

// DefaultRateBands is used when no bands are configured.
func DefaultRateBands() []RateBand {
	return []RateBand{{EffectiveFrom: "2025-01-01", Rate: generic.MoneyFromInt(15)}}
}

func DefaultConversion() ConversionTable {
	return ConversionTable{
		ShiftD2D: {
			Full:       BoxValues{Box2: generic.MoneyFromInt(50), Box4: generic.MoneyFromInt(90)},
			Discounted: BoxValues{Box2: generic.MoneyFromInt(35), Box4: generic.MoneyFromInt(70)},
		},
		ShiftEvent: {
			Full:       BoxValues{Box2: generic.MoneyFromInt(40), Box4: generic.MoneyFromInt(80)},
			Discounted: BoxValues{Box2: generic.MoneyFromInt(30), Box4: generic.MoneyFromInt(60)},
		},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Projects:   []string{"Hello Fresh"},
		RateBands:  DefaultRateBands(),
		Conversion: DefaultConversion(),
	}
}

// WithDefaults fills an absent band list or table from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	if len(s.RateBands) == 0 {
		s.RateBands = DefaultRateBands()
	}
	if s.Conversion == nil {
		s.Conversion = DefaultConversion()
	}
	if len(s.Projects) == 0 {
		s.Projects = DefaultSettings().Projects
	}
	return s
}
