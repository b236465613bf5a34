/*
Package generic provides the domain-agnostic building blocks of the engine.

PURPOSE:

	Value types, calendar dates, period keys and persistence contracts shared by
	the compensation, reporting and pipeline packages. Nothing in here knows
	about recruiters, shifts or commission tables.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: a monetary amount (single currency)
  - Hours: a worked duration in hours
  - Multiplier: a dimensionless factor applied to a bonus
  - Counter: a non-negative integer tally (score, box counters)
  - ParseDecimal: the one place locale-formatted numbers are understood

DESIGN PRINCIPLES:
 1. Parse once: raw input is normalized at the boundary, arithmetic never re-parses
 2. Precision: decimal.Decimal everywhere, rounding only for presentation
 3. Coercion: malformed numbers degrade to zero instead of failing a whole pass

USAGE:

	rate, _ := generic.ParseMoney("15,50")
	wages := rate.Mul(generic.NewHours(6).Value)
	fmt.Println(wages.Fixed()) // "93.00"

SEE ALSO:
  - time.go: Date
  - period.go: year/month/week/day keys
  - store.go: load/save by key
*/
package generic

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type RecruiterID string
type EntityID string

// =============================================================================
// MONEY
// =============================================================================

// Money is an unrounded monetary amount. Use Fixed for presentation.
type Money struct {
	Value decimal.Decimal
}

func MoneyFromInt(value int64) Money        { return Money{Value: decimal.NewFromInt(value)} }
func ZeroMoney() Money                      { return Money{Value: decimal.Zero} }
func (m Money) Add(o Money) Money           { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money           { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(f decimal.Decimal) Money { return Money{Value: m.Value.Mul(f)} }
func (m Money) IsZero() bool                { return m.Value.IsZero() }
func (m Money) Equal(o Money) bool          { return m.Value.Equal(o.Value) }
func (m Money) Float64() float64            { return m.Value.Round(2).InexactFloat64() }

// Fixed renders the amount with exactly two decimals ("380.00").
func (m Money) Fixed() string { return m.Value.StringFixed(2) }

func (m Money) String() string { return m.Value.String() }

// ParseMoney parses a locale-formatted amount. See ParseDecimal.
func ParseMoney(s string) (Money, bool) {
	d, ok := ParseDecimal(s)
	return Money{Value: d}, ok
}

// MustMoney parses s and returns zero on malformed input.
func MustMoney(s string) Money {
	m, _ := ParseMoney(s)
	return m
}

func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(m.Value.String()) }

func (m *Money) UnmarshalJSON(data []byte) error {
	m.Value = decodeLenient(data)
	return nil
}

// =============================================================================
// HOURS
// =============================================================================

type Hours struct {
	Value decimal.Decimal
}

func NewHours(value float64) Hours { return Hours{Value: decimal.NewFromFloat(value)} }

func (h Hours) String() string                   { return h.Value.String() }
func (h Hours) MarshalJSON() ([]byte, error)     { return json.Marshal(h.Value.String()) }
func (h *Hours) UnmarshalJSON(data []byte) error { h.Value = decodeLenient(data); return nil }

// =============================================================================
// MULTIPLIER
// =============================================================================

type Multiplier struct {
	Value decimal.Decimal
}

func NewMultiplier(value float64) Multiplier { return Multiplier{Value: decimal.NewFromFloat(value)} }

func (f Multiplier) String() string                   { return f.Value.String() }
func (f Multiplier) MarshalJSON() ([]byte, error)     { return json.Marshal(f.Value.String()) }
func (f *Multiplier) UnmarshalJSON(data []byte) error { f.Value = decodeLenient(data); return nil }

// =============================================================================
// COUNTER
// =============================================================================

// Counter is a non-negative tally. Negative or non-numeric input becomes 0.
type Counter int

func (c Counter) Int() int { return int(c) }

func (c *Counter) UnmarshalJSON(data []byte) error {
	*c = CoerceCounter(json.RawMessage(data))
	return nil
}

// CoerceCounter turns a loosely-typed value into a Counter.
func CoerceCounter(v any) Counter {
	d, ok := CoerceDecimal(v)
	if !ok || d.IsNegative() {
		return 0
	}
	return Counter(d.IntPart())
}

// =============================================================================
// LOCALE-AWARE PARSING
// =============================================================================

// ParseDecimal parses numbers written with either a decimal comma or a decimal
// point, with optional thousands separators and a currency sign:
//
//	"15"        -> 15
//	"15,5"      -> 15.5
//	"15.5"      -> 15.5
//	"1.234,50"  -> 1234.5
//	"1,234.50"  -> 1234.5
//	"€ 16,00"   -> 16
//
// The second return value is false when s holds no usable number.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '€', '\'':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CoerceDecimal accepts the shapes a decoded JSON document can carry
// (float64, json.Number, string, raw JSON) plus native Go numbers.
func CoerceDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return CoerceDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		return ParseDecimal(x.String())
	case string:
		return ParseDecimal(x)
	case json.RawMessage:
		return coerceRaw(x)
	default:
		return decimal.Zero, false
	}
}

func coerceRaw(data []byte) (decimal.Decimal, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return decimal.Zero, false
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return decimal.Zero, false
		}
		return ParseDecimal(s)
	}
	return ParseDecimal(string(data))
}

func decodeLenient(data []byte) decimal.Decimal {
	d, _ := coerceRaw(data)
	return d
}
