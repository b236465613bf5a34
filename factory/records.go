package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

// ParseShiftRows decodes a JSON array of loosely-typed shift rows.
func ParseShiftRows(data []byte) ([]compensation.ShiftRecord, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: shift rows: %v", generic.ErrInvalidInput, err)
	}
	out := make([]compensation.ShiftRecord, len(raw))
	for i, row := range raw {
		out[i] = NormalizeShiftRow(row)
	}
	return out, nil
}

// NormalizeShiftRow never fails: blank or non-numeric optional values become
// nil (role default applies) and blank or non-numeric counters become 0.
func NormalizeShiftRow(row map[string]any) compensation.ShiftRecord {
	r := compensation.ShiftRecord{
		RecruiterID:   generic.RecruiterID(str(row["recruiterId"])),
		RecruiterName: str(row["recruiterName"]),
		Date:          firstNonEmpty(str(row["dateISO"]), str(row["date"])),
		Location:      str(row["location"]),
		Project:       str(row["project"]),
		ShiftType:     compensation.NormalizeShiftType(str(row["shiftType"])),

		Box2Full:       generic.CoerceCounter(row["box2_noDisc"]),
		Box2Discounted: generic.CoerceCounter(row["box2_disc"]),
		Box4Full:       generic.CoerceCounter(row["box4_noDisc"]),
		Box4Discounted: generic.CoerceCounter(row["box4_disc"]),
	}

	if role := str(row["roleAtShift"]); role != "" {
		if parsed, ok := compensation.ParseRole(role); ok {
			r.RoleAtShift = parsed
		} else {
			r.RoleAtShift = compensation.Role(role)
		}
	}

	if d, ok := optional(row["_rowKey"]); ok {
		k := int(d.IntPart())
		r.RowKey = &k
	}
	if d, ok := optional(row["hours"]); ok {
		r.Hours = &generic.Hours{Value: d}
	}
	if d, ok := optional(row["commissionMult"]); ok {
		r.CommissionMult = &generic.Multiplier{Value: d}
	}
	if d, ok := optional(row["hourlyRate"]); ok {
		r.HourlyRate = &generic.Money{Value: d}
	}
	if v, present := row["score"]; present && v != nil && str(v) != "" {
		c := generic.CoerceCounter(v)
		r.Score = &c
	}
	return r
}

// optional returns a value only when it is present and numeric.
func optional(v any) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Zero, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return decimal.Zero, false
	}
	return generic.CoerceDecimal(v)
}

func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return decimal.NewFromFloat(x).String()
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}
