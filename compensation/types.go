/*
Package compensation turns shift history into money.

PURPOSE:

	Resolves the hourly rate in effect on a date, enriches shift records with
	income, wages, bonus and profit, and validates a day's rows before they are
	committed to history.

KEY CONCEPTS IN THIS FILE (types.go):
  - Role: the recruiter's rank, which drives default hours and bonus multiplier
  - ShiftType / DiscountState / Box: the three axes of the conversion table
  - ShiftRecord: one recruiter's performance on one day
  - Recruiter / Roster: who is active, for status filtering and pay

SEE ALSO:
  - settings.go: rate bands and conversion table
  - rates.go: ResolveRate
  - commission.go: Enrich, TierBonus
  - history.go: SaveDay validation and upsert
*/
package compensation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// ROLE
// =============================================================================

type Role string

const (
	RoleRookie        Role = "Rookie"
	RolePromoter      Role = "Promoter"
	RolePoolCaptain   Role = "Pool Captain"
	RoleTeamCaptain   Role = "Team Captain"
	RoleSalesManager  Role = "Sales Manager"
	RoleBranchManager Role = "Branch Manager"
)

var roles = []Role{RoleRookie, RolePromoter, RolePoolCaptain, RoleTeamCaptain, RoleSalesManager, RoleBranchManager}

// ParseRole accepts a role name or its acronym, case-insensitively.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range roles {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.Acronym()) {
			return r, true
		}
	}
	return "", false
}

// Acronym returns the two-letter rank code. Unknown roles rank as rookies.
func (r Role) Acronym() string {
	switch r {
	case RolePromoter:
		return "PR"
	case RolePoolCaptain:
		return "PC"
	case RoleTeamCaptain:
		return "TC"
	case RoleSalesManager:
		return "SM"
	case RoleBranchManager:
		return "BM"
	default:
		return "RK"
	}
}

// Rank orders roles from Rookie (1) to Branch Manager (6).
func (r Role) Rank() int {
	switch r.Acronym() {
	case "BM":
		return 6
	case "SM":
		return 5
	case "TC":
		return 4
	case "PC":
		return 3
	case "PR":
		return 2
	default:
		return 1
	}
}

// DefaultHours is used when a shift records no explicit hours.
func (r Role) DefaultHours() generic.Hours {
	switch r {
	case RolePoolCaptain:
		return generic.NewHours(7)
	case RoleTeamCaptain, RoleSalesManager:
		return generic.NewHours(8)
	default:
		return generic.NewHours(6)
	}
}

// DefaultMultiplier is used when a shift records no explicit bonus multiplier.
func (r Role) DefaultMultiplier() generic.Multiplier {
	switch r {
	case RolePoolCaptain:
		return generic.Multiplier{Value: decimal.RequireFromString("1.25")}
	case RoleTeamCaptain:
		return generic.Multiplier{Value: decimal.RequireFromString("1.5")}
	case RoleSalesManager:
		return generic.Multiplier{Value: decimal.NewFromInt(2)}
	default:
		return generic.Multiplier{Value: decimal.NewFromInt(1)}
	}
}

// =============================================================================
// CONVERSION AXES
// =============================================================================

type ShiftType string

const (
	ShiftD2D   ShiftType = "D2D"
	ShiftEvent ShiftType = "EVENT"
)

// NormalizeShiftType maps anything that is not EVENT to D2D.
func NormalizeShiftType(s string) ShiftType {
	if strings.EqualFold(strings.TrimSpace(s), string(ShiftEvent)) {
		return ShiftEvent
	}
	return ShiftD2D
}

type DiscountState string

const (
	FullPrice  DiscountState = "noDiscount"
	Discounted DiscountState = "discount"
)

type Box string

const (
	Box2 Box = "box2"
	Box4 Box = "box4"
)

// =============================================================================
// SHIFT RECORD
// =============================================================================

// ShiftRecord is one recruiter's result for one shift. Optional overrides are
// nil when the row left them blank; role defaults then apply.
type ShiftRecord struct {
	RowKey        *int                `json:"_rowKey,omitempty"`
	RecruiterID   generic.RecruiterID `json:"recruiterId"`
	RecruiterName string              `json:"recruiterName,omitempty"`
	Date          string              `json:"dateISO"`
	Location      string              `json:"location,omitempty"`
	Project       string              `json:"project,omitempty"`
	ShiftType     ShiftType           `json:"shiftType"`
	RoleAtShift   Role                `json:"roleAtShift,omitempty"`

	Hours          *generic.Hours      `json:"hours,omitempty"`
	CommissionMult *generic.Multiplier `json:"commissionMult,omitempty"`
	HourlyRate     *generic.Money      `json:"hourlyRate,omitempty"`

	Score          *generic.Counter `json:"score,omitempty"`
	Box2Full       generic.Counter  `json:"box2_noDisc"`
	Box2Discounted generic.Counter  `json:"box2_disc"`
	Box4Full       generic.Counter  `json:"box4_noDisc"`
	Box4Discounted generic.Counter  `json:"box4_disc"`
}

// RecordKey identifies a record for dedup and upsert.
type RecordKey struct {
	RecruiterID generic.RecruiterID
	Date        string
	RowKey      int
}

// Key returns (recruiterId, date, rowKey), with -1 standing in for a missing rowKey.
func (r ShiftRecord) Key() RecordKey {
	row := -1
	if r.RowKey != nil {
		row = *r.RowKey
	}
	return RecordKey{RecruiterID: r.RecruiterID, Date: r.Date, RowKey: row}
}

// Role returns the role at shift, Rookie when unset.
func (r ShiftRecord) Role() Role {
	if r.RoleAtShift == "" {
		return RoleRookie
	}
	return r.RoleAtShift
}

func (r ShiftRecord) ScoreValue() int {
	if r.Score == nil {
		return 0
	}
	return r.Score.Int()
}

func (r ShiftRecord) Box2() int { return r.Box2Full.Int() + r.Box2Discounted.Int() }
func (r ShiftRecord) Box4() int { return r.Box4Full.Int() + r.Box4Discounted.Int() }

// BoxTotal is the sum of all four counters, which may not exceed the score.
func (r ShiftRecord) BoxTotal() int { return r.Box2() + r.Box4() }

// Counter returns the counter for one cell of the conversion table.
func (r ShiftRecord) Counter(ds DiscountState, b Box) generic.Counter {
	switch {
	case b == Box2 && ds == FullPrice:
		return r.Box2Full
	case b == Box2:
		return r.Box2Discounted
	case ds == FullPrice:
		return r.Box4Full
	default:
		return r.Box4Discounted
	}
}

// =============================================================================
// RECRUITERS
// =============================================================================

type Recruiter struct {
	ID         generic.RecruiterID `json:"id"`
	Name       string              `json:"name"`
	CrewCode   string              `json:"crewCode,omitempty"`
	Role       Role                `json:"role"`
	Phone      string              `json:"phone,omitempty"`
	Email      string              `json:"email,omitempty"`
	Source     string              `json:"source,omitempty"`
	IsInactive bool                `json:"isInactive"`
}

// Roster is the recruiter list in display order.
type Roster []Recruiter

// Find returns the recruiter with id, or false.
func (r Roster) Find(id generic.RecruiterID) (Recruiter, bool) {
	for _, rec := range r {
		if rec.ID == id {
			return rec, true
		}
	}
	return Recruiter{}, false
}

// Upsert replaces the recruiter with the same ID or appends it.
// The receiver is not modified.
func (r Roster) Upsert(rec Recruiter) Roster {
	out := make(Roster, 0, len(r)+1)
	replaced := false
	for _, existing := range r {
		if existing.ID == rec.ID {
			out = append(out, rec)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}
