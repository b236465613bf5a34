package reporting

import (
	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// PAY STATEMENTS
// =============================================================================

// Pay month M pays wages for shifts worked in M-1 and bonus for shifts
// worked in M-2.
const (
	wageLag  = 1
	bonusLag = 2
)

type WageLine struct {
	Date     string
	Location string
	Hours    generic.Hours
	Rate     generic.Money
	Wages    generic.Money
}

type BonusLine struct {
	Date       string
	Location   string
	Box2       int
	Multiplier generic.Multiplier
	Bonus      generic.Money
}

type PayStatement struct {
	Recruiter  compensation.Recruiter
	Wages      generic.Money
	Bonus      generic.Money
	WageLines  []WageLine
	BonusLines []BonusLine
}

func (p PayStatement) Total() generic.Money { return p.Wages.Add(p.Bonus) }

// PayRun is the set of statements for one pay month.
type PayRun struct {
	PayMonth   generic.Month
	WageMonth  generic.Month
	BonusMonth generic.Month
	Statements []PayStatement
}

// PayStatements computes one statement per roster recruiter matching status,
// in roster order. A shift without a role at shift uses the recruiter's
// current role.
func PayStatements(records []compensation.ShiftRecord, roster compensation.Roster, settings compensation.Settings, payMonth generic.Month, status Status) PayRun {
	run := PayRun{
		PayMonth:   payMonth,
		WageMonth:  payMonth.Add(-wageLag),
		BonusMonth: payMonth.Add(-bonusLag),
	}
	wageKey, bonusKey := run.WageMonth.String(), run.BonusMonth.String()

	byRecruiter := make(map[generic.RecruiterID][]compensation.ShiftRecord)
	for _, r := range Dedup(records) {
		byRecruiter[r.RecruiterID] = append(byRecruiter[r.RecruiterID], r)
	}

	for _, rec := range FilterRoster(roster, status) {
		st := PayStatement{Recruiter: rec, Wages: generic.ZeroMoney(), Bonus: generic.ZeroMoney()}
		for _, r := range byRecruiter[rec.ID] {
			month := generic.MonthKey(r.Date)
			if month != wageKey && month != bonusKey {
				continue
			}
			if r.RoleAtShift == "" {
				r.RoleAtShift = rec.Role
			}
			e := compensation.Enrich(r, settings)
			if month == wageKey {
				st.Wages = st.Wages.Add(e.Wages)
				st.WageLines = append(st.WageLines, WageLine{
					Date:     r.Date,
					Location: r.Location,
					Hours:    e.EffectiveHours,
					Rate:     e.EffectiveRate,
					Wages:    e.Wages,
				})
			}
			if month == bonusKey {
				st.Bonus = st.Bonus.Add(e.Bonus)
				st.BonusLines = append(st.BonusLines, BonusLine{
					Date:       r.Date,
					Location:   r.Location,
					Box2:       r.Box2(),
					Multiplier: e.EffectiveMultiplier,
					Bonus:      e.Bonus,
				})
			}
		}
		run.Statements = append(run.Statements, st)
	}
	return run
}
