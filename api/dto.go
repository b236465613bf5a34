/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. Domain values are
	unrounded decimals; every amount leaving the API is rounded to two
	decimals here and nowhere else. Money is written as a JSON number with
	exactly two decimals (380.00, never 380).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:

	Reports:    TotalsDTO, ShiftDTO, BucketDTO
	Pay:        PayRunDTO, PayStatementDTO, WageLineDTO, BonusLineDTO
	Recruiters: RecruiterRequest, StatusRequest, StatsDTO, RankedRecruiterDTO
	Pipeline:   BoardDTO, MoveRequest, HireRequest, HireResponse, ImportLeadsRequest
	Scenarios:  ScenarioDTO, LoadScenarioRequest

VALIDATION:

	Validation is done in handlers and domain packages, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/: Loosely-typed settings and shift rows
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/pipeline"
	"github.com/proago/crm-engine/reporting"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// Amount is a money value rendered with two fixed decimals.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) { return []byte(a.StringFixed(2)), nil }

func amount(m generic.Money) Amount { return Amount{m.Value.Round(2)} }

// TotalsDTO is a bucket's sums with money rounded to two decimals.
type TotalsDTO struct {
	Shifts         int    `json:"shifts"`
	Score          int    `json:"score"`
	Box2Full       int    `json:"box2_noDisc"`
	Box2Discounted int    `json:"box2_disc"`
	Box4Full       int    `json:"box4_noDisc"`
	Box4Discounted int    `json:"box4_disc"`
	Box2           int    `json:"box2"`
	Box4           int    `json:"box4"`
	Wages          Amount `json:"wages"`
	Income         Amount `json:"income"`
	Bonus          Amount `json:"bonus"`
	Profit         Amount `json:"profit"`
}

// ShiftDTO is one enriched shift record.
type ShiftDTO struct {
	RecruiterID    string  `json:"recruiterId"`
	RecruiterName  string  `json:"recruiterName,omitempty"`
	Date           string  `json:"dateISO"`
	Location       string  `json:"location,omitempty"`
	Project        string  `json:"project,omitempty"`
	ShiftType      string  `json:"shiftType"`
	Role           string  `json:"role"`
	Hours          float64 `json:"hours"`
	Rate           Amount  `json:"rate"`
	Multiplier     float64 `json:"multiplier"`
	Score          int     `json:"score"`
	Box2Full       int     `json:"box2_noDisc"`
	Box2Discounted int     `json:"box2_disc"`
	Box4Full       int     `json:"box4_noDisc"`
	Box4Discounted int     `json:"box4_disc"`
	Income         Amount  `json:"income"`
	Wages          Amount  `json:"wages"`
	Bonus          Amount  `json:"bonus"`
	Profit         Amount  `json:"profit"`
}

// BucketDTO is one node of the finances tree.
type BucketDTO struct {
	Level    string      `json:"level"`
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Totals   TotalsDTO   `json:"totals"`
	Children []BucketDTO `json:"children,omitempty"`
	Shifts   []ShiftDTO  `json:"shifts,omitempty"`
}

// =============================================================================
// PAY TYPES
// =============================================================================

type WageLineDTO struct {
	Date     string  `json:"date"`
	Location string  `json:"location,omitempty"`
	Hours    float64 `json:"hours"`
	Rate     Amount  `json:"rate"`
	Wages    Amount  `json:"wages"`
}

type BonusLineDTO struct {
	Date       string  `json:"date"`
	Location   string  `json:"location,omitempty"`
	Box2       int     `json:"box2"`
	Multiplier float64 `json:"multiplier"`
	Bonus      Amount  `json:"bonus"`
}

type PayStatementDTO struct {
	Recruiter  compensation.Recruiter `json:"recruiter"`
	Wages      Amount                 `json:"wages"`
	Bonus      Amount                 `json:"bonus"`
	Total      Amount                 `json:"total"`
	WageLines  []WageLineDTO          `json:"wageLines"`
	BonusLines []BonusLineDTO         `json:"bonusLines"`
}

// PayRunDTO names the months a pay month settles.
type PayRunDTO struct {
	PayMonth   string            `json:"payMonth"`
	WageMonth  string            `json:"wageMonth"`
	BonusMonth string            `json:"bonusMonth"`
	Statements []PayStatementDTO `json:"statements"`
}

// =============================================================================
// RECRUITER TYPES
// =============================================================================

// RecruiterRequest creates or replaces a recruiter. An empty ID creates one.
type RecruiterRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CrewCode   string `json:"crewCode"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Source     string `json:"source"`
	IsInactive bool   `json:"isInactive"`
}

// StatusRequest is "active" or "inactive".
type StatusRequest struct {
	Status string `json:"status"`
}

type StatsDTO struct {
	RecruiterID string  `json:"recruiterId"`
	LastScores  []int   `json:"lastScores"`
	Average     float64 `json:"average"`
	Box2Percent float64 `json:"box2Percent"`
	Box4Percent float64 `json:"box4Percent"`
}

type RankedRecruiterDTO struct {
	compensation.Recruiter
	Acronym string   `json:"acronym"`
	Stats   StatsDTO `json:"stats"`
}

// =============================================================================
// PIPELINE TYPES
// =============================================================================

// BoardDTO lists each stage's entities under its stage name.
type BoardDTO struct {
	Stages map[pipeline.Stage][]pipeline.Entity `json:"stages"`
	Counts map[pipeline.Stage]int               `json:"counts"`
}

// MoveRequest accepts stage names or their UI aliases.
type MoveRequest struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

type HireRequest struct {
	ID       string `json:"id"`
	CrewCode string `json:"crew_code"`
}

type HireResponse struct {
	Recruiter compensation.Recruiter `json:"recruiter"`
	Board     BoardDTO               `json:"board"`
}

type ImportLeadsRequest struct {
	Leads []pipeline.Lead `json:"leads"`
}

type ImportLeadsResponse struct {
	Added   []pipeline.Entity `json:"added"`
	Skipped int               `json:"skipped"`
	Board   BoardDTO          `json:"board"`
}

// SaveDayResponse echoes the rows as stored.
type SaveDayResponse struct {
	Date string                     `json:"date"`
	Rows []compensation.ShiftRecord `json:"rows"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func round2(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func toTotalsDTO(t reporting.Totals) TotalsDTO {
	return TotalsDTO{
		Shifts:         t.Shifts,
		Score:          t.Score,
		Box2Full:       t.Box2Full,
		Box2Discounted: t.Box2Discounted,
		Box4Full:       t.Box4Full,
		Box4Discounted: t.Box4Discounted,
		Box2:           t.Box2,
		Box4:           t.Box4,
		Wages:          amount(t.Wages),
		Income:         amount(t.Income),
		Bonus:          amount(t.Bonus),
		Profit:         amount(t.Profit),
	}
}

func toShiftDTO(s compensation.EnrichedShift) ShiftDTO {
	return ShiftDTO{
		RecruiterID:    string(s.RecruiterID),
		RecruiterName:  s.RecruiterName,
		Date:           s.Date,
		Location:       s.Location,
		Project:        s.Project,
		ShiftType:      string(s.ShiftType),
		Role:           string(s.Role()),
		Hours:          round2(s.EffectiveHours.Value),
		Rate:           amount(s.EffectiveRate),
		Multiplier:     round2(s.EffectiveMultiplier.Value),
		Score:          s.ScoreValue(),
		Box2Full:       s.Box2Full.Int(),
		Box2Discounted: s.Box2Discounted.Int(),
		Box4Full:       s.Box4Full.Int(),
		Box4Discounted: s.Box4Discounted.Int(),
		Income:         amount(s.Income),
		Wages:          amount(s.Wages),
		Bonus:          amount(s.Bonus),
		Profit:         amount(s.Profit),
	}
}

func toBucketDTO(b *reporting.Bucket) BucketDTO {
	dto := BucketDTO{
		Level:  string(b.Level),
		Key:    b.Key,
		Label:  b.Label,
		Totals: toTotalsDTO(b.Totals),
	}
	for _, c := range b.Children {
		dto.Children = append(dto.Children, toBucketDTO(c))
	}
	for _, s := range b.Shifts {
		dto.Shifts = append(dto.Shifts, toShiftDTO(s))
	}
	return dto
}

func toPayRunDTO(run reporting.PayRun) PayRunDTO {
	dto := PayRunDTO{
		PayMonth:   run.PayMonth.String(),
		WageMonth:  run.WageMonth.String(),
		BonusMonth: run.BonusMonth.String(),
		Statements: make([]PayStatementDTO, 0, len(run.Statements)),
	}
	for _, st := range run.Statements {
		s := PayStatementDTO{
			Recruiter:  st.Recruiter,
			Wages:      amount(st.Wages),
			Bonus:      amount(st.Bonus),
			Total:      amount(st.Total()),
			WageLines:  []WageLineDTO{},
			BonusLines: []BonusLineDTO{},
		}
		for _, l := range st.WageLines {
			s.WageLines = append(s.WageLines, WageLineDTO{
				Date:     l.Date,
				Location: l.Location,
				Hours:    round2(l.Hours.Value),
				Rate:     amount(l.Rate),
				Wages:    amount(l.Wages),
			})
		}
		for _, l := range st.BonusLines {
			s.BonusLines = append(s.BonusLines, BonusLineDTO{
				Date:       l.Date,
				Location:   l.Location,
				Box2:       l.Box2,
				Multiplier: round2(l.Multiplier.Value),
				Bonus:      amount(l.Bonus),
			})
		}
		dto.Statements = append(dto.Statements, s)
	}
	return dto
}

func toStatsDTO(s reporting.RecruiterStats) StatsDTO {
	return StatsDTO{
		RecruiterID: string(s.RecruiterID),
		LastScores:  s.LastScores,
		Average:     round2(s.Average),
		Box2Percent: round2(s.Box2Percent),
		Box4Percent: round2(s.Box4Percent),
	}
}

func toBoardDTO(b pipeline.Board) BoardDTO {
	dto := BoardDTO{Stages: make(map[pipeline.Stage][]pipeline.Entity, len(pipeline.Stages)), Counts: b.Count()}
	for _, st := range pipeline.Stages {
		dto.Stages[st] = b.Lane(st)
		if dto.Stages[st] == nil {
			dto.Stages[st] = []pipeline.Entity{}
		}
	}
	return dto
}

func (req RecruiterRequest) toRecruiter(id generic.RecruiterID) compensation.Recruiter {
	role, ok := compensation.ParseRole(req.Role)
	if !ok {
		role = compensation.RoleRookie
	}
	return compensation.Recruiter{
		ID:         id,
		Name:       pipeline.TitleCase(req.Name),
		CrewCode:   req.CrewCode,
		Role:       role,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.Source,
		IsInactive: req.IsInactive,
	}
}
