package reporting

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

const (
	formSize   = 5
	statWindow = 56 // days
)

// RecruiterStats is a recruiter's recent form.
type RecruiterStats struct {
	RecruiterID generic.RecruiterID
	LastScores  []int // newest first
	Average     decimal.Decimal
	Box2Percent decimal.Decimal
	Box4Percent decimal.Decimal
}

// RecruiterStatsFor returns the last five recorded scores and the share of
// box2 and box4 sales in total score over the 56 days up to today.
func RecruiterStatsFor(records []compensation.ShiftRecord, id generic.RecruiterID, today generic.Date) RecruiterStats {
	var own []compensation.ShiftRecord
	for _, r := range Dedup(records) {
		if r.RecruiterID == id {
			own = append(own, r)
		}
	}
	slices.SortStableFunc(own, func(a, b compensation.ShiftRecord) int {
		return strings.Compare(b.Date, a.Date)
	})

	stats := RecruiterStats{RecruiterID: id, LastScores: []int{}}
	for _, r := range own {
		if r.Score == nil {
			continue
		}
		stats.LastScores = append(stats.LastScores, r.ScoreValue())
		if len(stats.LastScores) == formSize {
			break
		}
	}
	stats.Average = average(stats.LastScores)

	since := today.AddDays(-statWindow).String()
	var box2, box4, score int
	for _, r := range own {
		if r.Date < since {
			continue
		}
		box2 += r.Box2()
		box4 += r.Box4()
		score += r.ScoreValue()
	}
	stats.Box2Percent = percent(box2, score)
	stats.Box4Percent = percent(box4, score)
	return stats
}

func average(values []int) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(values))))
}

func percent(num, den int) decimal.Decimal {
	if den <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(num)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(den)))
}

// RankedRecruiter pairs a recruiter with their stats.
type RankedRecruiter struct {
	compensation.Recruiter
	Stats RecruiterStats
}

// RankRecruiters orders the roster by rank, then average score, then box2
// share, then box4 share, all descending. Inactive recruiters are dropped
// unless includeInactive is set.
func RankRecruiters(records []compensation.ShiftRecord, roster compensation.Roster, includeInactive bool, today generic.Date) []RankedRecruiter {
	out := make([]RankedRecruiter, 0, len(roster))
	for _, r := range roster {
		if r.IsInactive && !includeInactive {
			continue
		}
		out = append(out, RankedRecruiter{Recruiter: r, Stats: RecruiterStatsFor(records, r.ID, today)})
	}
	slices.SortStableFunc(out, func(a, b RankedRecruiter) int {
		if c := b.Role.Rank() - a.Role.Rank(); c != 0 {
			return c
		}
		if c := b.Stats.Average.Cmp(a.Stats.Average); c != 0 {
			return c
		}
		if c := b.Stats.Box2Percent.Cmp(a.Stats.Box2Percent); c != 0 {
			return c
		}
		return b.Stats.Box4Percent.Cmp(a.Stats.Box4Percent)
	})
	return out
}
