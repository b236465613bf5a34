/*
Package reporting builds read-only views over shift history.

PURPOSE:

	Every report runs the same pipeline over a snapshot of history:

	  Dedup -> FilterByStatus -> compensation.EnrichAll -> Aggregate

	Dedup and filtering always happen before any summation, so totals at
	every level of the tree are sums over a canonical set of records.

REPORTS:
  - Aggregate / BuildReport: year -> month -> ISO week -> day -> shifts
  - PayStatements: wages from M-1 and bonus from M-2 for pay month M
  - RecruiterStatsFor / RankRecruiters: recent form and box percentages
  - WriteFinanceWorkbook: the aggregation tree as an XLSX sheet
*/
package reporting

import (
	"fmt"
	"strings"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

// Status selects recruiters by their active flag.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusAll      Status = "all"
)

// ParseStatus accepts active, inactive or all. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusAll, nil
	case StatusActive, StatusInactive, StatusAll:
		return st, nil
	default:
		return "", &generic.FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
}

// Matches reports whether a recruiter with the given flag passes the filter.
func (s Status) Matches(inactive bool) bool {
	switch s {
	case StatusActive:
		return !inactive
	case StatusInactive:
		return inactive
	default:
		return true
	}
}

// FilterByStatus keeps records whose recruiter matches status. Records whose
// recruiter is missing or not on the roster are kept only for StatusAll.
func FilterByStatus(records []compensation.ShiftRecord, roster compensation.Roster, status Status) []compensation.ShiftRecord {
	inactive := make(map[generic.RecruiterID]bool, len(roster))
	for _, r := range roster {
		inactive[r.ID] = r.IsInactive
	}

	out := make([]compensation.ShiftRecord, 0, len(records))
	for _, r := range records {
		if status == StatusAll {
			out = append(out, r)
			continue
		}
		flag, known := inactive[r.RecruiterID]
		if r.RecruiterID == "" || !known {
			continue
		}
		if status.Matches(flag) {
			out = append(out, r)
		}
	}
	return out
}

// FilterRoster returns the recruiters matching status, in roster order.
func FilterRoster(roster compensation.Roster, status Status) compensation.Roster {
	out := make(compensation.Roster, 0, len(roster))
	for _, r := range roster {
		if status.Matches(r.IsInactive) {
			out = append(out, r)
		}
	}
	return out
}
