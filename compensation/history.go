/*
history.go - Shift history with pre-commit validation

PURPOSE:

	The only write path into shift history. A day's rows are validated as a
	whole and then upserted by record key, so re-saving the same day replaces
	its rows instead of duplicating them.

INVARIANTS:
 1. For every row: box2 + box4 (both discount states) <= score
 2. A recruiter appears at most once per day
 3. A rejected day writes nothing

RATE SNAPSHOTS:

	By default wages are recomputed from the current rate bands at report
	time. With WithRateSnapshots the rate in effect is stored on each row at
	save time and later band edits no longer change past wages.

EXAMPLE:

	h := compensation.NewHistory(store)
	saved, err := h.SaveDay(ctx, "2025-03-10", rows, roster, settings)
	var exceeds *compensation.CounterExceedsScoreError
	if errors.As(err, &exceeds) {
	    // tell the user which row
	}
*/
package compensation

import (
	"context"
	"fmt"

	"github.com/proago/crm-engine/generic"
)

type History struct {
	store         generic.Store
	snapshotRates bool
}

type HistoryOption func(*History)

// WithRateSnapshots stores the resolved hourly rate on each saved row.
func WithRateSnapshots(enabled bool) HistoryOption {
	return func(h *History) { h.snapshotRates = enabled }
}

func NewHistory(store generic.Store, opts ...HistoryOption) *History {
	h := &History{store: store}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// All returns every stored record in insertion order.
func (h *History) All(ctx context.Context) ([]ShiftRecord, error) {
	return generic.LoadOr(ctx, h.store, generic.KeyHistory, []ShiftRecord(nil))
}

// ValidateDay checks the rows of one day without saving anything.
func ValidateDay(date string, rows []ShiftRecord) error {
	seen := make(map[generic.RecruiterID]int)
	for i, r := range rows {
		if boxes := r.BoxTotal(); boxes > r.ScoreValue() {
			return &CounterExceedsScoreError{
				Date:        date,
				Row:         i,
				RecruiterID: r.RecruiterID,
				Score:       r.ScoreValue(),
				Boxes:       boxes,
			}
		}
		if r.RecruiterID == "" {
			continue
		}
		if prev, ok := seen[r.RecruiterID]; ok {
			return &DuplicateAssignmentError{Date: date, RecruiterID: r.RecruiterID, Rows: [2]int{prev, i}}
		}
		seen[r.RecruiterID] = i
	}
	return nil
}

// SaveDay validates and upserts the rows of one day. Rows without a
// recruiter are validated but not stored. Returns the stored rows.
func (h *History) SaveDay(ctx context.Context, date string, rows []ShiftRecord, roster Roster, settings Settings) ([]ShiftRecord, error) {
	day, err := generic.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, &generic.FieldError{Field: "date", Message: "required"}
	}
	date = day.String()

	if err := ValidateDay(date, rows); err != nil {
		return nil, err
	}

	prepared := make([]ShiftRecord, 0, len(rows))
	for i, r := range rows {
		if r.RecruiterID == "" {
			continue
		}
		prepared = append(prepared, h.prepare(date, i, r, roster, settings))
	}

	existing, err := h.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if err := h.store.Save(ctx, generic.KeyHistory, Upsert(existing, prepared...)); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	return prepared, nil
}

func (h *History) prepare(date string, index int, r ShiftRecord, roster Roster, settings Settings) ShiftRecord {
	r.Date = date
	if r.RowKey == nil {
		row := index
		r.RowKey = &row
	}
	r.ShiftType = NormalizeShiftType(string(r.ShiftType))
	if rec, ok := roster.Find(r.RecruiterID); ok {
		if r.RecruiterName == "" {
			r.RecruiterName = rec.Name
		}
		if r.RoleAtShift == "" {
			r.RoleAtShift = rec.Role
		}
	}
	if h.snapshotRates && r.HourlyRate == nil {
		rate := ResolveRate(date, settings.RateBands)
		r.HourlyRate = &rate
	}
	return r
}

// Upsert replaces records with the same key in place and appends new ones.
// The input slice is not modified.
func Upsert(list []ShiftRecord, rows ...ShiftRecord) []ShiftRecord {
	out := make([]ShiftRecord, len(list), len(list)+len(rows))
	copy(out, list)
	index := make(map[RecordKey]int, len(out))
	for i, r := range out {
		index[r.Key()] = i
	}
	for _, r := range rows {
		if i, ok := index[r.Key()]; ok {
			out[i] = r
			continue
		}
		index[r.Key()] = len(out)
		out = append(out, r)
	}
	return out
}
