package compensation

import (
	"fmt"

	"github.com/proago/crm-engine/generic"
)

// CounterExceedsScoreError is returned when a row's box counters add up to
// more than its score. The whole day is rejected.
type CounterExceedsScoreError struct {
	Date        string
	Row         int
	RecruiterID generic.RecruiterID
	Score       int
	Boxes       int
}

func (e *CounterExceedsScoreError) Error() string {
	who := string(e.RecruiterID)
	if who == "" {
		who = "unassigned"
	}
	return fmt.Sprintf("%s row %d (%s): box 2/box 4 total %d exceeds score %d",
		e.Date, e.Row, who, e.Boxes, e.Score)
}

func (e *CounterExceedsScoreError) Unwrap() error {
	return generic.ErrValidation
}

// DuplicateAssignmentError is returned when a recruiter appears on more than
// one row of the same day.
type DuplicateAssignmentError struct {
	Date        string
	RecruiterID generic.RecruiterID
	Rows        [2]int
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("%s: recruiter %s is already assigned (rows %d and %d)",
		e.Date, e.RecruiterID, e.Rows[0], e.Rows[1])
}

func (e *DuplicateAssignmentError) Unwrap() error {
	return generic.ErrValidation
}
