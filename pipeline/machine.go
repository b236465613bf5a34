package pipeline

import (
	"regexp"
	"strings"

	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// MOVE
// =============================================================================

// Move transfers id from one stage to another:
//
//  1. the entity's date, time and comment are remembered for from
//     (an empty comment keeps a previously remembered one)
//  2. the entity leaves from
//  3. if to was visited before, its remembered date and time are restored
//     and a remembered comment replaces the current one; otherwise date and
//     time are blank and the comment carries over
//  4. the entity is appended to to
//
// Moving within the same stage returns an unchanged copy. An entity that is
// not in from yields a *NotInStageError and the input board.
func Move(b Board, id generic.EntityID, from, to Stage) (Board, error) {
	if !from.Valid() {
		return b, &UnknownStageError{Name: string(from)}
	}
	if !to.Valid() {
		return b, &UnknownStageError{Name: string(to)}
	}
	i := indexOf(b.Lanes[from], id)
	if i < 0 {
		return b, &NotInStageError{ID: id, Stage: from}
	}
	out := b.Clone()
	if from == to {
		return out, nil
	}

	e := out.Lanes[from][i]
	remember(out.Memory, e, from)
	out.Lanes[from] = append(out.Lanes[from][:i], out.Lanes[from][i+1:]...)

	e.Date, e.Time = "", ""
	if snap, ok := out.Memory[id][to]; ok {
		e.Date, e.Time = snap.Date, snap.Time
		if snap.Comment != "" {
			e.Comment = snap.Comment
		}
	}
	out.Lanes[to] = append(out.Lanes[to], e)
	return out, nil
}

// remember writes e's current values into m for stage. m must be owned by the caller.
func remember(m Memory, e Entity, st Stage) {
	stages := m[e.ID]
	if stages == nil {
		stages = make(map[Stage]Snapshot)
		m[e.ID] = stages
	}
	snap := Snapshot{Date: e.Date, Time: e.Time, Comment: e.Comment}
	if snap.Comment == "" {
		snap.Comment = stages[st].Comment
	}
	stages[st] = snap
}

// =============================================================================
// HIRE
// =============================================================================

var crewCodePattern = regexp.MustCompile(`^\d{5}$`)

// Hired is an entity leaving the pipeline for the roster.
type Hired struct {
	Entity   Entity
	CrewCode string
}

// Hire removes id from onboarding and forgets its stage memory.
func Hire(b Board, id generic.EntityID, crewCode string) (Board, Hired, error) {
	crewCode = strings.TrimSpace(crewCode)
	if !crewCodePattern.MatchString(crewCode) {
		return b, Hired{}, ErrInvalidCrewCode
	}
	st, _, found := b.Locate(id)
	if !found {
		return b, Hired{}, &NotInStageError{ID: id, Stage: StageOnboarding}
	}
	if st != StageOnboarding {
		return b, Hired{}, ErrNotHireable
	}

	out := b.Clone()
	i := indexOf(out.Lanes[st], id)
	e := out.Lanes[st][i]
	out.Lanes[st] = append(out.Lanes[st][:i], out.Lanes[st][i+1:]...)
	delete(out.Memory, id)
	return out, Hired{Entity: e, CrewCode: crewCode}, nil
}

// =============================================================================
// REMOVE / ANNOTATE
// =============================================================================

// Remove deletes id from stage together with its stage memory.
func Remove(b Board, st Stage, id generic.EntityID) (Board, error) {
	if !st.Valid() {
		return b, &UnknownStageError{Name: string(st)}
	}
	i := indexOf(b.Lanes[st], id)
	if i < 0 {
		return b, &NotInStageError{ID: id, Stage: st}
	}
	out := b.Clone()
	out.Lanes[st] = append(out.Lanes[st][:i], out.Lanes[st][i+1:]...)
	delete(out.Memory, id)
	return out, nil
}

// Annotation sets an entity's appointment in its current stage. Nil fields
// are left unchanged.
type Annotation struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Comment *string `json:"comment,omitempty"`
	Calls   *int    `json:"calls,omitempty"`
}

func Annotate(b Board, st Stage, id generic.EntityID, a Annotation) (Board, Entity, error) {
	if !st.Valid() {
		return b, Entity{}, &UnknownStageError{Name: string(st)}
	}
	i := indexOf(b.Lanes[st], id)
	if i < 0 {
		return b, Entity{}, &NotInStageError{ID: id, Stage: st}
	}
	if a.Date != nil && *a.Date != "" {
		if _, err := generic.ParseDate(*a.Date); err != nil {
			return b, Entity{}, err
		}
	}

	out := b.Clone()
	e := &out.Lanes[st][i]
	if a.Date != nil {
		e.Date = *a.Date
	}
	if a.Time != nil {
		e.Time = *a.Time
	}
	if a.Comment != nil {
		e.Comment = *a.Comment
	}
	if a.Calls != nil && *a.Calls >= 0 {
		e.Calls = *a.Calls
	}
	return out, *e, nil
}
