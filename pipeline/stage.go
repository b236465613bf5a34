/*
Package pipeline moves recruiting candidates through intake, screening and
onboarding until they are hired.

PURPOSE:

	A Board holds the three stage lanes plus a per-entity stage memory. The
	memory remembers the date, time and comment an entity had in each stage it
	visited, so moving back and forth between stages never loses scheduling
	data.

COPY-ON-WRITE:

	Every operation takes a Board and returns a new one. The input Board,
	its lanes and its memory are never modified, so readers holding the
	previous Board are unaffected.

OPERATIONS:
  - Move:     from one stage to another, restoring remembered values
  - Hire:     terminal exit from onboarding with a 5-digit crew code
  - AddLead:  new entity into intake
  - Remove:   delete an entity from a stage
  - Annotate: set date/time/comment on an entity in place
*/
package pipeline

import (
	"strings"
)

type Stage string

const (
	StageIntake     Stage = "intake"
	StageScreening  Stage = "screening"
	StageOnboarding Stage = "onboarding"
)

// Stages lists the stages in order.
var Stages = []Stage{StageIntake, StageScreening, StageOnboarding}

var aliases = map[string]Stage{
	"leads":     StageIntake,
	"interview": StageScreening,
	"formation": StageOnboarding,
}

// ParseStage accepts a stage name or its UI alias (leads, interview, formation).
func ParseStage(s string) (Stage, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if st, ok := aliases[s]; ok {
		return st, nil
	}
	st := Stage(s)
	if st.Valid() {
		return st, nil
	}
	return "", &UnknownStageError{Name: s}
}

func (s Stage) Valid() bool {
	return s.Order() >= 0
}

// Order returns the stage's position, or -1 for an unknown stage.
func (s Stage) Order() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Alias returns the name the UI uses for the stage.
func (s Stage) Alias() string {
	for alias, st := range aliases {
		if st == s {
			return alias
		}
	}
	return string(s)
}
