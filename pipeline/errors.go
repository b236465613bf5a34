package pipeline

import (
	"fmt"

	"github.com/proago/crm-engine/generic"
)

var (
	ErrUnknownStage    = fmt.Errorf("%w: unknown stage", generic.ErrInvalidInput)
	ErrNotInStage      = fmt.Errorf("%w: entity not in stage", generic.ErrNotFound)
	ErrNotHireable     = fmt.Errorf("%w: only onboarding entities can be hired", generic.ErrConflict)
	ErrInvalidCrewCode = fmt.Errorf("%w: crew code must be exactly 5 digits", generic.ErrInvalidInput)
	ErrNoValidLeads    = fmt.Errorf("%w: no valid leads", generic.ErrValidation)
)

type UnknownStageError struct {
	Name string
}

func (e *UnknownStageError) Error() string { return fmt.Sprintf("unknown stage %q", e.Name) }
func (e *UnknownStageError) Unwrap() error { return ErrUnknownStage }

type NotInStageError struct {
	ID    generic.EntityID
	Stage Stage
}

func (e *NotInStageError) Error() string {
	return fmt.Sprintf("entity %s is not in %s", e.ID, e.Stage)
}

func (e *NotInStageError) Unwrap() error { return ErrNotInStage }
