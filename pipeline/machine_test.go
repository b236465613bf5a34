package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/pipeline"
)

func boardWith(st pipeline.Stage, entities ...pipeline.Entity) pipeline.Board {
	b := pipeline.NewBoard()
	b.Lanes[st] = entities
	return b
}

func strPtr(s string) *string { return &s }

// =============================================================================
// MOVE TESTS
// =============================================================================

func TestMove_StageRoundTripRestoresDateAndComment(t *testing.T) {
	// GIVEN: E at screening on 2025-01-10 with a comment
	b := boardWith(pipeline.StageScreening, pipeline.Entity{ID: "e", Name: "E", Date: "2025-01-10", Time: "10:00"})
	b, _, err := pipeline.Annotate(b, pipeline.StageScreening, "e", pipeline.Annotation{Comment: strPtr("strong candidate")})
	require.NoError(t, err)

	// WHEN: moved to onboarding and back
	b, err = pipeline.Move(b, "e", pipeline.StageScreening, pipeline.StageOnboarding)
	require.NoError(t, err)
	_, e, _ := b.Locate("e")
	assert.Empty(t, e.Date, "first visit to onboarding starts blank")
	assert.Equal(t, "strong candidate", e.Comment, "comment travels with the entity")

	b, err = pipeline.Move(b, "e", pipeline.StageOnboarding, pipeline.StageScreening)
	require.NoError(t, err)

	// THEN
	st, e, found := b.Locate("e")
	require.True(t, found)
	assert.Equal(t, pipeline.StageScreening, st)
	assert.Equal(t, "2025-01-10", e.Date)
	assert.Equal(t, "10:00", e.Time)
	assert.Equal(t, "strong candidate", e.Comment)
}

func TestMove_UnvisitedStageKeepsComment(t *testing.T) {
	// GIVEN: E at intake with a comment
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "e", Date: "2025-01-02", Time: "09:30", Comment: "called twice"})

	// WHEN: moved to a stage it never visited
	b, err := pipeline.Move(b, "e", pipeline.StageIntake, pipeline.StageScreening)
	require.NoError(t, err)

	// THEN: date and time are blank, the comment is kept
	_, e, _ := b.Locate("e")
	assert.Empty(t, e.Date)
	assert.Empty(t, e.Time)
	assert.Equal(t, "called twice", e.Comment)
}

func TestMove_VisitedStageWithoutCommentKeepsCurrent(t *testing.T) {
	// GIVEN: E visited screening without any comment, then got one in onboarding
	b := boardWith(pipeline.StageScreening, pipeline.Entity{ID: "e", Date: "2025-01-10"})
	b, err := pipeline.Move(b, "e", pipeline.StageScreening, pipeline.StageOnboarding)
	require.NoError(t, err)
	b, _, err = pipeline.Annotate(b, pipeline.StageOnboarding, "e", pipeline.Annotation{Comment: strPtr("ready")})
	require.NoError(t, err)

	// WHEN
	b, err = pipeline.Move(b, "e", pipeline.StageOnboarding, pipeline.StageScreening)
	require.NoError(t, err)

	// THEN: screening's date is restored and the current comment survives
	_, e, _ := b.Locate("e")
	assert.Equal(t, "2025-01-10", e.Date)
	assert.Equal(t, "ready", e.Comment)
}

func TestMove_EmptyCommentDoesNotClobberRemembered(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "e", Date: "2025-01-02", Comment: "called twice"})

	b, err := pipeline.Move(b, "e", pipeline.StageIntake, pipeline.StageScreening)
	require.NoError(t, err)
	b, err = pipeline.Move(b, "e", pipeline.StageScreening, pipeline.StageIntake)
	require.NoError(t, err)

	// clear the comment while in intake, then leave again
	b, _, err = pipeline.Annotate(b, pipeline.StageIntake, "e", pipeline.Annotation{Comment: strPtr("")})
	require.NoError(t, err)
	b, err = pipeline.Move(b, "e", pipeline.StageIntake, pipeline.StageScreening)
	require.NoError(t, err)

	snap, ok := b.Remembered("e", pipeline.StageIntake)
	require.True(t, ok)
	assert.Equal(t, "called twice", snap.Comment)
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	before := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a"}, pipeline.Entity{ID: "b"})

	after, err := pipeline.Move(before, "a", pipeline.StageIntake, pipeline.StageScreening)
	require.NoError(t, err)

	assert.Len(t, before.Lanes[pipeline.StageIntake], 2)
	assert.Empty(t, before.Lanes[pipeline.StageScreening])
	assert.Empty(t, before.Memory)
	assert.Len(t, after.Lanes[pipeline.StageIntake], 1)
	assert.Equal(t, generic.EntityID("b"), after.Lanes[pipeline.StageIntake][0].ID)
}

func TestMove_AppendsToTarget(t *testing.T) {
	b := pipeline.NewBoard()
	b.Lanes[pipeline.StageIntake] = []pipeline.Entity{{ID: "new"}}
	b.Lanes[pipeline.StageScreening] = []pipeline.Entity{{ID: "old"}}

	b, err := pipeline.Move(b, "new", pipeline.StageIntake, pipeline.StageScreening)
	require.NoError(t, err)

	lane := b.Lane(pipeline.StageScreening)
	require.Len(t, lane, 2)
	assert.Equal(t, generic.EntityID("new"), lane[1].ID)
}

func TestMove_NotInStageIsNoOp(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a"})

	got, err := pipeline.Move(b, "a", pipeline.StageScreening, pipeline.StageOnboarding)

	var notIn *pipeline.NotInStageError
	require.True(t, errors.As(err, &notIn))
	assert.ErrorIs(t, err, pipeline.ErrNotInStage)
	assert.True(t, generic.IsNotFound(err))
	assert.Equal(t, b.Count(), got.Count())
}

func TestMove_UnknownStage(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a"})
	_, err := pipeline.Move(b, "a", pipeline.StageIntake, "hired")
	assert.ErrorIs(t, err, pipeline.ErrUnknownStage)
	assert.True(t, generic.IsClientError(err))
}

func TestMove_SameStageIsUnchanged(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a", Date: "2025-01-02"})
	got, err := pipeline.Move(b, "a", pipeline.StageIntake, pipeline.StageIntake)
	require.NoError(t, err)
	assert.Equal(t, b.Lanes, got.Lanes)
	assert.Empty(t, got.Memory)
}

// =============================================================================
// HIRE / REMOVE TESTS
// =============================================================================

func TestHire_FromOnboarding(t *testing.T) {
	b := boardWith(pipeline.StageOnboarding, pipeline.Entity{ID: "e", Name: "Eva"})
	b.Memory["e"] = map[pipeline.Stage]pipeline.Snapshot{pipeline.StageIntake: {Date: "2025-01-01"}}

	got, hired, err := pipeline.Hire(b, "e", " 12345 ")
	require.NoError(t, err)

	assert.Equal(t, "12345", hired.CrewCode)
	assert.Equal(t, "Eva", hired.Entity.Name)
	assert.Empty(t, got.Lanes[pipeline.StageOnboarding])
	assert.NotContains(t, got.Memory, generic.EntityID("e"))
	assert.Contains(t, b.Memory, generic.EntityID("e"), "input untouched")
}

func TestHire_Guards(t *testing.T) {
	b := boardWith(pipeline.StageScreening, pipeline.Entity{ID: "e"})

	_, _, err := pipeline.Hire(b, "e", "1234")
	assert.ErrorIs(t, err, pipeline.ErrInvalidCrewCode)

	_, _, err = pipeline.Hire(b, "e", "12a45")
	assert.ErrorIs(t, err, pipeline.ErrInvalidCrewCode)

	_, _, err = pipeline.Hire(b, "e", "12345")
	assert.ErrorIs(t, err, pipeline.ErrNotHireable)
	assert.True(t, generic.IsConflict(err))

	_, _, err = pipeline.Hire(b, "ghost", "12345")
	assert.ErrorIs(t, err, pipeline.ErrNotInStage)
}

func TestRemove(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a"}, pipeline.Entity{ID: "b"})
	b.Memory["a"] = map[pipeline.Stage]pipeline.Snapshot{pipeline.StageScreening: {}}

	got, err := pipeline.Remove(b, pipeline.StageIntake, "a")
	require.NoError(t, err)
	assert.Len(t, got.Lanes[pipeline.StageIntake], 1)
	assert.NotContains(t, got.Memory, generic.EntityID("a"))

	_, err = pipeline.Remove(b, pipeline.StageOnboarding, "a")
	assert.ErrorIs(t, err, pipeline.ErrNotInStage)
}

func TestAnnotate_RejectsBadDate(t *testing.T) {
	b := boardWith(pipeline.StageIntake, pipeline.Entity{ID: "a"})
	_, _, err := pipeline.Annotate(b, pipeline.StageIntake, "a", pipeline.Annotation{Date: strPtr("next week")})
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

// =============================================================================
// STAGE NAMES
// =============================================================================

func TestParseStage_Aliases(t *testing.T) {
	cases := map[string]pipeline.Stage{
		"leads":      pipeline.StageIntake,
		"Interview":  pipeline.StageScreening,
		"formation":  pipeline.StageOnboarding,
		"onboarding": pipeline.StageOnboarding,
	}
	for in, want := range cases {
		got, err := pipeline.ParseStage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := pipeline.ParseStage("hired")
	assert.ErrorIs(t, err, pipeline.ErrUnknownStage)

	assert.Equal(t, "formation", pipeline.StageOnboarding.Alias())
	assert.Less(t, pipeline.StageIntake.Order(), pipeline.StageOnboarding.Order())
}
