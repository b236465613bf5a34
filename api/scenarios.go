/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic data.
	Each scenario goes through the same domain operations the API uses
	(History.SaveDay, pipeline.AddLead / Move / Annotate), so seeded data
	obeys the same validation as user input.

AVAILABLE SCENARIOS:

	demo-season: Four recruiters, one quarter of D2D and event shifts, a filled pipeline
	rate-change: Hourly rate rises mid-February, written with a decimal comma
	empty:       Default settings, nothing else

HOW SCENARIOS WORK:
 1. Reset every document (settings, recruiters, history, pipeline)
 2. Save settings and roster
 3. Save shifts day by day through History.SaveDay
 4. Build the pipeline board

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "demo-season"}

NOTE:

	Scenarios replace all data. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler
  - factory/settings.go: settings normalization
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/factory"
	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/pipeline"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "demo-season",
		Name:        "Demo Season",
		Description: "Four recruiters, one quarter of D2D and event shifts, a filled pipeline",
	},
	{
		ID:          "rate-change",
		Name:        "Rate Change",
		Description: "Hourly rate rises from 15 to 16,50 on 2025-02-15",
	},
	{
		ID:          "empty",
		Name:        "Empty",
		Description: "Default settings, no recruiters, no shifts",
	},
}

type scenarioLoader func(ctx context.Context, s generic.Store, snapshotRates bool) error

var scenarioLoaders = map[string]scenarioLoader{
	"demo-season": loadDemoSeason,
	"rate-change": loadRateChange,
	"empty":       func(context.Context, generic.Store, bool) error { return nil },
}

// Seed loads a scenario by ID, replacing all data.
func (h *Handler) Seed(ctx context.Context, id string) error {
	load, ok := scenarioLoaders[id]
	if !ok {
		return fmt.Errorf("%w: scenario %q", generic.ErrNotFound, id)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := generic.Atomically(ctx, h.Store, func(s generic.Store) error {
		if err := resetDocuments(ctx, s); err != nil {
			return err
		}
		return load(ctx, s, h.snapshotRates)
	})
	if err != nil {
		return fmt.Errorf("load scenario %s: %w", id, err)
	}
	h.currentScenario = id
	return nil
}

func resetDocuments(ctx context.Context, s generic.Store) error {
	docs := map[generic.Key]any{
		generic.KeySettings:   compensation.DefaultSettings(),
		generic.KeyRecruiters: compensation.Roster{},
		generic.KeyHistory:    []compensation.ShiftRecord{},
		generic.KeyPipeline:   pipeline.NewBoard(),
	}
	for _, key := range generic.Keys {
		if err := s.Save(ctx, key, docs[key]); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns all available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the ID of the last loaded scenario.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": current})
}

// LoadScenario replaces all data with a scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := h.Seed(r.Context(), req.ScenarioID); err != nil {
		writeDomainError(w, "Failed to load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "loaded",
		"scenario_id": req.ScenarioID,
	})
}

// ResetData clears every document back to defaults.
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	if err := generic.Atomically(ctx, h.Store, func(s generic.Store) error { return resetDocuments(ctx, s) }); err != nil {
		writeDomainError(w, "Failed to reset data", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

var demoRoster = compensation.Roster{
	{ID: "r-ana", Name: "Ana Costa", CrewCode: "10001", Role: compensation.RoleRookie, Source: "Indeed"},
	{ID: "r-ben", Name: "Ben Muller", CrewCode: "10002", Role: compensation.RolePoolCaptain, Source: "Referral"},
	{ID: "r-cleo", Name: "Cleo Schmit", CrewCode: "10003", Role: compensation.RoleTeamCaptain, Source: "Indeed"},
	{ID: "r-dan", Name: "Dan Weber", CrewCode: "10004", Role: compensation.RolePromoter, Source: "Street", IsInactive: true},
}

var demoLocations = []string{"Luxembourg-Ville", "Esch-sur-Alzette", "Differdange", "Ettelbruck"}

// demoNow is the clock used for seeded leads.
var demoNow = time.Date(2025, time.March, 28, 10, 0, 0, 0, time.UTC)

func loadDemoSeason(ctx context.Context, s generic.Store, snapshotRates bool) error {
	settings := compensation.DefaultSettings()
	if err := s.Save(ctx, generic.KeySettings, settings); err != nil {
		return err
	}
	if err := saveQuarter(ctx, s, settings, snapshotRates); err != nil {
		return err
	}
	return saveDemoPipeline(ctx, s)
}

func loadRateChange(ctx context.Context, s generic.Store, snapshotRates bool) error {
	settings, err := factory.ParseSettings([]byte(`{
		"projects": ["Hello Fresh", "Greenpeace"],
		"rateBands": [
			{"startISO": "2025-01-01", "rate": "15"},
			{"startISO": "2025-02-15", "rate": "16,50"}
		]
	}`))
	if err != nil {
		return err
	}
	if err := s.Save(ctx, generic.KeySettings, settings); err != nil {
		return err
	}
	return saveQuarter(ctx, s, settings, snapshotRates)
}

// saveQuarter saves the demo roster and one shift per working recruiter on
// every day of Q1 2025 except Sundays. Saturdays are event shifts.
func saveQuarter(ctx context.Context, s generic.Store, settings compensation.Settings, snapshotRates bool) error {
	if err := s.Save(ctx, generic.KeyRecruiters, demoRoster); err != nil {
		return err
	}
	history := compensation.NewHistory(s, compensation.WithRateSnapshots(snapshotRates))

	start, end := generic.MustDate("2025-01-06"), generic.MustDate("2025-03-29")
	for day, i := start, 0; day.BeforeOrEqual(end); day, i = day.AddDays(1), i+1 {
		if day.Weekday() == time.Sunday {
			continue
		}
		var rows []compensation.ShiftRecord
		for ri, rec := range demoRoster {
			if (i+ri)%3 == 0 {
				continue
			}
			if rec.IsInactive && day.Month() != time.January {
				continue
			}
			rows = append(rows, demoShift(rec, day, i, ri))
		}
		if _, err := history.SaveDay(ctx, day.String(), rows, demoRoster, settings); err != nil {
			return err
		}
	}
	return nil
}

// demoShift produces counters that always fit within the score.
func demoShift(rec compensation.Recruiter, day generic.Date, i, ri int) compensation.ShiftRecord {
	score := generic.Counter(3 + (i*7+ri*5)%9)
	st := compensation.ShiftD2D
	if day.Weekday() == time.Saturday {
		st = compensation.ShiftEvent
	}
	return compensation.ShiftRecord{
		RecruiterID:    rec.ID,
		Location:       demoLocations[(i+ri)%len(demoLocations)],
		Project:        "Hello Fresh",
		ShiftType:      st,
		Score:          &score,
		Box2Full:       score / 3,
		Box2Discounted: generic.Counter((i + ri) % 2),
		Box4Full:       score / 5,
	}
}

func saveDemoPipeline(ctx context.Context, s generic.Store) error {
	leads := []pipeline.Lead{
		{Name: "lea martin", Phone: "+352 621 555 101", Source: "Indeed"},
		{Name: "noah klein", Email: "noah.klein@example.com", Source: "Jobs.lu"},
		{Name: "emma ferreira", Phone: "+33 6 12 34 56 78"},
		{Name: "lucas dubois", Phone: "+32 470 11 22 33", Calls: 2},
		{Name: "mia schneider", Phone: "+49 151 2345 6789", Source: "Referral"},
	}
	board, added, err := pipeline.ImportLeads(pipeline.NewBoard(), leads, demoNow)
	if err != nil {
		return err
	}

	interview := "2025-04-02"
	comment := "Strong on the phone, available weekends"
	steps := []func(pipeline.Board) (pipeline.Board, error){
		func(b pipeline.Board) (pipeline.Board, error) {
			return pipeline.Move(b, added[2].ID, pipeline.StageIntake, pipeline.StageScreening)
		},
		func(b pipeline.Board) (pipeline.Board, error) {
			b, _, err := pipeline.Annotate(b, pipeline.StageScreening, added[2].ID, pipeline.Annotation{Date: &interview, Comment: &comment})
			return b, err
		},
		func(b pipeline.Board) (pipeline.Board, error) {
			return pipeline.Move(b, added[3].ID, pipeline.StageIntake, pipeline.StageScreening)
		},
		func(b pipeline.Board) (pipeline.Board, error) {
			return pipeline.Move(b, added[3].ID, pipeline.StageScreening, pipeline.StageOnboarding)
		},
	}
	for _, step := range steps {
		if board, err = step(board); err != nil {
			return err
		}
	}
	return s.Save(ctx, generic.KeyPipeline, board)
}
