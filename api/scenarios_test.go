package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/api"
	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/pipeline"
	"github.com/proago/crm-engine/store/sqlite"
)

func TestScenarios_List(t *testing.T) {
	srv, _ := newTestServer(t)

	list := decode[[]api.ScenarioDTO](t, call(t, srv, http.MethodGet, "/api/scenarios", nil))

	var ids []string
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"demo-season", "rate-change", "empty"}, ids)
}

func TestScenarios_LoadDemoSeason(t *testing.T) {
	srv, _ := newTestServer(t)

	// WHEN
	resp := call(t, srv, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "demo-season"})

	// THEN: roster, history and pipeline are filled
	requireStatus(t, resp, http.StatusOK)
	current := decode[map[string]string](t, call(t, srv, http.MethodGet, "/api/scenarios/current", nil))
	assert.Equal(t, "demo-season", current["scenario_id"])

	roster := decode[compensation.Roster](t, call(t, srv, http.MethodGet, "/api/recruiters", nil))
	assert.Len(t, roster, 4)

	all := decode[api.BucketDTO](t, call(t, srv, http.MethodGet, "/api/reports/finances?year=2025", nil))
	active := decode[api.BucketDTO](t, call(t, srv, http.MethodGet, "/api/reports/finances?year=2025&status=active", nil))
	assert.Len(t, all.Children, 3)
	assert.Positive(t, all.Totals.Shifts)
	assert.Less(t, active.Totals.Shifts, all.Totals.Shifts, "the inactive recruiter only worked in January")

	board := decode[api.BoardDTO](t, call(t, srv, http.MethodGet, "/api/pipeline", nil))
	assert.Equal(t, 3, board.Counts[pipeline.StageIntake])
	assert.Equal(t, 1, board.Counts[pipeline.StageScreening])
	assert.Equal(t, 1, board.Counts[pipeline.StageOnboarding])
	assert.Equal(t, "2025-04-02", board.Stages[pipeline.StageScreening][0].Date)
}

func TestScenarios_RateChangeUsesNewBandAfterFebruary15(t *testing.T) {
	srv, _ := newTestServer(t)
	requireStatus(t, call(t, srv, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "rate-change"}), http.StatusOK)

	report := decode[api.BucketDTO](t, call(t, srv, http.MethodGet, "/api/reports/finances?year=2025", nil))

	rates := map[string]string{}
	for _, month := range report.Children {
		for _, week := range month.Children {
			for _, day := range week.Children {
				for _, s := range day.Shifts {
					rates[s.Date] = s.Rate.StringFixed(2)
				}
			}
		}
	}
	assert.Equal(t, "15.00", rates["2025-02-14"])
	assert.Equal(t, "16.50", rates["2025-02-15"])
}

func TestScenarios_LoadReplacesExistingData(t *testing.T) {
	srv, _ := newTestServer(t)
	addRecruiter(t, srv, "zoe", "Zoe", "Rookie")

	requireStatus(t, call(t, srv, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "empty"}), http.StatusOK)

	roster := decode[compensation.Roster](t, call(t, srv, http.MethodGet, "/api/recruiters", nil))
	assert.Empty(t, roster)
}

func TestScenarios_UnknownAndReset(t *testing.T) {
	srv, _ := newTestServer(t)

	requireStatus(t, call(t, srv, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "nope"}), http.StatusNotFound)

	requireStatus(t, call(t, srv, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "demo-season"}), http.StatusOK)
	requireStatus(t, call(t, srv, http.MethodPost, "/api/scenarios/reset", nil), http.StatusOK)

	history := decode[[]compensation.ShiftRecord](t, call(t, srv, http.MethodGet, "/api/history", nil))
	assert.Empty(t, history)
	current := decode[map[string]string](t, call(t, srv, http.MethodGet, "/api/scenarios/current", nil))
	assert.Empty(t, current["scenario_id"])
}

func TestSeed_WithSQLiteStoreAndRateSnapshots(t *testing.T) {
	// GIVEN: a SQLite store and rate snapshots enabled
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer db.Close()
	h := api.NewHandler(db, api.WithRateSnapshots(true))

	// WHEN
	require.NoError(t, h.Seed(context.Background(), "demo-season"))

	// THEN: every stored row carries the rate in force on its date
	records, err := h.History.All(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, r := range records {
		require.NotNil(t, r.HourlyRate, r.Date)
		assert.Equal(t, "15.00", r.HourlyRate.Fixed())
	}
}
