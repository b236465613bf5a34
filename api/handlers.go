/*
handlers.go - HTTP API handlers for the CRM engine

PURPOSE:

	Exposes compensation, reporting and the recruitment pipeline via REST.
	Handles HTTP request/response and JSON serialization, and delegates to
	the domain packages.

ENDPOINTS:

	Settings:
	  GET    /api/settings                     Current settings
	  PUT    /api/settings                     Replace settings (locale decimals accepted)

	Recruiters:
	  GET    /api/recruiters?status=           Roster
	  POST   /api/recruiters                   Create or replace a recruiter
	  GET    /api/recruiters/ranking           Roster ordered by rank and form
	  PUT    /api/recruiters/{id}/status       Set active/inactive

	History:
	  GET    /api/history?date=                Shift records
	  PUT    /api/history/days/{date}          Validate and save one day's rows

	Reports:
	  GET    /api/reports/finances?year=&status=       Aggregation tree
	  GET    /api/reports/finances.xlsx?year=&status=  Same tree as a workbook
	  GET    /api/reports/pay?month=&status=           Pay statements
	  GET    /api/reports/recruiters/{id}/stats        Recent form

	Pipeline:
	  GET    /api/pipeline                     Board
	  POST   /api/pipeline/leads               Add a lead to intake
	  POST   /api/pipeline/import              Prepend a batch of leads
	  POST   /api/pipeline/move                Move between stages
	  POST   /api/pipeline/hire                Hire from onboarding into the roster
	  PATCH  /api/pipeline/{stage}/{id}        Set date/time/comment/calls
	  DELETE /api/pipeline/{stage}/{id}        Remove an entity

ARCHITECTURE:

	Handler holds the Store and the History built on it. Every mutating
	handler runs under one mutex, so each read-modify-write of a document
	is serialized. Reads go straight to the store.

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Malformed input (bad date, unknown stage, bad crew code)
	- 404: Recruiter or entity not found
	- 409: Operation not valid in the current state
	- 422: Business rule rejected a save
	- 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/factory"
	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/pipeline"
	"github.com/proago/crm-engine/reporting"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.Store
	History *compensation.History

	mu  sync.Mutex
	now func() time.Time

	snapshotRates   bool
	currentScenario string
}

type Option func(*Handler)

// WithRateSnapshots stores the resolved hourly rate on rows at save time.
func WithRateSnapshots(enabled bool) Option {
	return func(h *Handler) { h.snapshotRates = enabled }
}

// WithClock replaces time.Now for "today" defaults.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a new handler with the given store.
func NewHandler(store generic.Store, opts ...Option) *Handler {
	h := &Handler{Store: store, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.History = compensation.NewHistory(store, compensation.WithRateSnapshots(h.snapshotRates))
	return h
}

// =============================================================================
// DOCUMENT ACCESS
// =============================================================================

func loadSettings(ctx context.Context, s generic.Store) (compensation.Settings, error) {
	settings, err := generic.LoadOr(ctx, s, generic.KeySettings, compensation.DefaultSettings())
	if err != nil {
		return settings, err
	}
	return settings.WithDefaults(), nil
}

func loadRoster(ctx context.Context, s generic.Store) (compensation.Roster, error) {
	return generic.LoadOr(ctx, s, generic.KeyRecruiters, compensation.Roster{})
}

func loadBoard(ctx context.Context, s generic.Store) (pipeline.Board, error) {
	b, err := generic.LoadOr(ctx, s, generic.KeyPipeline, pipeline.NewBoard())
	if err != nil {
		return b, err
	}
	return b.Clone(), nil
}

// reportInputs loads everything a report needs in one place.
func (h *Handler) reportInputs(ctx context.Context) ([]compensation.ShiftRecord, compensation.Roster, compensation.Settings, error) {
	records, err := h.History.All(ctx)
	if err != nil {
		return nil, nil, compensation.Settings{}, err
	}
	roster, err := loadRoster(ctx, h.Store)
	if err != nil {
		return nil, nil, compensation.Settings{}, err
	}
	settings, err := loadSettings(ctx, h.Store)
	if err != nil {
		return nil, nil, compensation.Settings{}, err
	}
	return records, roster, settings, nil
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the current settings, defaults filled in.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := loadSettings(r.Context(), h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PutSettings replaces the settings. Rates may be written with a decimal comma.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}
	settings, err := factory.ParseSettings(body)
	if err != nil {
		writeDomainError(w, "Invalid settings", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Store.Save(r.Context(), generic.KeySettings, settings); err != nil {
		writeDomainError(w, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// =============================================================================
// RECRUITER HANDLERS
// =============================================================================

// ListRecruiters returns the roster, optionally filtered by status.
func (h *Handler) ListRecruiters(w http.ResponseWriter, r *http.Request) {
	status, err := reporting.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, "Invalid status", err)
		return
	}
	roster, err := loadRoster(r.Context(), h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load recruiters", err)
		return
	}
	out := reporting.FilterRoster(roster, status)
	if out == nil {
		out = compensation.Roster{}
	}
	writeJSON(w, http.StatusOK, out)
}

// UpsertRecruiter creates a recruiter (empty id) or replaces an existing one.
func (h *Handler) UpsertRecruiter(w http.ResponseWriter, r *http.Request) {
	var req RecruiterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeDomainError(w, "Invalid recruiter", &generic.FieldError{Field: "name", Message: "required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	roster, err := loadRoster(ctx, h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load recruiters", err)
		return
	}

	status := http.StatusOK
	id := generic.RecruiterID(strings.TrimSpace(req.ID))
	if id == "" {
		id = generic.RecruiterID(uuid.NewString())
		status = http.StatusCreated
	} else if _, found := roster.Find(id); !found {
		status = http.StatusCreated
	}
	rec := req.toRecruiter(id)

	if err := h.Store.Save(ctx, generic.KeyRecruiters, roster.Upsert(rec)); err != nil {
		writeDomainError(w, "Failed to save recruiter", err)
		return
	}
	writeJSON(w, status, rec)
}

// SetRecruiterStatus marks a recruiter active or inactive.
func (h *Handler) SetRecruiterStatus(w http.ResponseWriter, r *http.Request) {
	id := generic.RecruiterID(chi.URLParam(r, "id"))

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	var inactive bool
	switch reporting.Status(req.Status) {
	case reporting.StatusActive:
	case reporting.StatusInactive:
		inactive = true
	default:
		writeDomainError(w, "Invalid status", &generic.FieldError{Field: "status", Message: "must be active or inactive"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	roster, err := loadRoster(ctx, h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load recruiters", err)
		return
	}
	rec, found := roster.Find(id)
	if !found {
		writeDomainError(w, "Recruiter not found", fmt.Errorf("%w: recruiter %s", generic.ErrNotFound, id))
		return
	}
	rec.IsInactive = inactive
	if err := h.Store.Save(ctx, generic.KeyRecruiters, roster.Upsert(rec)); err != nil {
		writeDomainError(w, "Failed to save recruiter", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RankRecruiters returns the roster ordered by rank, average score and box shares.
func (h *Handler) RankRecruiters(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if v := r.URL.Query().Get("include_inactive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeDomainError(w, "Invalid include_inactive", &generic.FieldError{Field: "include_inactive", Message: err.Error()})
			return
		}
		includeInactive = b
	}

	records, roster, _, err := h.reportInputs(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to load data", err)
		return
	}
	ranked := reporting.RankRecruiters(records, roster, includeInactive, generic.DateOf(h.now()))
	out := make([]RankedRecruiterDTO, len(ranked))
	for i, rr := range ranked {
		out[i] = RankedRecruiterDTO{Recruiter: rr.Recruiter, Acronym: rr.Role.Acronym(), Stats: toStatsDTO(rr.Stats)}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// GetHistory returns stored shift records, optionally for one date.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.History.All(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to load history", err)
		return
	}
	out := []compensation.ShiftRecord{}
	date := r.URL.Query().Get("date")
	for _, rec := range records {
		if date == "" || rec.Date == date {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveDay validates the day's rows and upserts them. A rejected day saves nothing.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}
	// Accept either a bare array or {"rows": [...]}.
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Rows json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON", err)
			return
		}
		body = wrapped.Rows
	}
	rows, err := factory.ParseShiftRows(body)
	if err != nil {
		writeDomainError(w, "Invalid rows", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	roster, err := loadRoster(ctx, h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load recruiters", err)
		return
	}
	settings, err := loadSettings(ctx, h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load settings", err)
		return
	}
	saved, err := h.History.SaveDay(ctx, date, rows, roster, settings)
	if err != nil {
		writeDomainError(w, "Day rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, SaveDayResponse{Date: date, Rows: saved})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

func (h *Handler) parseReportQuery(r *http.Request) (reporting.Query, error) {
	q := reporting.Query{Year: h.now().Year()}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 || year > 9999 {
			return q, &generic.FieldError{Field: "year", Message: fmt.Sprintf("invalid year %q", v)}
		}
		q.Year = year
	}
	status, err := reporting.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		return q, err
	}
	q.Status = status
	return q, nil
}

func (h *Handler) buildReport(r *http.Request) (*reporting.Bucket, error) {
	q, err := h.parseReportQuery(r)
	if err != nil {
		return nil, err
	}
	records, roster, settings, err := h.reportInputs(r.Context())
	if err != nil {
		return nil, err
	}
	return reporting.BuildReport(records, roster, settings, q), nil
}

// FinanceReport returns the year -> month -> week -> day tree.
func (h *Handler) FinanceReport(w http.ResponseWriter, r *http.Request) {
	root, err := h.buildReport(r)
	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, toBucketDTO(root))
}

// FinanceWorkbook streams the same tree as an XLSX workbook.
func (h *Handler) FinanceWorkbook(w http.ResponseWriter, r *http.Request) {
	root, err := h.buildReport(r)
	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}
	var buf bytes.Buffer
	if err := reporting.WriteFinanceWorkbook(&buf, root); err != nil {
		writeDomainError(w, "Failed to write workbook", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="finances-%s.xlsx"`, root.Key))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// PayReport returns pay statements for a pay month (default: current month).
func (h *Handler) PayReport(w http.ResponseWriter, r *http.Request) {
	month := generic.MonthOf(generic.DateOf(h.now()))
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := generic.ParseMonth(v)
		if err != nil {
			writeDomainError(w, "Invalid month", err)
			return
		}
		month = m
	}
	status, err := reporting.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, "Invalid status", err)
		return
	}

	records, roster, settings, err := h.reportInputs(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to load data", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayRunDTO(reporting.PayStatements(records, roster, settings, month, status)))
}

// RecruiterStats returns a recruiter's last scores and box shares.
func (h *Handler) RecruiterStats(w http.ResponseWriter, r *http.Request) {
	id := generic.RecruiterID(chi.URLParam(r, "id"))

	records, roster, _, err := h.reportInputs(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to load data", err)
		return
	}
	if _, found := roster.Find(id); !found {
		writeDomainError(w, "Recruiter not found", fmt.Errorf("%w: recruiter %s", generic.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(reporting.RecruiterStatsFor(records, id, generic.DateOf(h.now()))))
}

// =============================================================================
// PIPELINE HANDLERS
// =============================================================================

// GetPipeline returns the board.
func (h *Handler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	board, err := loadBoard(r.Context(), h.Store)
	if err != nil {
		writeDomainError(w, "Failed to load pipeline", err)
		return
	}
	writeJSON(w, http.StatusOK, toBoardDTO(board))
}

// updateBoard runs fn on the stored board and saves the result when fn succeeds.
func (h *Handler) updateBoard(ctx context.Context, fn func(pipeline.Board) (pipeline.Board, error)) (pipeline.Board, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	board, err := loadBoard(ctx, h.Store)
	if err != nil {
		return board, err
	}
	next, err := fn(board)
	if err != nil {
		return board, err
	}
	if err := h.Store.Save(ctx, generic.KeyPipeline, next); err != nil {
		return board, fmt.Errorf("save pipeline: %w", err)
	}
	return next, nil
}

// AddLead appends a lead to intake.
func (h *Handler) AddLead(w http.ResponseWriter, r *http.Request) {
	var lead pipeline.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	var added pipeline.Entity
	_, err := h.updateBoard(r.Context(), func(b pipeline.Board) (pipeline.Board, error) {
		next, e, err := pipeline.AddLead(b, lead, h.now())
		added = e
		return next, err
	})
	if err != nil {
		writeDomainError(w, "Invalid lead", err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// ImportLeads prepends every valid lead to intake and reports how many were skipped.
func (h *Handler) ImportLeads(w http.ResponseWriter, r *http.Request) {
	var req ImportLeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	var added []pipeline.Entity
	board, err := h.updateBoard(r.Context(), func(b pipeline.Board) (pipeline.Board, error) {
		next, entities, err := pipeline.ImportLeads(b, req.Leads, h.now())
		added = entities
		return next, err
	})
	if err != nil {
		writeDomainError(w, "Import failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, ImportLeadsResponse{
		Added:   added,
		Skipped: len(req.Leads) - len(added),
		Board:   toBoardDTO(board),
	})
}

// MoveEntity moves an entity between stages, restoring remembered appointments.
func (h *Handler) MoveEntity(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	from, err := pipeline.ParseStage(req.From)
	if err != nil {
		writeDomainError(w, "Invalid stage", err)
		return
	}
	to, err := pipeline.ParseStage(req.To)
	if err != nil {
		writeDomainError(w, "Invalid stage", err)
		return
	}

	board, err := h.updateBoard(r.Context(), func(b pipeline.Board) (pipeline.Board, error) {
		return pipeline.Move(b, generic.EntityID(req.ID), from, to)
	})
	if err != nil {
		writeDomainError(w, "Move failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toBoardDTO(board))
}

// HireEntity removes an entity from onboarding and adds it to the roster as a
// Rookie. Both documents are written in one transaction.
func (h *Handler) HireEntity(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	var resp HireResponse
	err := generic.Atomically(ctx, h.Store, func(s generic.Store) error {
		board, err := loadBoard(ctx, s)
		if err != nil {
			return err
		}
		roster, err := loadRoster(ctx, s)
		if err != nil {
			return err
		}
		next, hired, err := pipeline.Hire(board, generic.EntityID(req.ID), req.CrewCode)
		if err != nil {
			return err
		}
		for _, rec := range roster {
			if rec.CrewCode == hired.CrewCode {
				return fmt.Errorf("%w: crew code %s already belongs to %s", generic.ErrConflict, hired.CrewCode, rec.Name)
			}
		}

		recruiter := compensation.Recruiter{
			ID:       generic.RecruiterID(uuid.NewString()),
			Name:     pipeline.TitleCase(hired.Entity.Name),
			CrewCode: hired.CrewCode,
			Role:     compensation.RoleRookie,
			Phone:    hired.Entity.Phone,
			Email:    hired.Entity.Email,
			Source:   hired.Entity.Source,
		}
		if err := s.Save(ctx, generic.KeyPipeline, next); err != nil {
			return fmt.Errorf("save pipeline: %w", err)
		}
		if err := s.Save(ctx, generic.KeyRecruiters, roster.Upsert(recruiter)); err != nil {
			return fmt.Errorf("save recruiters: %w", err)
		}
		resp = HireResponse{Recruiter: recruiter, Board: toBoardDTO(next)}
		return nil
	})
	if err != nil {
		writeDomainError(w, "Hire failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// AnnotateEntity sets the date, time, comment or call count of an entity.
func (h *Handler) AnnotateEntity(w http.ResponseWriter, r *http.Request) {
	st, err := pipeline.ParseStage(chi.URLParam(r, "stage"))
	if err != nil {
		writeDomainError(w, "Invalid stage", err)
		return
	}
	var a pipeline.Annotation
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	var updated pipeline.Entity
	_, err = h.updateBoard(r.Context(), func(b pipeline.Board) (pipeline.Board, error) {
		next, e, err := pipeline.Annotate(b, st, generic.EntityID(chi.URLParam(r, "id")), a)
		updated = e
		return next, err
	})
	if err != nil {
		writeDomainError(w, "Update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveEntity deletes an entity from a stage.
func (h *Handler) RemoveEntity(w http.ResponseWriter, r *http.Request) {
	st, err := pipeline.ParseStage(chi.URLParam(r, "stage"))
	if err != nil {
		writeDomainError(w, "Invalid stage", err)
		return
	}
	_, err = h.updateBoard(r.Context(), func(b pipeline.Board) (pipeline.Board, error) {
		return pipeline.Remove(b, st, generic.EntityID(chi.URLParam(r, "id")))
	})
	if err != nil {
		writeDomainError(w, "Remove failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps err to a status code and an error code. Unexpected
// errors are logged.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", message, err)
	}
	resp := ErrorResponse{Error: message, Code: errorCode(err), Details: err.Error()}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsConflict(err):
		return http.StatusConflict
	case generic.IsValidation(err):
		return http.StatusUnprocessableEntity
	case generic.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	var (
		counterErr   *compensation.CounterExceedsScoreError
		duplicateErr *compensation.DuplicateAssignmentError
		fieldErr     *generic.FieldError
	)
	switch {
	case errors.As(err, &counterErr):
		return "counter_exceeds_score"
	case errors.As(err, &duplicateErr):
		return "duplicate_assignment"
	case errors.Is(err, pipeline.ErrUnknownStage):
		return "unknown_stage"
	case errors.Is(err, pipeline.ErrNotInStage):
		return "not_in_stage"
	case errors.Is(err, pipeline.ErrNotHireable):
		return "not_hireable"
	case errors.Is(err, pipeline.ErrInvalidCrewCode):
		return "invalid_crew_code"
	case errors.Is(err, pipeline.ErrNoValidLeads):
		return "no_valid_leads"
	case errors.As(err, &fieldErr):
		return "invalid_" + fieldErr.Field
	case errors.Is(err, generic.ErrInvalidDate):
		return "invalid_date"
	case generic.IsConflict(err):
		return "conflict"
	case generic.IsNotFound(err):
		return "not_found"
	}
	return ""
}
