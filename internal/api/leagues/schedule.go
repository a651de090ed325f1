package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const (
	scheduleTimeout     = 30 * time.Second
	maxRoundIntervalDay = 60
)

type scheduleRequest struct {
	StartDate    string `json:"startDate"`
	IntervalDays int    `json:"intervalDays"`
}

type fixtureRound struct {
	Round   int64                         `json:"round"`
	Matches []dbgen.ListDivisionMatchesRow `json:"matches"`
}

// POST /api/v1/divisions/{id}/fixtures/generate
func HandleGenerateFixtures(w http.ResponseWriter, r *http.Request) {
	handleFixtureGeneration(w, r, false)
}

// POST /api/v1/divisions/{id}/fixtures/regenerate
func HandleRegenerateFixtures(w http.ResponseWriter, r *http.Request) {
	handleFixtureGeneration(w, r, true)
}

func handleFixtureGeneration(w http.ResponseWriter, r *http.Request, regenerate bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("League service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	divisionID, err := apiutil.PathID(r, divisionIDPathKey)
	if err != nil {
		http.Error(w, "Invalid division ID", http.StatusBadRequest)
		return
	}

	req, err := decodeScheduleRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := parseScheduleRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleTimeout)
	defer cancel()

	if _, ok := loadDivisionForWrite(ctx, w, r, q, divisionID); !ok {
		return
	}

	matches, err := service.GenerateDivisionFixtures(ctx, divisionID, regenerate, opts)
	if err != nil {
		writeServiceError(w, r, err, "Division", "Failed to generate fixtures")
		return
	}

	rows, err := q.ListDivisionMatches(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to reload fixtures")
		http.Error(w, "Failed to load fixtures", http.StatusInternalServerError)
		return
	}
	rounds := groupFixturesByRound(rows)

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshFixtures")
		if !apiutil.RenderHTMLComponent(r.Context(), w, fixturesComponent(rounds), headers, "Failed to render fixtures", "Failed to render response") {
			return
		}
		return
	}

	status := http.StatusCreated
	if regenerate {
		status = http.StatusOK
	}
	if err := apiutil.WriteJSON(w, status, map[string]any{"created": len(matches), "rounds": rounds}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write fixtures response")
	}
}

// GET /api/v1/divisions/{id}/fixtures
func HandleFixturesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	divisionID, err := apiutil.PathID(r, divisionIDPathKey)
	if err != nil {
		http.Error(w, "Invalid division ID", http.StatusBadRequest)
		return
	}

	var roundFilter int64
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		roundFilter, err = apiutil.ParsePositiveInt64Field(raw, "round")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if _, err := q.GetDivision(ctx, divisionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Division not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to fetch division")
		http.Error(w, "Failed to fetch division", http.StatusInternalServerError)
		return
	}

	rows, err := q.ListDivisionMatches(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list fixtures")
		http.Error(w, "Failed to list fixtures", http.StatusInternalServerError)
		return
	}
	rounds := groupFixturesByRound(rows)
	if roundFilter > 0 {
		filtered := rounds[:0]
		for _, round := range rounds {
			if round.Round == roundFilter {
				filtered = append(filtered, round)
			}
		}
		rounds = filtered
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, fixturesComponent(rounds), nil, "Failed to render fixtures", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"rounds": rounds}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write fixtures response")
	}
}

// DELETE /api/v1/divisions/{id}/fixtures
func HandleFixturesClear(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("League service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	divisionID, err := apiutil.PathID(r, divisionIDPathKey)
	if err != nil {
		http.Error(w, "Invalid division ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleTimeout)
	defer cancel()

	if _, ok := loadDivisionForWrite(ctx, w, r, q, divisionID); !ok {
		return
	}

	deleted, err := service.ClearDivisionFixtures(ctx, divisionID)
	if err != nil {
		writeServiceError(w, r, err, "Division", "Failed to clear fixtures")
		return
	}

	logger.Info().Int64("division_id", divisionID).Int64("deleted", deleted).Msg("Division fixtures cleared")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshFixtures")
		if !apiutil.RenderHTMLComponent(r.Context(), w, fixturesComponent(nil), headers, "Failed to render fixtures", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"deleted": deleted}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write clear response")
	}
}

func decodeScheduleRequest(r *http.Request) (scheduleRequest, error) {
	var req scheduleRequest
	if apiutil.IsJSONRequest(r) {
		if r.ContentLength == 0 {
			return req, nil
		}
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data")
	}
	req.StartDate = apiutil.FirstNonEmpty(r.FormValue("start_date"), r.FormValue("startDate"))
	if raw := apiutil.FirstNonEmpty(r.FormValue("interval_days"), r.FormValue("intervalDays")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("interval_days must be a whole number")
		}
		req.IntervalDays = days
	}
	return req, nil
}

func parseScheduleRequest(req scheduleRequest) (leaguesvc.ScheduleOptions, error) {
	start, err := apiutil.ParseDate(req.StartDate, "startDate")
	if err != nil {
		return leaguesvc.ScheduleOptions{}, err
	}
	if req.IntervalDays < 0 || req.IntervalDays > maxRoundIntervalDay {
		return leaguesvc.ScheduleOptions{}, apiutil.FieldError{Field: "intervalDays", Reason: fmt.Sprintf("must be between 1 and %d", maxRoundIntervalDay)}
	}
	opts := leaguesvc.ScheduleOptions{StartDate: start}
	if req.IntervalDays > 0 {
		opts.Interval = time.Duration(req.IntervalDays) * 24 * time.Hour
	}
	return opts, nil
}

func groupFixturesByRound(rows []dbgen.ListDivisionMatchesRow) []fixtureRound {
	rounds := make([]fixtureRound, 0)
	for _, row := range rows {
		n := len(rounds)
		if n == 0 || rounds[n-1].Round != row.Match.RoundNumber {
			rounds = append(rounds, fixtureRound{Round: row.Match.RoundNumber})
			n++
		}
		rounds[n-1].Matches = append(rounds[n-1].Matches, row)
	}
	return rounds
}

// writeServiceError maps league service errors onto HTTP responses. entity
// names the resource reported for missing rows.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity, failMsg string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, entity+" not found", http.StatusNotFound)
	case errors.Is(err, leaguesvc.ErrScheduleExists):
		http.Error(w, "Fixtures already exist; regenerate to replace them", http.StatusConflict)
	case leaguesvc.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		log.Ctx(r.Context()).Warn().Err(err).Msg(failMsg)
		http.Error(w, "Request timed out", http.StatusServiceUnavailable)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg(failMsg)
		http.Error(w, failMsg, http.StatusInternalServerError)
	}
}
