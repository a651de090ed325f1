package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const divisionIDPathKey = "id"

type divisionRequest struct {
	Name  string `json:"name"`
	Level int64  `json:"level"`
}

// GET /api/v1/leagues/{id}/divisions
func HandleDivisionsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	divisions, err := q.ListDivisionsByLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to list divisions")
		http.Error(w, "Failed to list divisions", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, divisionsListComponent(divisions), nil, "Failed to render divisions list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"divisions": divisions}); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write divisions response")
	}
}

// POST /api/v1/leagues/{id}/divisions
func HandleDivisionCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	if !apiutil.RequireLeagueAccess(w, r, leagueID) {
		return
	}

	req, err := decodeDivisionRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name, level, err := validateDivisionRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	division, err := q.CreateDivision(ctx, dbgen.CreateDivisionParams{
		LeagueID: leagueID,
		Name:     name,
		Level:    level,
	})
	if err != nil {
		switch {
		case apiutil.IsSQLiteForeignKeyViolation(err):
			http.Error(w, "League not found", http.StatusNotFound)
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "A division with that name already exists in this league", http.StatusConflict)
		default:
			logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to create division")
			http.Error(w, "Failed to create division", http.StatusInternalServerError)
		}
		return
	}

	logger.Info().Int64("league_id", leagueID).Int64("division_id", division.ID).Msg("Division created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshDivisionsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, divisionCardComponent(division), headers, "Failed to render division", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, division); err != nil {
		logger.Error().Err(err).Int64("division_id", division.ID).Msg("Failed to write division response")
	}
}

// GET /api/v1/divisions/{id}
func HandleDivisionDetail(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	division, err := q.GetDivision(ctx, divisionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Division not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to fetch division")
		http.Error(w, "Failed to fetch division", http.StatusInternalServerError)
		return
	}

	teams, err := q.ListTeamsByDivision(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list division teams")
		http.Error(w, "Failed to fetch division", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, divisionCardComponent(division), nil, "Failed to render division", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"division": division, "teams": teams}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write division response")
	}
}

// PUT /api/v1/divisions/{id}
func HandleDivisionUpdate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeDivisionRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name, level, err := validateDivisionRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if _, ok := loadDivisionForWrite(ctx, w, r, q, divisionID); !ok {
		return
	}

	updated, err := q.UpdateDivision(ctx, dbgen.UpdateDivisionParams{
		ID:    divisionID,
		Name:  name,
		Level: level,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "Division not found", http.StatusNotFound)
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "A division with that name already exists in this league", http.StatusConflict)
		default:
			logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to update division")
			http.Error(w, "Failed to update division", http.StatusInternalServerError)
		}
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshDivisionsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, divisionCardComponent(updated), headers, "Failed to render division", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write division response")
	}
}

// DELETE /api/v1/divisions/{id}
func HandleDivisionDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if _, ok := loadDivisionForWrite(ctx, w, r, q, divisionID); !ok {
		return
	}

	if _, err := q.DeleteDivision(ctx, divisionID); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to delete division")
		http.Error(w, "Failed to delete division", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("division_id", divisionID).Msg("Division deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshDivisionsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Division"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadDivisionForWrite fetches the division and checks the caller administers
// its league. It writes the error response itself and reports false when the
// handler should stop.
func loadDivisionForWrite(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, divisionID int64) (dbgen.Division, bool) {
	division, err := q.GetDivision(ctx, divisionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Division not found", http.StatusNotFound)
			return dbgen.Division{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("division_id", divisionID).Msg("Failed to fetch division")
		http.Error(w, "Failed to fetch division", http.StatusInternalServerError)
		return dbgen.Division{}, false
	}
	if !apiutil.RequireLeagueAccess(w, r, division.LeagueID) {
		return dbgen.Division{}, false
	}
	return division, true
}

func decodeDivisionRequest(r *http.Request) (divisionRequest, error) {
	var req divisionRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			if errors.Is(err, io.EOF) {
				return req, fmt.Errorf("missing request body")
			}
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data")
	}
	req.Name = r.FormValue("name")
	if raw := strings.TrimSpace(r.FormValue("level")); raw != "" {
		level, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("level must be a whole number")
		}
		req.Level = level
	}
	return req, nil
}

func validateDivisionRequest(req divisionRequest) (string, int64, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", 0, apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	level := req.Level
	if level == 0 {
		level = 1
	}
	if level < 1 {
		return "", 0, apiutil.FieldError{Field: "level", Reason: "must be 1 or greater"}
	}
	return name, level, nil
}
