package leagues

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/storage"
)

const (
	teamIDPathKey     = "id"
	logoFormField     = "logo"
	logoUploadTimeout = 20 * time.Second
)

type teamRequest struct {
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	HomeCity    string `json:"homeCity"`
	HomeVenue   string `json:"homeVenue"`
	FoundedYear *int64 `json:"foundedYear"`
}

// GET /api/v1/divisions/{id}/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
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

	teams, err := q.ListTeamsByDivision(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamsListComponent(teams), nil, "Failed to render teams list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write teams response")
	}
}

// POST /api/v1/divisions/{id}/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateTeamRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if _, ok := loadDivisionForWrite(ctx, w, r, q, divisionID); !ok {
		return
	}

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
		DivisionID:  divisionID,
		Name:        req.Name,
		ShortName:   apiutil.ToNullString(req.ShortName),
		HomeCity:    apiutil.ToNullString(req.HomeCity),
		HomeVenue:   apiutil.ToNullString(req.HomeVenue),
		FoundedYear: apiutil.ToNullInt64(req.FoundedYear),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			http.Error(w, "A team with that name already exists in this division", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to create team")
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("division_id", divisionID).Int64("team_id", team.ID).Msg("Team created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamCardComponent(team), headers, "Failed to render team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Int64("team_id", team.ID).Msg("Failed to write team response")
	}
}

// GET /api/v1/teams/{id}
func HandleTeamDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to fetch team")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}

	players, err := q.ListPlayersByTeam(ctx, sql.NullInt64{Int64: teamID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list team players")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}
	matches, err := q.ListMatchesByTeam(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list team matches")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamCardComponent(team), nil, "Failed to render team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"team": team, "players": players, "matches": matches}); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// PUT /api/v1/teams/{id}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateTeamRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if !requireTeamWrite(ctx, w, r, q, teamID) {
		return
	}

	updated, err := q.UpdateTeam(ctx, dbgen.UpdateTeamParams{
		ID:          teamID,
		Name:        req.Name,
		ShortName:   apiutil.ToNullString(req.ShortName),
		HomeCity:    apiutil.ToNullString(req.HomeCity),
		HomeVenue:   apiutil.ToNullString(req.HomeVenue),
		FoundedYear: apiutil.ToNullInt64(req.FoundedYear),
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "Team not found", http.StatusNotFound)
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "A team with that name already exists in this division", http.StatusConflict)
		default:
			logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to update team")
			http.Error(w, "Failed to update team", http.StatusInternalServerError)
		}
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamCardComponent(updated), headers, "Failed to render team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// DELETE /api/v1/teams/{id}
func HandleTeamDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if !requireTeamWrite(ctx, w, r, q, teamID) {
		return
	}

	if _, err := q.DeleteTeam(ctx, teamID); err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Team still has fixtures; clear the division schedule first", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to delete team")
		http.Error(w, "Failed to delete team", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("team_id", teamID).Msg("Team deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Team"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/teams/{id}/logo
func HandleTeamLogoUpload(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if uploader == nil {
		http.Error(w, "Logo uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), logoUploadTimeout)
	defer cancel()

	if !requireTeamWrite(ctx, w, r, q, teamID) {
		return
	}

	data, contentType, err := readLogo(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := uploader.Upload(ctx, storage.LogoKey("team", teamID, contentType), contentType, bytes.NewReader(data))
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to upload team logo")
		http.Error(w, "Failed to upload logo", http.StatusBadGateway)
		return
	}

	team, err := q.UpdateTeamLogo(ctx, dbgen.UpdateTeamLogoParams{
		ID:      teamID,
		LogoUrl: sql.NullString{String: result.Location, Valid: true},
	})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to save team logo")
		if delErr := uploader.Delete(ctx, result.Key); delErr != nil {
			logger.Warn().Err(delErr).Str("key", result.Key).Msg("Failed to remove orphaned logo")
		}
		http.Error(w, "Failed to save logo", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("team_id", teamID).Str("key", result.Key).Msg("Team logo uploaded")

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamCardComponent(team), nil, "Failed to render team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// requireTeamWrite allows the team's league administrators and its manager.
func requireTeamWrite(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, teamID int64) bool {
	leagueID, err := q.GetTeamLeagueID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Msg("Failed to resolve team league")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return false
	}
	return apiutil.RequireTeamAccess(w, r, teamID, leagueID)
}

func readLogo(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxLogoBytes+1<<16)
	if err := r.ParseMultipartForm(storage.MaxLogoBytes); err != nil {
		return nil, "", fmt.Errorf("invalid upload: %w", err)
	}
	file, _, err := r.FormFile(logoFormField)
	if err != nil {
		return nil, "", fmt.Errorf("%s file is required", logoFormField)
	}
	defer file.Close()
	return storage.ReadImage(file)
}

func decodeTeamRequest(r *http.Request) (teamRequest, error) {
	var req teamRequest
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
	req.ShortName = apiutil.FirstNonEmpty(r.FormValue("short_name"), r.FormValue("shortName"))
	req.HomeCity = apiutil.FirstNonEmpty(r.FormValue("home_city"), r.FormValue("homeCity"))
	req.HomeVenue = apiutil.FirstNonEmpty(r.FormValue("home_venue"), r.FormValue("homeVenue"))
	founded, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("founded_year"), r.FormValue("foundedYear")), "founded_year")
	if err != nil {
		return req, err
	}
	req.FoundedYear = founded
	return req, nil
}

func validateTeamRequest(req *teamRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if req.FoundedYear != nil && (*req.FoundedYear < 1850 || *req.FoundedYear > int64(time.Now().Year())) {
		return apiutil.FieldError{Field: "foundedYear", Reason: "must be a plausible year"}
	}
	return nil
}
