package cups

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
	teamIDPathKey     = "team_id"
	playerIDPathKey   = "player_id"
	logoFormField     = "logo"
	logoUploadTimeout = 20 * time.Second
)

type cupTeamRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Stadium   string `json:"stadium"`
	City      string `json:"city"`
	Coach     string `json:"coach"`
}

type cupPlayerRequest struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber *int64 `json:"jerseyNumber"`
	IsCaptain    bool   `json:"isCaptain"`
}

// GET /api/v1/cups/{id}/teams
func HandleCupTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, err := apiutil.PathID(r, cupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	teams, err := q.ListCupTeams(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupTeamsListComponent(teams), nil, "Failed to render cup teams", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup teams response")
	}
}

// POST /api/v1/cups/{id}/teams
func HandleCupTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, err := apiutil.PathID(r, cupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return
	}

	req, err := decodeCupTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft {
		http.Error(w, "Registration is closed once the group stage starts", http.StatusConflict)
		return
	}
	registered, err := q.CountCupTeams(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to count cup teams")
		http.Error(w, "Failed to register team", http.StatusInternalServerError)
		return
	}
	if registered >= cup.TotalTeams {
		http.Error(w, fmt.Sprintf("Cup already has %d of %d teams", registered, cup.TotalTeams), http.StatusConflict)
		return
	}

	team, err := q.CreateCupTeam(ctx, dbgen.CreateCupTeamParams{
		CupID:     cupID,
		Name:      name,
		ShortName: apiutil.ToNullString(req.ShortName),
		Stadium:   apiutil.ToNullString(req.Stadium),
		City:      apiutil.ToNullString(req.City),
		Coach:     apiutil.ToNullString(req.Coach),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			http.Error(w, "A team with that name is already registered", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to register cup team")
		http.Error(w, "Failed to register team", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_id", cupID).Int64("cup_team_id", team.ID).Msg("Cup team registered")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupTeamCardComponent(team), headers, "Failed to render cup team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Int64("cup_team_id", team.ID).Msg("Failed to write cup team response")
	}
}

// PUT /api/v1/cups/{id}/teams/{team_id}
func HandleCupTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}

	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	req, err := decodeCupTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	team, ok := loadCupTeam(ctx, w, r, q, cupID, teamID)
	if !ok {
		return
	}

	updated, err := q.UpdateCupTeam(ctx, dbgen.UpdateCupTeamParams{
		ID:        teamID,
		Name:      name,
		ShortName: apiutil.ToNullString(req.ShortName),
		LogoUrl:   team.LogoUrl,
		Stadium:   apiutil.ToNullString(req.Stadium),
		City:      apiutil.ToNullString(req.City),
		Coach:     apiutil.ToNullString(req.Coach),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			http.Error(w, "A team with that name is already registered", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to update cup team")
		http.Error(w, "Failed to update team", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupTeamCardComponent(updated), headers, "Failed to render cup team", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to write cup team response")
	}
}

// DELETE /api/v1/cups/{id}/teams/{team_id}
func HandleCupTeamDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft {
		http.Error(w, "Teams cannot be removed once the group stage starts", http.StatusConflict)
		return
	}

	deleted, err := q.DeleteCupTeam(ctx, dbgen.DeleteCupTeamParams{ID: teamID, CupID: cupID})
	if err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to remove cup team")
		http.Error(w, "Failed to remove team", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("cup_id", cupID).Int64("cup_team_id", teamID).Msg("Cup team removed")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupTeamsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Team"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/cups/{id}/teams/{team_id}/logo
func HandleCupTeamLogoUpload(w http.ResponseWriter, r *http.Request) {
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

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), logoUploadTimeout)
	defer cancel()

	team, ok := loadCupTeam(ctx, w, r, q, cupID, teamID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxLogoBytes+1<<16)
	if err := r.ParseMultipartForm(storage.MaxLogoBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile(logoFormField)
	if err != nil {
		http.Error(w, "logo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, contentType, err := storage.ReadImage(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := uploader.Upload(ctx, storage.LogoKey("cup-team", teamID, contentType), contentType, bytes.NewReader(data))
	if err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to upload cup team logo")
		http.Error(w, "Failed to upload logo", http.StatusBadGateway)
		return
	}

	updated, err := q.UpdateCupTeam(ctx, dbgen.UpdateCupTeamParams{
		ID:        teamID,
		Name:      team.Name,
		ShortName: team.ShortName,
		LogoUrl:   sql.NullString{String: result.Location, Valid: true},
		Stadium:   team.Stadium,
		City:      team.City,
		Coach:     team.Coach,
	})
	if err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to save cup team logo")
		if delErr := uploader.Delete(ctx, result.Key); delErr != nil {
			logger.Warn().Err(delErr).Str("key", result.Key).Msg("Failed to remove orphaned logo")
		}
		http.Error(w, "Failed to save logo", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to write cup team response")
	}
}

// GET /api/v1/cups/{id}/teams/{team_id}/players
func HandleCupPlayersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	if _, ok := loadCupTeam(ctx, w, r, q, cupID, teamID); !ok {
		return
	}
	players, err := q.ListCupPlayers(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to list cup players")
		http.Error(w, "Failed to list players", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupPlayersComponent(players), nil, "Failed to render cup players", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": players}); err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to write cup players response")
	}
}

// POST /api/v1/cups/{id}/teams/{team_id}/players
func HandleCupPlayerCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	var req cupPlayerRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			if errors.Is(err, io.EOF) {
				http.Error(w, "missing request body", http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Name = apiutil.FirstNonEmpty(r.FormValue("name"), r.FormValue("player_name"))
		req.Position = r.FormValue("position")
		req.IsCaptain = apiutil.ParseBool(apiutil.FirstNonEmpty(r.FormValue("is_captain"), r.FormValue("isCaptain")))
		jersey, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("jersey_number"), r.FormValue("jerseyNumber")), "jersey_number")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.JerseyNumber = jersey
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.JerseyNumber != nil && (*req.JerseyNumber < 1 || *req.JerseyNumber > 99) {
		http.Error(w, "jerseyNumber must be between 1 and 99", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	if _, ok := loadCupTeam(ctx, w, r, q, cupID, teamID); !ok {
		return
	}

	player, err := q.CreateCupPlayer(ctx, dbgen.CreateCupPlayerParams{
		CupTeamID:    teamID,
		PlayerName:   name,
		Position:     apiutil.ToNullString(req.Position),
		JerseyNumber: apiutil.ToNullInt64(req.JerseyNumber),
		IsCaptain:    req.IsCaptain,
	})
	if err != nil {
		logger.Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to add cup player")
		http.Error(w, "Failed to add player", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupPlayers")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupPlayersComponent([]dbgen.CupPlayer{player}), headers, "Failed to render cup player", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, player); err != nil {
		logger.Error().Err(err).Int64("cup_player_id", player.ID).Msg("Failed to write cup player response")
	}
}

// DELETE /api/v1/cups/{id}/teams/{team_id}/players/{player_id}
func HandleCupPlayerDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, teamID, ok := cupTeamPath(w, r)
	if !ok {
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	if _, ok := loadCupTeam(ctx, w, r, q, cupID, teamID); !ok {
		return
	}
	deleted, err := q.DeleteCupPlayer(ctx, dbgen.DeleteCupPlayerParams{ID: playerID, CupTeamID: teamID})
	if err != nil {
		logger.Error().Err(err).Int64("cup_player_id", playerID).Msg("Failed to remove cup player")
		http.Error(w, "Failed to remove player", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupPlayers")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Player"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func cupTeamPath(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	cupID, err := apiutil.PathID(r, cupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return 0, 0, false
	}
	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return 0, 0, false
	}
	return cupID, teamID, true
}

// loadCupTeam reports 404 for teams registered in another cup.
func loadCupTeam(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, cupID, teamID int64) (dbgen.CupTeam, bool) {
	team, err := q.GetCupTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return dbgen.CupTeam{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("cup_team_id", teamID).Msg("Failed to fetch cup team")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return dbgen.CupTeam{}, false
	}
	if team.CupID != cupID {
		http.Error(w, "Team not found", http.StatusNotFound)
		return dbgen.CupTeam{}, false
	}
	return team, true
}

func decodeCupTeamRequest(r *http.Request) (cupTeamRequest, error) {
	var req cupTeamRequest
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
	req.Stadium = r.FormValue("stadium")
	req.City = r.FormValue("city")
	req.Coach = r.FormValue("coach")
	return req, nil
}
