// internal/api/players/handlers.go
package players

import (
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
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/email"
)

const (
	playerQueryTimeout = 5 * time.Second
	teamIDPathKey      = "id"
	playerIDPathKey    = "id"
	maxJerseyNumber    = 99
)

var (
	queries     *dbgen.Queries
	store       *appdb.DB
	emailSender email.EmailSender
)

type playerRequest struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber *int64 `json:"jerseyNumber"`
	Nationality  string `json:"nationality"`
	DateOfBirth  string `json:"dateOfBirth"`
}

// InitHandlers must be called during server startup before handling requests.
// sender may be nil when SES is not configured.
func InitHandlers(database *appdb.DB, sender email.EmailSender) {
	if database == nil {
		return
	}
	queries = database.Queries
	store = database
	emailSender = sender
}

// GET /api/v1/teams/{id}/players
func HandleTeamPlayersList(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	players, err := q.ListPlayersByTeam(ctx, sql.NullInt64{Int64: teamID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list players")
		http.Error(w, "Failed to list players", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, playersListComponent(players), nil, "Failed to render players list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": players}); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write players response")
	}
}

// GET /api/v1/players/unattached
func HandleUnattachedPlayersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	players, err := q.ListUnattachedPlayers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list unattached players")
		http.Error(w, "Failed to list players", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, playersListComponent(players), nil, "Failed to render players list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": players}); err != nil {
		logger.Error().Err(err).Msg("Failed to write players response")
	}
}

// POST /api/v1/teams/{id}/players
func HandlePlayerCreate(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if !requireTeamWrite(ctx, w, r, q, teamID) {
		return
	}

	req, err := decodePlayerRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fields, err := validatePlayerRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	player, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{
		TeamID:       sql.NullInt64{Int64: teamID, Valid: true},
		Name:         fields.Name,
		Position:     fields.Position,
		JerseyNumber: fields.JerseyNumber,
		Nationality:  fields.Nationality,
		DateOfBirth:  fields.DateOfBirth,
	})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to create player")
		http.Error(w, "Failed to create player", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("team_id", teamID).Int64("player_id", player.ID).Msg("Player created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshPlayersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, playerCardComponent(player), headers, "Failed to render player", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, player); err != nil {
		logger.Error().Err(err).Int64("player_id", player.ID).Msg("Failed to write player response")
	}
}

// GET /api/v1/players/{id}
func HandlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to fetch player")
		http.Error(w, "Failed to fetch player", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, playerCardComponent(player), nil, "Failed to render player", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, player); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// PUT /api/v1/players/{id}
func HandlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if _, ok := loadPlayerForWrite(ctx, w, r, q, playerID); !ok {
		return
	}

	req, err := decodePlayerRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fields, err := validatePlayerRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fields.ID = playerID

	updated, err := q.UpdatePlayer(ctx, fields)
	if err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to update player")
		http.Error(w, "Failed to update player", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player updated")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshPlayersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, playerCardComponent(updated), headers, "Failed to render player", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// DELETE /api/v1/players/{id}
func HandlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if _, ok := loadPlayerForWrite(ctx, w, r, q, playerID); !ok {
		return
	}

	deleted, err := q.DeletePlayer(ctx, playerID)
	if err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to delete player")
		http.Error(w, "Failed to delete player", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshPlayersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Player"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireTeamWrite checks the team exists and the caller may manage it.
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

// loadPlayerForWrite fetches the player and checks access to its team.
// Unattached players can be edited by league admins.
func loadPlayerForWrite(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, playerID int64) (dbgen.Player, bool) {
	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return dbgen.Player{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", playerID).Msg("Failed to fetch player")
		http.Error(w, "Failed to fetch player", http.StatusInternalServerError)
		return dbgen.Player{}, false
	}
	if !player.TeamID.Valid {
		if !apiutil.RequireRole(w, r, authz.RoleLeagueAdmin) {
			return dbgen.Player{}, false
		}
		return player, true
	}
	if !requireTeamWrite(ctx, w, r, q, player.TeamID.Int64) {
		return dbgen.Player{}, false
	}
	return player, true
}

func decodePlayerRequest(r *http.Request) (playerRequest, error) {
	var req playerRequest
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
	req.Position = r.FormValue("position")
	req.Nationality = r.FormValue("nationality")
	req.DateOfBirth = apiutil.FirstNonEmpty(r.FormValue("date_of_birth"), r.FormValue("dateOfBirth"))
	jersey, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("jersey_number"), r.FormValue("jerseyNumber")), "jerseyNumber")
	if err != nil {
		return req, err
	}
	req.JerseyNumber = jersey
	return req, nil
}

func validatePlayerRequest(req playerRequest) (dbgen.UpdatePlayerParams, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dbgen.UpdatePlayerParams{}, apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if req.JerseyNumber != nil && (*req.JerseyNumber < 1 || *req.JerseyNumber > maxJerseyNumber) {
		return dbgen.UpdatePlayerParams{}, apiutil.FieldError{Field: "jerseyNumber", Reason: fmt.Sprintf("must be between 1 and %d", maxJerseyNumber)}
	}
	born, err := apiutil.ParseDate(req.DateOfBirth, "dateOfBirth")
	if err != nil {
		return dbgen.UpdatePlayerParams{}, err
	}
	if born.After(time.Now()) {
		return dbgen.UpdatePlayerParams{}, apiutil.FieldError{Field: "dateOfBirth", Reason: "cannot be in the future"}
	}

	return dbgen.UpdatePlayerParams{
		Name:         name,
		Position:     apiutil.ToNullString(req.Position),
		JerseyNumber: apiutil.ToNullInt64(req.JerseyNumber),
		Nationality:  apiutil.ToNullString(req.Nationality),
		DateOfBirth:  apiutil.ToNullTime(&born),
	}, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
