// internal/api/leagues/handlers.go
package leagues

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
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
	"github.com/codr1/Fixturely/internal/storage"
)

const (
	leagueQueryTimeout   = 5 * time.Second
	leagueIDPathKey      = "id"
	leagueStatusActive   = "active"
	leagueStatusArchived = "archived"
)

var (
	queries  *dbgen.Queries
	service  *leaguesvc.Service
	uploader storage.Uploader
)

type leagueRequest struct {
	Name        string `json:"name"`
	Season      string `json:"season"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}

// InitHandlers must be called during server startup before handling requests.
// up may be nil when object storage is not configured.
func InitHandlers(database *appdb.DB, svc *leaguesvc.Service, up storage.Uploader) {
	if database == nil {
		return
	}
	queries = database.Queries
	service = svc
	uploader = up
}

// GET /api/v1/leagues
func HandleLeaguesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" {
		status = leagueStatusActive
	}
	if status != leagueStatusActive && status != leagueStatusArchived {
		http.Error(w, "status must be active or archived", http.StatusBadRequest)
		return
	}

	listLeagues(w, r, q, status)
}

// GET /api/v1/leagues/archived
func HandleArchivedLeaguesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	listLeagues(w, r, q, leagueStatusArchived)
}

func listLeagues(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, status string) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	leagues, err := q.ListLeaguesByStatus(ctx, status)
	if err != nil {
		logger.Error().Err(err).Str("status", status).Msg("Failed to list leagues")
		http.Error(w, "Failed to list leagues", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		component := leaguesListComponent(leagues)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render leagues list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"leagues": leagues}); err != nil {
		logger.Error().Err(err).Str("status", status).Msg("Failed to write leagues response")
	}
}

// POST /api/v1/leagues
func HandleLeagueCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	req, err := decodeLeagueRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := q.CreateLeague(ctx, dbgen.CreateLeagueParams{
		Name:        name,
		Season:      apiutil.ToNullString(req.Season),
		Description: apiutil.ToNullString(req.Description),
		LogoUrl:     apiutil.ToNullString(req.LogoURL),
	})
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Failed to create league")
		http.Error(w, "Failed to create league", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("league_id", league.ID).Msg("League created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshLeaguesList")
		component := leagueDetailComponent(league)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render league detail", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, league); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write league response")
	}
}

// GET /api/v1/leagues/{id}
func HandleLeagueDetail(w http.ResponseWriter, r *http.Request) {
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

	league, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "League not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to fetch league")
		http.Error(w, "Failed to fetch league", http.StatusInternalServerError)
		return
	}

	divisions, err := q.ListDivisionsByLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to list divisions")
		http.Error(w, "Failed to fetch league", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		component := leagueDetailComponent(league)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render league detail", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"league": league, "divisions": divisions}); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// PUT /api/v1/leagues/{id}
func HandleLeagueUpdate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeLeagueRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	updated, err := q.UpdateLeague(ctx, dbgen.UpdateLeagueParams{
		ID:          leagueID,
		Name:        name,
		Season:      apiutil.ToNullString(req.Season),
		Description: apiutil.ToNullString(req.Description),
		LogoUrl:     apiutil.ToNullString(req.LogoURL),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "League not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to update league")
		http.Error(w, "Failed to update league", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshLeaguesList")
		component := leagueDetailComponent(updated)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render league detail", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// POST /api/v1/leagues/{id}/archive
func HandleLeagueArchive(w http.ResponseWriter, r *http.Request) {
	setLeagueStatus(w, r, leagueStatusArchived)
}

// POST /api/v1/leagues/{id}/restore
func HandleLeagueRestore(w http.ResponseWriter, r *http.Request) {
	setLeagueStatus(w, r, leagueStatusActive)
}

func setLeagueStatus(w http.ResponseWriter, r *http.Request, status string) {
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

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := q.UpdateLeagueStatus(ctx, dbgen.UpdateLeagueStatusParams{ID: leagueID, Status: status})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "League not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Str("status", status).Msg("Failed to update league status")
		http.Error(w, "Failed to update league status", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("league_id", leagueID).Str("status", status).Msg("League status changed")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshLeaguesList")
		component := leagueDetailComponent(league)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render league detail", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, league); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// DELETE /api/v1/leagues/{id}
func HandleLeagueDelete(w http.ResponseWriter, r *http.Request) {
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

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to delete league")
		http.Error(w, "Failed to delete league", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "League not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("league_id", leagueID).Msg("League deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshLeaguesList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("League"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeLeagueRequest(r *http.Request) (leagueRequest, error) {
	var req leagueRequest
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
	req.Season = r.FormValue("season")
	req.Description = r.FormValue("description")
	req.LogoURL = apiutil.FirstNonEmpty(r.FormValue("logo_url"), r.FormValue("logoUrl"))
	return req, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
