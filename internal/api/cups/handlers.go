// internal/api/cups/handlers.go
package cups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
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
	cupQueryTimeout = 5 * time.Second
	cupWriteTimeout = 30 * time.Second
	cupIDPathKey    = "id"

	cupStatusDraft      = "draft"
	cupStatusGroupStage = "group_stage"
	cupStatusKnockout   = "knockout"
	cupStatusCompleted  = "completed"
)

// cupStatusOrder is the only direction a cup may move in.
var cupStatusOrder = []string{cupStatusDraft, cupStatusGroupStage, cupStatusKnockout, cupStatusCompleted}

var (
	queries  *dbgen.Queries
	service  *leaguesvc.Service
	uploader storage.Uploader
)

type cupRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Season        string `json:"season"`
	TotalTeams    int64  `json:"totalTeams"`
	TeamsPerGroup int64  `json:"teamsPerGroup"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

type cupStatusRequest struct {
	Status string `json:"status"`
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

// GET /api/v1/cups
func HandleCupsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !slices.Contains(cupStatusOrder, status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	var (
		cups []dbgen.Cup
		err  error
	)
	if status == "" {
		cups, err = q.ListCups(ctx)
	} else {
		cups, err = q.ListCupsByStatus(ctx, status)
	}
	if err != nil {
		logger.Error().Err(err).Str("status", status).Msg("Failed to list cups")
		http.Error(w, "Failed to list cups", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupsListComponent(cups), nil, "Failed to render cups list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"cups": cups}); err != nil {
		logger.Error().Err(err).Msg("Failed to write cups response")
	}
}

// POST /api/v1/cups
func HandleCupCreate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeCupRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateCupRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	cup, err := q.CreateCup(ctx, params)
	if err != nil {
		logger.Error().Err(err).Str("name", params.Name).Msg("Failed to create cup")
		http.Error(w, "Failed to create cup", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_id", cup.ID).Msg("Cup created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupCardComponent(cup), headers, "Failed to render cup", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, cup); err != nil {
		logger.Error().Err(err).Int64("cup_id", cup.ID).Msg("Failed to write cup response")
	}
}

// GET /api/v1/cups/{id}
func HandleCupDetail(w http.ResponseWriter, r *http.Request) {
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

	cup, err := q.GetCup(ctx, cupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to fetch cup")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return
	}
	groups, err := q.ListCupGroups(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup groups")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return
	}
	teams, err := q.ListCupTeams(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup teams")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupCardComponent(cup), nil, "Failed to render cup", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"cup": cup, "groups": groups, "teams": teams}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup response")
	}
}

// PUT /api/v1/cups/{id}
func HandleCupUpdate(w http.ResponseWriter, r *http.Request) {
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

	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	req, err := decodeCupRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateCupRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	registered, err := q.CountCupTeams(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to count cup teams")
		http.Error(w, "Failed to update cup", http.StatusInternalServerError)
		return
	}
	if registered > params.TotalTeams {
		http.Error(w, fmt.Sprintf("totalTeams cannot be below the %d registered teams", registered), http.StatusConflict)
		return
	}

	updated, err := q.UpdateCup(ctx, dbgen.UpdateCupParams{
		ID:            cupID,
		Name:          params.Name,
		Description:   params.Description,
		Season:        params.Season,
		TotalTeams:    params.TotalTeams,
		TeamsPerGroup: params.TeamsPerGroup,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to update cup")
		http.Error(w, "Failed to update cup", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupCardComponent(updated), headers, "Failed to render cup", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup response")
	}
}

// POST /api/v1/cups/{id}/status
func HandleCupStatusUpdate(w http.ResponseWriter, r *http.Request) {
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

	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	var req cupStatusRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Status = r.FormValue("status")
	}
	next := strings.TrimSpace(req.Status)
	if !slices.Contains(cupStatusOrder, next) {
		http.Error(w, "status must be one of draft, group_stage, knockout, completed", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	cup, err := q.GetCup(ctx, cupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to fetch cup")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return
	}
	if err := checkStatusTransition(cup.Status, next); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	updated, err := q.UpdateCupStatus(ctx, dbgen.UpdateCupStatusParams{ID: cupID, Status: next})
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Str("status", next).Msg("Failed to update cup status")
		http.Error(w, "Failed to update cup status", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_id", cupID).Str("from", cup.Status).Str("to", next).Msg("Cup status changed")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupCardComponent(updated), headers, "Failed to render cup", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup response")
	}
}

// DELETE /api/v1/cups/{id}
func HandleCupDelete(w http.ResponseWriter, r *http.Request) {
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

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteCup(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to delete cup")
		http.Error(w, "Failed to delete cup", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Cup not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("cup_id", cupID).Msg("Cup deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupsList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Cup"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkStatusTransition allows any forward move through cupStatusOrder.
func checkStatusTransition(current, next string) error {
	from := slices.Index(cupStatusOrder, current)
	to := slices.Index(cupStatusOrder, next)
	if to <= from {
		return fmt.Errorf("cannot move cup from %s to %s", current, next)
	}
	return nil
}

// loadCupForWrite fetches the cup and checks the caller may manage it.
func loadCupForWrite(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, cupID int64) (dbgen.Cup, bool) {
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return dbgen.Cup{}, false
	}
	cup, err := q.GetCup(ctx, cupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Cup not found", http.StatusNotFound)
			return dbgen.Cup{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("cup_id", cupID).Msg("Failed to fetch cup")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return dbgen.Cup{}, false
	}
	return cup, true
}

func decodeCupRequest(r *http.Request) (cupRequest, error) {
	var req cupRequest
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
	req.Description = r.FormValue("description")
	req.Season = r.FormValue("season")
	req.StartDate = apiutil.FirstNonEmpty(r.FormValue("start_date"), r.FormValue("startDate"))
	req.EndDate = apiutil.FirstNonEmpty(r.FormValue("end_date"), r.FormValue("endDate"))
	var err error
	if req.TotalTeams, err = formInt(r, "total_teams", "totalTeams"); err != nil {
		return req, err
	}
	if req.TeamsPerGroup, err = formInt(r, "teams_per_group", "teamsPerGroup"); err != nil {
		return req, err
	}
	return req, nil
}

// formInt reads an optional whole number from either spelling of a form
// field. Blank yields 0.
func formInt(r *http.Request, snake, camel string) (int64, error) {
	raw := strings.TrimSpace(apiutil.FirstNonEmpty(r.FormValue(snake), r.FormValue(camel)))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", snake)
	}
	return value, nil
}

func validateCupRequest(req cupRequest) (dbgen.CreateCupParams, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dbgen.CreateCupParams{}, apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if req.TotalTeams < 2 {
		return dbgen.CreateCupParams{}, apiutil.FieldError{Field: "totalTeams", Reason: "must be at least 2"}
	}
	if req.TeamsPerGroup < 1 || req.TeamsPerGroup > req.TotalTeams {
		return dbgen.CreateCupParams{}, apiutil.FieldError{Field: "teamsPerGroup", Reason: "must be between 1 and totalTeams"}
	}
	start, err := apiutil.ParseDate(req.StartDate, "startDate")
	if err != nil {
		return dbgen.CreateCupParams{}, err
	}
	end, err := apiutil.ParseDate(req.EndDate, "endDate")
	if err != nil {
		return dbgen.CreateCupParams{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return dbgen.CreateCupParams{}, apiutil.FieldError{Field: "endDate", Reason: "must not be before startDate"}
	}
	return dbgen.CreateCupParams{
		Name:          name,
		Description:   apiutil.ToNullString(req.Description),
		Season:        apiutil.ToNullString(req.Season),
		TotalTeams:    req.TotalTeams,
		TeamsPerGroup: req.TeamsPerGroup,
		StartDate:     sql.NullTime{Time: start, Valid: !start.IsZero()},
		EndDate:       sql.NullTime{Time: end, Valid: !end.IsZero()},
	}, nil
}

// writeServiceError maps league service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity, failMsg string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, entity+" not found", http.StatusNotFound)
	case errors.Is(err, leaguesvc.ErrRegistrationIncomplete), errors.Is(err, leaguesvc.ErrDuplicateGroupName), errors.Is(err, leaguesvc.ErrAlreadyGrouped):
		http.Error(w, err.Error(), http.StatusConflict)
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

func loadQueries() *dbgen.Queries {
	return queries
}
