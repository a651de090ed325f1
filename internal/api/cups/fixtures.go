package cups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const (
	matchIDPathKey  = "match_id"
	stageGroup      = "group"
	matchStatusDone = "completed"
	maxIntervalDays = 60
)

var (
	knockoutStages = []string{"round_of_16", "quarter_final", "semi_final", "final"}
	matchStatuses  = []string{"scheduled", "live", "completed", "postponed", "cancelled"}
)

type generateRequest struct {
	StartDate    string `json:"startDate"`
	IntervalDays int    `json:"intervalDays"`
}

type cupFixtureRequest struct {
	GroupID     *int64 `json:"groupId"`
	Stage       string `json:"stage"`
	RoundNumber int64  `json:"roundNumber"`
	HomeTeamID  int64  `json:"homeTeamId"`
	AwayTeamID  int64  `json:"awayTeamId"`
	MatchDate   string `json:"matchDate"`
	Venue       string `json:"venue"`
}

type cupResultRequest struct {
	HomeScore *int64 `json:"homeScore"`
	AwayScore *int64 `json:"awayScore"`
	Status    string `json:"status"`
	MatchDate string `json:"matchDate"`
	Venue     string `json:"venue"`
}

// POST /api/v1/cups/{id}/fixtures/generate
func HandleCupFixturesGenerate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("League service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, err := apiutil.PathID(r, cupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return
	}

	var req generateRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.StartDate = apiutil.FirstNonEmpty(r.FormValue("start_date"), r.FormValue("startDate"))
		days, err := formInt(r, "interval_days", "intervalDays")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.IntervalDays = int(days)
	}
	start, err := apiutil.ParseDate(req.StartDate, "startDate")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.IntervalDays < 0 || req.IntervalDays > maxIntervalDays {
		http.Error(w, fmt.Sprintf("intervalDays must be between 1 and %d", maxIntervalDays), http.StatusBadRequest)
		return
	}
	opts := leaguesvc.ScheduleOptions{StartDate: start}
	if req.IntervalDays > 0 {
		opts.Interval = time.Duration(req.IntervalDays) * 24 * time.Hour
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft && cup.Status != cupStatusGroupStage {
		http.Error(w, "Group fixtures cannot change after the group stage", http.StatusConflict)
		return
	}

	fixtures, err := service.GenerateCupGroupFixtures(ctx, cupID, opts)
	if err != nil {
		writeServiceError(w, r, err, "Cup", "Failed to generate cup fixtures")
		return
	}
	publishCupStandings(ctx, cupID)

	if htmx.IsRequest(r) {
		rows, err := q.ListCupMatches(ctx, cupID)
		if err != nil {
			logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to reload cup fixtures")
			http.Error(w, "Failed to load fixtures", http.StatusInternalServerError)
			return
		}
		headers := htmx.Trigger("refreshCupFixtures")
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupFixturesComponent(rows), headers, "Failed to render cup fixtures", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, fixtures); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup fixtures response")
	}
}

// GET /api/v1/cups/{id}/fixtures
func HandleCupFixturesList(w http.ResponseWriter, r *http.Request) {
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
	stage := strings.TrimSpace(r.URL.Query().Get("stage"))
	if stage != "" && stage != stageGroup && !slices.Contains(knockoutStages, stage) {
		http.Error(w, "Invalid stage filter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	rows, err := q.ListCupMatches(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup fixtures")
		http.Error(w, "Failed to list fixtures", http.StatusInternalServerError)
		return
	}
	if stage != "" {
		rows = slices.DeleteFunc(rows, func(row dbgen.ListCupMatchesRow) bool {
			return row.CupMatch.Stage != stage
		})
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupFixturesComponent(rows), nil, "Failed to render cup fixtures", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"fixtures": rows}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup fixtures response")
	}
}

// POST /api/v1/cups/{id}/fixtures
func HandleCupFixtureCreate(w http.ResponseWriter, r *http.Request) {
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

	var req cupFixtureRequest
	if err := decodeCupFixtureRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateCupFixtureRequest(cupID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupQueryTimeout)
	defer cancel()

	if _, ok := loadCupForWrite(ctx, w, r, q, cupID); !ok {
		return
	}
	for _, teamID := range []int64{params.HomeCupTeamID, params.AwayCupTeamID} {
		team, ok := loadCupTeam(ctx, w, r, q, cupID, teamID)
		if !ok {
			return
		}
		if params.GroupID.Valid && team.GroupID != params.GroupID {
			http.Error(w, fmt.Sprintf("%s is not in that group", team.Name), http.StatusBadRequest)
			return
		}
	}
	if params.GroupID.Valid {
		group, err := q.GetCupGroup(ctx, params.GroupID.Int64)
		if err != nil || group.CupID != cupID {
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				logger.Error().Err(err).Int64("group_id", params.GroupID.Int64).Msg("Failed to fetch cup group")
				http.Error(w, "Failed to create fixture", http.StatusInternalServerError)
				return
			}
			http.Error(w, "Group not found", http.StatusNotFound)
			return
		}
	}

	match, err := q.CreateCupMatch(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to create cup fixture")
		http.Error(w, "Failed to create fixture", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_id", cupID).Int64("cup_match_id", match.ID).Str("stage", match.Stage).Msg("Cup fixture created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupFixtures")
		rows, err := q.ListCupMatches(ctx, cupID)
		if err != nil {
			logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to reload cup fixtures")
			http.Error(w, "Failed to load fixtures", http.StatusInternalServerError)
			return
		}
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupFixturesComponent(rows), headers, "Failed to render cup fixtures", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, match); err != nil {
		logger.Error().Err(err).Int64("cup_match_id", match.ID).Msg("Failed to write cup fixture response")
	}
}

// PUT /api/v1/cups/{id}/fixtures/{match_id}
func HandleCupFixtureUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("League service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, matchID, ok := cupMatchPath(w, r)
	if !ok {
		return
	}
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	var req cupResultRequest
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
		var err error
		if req.HomeScore, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("home_score"), r.FormValue("homeScore")), "home_score"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.AwayScore, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("away_score"), r.FormValue("awayScore")), "away_score"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Status = r.FormValue("status")
		req.MatchDate = apiutil.FirstNonEmpty(r.FormValue("match_date"), r.FormValue("matchDate"))
		req.Venue = r.FormValue("venue")
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	existing, ok := loadCupMatch(ctx, w, r, q, cupID, matchID)
	if !ok {
		return
	}
	params, err := applyCupResult(existing, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := q.UpdateCupMatchResult(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("cup_match_id", matchID).Msg("Failed to update cup fixture")
		http.Error(w, "Failed to update fixture", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_match_id", matchID).Str("status", updated.Status).Msg("Cup fixture updated")
	live.Publish(live.CupRoom(cupID), live.MessageMatchUpdated, updated)

	if updated.GroupID.Valid && (updated.Status == matchStatusDone || existing.Status == matchStatusDone) {
		if _, err := service.RecomputeGroupStandings(ctx, updated.GroupID.Int64); err != nil {
			writeServiceError(w, r, err, "Group", "Failed to recompute group standings")
			return
		}
		publishCupStandings(ctx, cupID)
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupFixtures", "refreshCupStandings")
		rows, err := q.ListCupMatches(ctx, cupID)
		if err != nil {
			logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to reload cup fixtures")
			http.Error(w, "Failed to load fixtures", http.StatusInternalServerError)
			return
		}
		if !apiutil.RenderHTMLComponent(r.Context(), w, cupFixturesComponent(rows), headers, "Failed to render cup fixtures", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("cup_match_id", matchID).Msg("Failed to write cup fixture response")
	}
}

// DELETE /api/v1/cups/{id}/fixtures/{match_id}
func HandleCupFixtureDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("League service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cupID, matchID, ok := cupMatchPath(w, r)
	if !ok {
		return
	}
	if !apiutil.RequireCupAccess(w, r, cupID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	existing, ok := loadCupMatch(ctx, w, r, q, cupID, matchID)
	if !ok {
		return
	}
	if _, err := q.DeleteCupMatch(ctx, dbgen.DeleteCupMatchParams{ID: matchID, CupID: cupID}); err != nil {
		logger.Error().Err(err).Int64("cup_match_id", matchID).Msg("Failed to delete cup fixture")
		http.Error(w, "Failed to delete fixture", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cup_match_id", matchID).Msg("Cup fixture deleted")

	if existing.GroupID.Valid && existing.Status == matchStatusDone {
		if _, err := service.RecomputeGroupStandings(ctx, existing.GroupID.Int64); err != nil {
			writeServiceError(w, r, err, "Group", "Failed to recompute group standings")
			return
		}
		publishCupStandings(ctx, cupID)
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupFixtures")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Fixture"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func cupMatchPath(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	cupID, err := apiutil.PathID(r, cupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid cup ID", http.StatusBadRequest)
		return 0, 0, false
	}
	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return 0, 0, false
	}
	return cupID, matchID, true
}

func loadCupMatch(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, cupID, matchID int64) (dbgen.CupMatch, bool) {
	match, err := q.GetCupMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Fixture not found", http.StatusNotFound)
			return dbgen.CupMatch{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("cup_match_id", matchID).Msg("Failed to fetch cup fixture")
		http.Error(w, "Failed to fetch fixture", http.StatusInternalServerError)
		return dbgen.CupMatch{}, false
	}
	if match.CupID != cupID {
		http.Error(w, "Fixture not found", http.StatusNotFound)
		return dbgen.CupMatch{}, false
	}
	return match, true
}

func decodeCupFixtureRequest(r *http.Request, req *cupFixtureRequest) error {
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, req); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("missing request body")
			}
			return fmt.Errorf("invalid JSON body")
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form data")
	}
	var err error
	if req.GroupID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("group_id"), r.FormValue("groupId")), "group_id"); err != nil {
		return err
	}
	if req.HomeTeamID, err = formInt(r, "home_team_id", "homeTeamId"); err != nil {
		return err
	}
	if req.AwayTeamID, err = formInt(r, "away_team_id", "awayTeamId"); err != nil {
		return err
	}
	if req.RoundNumber, err = formInt(r, "round_number", "roundNumber"); err != nil {
		return err
	}
	req.Stage = r.FormValue("stage")
	req.MatchDate = apiutil.FirstNonEmpty(r.FormValue("match_date"), r.FormValue("matchDate"))
	req.Venue = r.FormValue("venue")
	return nil
}

// validateCupFixtureRequest puts fixtures without a group into a knockout
// stage, which must then be named.
func validateCupFixtureRequest(cupID int64, req cupFixtureRequest) (dbgen.CreateCupMatchParams, error) {
	if req.HomeTeamID <= 0 || req.AwayTeamID <= 0 {
		return dbgen.CreateCupMatchParams{}, apiutil.FieldError{Field: "homeTeamId", Reason: "and awayTeamId are required"}
	}
	if req.HomeTeamID == req.AwayTeamID {
		return dbgen.CreateCupMatchParams{}, apiutil.FieldError{Field: "awayTeamId", Reason: "must differ from homeTeamId"}
	}
	stage := strings.TrimSpace(req.Stage)
	var groupID sql.NullInt64
	if req.GroupID != nil {
		if stage != "" && stage != stageGroup {
			return dbgen.CreateCupMatchParams{}, apiutil.FieldError{Field: "stage", Reason: "must be group when groupId is set"}
		}
		stage = stageGroup
		groupID = sql.NullInt64{Int64: *req.GroupID, Valid: true}
	} else if !slices.Contains(knockoutStages, stage) {
		return dbgen.CreateCupMatchParams{}, apiutil.FieldError{Field: "stage", Reason: "must be one of round_of_16, quarter_final, semi_final, final"}
	}
	round := req.RoundNumber
	if round == 0 {
		round = 1
	}
	if round < 0 {
		return dbgen.CreateCupMatchParams{}, apiutil.FieldError{Field: "roundNumber", Reason: "must be positive"}
	}
	kickoff, err := apiutil.ParseDate(req.MatchDate, "matchDate")
	if err != nil {
		return dbgen.CreateCupMatchParams{}, err
	}
	return dbgen.CreateCupMatchParams{
		CupID:         cupID,
		GroupID:       groupID,
		Stage:         stage,
		RoundNumber:   round,
		HomeCupTeamID: req.HomeTeamID,
		AwayCupTeamID: req.AwayTeamID,
		MatchDate:     sql.NullTime{Time: kickoff, Valid: !kickoff.IsZero()},
		Venue:         apiutil.ToNullString(req.Venue),
	}, nil
}

// applyCupResult merges req over the stored fixture. Blank fields keep their
// stored values; scores must be given as a pair.
func applyCupResult(existing dbgen.CupMatch, req cupResultRequest) (dbgen.UpdateCupMatchResultParams, error) {
	params := dbgen.UpdateCupMatchResultParams{
		ID:        existing.ID,
		HomeScore: existing.HomeScore,
		AwayScore: existing.AwayScore,
		Status:    existing.Status,
		MatchDate: existing.MatchDate,
		Venue:     existing.Venue,
	}
	if (req.HomeScore == nil) != (req.AwayScore == nil) {
		return params, apiutil.FieldError{Field: "homeScore", Reason: "and awayScore must be given together"}
	}
	if req.HomeScore != nil {
		if *req.HomeScore < 0 || *req.AwayScore < 0 {
			return params, apiutil.FieldError{Field: "homeScore", Reason: "and awayScore must be 0 or greater"}
		}
		params.HomeScore = apiutil.ToNullInt64(req.HomeScore)
		params.AwayScore = apiutil.ToNullInt64(req.AwayScore)
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		if !slices.Contains(matchStatuses, status) {
			return params, apiutil.FieldError{Field: "status", Reason: "is not a valid match status"}
		}
		params.Status = status
	}
	if params.Status == matchStatusDone && (!params.HomeScore.Valid || !params.AwayScore.Valid) {
		return params, apiutil.FieldError{Field: "status", Reason: "completed requires a score"}
	}
	if strings.TrimSpace(req.MatchDate) != "" {
		kickoff, err := apiutil.ParseDate(req.MatchDate, "matchDate")
		if err != nil {
			return params, err
		}
		params.MatchDate = sql.NullTime{Time: kickoff, Valid: true}
	}
	if strings.TrimSpace(req.Venue) != "" {
		params.Venue = apiutil.ToNullString(req.Venue)
	}
	return params, nil
}
