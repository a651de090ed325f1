// internal/api/matches/handlers.go
package matches

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
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/email"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const (
	matchQueryTimeout = 5 * time.Second
	standingsTimeout  = 30 * time.Second
	matchIDPathKey    = "id"
	divisionIDPathKey = "id"
	matchStatusDone   = "completed"
)

var matchStatuses = []string{"scheduled", "live", "completed", "postponed", "cancelled"}

var (
	queries     *dbgen.Queries
	service     *leaguesvc.Service
	emailSender email.EmailSender
)

type matchRequest struct {
	HomeTeamID  int64  `json:"homeTeamId"`
	AwayTeamID  int64  `json:"awayTeamId"`
	RoundNumber int64  `json:"roundNumber"`
	MatchDate   string `json:"matchDate"`
	Venue       string `json:"venue"`
}

type resultRequest struct {
	HomeScore *int64 `json:"homeScore"`
	AwayScore *int64 `json:"awayScore"`
	Status    string `json:"status"`
}

type detailsRequest struct {
	MatchDate string `json:"matchDate"`
	Venue     string `json:"venue"`
	RefereeID *int64 `json:"refereeId"`
}

// InitHandlers must be called during server startup before handling requests.
// sender may be nil when SES is not configured.
func InitHandlers(database *appdb.DB, svc *leaguesvc.Service, sender email.EmailSender) {
	if database == nil {
		return
	}
	queries = database.Queries
	service = svc
	emailSender = sender
}

// GET /api/v1/divisions/{id}/matches
func HandleDivisionMatchesList(w http.ResponseWriter, r *http.Request) {
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

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !slices.Contains(matchStatuses, status) {
		http.Error(w, "status must be one of scheduled, live, completed, postponed, cancelled", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := q.ListDivisionMatches(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list matches")
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}
	if status != "" {
		rows = slices.DeleteFunc(rows, func(row dbgen.ListDivisionMatchesRow) bool {
			return row.Match.Status != status
		})
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchesListComponent(rows), nil, "Failed to render matches list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": rows}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write matches response")
	}
}

// POST /api/v1/divisions/{id}/matches
func HandleMatchCreate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeMatchRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateMatchRequest(divisionID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
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
	if !apiutil.RequireLeagueAccess(w, r, division.LeagueID) {
		return
	}

	for _, teamID := range []int64{params.HomeTeamID, params.AwayTeamID} {
		team, err := q.GetTeam(ctx, teamID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, fmt.Sprintf("Team %d not found", teamID), http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to fetch team")
			http.Error(w, "Failed to create match", http.StatusInternalServerError)
			return
		}
		if team.DivisionID != divisionID {
			http.Error(w, fmt.Sprintf("Team %d does not play in this division", teamID), http.StatusBadRequest)
			return
		}
	}

	match, err := q.CreateMatch(ctx, params)
	if err != nil {
		if apiutil.IsSQLiteCheckViolation(err) {
			http.Error(w, "home and away teams must differ", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to create match")
		http.Error(w, "Failed to create match", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("division_id", divisionID).Int64("match_id", match.ID).Msg("Match created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshMatchesList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchCardComponent(match, "", ""), headers, "Failed to render match", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, match); err != nil {
		logger.Error().Err(err).Int64("match_id", match.ID).Msg("Failed to write match response")
	}
}

// GET /api/v1/matches/{id}
func HandleMatchDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	row, err := q.GetMatchWithTeams(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}
	events, err := q.ListMatchEvents(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to list match events")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchDetailComponent(row, events), nil, "Failed to render match", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"match":        row.Match,
		"homeTeamName": row.HomeTeamName,
		"awayTeamName": row.AwayTeamName,
		"events":       events,
	}); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}/result
func HandleMatchResultUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("Match handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	req, err := decodeResultRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), standingsTimeout)
	defer cancel()

	existing, leagueID, ok := loadMatchScope(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireMatchOfficial(w, r, matchID, leagueID, existing.RefereeID) {
		return
	}

	params, err := applyResult(existing, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := q.UpdateMatchResult(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update match result")
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("match_id", matchID).
		Str("from", existing.Status).
		Str("to", updated.Status).
		Msg("Match result updated")

	live.Publish(live.MatchRoom(matchID), live.MessageMatchUpdated, updated)
	live.Publish(live.DivisionRoom(updated.DivisionID), live.MessageMatchUpdated, updated)

	if updated.Status == matchStatusDone || existing.Status == matchStatusDone {
		rows, err := service.RecomputeDivisionStandings(ctx, updated.DivisionID)
		if err != nil {
			logger.Error().Err(err).Int64("division_id", updated.DivisionID).Msg("Failed to recompute standings after result")
			http.Error(w, "Match updated but standings could not be recomputed", http.StatusInternalServerError)
			return
		}
		live.Publish(live.DivisionRoom(updated.DivisionID), live.MessageStandingsUpdated, rows)
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshMatchesList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchCardComponent(updated, "", ""), headers, "Failed to render match", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}
func HandleMatchDetailsUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	req, err := decodeDetailsRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	kickoff, err := apiutil.ParseDate(req.MatchDate, "matchDate")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	existing, leagueID, ok := loadMatchScope(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireLeagueAccess(w, r, leagueID) {
		return
	}

	var official *dbgen.User
	if req.RefereeID != nil {
		user, err := q.GetUserByID(ctx, *req.RefereeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Referee not found", http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Int64("user_id", *req.RefereeID).Msg("Failed to fetch referee")
			http.Error(w, "Failed to update match", http.StatusInternalServerError)
			return
		}
		if user.Role != authz.RoleMatchOfficial {
			http.Error(w, "Referee must be a match official", http.StatusBadRequest)
			return
		}
		official = &user
	}

	updated, err := q.UpdateMatchDetails(ctx, dbgen.UpdateMatchDetailsParams{
		MatchDate: apiutil.ToNullTime(&kickoff),
		Venue:     apiutil.ToNullString(req.Venue),
		RefereeID: apiutil.ToNullInt64(req.RefereeID),
		ID:        matchID,
	})
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update match details")
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match details updated")
	live.Publish(live.MatchRoom(matchID), live.MessageMatchUpdated, updated)

	if official != nil && existing.RefereeID != updated.RefereeID {
		notifyOfficial(r, q, *official, updated)
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshMatchesList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchCardComponent(updated, "", ""), headers, "Failed to render match", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}
func HandleMatchDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || service == nil {
		logger.Error().Msg("Match handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), standingsTimeout)
	defer cancel()

	existing, leagueID, ok := loadMatchScope(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireLeagueAccess(w, r, leagueID) {
		return
	}

	deleted, err := q.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to delete match")
		http.Error(w, "Failed to delete match", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match deleted")

	if existing.Status == matchStatusDone {
		rows, err := service.RecomputeDivisionStandings(ctx, existing.DivisionID)
		if err != nil {
			logger.Error().Err(err).Int64("division_id", existing.DivisionID).Msg("Failed to recompute standings after delete")
		} else {
			live.Publish(live.DivisionRoom(existing.DivisionID), live.MessageStandingsUpdated, rows)
		}
	}

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshMatchesList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Match"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/officials/me/matches
func HandleOfficialMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !apiutil.RequireRole(w, r, authz.RoleMatchOfficial) {
		return
	}
	user := authz.UserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := q.ListMatchesByReferee(ctx, sql.NullInt64{Int64: user.ID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list assigned matches")
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, assignedMatchesComponent(rows), nil, "Failed to render assigned matches", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": rows}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write assigned matches response")
	}
}

// loadMatchScope fetches the match together with the league it belongs to.
func loadMatchScope(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, matchID int64) (dbgen.Match, int64, bool) {
	logger := log.Ctx(r.Context())

	match, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return dbgen.Match{}, 0, false
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return dbgen.Match{}, 0, false
	}
	division, err := q.GetDivision(ctx, match.DivisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", match.DivisionID).Msg("Failed to fetch match division")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return dbgen.Match{}, 0, false
	}
	return match, division.LeagueID, true
}

func notifyOfficial(r *http.Request, q *dbgen.Queries, official dbgen.User, match dbgen.Match) {
	logger := log.Ctx(r.Context())
	if emailSender == nil {
		return
	}

	row, err := q.GetMatchWithTeams(r.Context(), match.ID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", match.ID).Msg("Failed to load match for assignment email")
		return
	}

	details := email.AssignmentDetails{
		OfficialName: official.FullName,
		HomeTeam:     row.HomeTeamName,
		AwayTeam:     row.AwayTeamName,
		Venue:        match.Venue.String,
	}
	if match.MatchDate.Valid {
		details.Kickoff = match.MatchDate.Time
	}
	email.SendAsync(context.WithoutCancel(r.Context()), emailSender, official.Email, email.BuildOfficialAssignment(details), "", logger)
}

func decodeMatchRequest(r *http.Request) (matchRequest, error) {
	var req matchRequest
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
	var err error
	if req.HomeTeamID, err = apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("home_team_id"), r.FormValue("homeTeamId")), "homeTeamId"); err != nil {
		return req, err
	}
	if req.AwayTeamID, err = apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("away_team_id"), r.FormValue("awayTeamId")), "awayTeamId"); err != nil {
		return req, err
	}
	round, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("round_number"), r.FormValue("roundNumber")), "roundNumber")
	if err != nil {
		return req, err
	}
	if round != nil {
		req.RoundNumber = *round
	}
	req.MatchDate = apiutil.FirstNonEmpty(r.FormValue("match_date"), r.FormValue("matchDate"))
	req.Venue = r.FormValue("venue")
	return req, nil
}

func validateMatchRequest(divisionID int64, req matchRequest) (dbgen.CreateMatchParams, error) {
	if req.HomeTeamID <= 0 || req.AwayTeamID <= 0 {
		return dbgen.CreateMatchParams{}, apiutil.FieldError{Field: "teams", Reason: "home and away teams are required"}
	}
	if req.HomeTeamID == req.AwayTeamID {
		return dbgen.CreateMatchParams{}, apiutil.FieldError{Field: "teams", Reason: "home and away teams must differ"}
	}
	if req.RoundNumber < 0 {
		return dbgen.CreateMatchParams{}, apiutil.FieldError{Field: "roundNumber", Reason: "must be 1 or greater"}
	}
	round := req.RoundNumber
	if round == 0 {
		round = 1
	}
	kickoff, err := apiutil.ParseDate(req.MatchDate, "matchDate")
	if err != nil {
		return dbgen.CreateMatchParams{}, err
	}

	return dbgen.CreateMatchParams{
		DivisionID:  divisionID,
		RoundNumber: round,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		MatchDate:   apiutil.ToNullTime(&kickoff),
		Venue:       apiutil.ToNullString(req.Venue),
	}, nil
}

func decodeResultRequest(r *http.Request) (resultRequest, error) {
	var req resultRequest
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
	var err error
	if req.HomeScore, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("home_score"), r.FormValue("homeScore")), "homeScore"); err != nil {
		return req, err
	}
	if req.AwayScore, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("away_score"), r.FormValue("awayScore")), "awayScore"); err != nil {
		return req, err
	}
	req.Status = r.FormValue("status")
	return req, nil
}

// applyResult merges req onto the stored match. Blank fields keep their
// stored values.
func applyResult(existing dbgen.Match, req resultRequest) (dbgen.UpdateMatchResultParams, error) {
	params := dbgen.UpdateMatchResultParams{
		HomeScore: existing.HomeScore,
		AwayScore: existing.AwayScore,
		Status:    existing.Status,
		ID:        existing.ID,
	}

	if (req.HomeScore == nil) != (req.AwayScore == nil) {
		return params, apiutil.FieldError{Field: "score", Reason: "requires both home and away"}
	}
	if req.HomeScore != nil {
		if *req.HomeScore < 0 || *req.AwayScore < 0 {
			return params, apiutil.FieldError{Field: "score", Reason: "must be 0 or greater"}
		}
		params.HomeScore = sql.NullInt64{Int64: *req.HomeScore, Valid: true}
		params.AwayScore = sql.NullInt64{Int64: *req.AwayScore, Valid: true}
	}

	if status := strings.TrimSpace(req.Status); status != "" {
		if !slices.Contains(matchStatuses, status) {
			return params, apiutil.FieldError{Field: "status", Reason: "must be one of scheduled, live, completed, postponed, cancelled"}
		}
		params.Status = status
	}
	if params.Status == matchStatusDone && (!params.HomeScore.Valid || !params.AwayScore.Valid) {
		return params, apiutil.FieldError{Field: "status", Reason: "completed requires a score"}
	}
	return params, nil
}

func decodeDetailsRequest(r *http.Request) (detailsRequest, error) {
	var req detailsRequest
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
	req.MatchDate = apiutil.FirstNonEmpty(r.FormValue("match_date"), r.FormValue("matchDate"))
	req.Venue = r.FormValue("venue")
	refereeID, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("referee_id"), r.FormValue("refereeId")), "refereeId")
	if err != nil {
		return req, err
	}
	req.RefereeID = refereeID
	return req, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
