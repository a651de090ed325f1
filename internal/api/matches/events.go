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

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const (
	eventIDPathKey = "event_id"
	maxEventMinute = 130
)

var eventTypes = []string{"goal", "yellow_card", "red_card", "substitution", "penalty", "own_goal"}

type eventRequest struct {
	TeamID          int64  `json:"teamId"`
	PlayerID        *int64 `json:"playerId"`
	EventType       string `json:"eventType"`
	Minute          int64  `json:"minute"`
	ExtraTimeMinute int64  `json:"extraTimeMinute"`
	Description     string `json:"description"`
}

// GET /api/v1/matches/{id}/events
func HandleMatchEventsList(w http.ResponseWriter, r *http.Request) {
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

	if _, err := q.GetMatch(ctx, matchID); err != nil {
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
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, eventsComponent(events), nil, "Failed to render match events", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"events": events}); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write events response")
	}
}

// POST /api/v1/matches/{id}/events
func HandleMatchEventCreate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeEventRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, leagueID, ok := loadMatchScope(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireMatchOfficial(w, r, matchID, leagueID, match.RefereeID) {
		return
	}

	params, err := validateEventRequest(match, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if params.PlayerID.Valid {
		player, err := q.GetPlayer(ctx, params.PlayerID.Int64)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Player not found", http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Int64("player_id", params.PlayerID.Int64).Msg("Failed to fetch player")
			http.Error(w, "Failed to record event", http.StatusInternalServerError)
			return
		}
		if !player.TeamID.Valid || player.TeamID.Int64 != params.TeamID {
			http.Error(w, "Player does not belong to that team", http.StatusBadRequest)
			return
		}
	}

	event, err := q.CreateMatchEvent(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to create match event")
		http.Error(w, "Failed to record event", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("match_id", matchID).
		Int64("event_id", event.ID).
		Str("event_type", event.EventType).
		Msg("Match event recorded")

	live.Publish(live.MatchRoom(matchID), live.MessageEventAdded, event)

	if htmx.IsRequest(r) {
		events, err := q.ListMatchEvents(ctx, matchID)
		if err != nil {
			logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to list match events")
			http.Error(w, "Failed to list events", http.StatusInternalServerError)
			return
		}
		headers := htmx.Trigger("refreshMatchEvents")
		if !apiutil.RenderHTMLComponent(r.Context(), w, eventsComponent(events), headers, "Failed to render match events", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, event); err != nil {
		logger.Error().Err(err).Int64("event_id", event.ID).Msg("Failed to write event response")
	}
}

// DELETE /api/v1/matches/{id}/events/{event_id}
func HandleMatchEventDelete(w http.ResponseWriter, r *http.Request) {
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
	eventID, err := apiutil.PathID(r, eventIDPathKey)
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, leagueID, ok := loadMatchScope(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireMatchOfficial(w, r, matchID, leagueID, match.RefereeID) {
		return
	}

	deleted, err := q.DeleteMatchEvent(ctx, dbgen.DeleteMatchEventParams{ID: eventID, MatchID: matchID})
	if err != nil {
		logger.Error().Err(err).Int64("event_id", eventID).Msg("Failed to delete match event")
		http.Error(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("match_id", matchID).Int64("event_id", eventID).Msg("Match event deleted")
	live.Publish(live.MatchRoom(matchID), live.MessageEventDeleted, map[string]int64{"id": eventID, "matchId": matchID})

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshMatchEvents")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Event"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeEventRequest(r *http.Request) (eventRequest, error) {
	var req eventRequest
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
	if req.TeamID, err = apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("team_id"), r.FormValue("teamId")), "teamId"); err != nil {
		return req, err
	}
	if req.PlayerID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("player_id"), r.FormValue("playerId")), "playerId"); err != nil {
		return req, err
	}
	if req.Minute, err = apiutil.ParseNonNegativeInt64Field(r.FormValue("minute"), "minute"); err != nil {
		return req, err
	}
	extra, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("extra_time_minute"), r.FormValue("extraTimeMinute")), "extraTimeMinute")
	if err != nil {
		return req, err
	}
	if extra != nil {
		req.ExtraTimeMinute = *extra
	}
	req.EventType = apiutil.FirstNonEmpty(r.FormValue("event_type"), r.FormValue("eventType"))
	req.Description = r.FormValue("description")
	return req, nil
}

// validateEventRequest checks the event belongs to one of the two sides
// and falls within regulation plus stoppage time.
func validateEventRequest(match dbgen.Match, req eventRequest) (dbgen.CreateMatchEventParams, error) {
	eventType := strings.TrimSpace(req.EventType)
	if !slices.Contains(eventTypes, eventType) {
		return dbgen.CreateMatchEventParams{}, apiutil.FieldError{Field: "eventType", Reason: "must be one of goal, yellow_card, red_card, substitution, penalty, own_goal"}
	}
	if req.TeamID != match.HomeTeamID && req.TeamID != match.AwayTeamID {
		return dbgen.CreateMatchEventParams{}, apiutil.FieldError{Field: "teamId", Reason: "must be the home or away team"}
	}
	if req.Minute < 0 || req.Minute > maxEventMinute {
		return dbgen.CreateMatchEventParams{}, apiutil.FieldError{Field: "minute", Reason: fmt.Sprintf("must be between 0 and %d", maxEventMinute)}
	}
	if req.ExtraTimeMinute < 0 {
		return dbgen.CreateMatchEventParams{}, apiutil.FieldError{Field: "extraTimeMinute", Reason: "must be 0 or greater"}
	}
	if req.PlayerID != nil && *req.PlayerID <= 0 {
		return dbgen.CreateMatchEventParams{}, apiutil.FieldError{Field: "playerId", Reason: "must be greater than 0"}
	}

	return dbgen.CreateMatchEventParams{
		MatchID:         match.ID,
		TeamID:          req.TeamID,
		PlayerID:        apiutil.ToNullInt64(req.PlayerID),
		EventType:       eventType,
		Minute:          req.Minute,
		ExtraTimeMinute: req.ExtraTimeMinute,
		Description:     apiutil.ToNullString(req.Description),
	}, nil
}
