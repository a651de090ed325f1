package leagues

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const (
	defaultTopScorers = 10
	maxTopScorers     = 50
)

var standingsCSVHeader = []string{"position", "team", "played", "won", "drawn", "lost", "goals_for", "goals_against", "goal_difference", "points"}

// GET /api/v1/divisions/{id}/standings
func HandleDivisionStandings(w http.ResponseWriter, r *http.Request) {
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

	stored, err := q.ListDivisionStandings(ctx, divisionID)
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list standings")
		http.Error(w, "Failed to list standings", http.StatusInternalServerError)
		return
	}
	rows := standingsFromStored(stored)

	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		writeStandingsCSV(w, r, division, rows)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, standingsTableComponent(rows), nil, "Failed to render standings", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"division": division, "standings": rows}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write standings response")
	}
}

// POST /api/v1/divisions/{id}/standings/recompute
func HandleDivisionStandingsRecompute(w http.ResponseWriter, r *http.Request) {
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

	rows, err := service.RecomputeDivisionStandings(ctx, divisionID)
	if err != nil {
		writeServiceError(w, r, err, "Division", "Failed to recompute standings")
		return
	}
	live.Publish(live.DivisionRoom(divisionID), live.MessageStandingsUpdated, rows)

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshStandings")
		if !apiutil.RenderHTMLComponent(r.Context(), w, standingsTableComponent(rows), headers, "Failed to render standings", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"standings": rows}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write standings response")
	}
}

// GET /api/v1/divisions/{id}/top-scorers
func HandleDivisionTopScorers(w http.ResponseWriter, r *http.Request) {
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

	limit := int64(defaultTopScorers)
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = apiutil.ParsePositiveInt64Field(raw, "limit")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit = min(limit, maxTopScorers)
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

	scorers, err := q.ListDivisionTopScorers(ctx, dbgen.ListDivisionTopScorersParams{
		DivisionID: divisionID,
		Limit:      limit,
	})
	if err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to list top scorers")
		http.Error(w, "Failed to list top scorers", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, topScorersComponent(scorers), nil, "Failed to render top scorers", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"scorers": scorers}); err != nil {
		logger.Error().Err(err).Int64("division_id", divisionID).Msg("Failed to write top scorers response")
	}
}

func standingsFromStored(stored []dbgen.ListDivisionStandingsRow) []leaguesvc.StandingsRow {
	rows := make([]leaguesvc.StandingsRow, 0, len(stored))
	for _, row := range stored {
		s := row.DivisionStanding
		rows = append(rows, leaguesvc.StandingsRow{
			Position:       int(s.Position),
			ParticipantID:  s.TeamID,
			Name:           row.TeamName,
			Played:         int(s.Played),
			Won:            int(s.Won),
			Drawn:          int(s.Drawn),
			Lost:           int(s.Lost),
			GoalsFor:       int(s.GoalsFor),
			GoalsAgainst:   int(s.GoalsAgainst),
			GoalDifference: int(s.GoalDifference),
			Points:         int(s.Points),
		})
	}
	return rows
}

func writeStandingsCSV(w http.ResponseWriter, r *http.Request, division dbgen.Division, rows []leaguesvc.StandingsRow) {
	filename := fmt.Sprintf("division-%d-standings.csv", division.ID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, standingsCSVHeader)
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.Position),
			row.Name,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Won),
			strconv.Itoa(row.Drawn),
			strconv.Itoa(row.Lost),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			strconv.Itoa(row.GoalDifference),
			strconv.Itoa(row.Points),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("division_id", division.ID).Msg("Failed to write standings CSV")
	}
}
