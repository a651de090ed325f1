package cups

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

type groupTable struct {
	GroupID   int64                    `json:"groupId"`
	GroupName string                   `json:"groupName"`
	Rows      []leaguesvc.StandingsRow `json:"rows"`
}

// GET /api/v1/cups/{id}/standings
func HandleCupStandings(w http.ResponseWriter, r *http.Request) {
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

	if _, err := q.GetCup(ctx, cupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to fetch cup")
		http.Error(w, "Failed to fetch cup", http.StatusInternalServerError)
		return
	}

	stored, err := q.ListCupStandings(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup standings")
		http.Error(w, "Failed to list standings", http.StatusInternalServerError)
		return
	}
	tables := groupStandingsFromStored(stored)

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, groupTablesComponent(tables), nil, "Failed to render cup standings", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"groups": tables}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup standings response")
	}
}

// POST /api/v1/cups/{id}/standings/recompute
func HandleCupStandingsRecompute(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	if _, ok := loadCupForWrite(ctx, w, r, q, cupID); !ok {
		return
	}

	recomputed, err := service.RecomputeCupStandings(ctx, cupID)
	if err != nil {
		writeServiceError(w, r, err, "Cup", "Failed to recompute cup standings")
		return
	}
	tables := make([]groupTable, 0, len(recomputed))
	for _, gs := range recomputed {
		tables = append(tables, groupTable{GroupID: gs.Group.ID, GroupName: gs.Group.GroupName, Rows: gs.Rows})
	}
	live.Publish(live.CupRoom(cupID), live.MessageStandingsUpdated, tables)

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupStandings")
		if !apiutil.RenderHTMLComponent(r.Context(), w, groupTablesComponent(tables), headers, "Failed to render cup standings", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"groups": tables}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write cup standings response")
	}
}

// groupStandingsFromStored splits rows ordered by group into one table per
// group.
func groupStandingsFromStored(stored []dbgen.ListCupStandingsRow) []groupTable {
	tables := make([]groupTable, 0)
	for _, row := range stored {
		s := row.CupGroupStanding
		n := len(tables)
		if n == 0 || tables[n-1].GroupID != s.GroupID {
			tables = append(tables, groupTable{GroupID: s.GroupID, GroupName: row.GroupName})
			n++
		}
		tables[n-1].Rows = append(tables[n-1].Rows, leaguesvc.StandingsRow{
			Position:       int(s.Position),
			ParticipantID:  s.CupTeamID,
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
	return tables
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}
