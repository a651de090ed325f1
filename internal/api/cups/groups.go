package cups

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/live"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const groupIDPathKey = "group_id"

type drawRequest struct {
	GroupSize int `json:"groupSize"`
}

type manualGroupRequest struct {
	Name    string  `json:"name"`
	TeamIDs []int64 `json:"teamIds"`
}

// GET /api/v1/cups/{id}/groups
func HandleCupGroupsList(w http.ResponseWriter, r *http.Request) {
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

	groups, err := q.ListCupGroups(ctx, cupID)
	if err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to list cup groups")
		http.Error(w, "Failed to list groups", http.StatusInternalServerError)
		return
	}
	draws := make([]leaguesvc.CupGroupDraw, 0, len(groups))
	for _, group := range groups {
		teams, err := q.ListCupTeamsByGroup(ctx, nullID(group.ID))
		if err != nil {
			logger.Error().Err(err).Int64("group_id", group.ID).Msg("Failed to list group teams")
			http.Error(w, "Failed to list groups", http.StatusInternalServerError)
			return
		}
		draws = append(draws, leaguesvc.CupGroupDraw{Group: group, Teams: teams})
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, groupsComponent(draws), nil, "Failed to render groups", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"groups": draws}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write groups response")
	}
}

// POST /api/v1/cups/{id}/groups/draw
func HandleCupGroupsDraw(w http.ResponseWriter, r *http.Request) {
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

	var req drawRequest
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
		size, err := formInt(r, "group_size", "groupSize")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.GroupSize = int(size)
	}
	if req.GroupSize < 0 {
		http.Error(w, "groupSize must be at least 1", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft {
		http.Error(w, "Groups can only be drawn while the cup is in draft", http.StatusConflict)
		return
	}

	draws, err := service.DrawCupGroups(ctx, cupID, req.GroupSize)
	if err != nil {
		writeServiceError(w, r, err, "Cup", "Failed to draw groups")
		return
	}

	logger.Info().Int64("cup_id", cupID).Int("groups", len(draws)).Msg("Cup groups drawn")
	publishCupStandings(ctx, cupID)

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupGroups")
		if !apiutil.RenderHTMLComponent(r.Context(), w, groupsComponent(draws), headers, "Failed to render groups", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"groups": draws}); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write draw response")
	}
}

// POST /api/v1/cups/{id}/groups
func HandleCupGroupCreate(w http.ResponseWriter, r *http.Request) {
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

	var req manualGroupRequest
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
		req.Name = apiutil.FirstNonEmpty(r.FormValue("name"), r.FormValue("group_name"))
		for _, raw := range append(r.Form["team_ids"], r.Form["teamIds"]...) {
			id, err := apiutil.ParsePositiveInt64Field(raw, "team_ids")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req.TeamIDs = append(req.TeamIDs, id)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft {
		http.Error(w, "Groups can only be changed while the cup is in draft", http.StatusConflict)
		return
	}

	draw, err := service.CreateManualGroup(ctx, cupID, strings.TrimSpace(req.Name), req.TeamIDs)
	if err != nil {
		writeServiceError(w, r, err, "Cup", "Failed to create group")
		return
	}

	logger.Info().Int64("cup_id", cupID).Int64("group_id", draw.Group.ID).Int("teams", len(draw.Teams)).Msg("Cup group created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupGroups")
		if !apiutil.RenderHTMLComponent(r.Context(), w, groupsComponent([]leaguesvc.CupGroupDraw{draw}), headers, "Failed to render group", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, draw); err != nil {
		logger.Error().Err(err).Int64("cup_id", cupID).Msg("Failed to write group response")
	}
}

// DELETE /api/v1/cups/{id}/groups/{group_id}
func HandleCupGroupDelete(w http.ResponseWriter, r *http.Request) {
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
	groupID, err := apiutil.PathID(r, groupIDPathKey)
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cupWriteTimeout)
	defer cancel()

	cup, ok := loadCupForWrite(ctx, w, r, q, cupID)
	if !ok {
		return
	}
	if cup.Status != cupStatusDraft {
		http.Error(w, "Groups can only be changed while the cup is in draft", http.StatusConflict)
		return
	}

	if err := service.DeleteCupGroup(ctx, cupID, groupID); err != nil {
		writeServiceError(w, r, err, "Group", "Failed to delete group")
		return
	}

	logger.Info().Int64("cup_id", cupID).Int64("group_id", groupID).Msg("Cup group deleted")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshCupGroups")
		if !apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent("Group"), headers, "Failed to render delete response", "Failed to render response") {
			return
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// publishCupStandings pushes the stored tables to live subscribers. Failures
// are logged and otherwise ignored.
func publishCupStandings(ctx context.Context, cupID int64) {
	q := loadQueries()
	if q == nil {
		return
	}
	rows, err := q.ListCupStandings(ctx, cupID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("cup_id", cupID).Msg("Failed to load cup standings for broadcast")
		return
	}
	live.Publish(live.CupRoom(cupID), live.MessageStandingsUpdated, groupStandingsFromStored(rows))
}
