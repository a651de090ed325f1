package players

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
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/email"
)

const (
	transferIDPathKey      = "id"
	transferStatusPending  = "pending"
	transferStatusApproved = "approved"
	transferStatusRejected = "rejected"
)

var transferStatuses = []string{transferStatusPending, transferStatusApproved, transferStatusRejected}

type transferRequest struct {
	PlayerID     int64  `json:"playerId"`
	FromTeamID   *int64 `json:"fromTeamId"`
	ToTeamID     int64  `json:"toTeamId"`
	TransferDate string `json:"transferDate"`
	FeeCents     *int64 `json:"feeCents"`
	Notes        string `json:"notes"`
}

// GET /api/v1/transfers
func HandleTransfersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !apiutil.RequireRole(w, r, authz.RoleLeagueAdmin, authz.RoleTeamManager) {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !slices.Contains(transferStatuses, status) {
		http.Error(w, "status must be one of pending, approved, rejected", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	transfers, err := q.ListTransfers(ctx, status)
	if err != nil {
		logger.Error().Err(err).Str("status", status).Msg("Failed to list transfers")
		http.Error(w, "Failed to list transfers", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, transfersListComponent(transfers), nil, "Failed to render transfers list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"transfers": transfers}); err != nil {
		logger.Error().Err(err).Msg("Failed to write transfers response")
	}
}

// POST /api/v1/transfers
func HandleTransferRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req, err := decodeTransferRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateTransferRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params.RequestedBy = sql.NullInt64{Int64: user.ID, Valid: true}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if !requireTeamWrite(ctx, w, r, q, params.ToTeamID) {
		return
	}

	player, err := q.GetPlayer(ctx, params.PlayerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Player not found", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Int64("player_id", params.PlayerID).Msg("Failed to fetch player")
		http.Error(w, "Failed to request transfer", http.StatusInternalServerError)
		return
	}
	if player.TeamID != params.FromTeamID {
		http.Error(w, "Player is not registered with the from team", http.StatusBadRequest)
		return
	}

	transfer, err := q.CreateTransfer(ctx, params)
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Team not found", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Int64("player_id", params.PlayerID).Msg("Failed to create transfer")
		http.Error(w, "Failed to request transfer", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("transfer_id", transfer.ID).
		Int64("player_id", transfer.PlayerID).
		Int64("to_team_id", transfer.ToTeamID).
		Msg("Transfer requested")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshTransfersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, transferRequestedComponent(player.Name), headers, "Failed to render transfer", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, transfer); err != nil {
		logger.Error().Err(err).Int64("transfer_id", transfer.ID).Msg("Failed to write transfer response")
	}
}

// POST /api/v1/transfers/{id}/approve
func HandleTransferApprove(w http.ResponseWriter, r *http.Request) {
	decideTransfer(w, r, transferStatusApproved)
}

// POST /api/v1/transfers/{id}/reject
func HandleTransferReject(w http.ResponseWriter, r *http.Request) {
	decideTransfer(w, r, transferStatusRejected)
}

func decideTransfer(w http.ResponseWriter, r *http.Request, status string) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil || store == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	transferID, err := apiutil.PathID(r, transferIDPathKey)
	if err != nil {
		http.Error(w, "Invalid transfer ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	existing, err := q.GetTransfer(ctx, transferID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Transfer not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("transfer_id", transferID).Msg("Failed to fetch transfer")
		http.Error(w, "Failed to fetch transfer", http.StatusInternalServerError)
		return
	}
	leagueID, err := q.GetTeamLeagueID(ctx, existing.ToTeamID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", existing.ToTeamID).Msg("Failed to resolve team league")
		http.Error(w, "Failed to fetch transfer", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireLeagueAccess(w, r, leagueID) {
		return
	}
	if existing.Status != transferStatusPending {
		http.Error(w, fmt.Sprintf("Transfer is already %s", existing.Status), http.StatusConflict)
		return
	}

	user := authz.UserFromContext(r.Context())
	var decided dbgen.Transfer
	err = store.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		if status == transferStatusApproved {
			player, err := qtx.GetPlayer(ctx, existing.PlayerID)
			if err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch player", Err: err}
			}
			if player.TeamID != existing.FromTeamID {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Player has moved since the transfer was requested"}
			}
			if _, err := qtx.UpdatePlayerTeam(ctx, dbgen.UpdatePlayerTeamParams{
				TeamID: sql.NullInt64{Int64: existing.ToTeamID, Valid: true},
				ID:     existing.PlayerID,
			}); err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to move player", Err: err}
			}
		}

		var err error
		decided, err = qtx.DecideTransfer(ctx, dbgen.DecideTransferParams{
			Status:    status,
			DecidedBy: sql.NullInt64{Int64: user.ID, Valid: true},
			ID:        transferID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Transfer is no longer pending", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update transfer", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err)
		return
	}

	logger.Info().Int64("transfer_id", transferID).Str("status", status).Msg("Transfer decided")

	notifyTransferDecision(r, q, decided)

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshTransfersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, transferDecidedComponent(decided), headers, "Failed to render transfer", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, decided); err != nil {
		logger.Error().Err(err).Int64("transfer_id", transferID).Msg("Failed to write transfer response")
	}
}

// notifyTransferDecision emails the requester. Lookups use the request
// context; delivery outlives it.
func notifyTransferDecision(r *http.Request, q *dbgen.Queries, transfer dbgen.Transfer) {
	logger := log.Ctx(r.Context())
	if emailSender == nil || !transfer.RequestedBy.Valid {
		return
	}

	details := email.TransferDetails{
		TransferDate: transfer.TransferDate,
		Status:       transfer.Status,
		Notes:        transfer.Notes.String,
	}
	if transfer.FeeCents.Valid {
		details.Fee = apiutil.FormatFeeCents(transfer.FeeCents.Int64)
	}
	if player, err := q.GetPlayer(r.Context(), transfer.PlayerID); err == nil {
		details.PlayerName = player.Name
	}
	if transfer.FromTeamID.Valid {
		if team, err := q.GetTeam(r.Context(), transfer.FromTeamID.Int64); err == nil {
			details.FromTeam = team.Name
		}
	}
	if team, err := q.GetTeam(r.Context(), transfer.ToTeamID); err == nil {
		details.ToTeam = team.Name
	}

	email.NotifyUser(context.WithoutCancel(r.Context()), q, emailSender, transfer.RequestedBy.Int64, email.BuildTransferDecision(details), logger)
}

func decodeTransferRequest(r *http.Request) (transferRequest, error) {
	var req transferRequest
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
	if req.PlayerID, err = apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("player_id"), r.FormValue("playerId")), "playerId"); err != nil {
		return req, err
	}
	if req.ToTeamID, err = apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("to_team_id"), r.FormValue("toTeamId")), "toTeamId"); err != nil {
		return req, err
	}
	if req.FromTeamID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("from_team_id"), r.FormValue("fromTeamId")), "fromTeamId"); err != nil {
		return req, err
	}
	if req.FeeCents, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("fee_cents"), r.FormValue("feeCents")), "feeCents"); err != nil {
		return req, err
	}
	req.TransferDate = apiutil.FirstNonEmpty(r.FormValue("transfer_date"), r.FormValue("transferDate"))
	req.Notes = r.FormValue("notes")
	return req, nil
}

// validateTransferRequest defaults the transfer date to today.
func validateTransferRequest(req transferRequest) (dbgen.CreateTransferParams, error) {
	if req.PlayerID <= 0 {
		return dbgen.CreateTransferParams{}, apiutil.FieldError{Field: "playerId", Reason: "is required"}
	}
	if req.ToTeamID <= 0 {
		return dbgen.CreateTransferParams{}, apiutil.FieldError{Field: "toTeamId", Reason: "is required"}
	}
	if req.FromTeamID != nil && *req.FromTeamID == req.ToTeamID {
		return dbgen.CreateTransferParams{}, apiutil.FieldError{Field: "toTeamId", Reason: "must differ from the from team"}
	}
	if req.FeeCents != nil && *req.FeeCents < 0 {
		return dbgen.CreateTransferParams{}, apiutil.FieldError{Field: "feeCents", Reason: "must be 0 or greater"}
	}
	date, err := apiutil.ParseDate(req.TransferDate, "transferDate")
	if err != nil {
		return dbgen.CreateTransferParams{}, err
	}
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	return dbgen.CreateTransferParams{
		PlayerID:     req.PlayerID,
		FromTeamID:   apiutil.ToNullInt64(req.FromTeamID),
		ToTeamID:     req.ToTeamID,
		TransferDate: date,
		FeeCents:     apiutil.ToNullInt64(req.FeeCents),
		Notes:        apiutil.ToNullString(req.Notes),
	}, nil
}
