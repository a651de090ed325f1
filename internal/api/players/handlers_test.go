package players

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/api/authz"
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/email"
	"github.com/codr1/Fixturely/internal/testutil"
)

type recordingSender struct {
	recipients chan string
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	return s.SendFrom(ctx, recipient, subject, body, "")
}

func (s *recordingSender) SendFrom(ctx context.Context, recipient, subject, body, sender string) error {
	s.recipients <- recipient
	return nil
}

type clubFixture struct {
	league  dbgen.League
	buyers  dbgen.Team
	sellers dbgen.Team
	manager dbgen.User
	player  dbgen.Player
}

func setupPlayersTest(t *testing.T, sender email.EmailSender) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevQueries, prevStore, prevSender := queries, store, emailSender
	t.Cleanup(func() {
		queries, store, emailSender = prevQueries, prevStore, prevSender
	})
	InitHandlers(database, sender)
	return database
}

func seedClubs(t *testing.T, q *dbgen.Queries) clubFixture {
	t.Helper()
	ctx := context.Background()

	var f clubFixture
	var err error
	if f.league, err = q.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "County League"}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	division, err := q.CreateDivision(ctx, dbgen.CreateDivisionParams{LeagueID: f.league.ID, Name: "Premier", Level: 1})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	if f.buyers, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: division.ID, Name: "Buyers FC"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if f.sellers, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: division.ID, Name: "Sellers Town"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if f.manager, err = q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:         "manager@example.com",
		FullName:      "Mo Manager",
		Role:          authz.RoleTeamManager,
		ManagedTeamID: sql.NullInt64{Int64: f.buyers.ID, Valid: true},
	}); err != nil {
		t.Fatalf("create manager: %v", err)
	}
	if f.player, err = q.CreatePlayer(ctx, dbgen.CreatePlayerParams{
		TeamID: sql.NullInt64{Int64: f.sellers.ID, Valid: true},
		Name:   "Wing Back",
	}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	return f
}

func (f clubFixture) managerUser() *authz.AuthUser {
	teamID := f.buyers.ID
	return &authz.AuthUser{ID: f.manager.ID, Email: f.manager.Email, Role: authz.RoleTeamManager, ManagedTeamID: &teamID}
}

func (f clubFixture) leagueAdmin() *authz.AuthUser {
	leagueID := f.league.ID
	return &authz.AuthUser{ID: 500, Role: authz.RoleLeagueAdmin, ManagedLeagueID: &leagueID}
}

func jsonRequest(method, body string, user *authz.AuthUser, pathID int64) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if pathID > 0 {
		req.SetPathValue("id", fmt.Sprint(pathID))
	}
	if user != nil {
		req = req.WithContext(authz.ContextWithUser(req.Context(), user))
	}
	return req
}

func TestHandlePlayerCreateScopedToManagedTeam(t *testing.T) {
	database := setupPlayersTest(t, nil)
	f := seedClubs(t, database.Queries)

	tests := []struct {
		name   string
		teamID int64
		body   string
		want   int
	}{
		{name: "other team", teamID: f.sellers.ID, body: `{"name":"New Signing"}`, want: http.StatusForbidden},
		{name: "missing name", teamID: f.buyers.ID, body: `{"position":"GK"}`, want: http.StatusBadRequest},
		{name: "jersey out of range", teamID: f.buyers.ID, body: `{"name":"New Signing","jerseyNumber":100}`, want: http.StatusBadRequest},
		{name: "born in the future", teamID: f.buyers.ID, body: `{"name":"New Signing","dateOfBirth":"2999-01-01"}`, want: http.StatusBadRequest},
		{name: "created", teamID: f.buyers.ID, body: `{"name":"New Signing","jerseyNumber":9,"position":"FW","dateOfBirth":"2001-04-12"}`, want: http.StatusCreated},
		{name: "unknown team", teamID: 9999, body: `{"name":"Ghost"}`, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandlePlayerCreate(rec, jsonRequest(http.MethodPost, tt.body, f.managerUser(), tt.teamID))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleTransferRequestValidation(t *testing.T) {
	database := setupPlayersTest(t, nil)
	f := seedClubs(t, database.Queries)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "same team", body: fmt.Sprintf(`{"playerId":%d,"fromTeamId":%d,"toTeamId":%d}`, f.player.ID, f.buyers.ID, f.buyers.ID), want: http.StatusBadRequest},
		{name: "wrong from team", body: fmt.Sprintf(`{"playerId":%d,"toTeamId":%d}`, f.player.ID, f.buyers.ID), want: http.StatusBadRequest},
		{name: "negative fee", body: fmt.Sprintf(`{"playerId":%d,"fromTeamId":%d,"toTeamId":%d,"feeCents":-5}`, f.player.ID, f.sellers.ID, f.buyers.ID), want: http.StatusBadRequest},
		{name: "for another club", body: fmt.Sprintf(`{"playerId":%d,"fromTeamId":%d,"toTeamId":%d}`, f.player.ID, f.buyers.ID, f.sellers.ID), want: http.StatusForbidden},
		{name: "requested", body: fmt.Sprintf(`{"playerId":%d,"fromTeamId":%d,"toTeamId":%d,"feeCents":150000,"transferDate":"2025-08-01"}`, f.player.ID, f.sellers.ID, f.buyers.ID), want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleTransferRequest(rec, jsonRequest(http.MethodPost, tt.body, f.managerUser(), 0))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	rec := httptest.NewRecorder()
	HandleTransferRequest(rec, jsonRequest(http.MethodPost, `{}`, nil, 0))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTransferApprovalMovesPlayer(t *testing.T) {
	sender := &recordingSender{recipients: make(chan string, 2)}
	database := setupPlayersTest(t, sender)
	f := seedClubs(t, database.Queries)

	body := fmt.Sprintf(`{"playerId":%d,"fromTeamId":%d,"toTeamId":%d}`, f.player.ID, f.sellers.ID, f.buyers.ID)
	rec := httptest.NewRecorder()
	HandleTransferRequest(rec, jsonRequest(http.MethodPost, body, f.managerUser(), 0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("request: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var transfer dbgen.Transfer
	if err := json.Unmarshal(rec.Body.Bytes(), &transfer); err != nil {
		t.Fatalf("decode transfer: %v", err)
	}
	if transfer.Status != transferStatusPending {
		t.Fatalf("expected pending transfer, got %s", transfer.Status)
	}

	rec = httptest.NewRecorder()
	HandleTransferApprove(rec, jsonRequest(http.MethodPost, "", f.managerUser(), transfer.ID))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for team manager, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleTransferApprove(rec, jsonRequest(http.MethodPost, "", f.leagueAdmin(), transfer.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	player, err := database.Queries.GetPlayer(context.Background(), f.player.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if !player.TeamID.Valid || player.TeamID.Int64 != f.buyers.ID {
		t.Fatalf("expected player moved to buyers, got %+v", player.TeamID)
	}

	select {
	case recipient := <-sender.recipients:
		if recipient != f.manager.Email {
			t.Fatalf("expected requester notified, got %q", recipient)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected transfer decision email")
	}

	rec = httptest.NewRecorder()
	HandleTransferReject(rec, jsonRequest(http.MethodPost, "", f.leagueAdmin(), transfer.ID))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for decided transfer, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := jsonRequest(http.MethodGet, "", f.leagueAdmin(), 0)
	req.URL.RawQuery = "status=approved"
	HandleTransfersList(rec, req)
	var listed struct {
		Transfers []dbgen.ListTransfersRow `json:"transfers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Transfers) != 1 || listed.Transfers[0].ToTeamName != "Buyers FC" || listed.Transfers[0].PlayerName != "Wing Back" {
		t.Fatalf("unexpected transfers %+v", listed.Transfers)
	}
}

func TestTransferApprovalRejectsStalePlayer(t *testing.T) {
	database := setupPlayersTest(t, nil)
	f := seedClubs(t, database.Queries)
	ctx := context.Background()

	transfer, err := database.Queries.CreateTransfer(ctx, dbgen.CreateTransferParams{
		PlayerID:     f.player.ID,
		FromTeamID:   sql.NullInt64{Int64: f.sellers.ID, Valid: true},
		ToTeamID:     f.buyers.ID,
		TransferDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if _, err := database.Queries.UpdatePlayerTeam(ctx, dbgen.UpdatePlayerTeamParams{ID: f.player.ID}); err != nil {
		t.Fatalf("release player: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleTransferApprove(rec, jsonRequest(http.MethodPost, "", f.leagueAdmin(), transfer.ID))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := database.Queries.GetTransfer(ctx, transfer.ID)
	if err != nil {
		t.Fatalf("get transfer: %v", err)
	}
	if stored.Status != transferStatusPending {
		t.Fatalf("expected transfer left pending, got %s", stored.Status)
	}
}
