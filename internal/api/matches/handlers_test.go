package matches

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/api/authz"
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/email"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
	"github.com/codr1/Fixturely/internal/testutil"
)

type sentEmail struct {
	recipient string
	subject   string
}

type recordingSender struct {
	sent chan sentEmail
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan sentEmail, 4)}
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	return s.SendFrom(ctx, recipient, subject, body, "")
}

func (s *recordingSender) SendFrom(ctx context.Context, recipient, subject, body, sender string) error {
	s.sent <- sentEmail{recipient: recipient, subject: subject}
	return nil
}

type matchFixture struct {
	league   dbgen.League
	division dbgen.Division
	home     dbgen.Team
	away     dbgen.Team
	match    dbgen.Match
	official dbgen.User
}

func setupMatchesTest(t *testing.T, sender email.EmailSender) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevQueries, prevService, prevSender := queries, service, emailSender
	t.Cleanup(func() {
		queries, service, emailSender = prevQueries, prevService, prevSender
	})
	InitHandlers(database, leaguesvc.NewService(database, rand.New(rand.NewPCG(1, 2))), sender)
	return database
}

func seedMatch(t *testing.T, q *dbgen.Queries) matchFixture {
	t.Helper()
	ctx := context.Background()

	var f matchFixture
	var err error
	if f.league, err = q.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "County League"}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	if f.division, err = q.CreateDivision(ctx, dbgen.CreateDivisionParams{LeagueID: f.league.ID, Name: "Premier", Level: 1}); err != nil {
		t.Fatalf("create division: %v", err)
	}
	if f.home, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: f.division.ID, Name: "Rovers"}); err != nil {
		t.Fatalf("create home team: %v", err)
	}
	if f.away, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: f.division.ID, Name: "United"}); err != nil {
		t.Fatalf("create away team: %v", err)
	}
	if f.match, err = q.CreateMatch(ctx, dbgen.CreateMatchParams{
		DivisionID:  f.division.ID,
		RoundNumber: 1,
		HomeTeamID:  f.home.ID,
		AwayTeamID:  f.away.ID,
		MatchDate:   sql.NullTime{Time: time.Date(2025, 9, 6, 15, 0, 0, 0, time.UTC), Valid: true},
	}); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if f.official, err = q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:    "ref@example.com",
		FullName: "Pat Whistle",
		Role:     authz.RoleMatchOfficial,
	}); err != nil {
		t.Fatalf("create official: %v", err)
	}
	return f
}

func jsonRequest(method, body string, user *authz.AuthUser, pathValues map[string]int64) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range pathValues {
		req.SetPathValue(key, fmt.Sprint(value))
	}
	if user != nil {
		req = req.WithContext(authz.ContextWithUser(req.Context(), user))
	}
	return req
}

func adminUser() *authz.AuthUser {
	return &authz.AuthUser{ID: 1000, Role: authz.RoleAdmin}
}

func TestHandleMatchCreateValidation(t *testing.T) {
	database := setupMatchesTest(t, nil)
	f := seedMatch(t, database.Queries)

	other, err := database.Queries.CreateDivision(context.Background(), dbgen.CreateDivisionParams{LeagueID: f.league.ID, Name: "Championship", Level: 2})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	stranger, err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{DivisionID: other.ID, Name: "Athletic"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	tests := []struct {
		name string
		body string
		user *authz.AuthUser
		want int
	}{
		{name: "same team", body: fmt.Sprintf(`{"homeTeamId":%d,"awayTeamId":%d}`, f.home.ID, f.home.ID), user: adminUser(), want: http.StatusBadRequest},
		{name: "team from another division", body: fmt.Sprintf(`{"homeTeamId":%d,"awayTeamId":%d}`, f.home.ID, stranger.ID), user: adminUser(), want: http.StatusBadRequest},
		{name: "anonymous", body: fmt.Sprintf(`{"homeTeamId":%d,"awayTeamId":%d}`, f.away.ID, f.home.ID), want: http.StatusUnauthorized},
		{name: "official", body: fmt.Sprintf(`{"homeTeamId":%d,"awayTeamId":%d}`, f.away.ID, f.home.ID), user: &authz.AuthUser{ID: f.official.ID, Role: authz.RoleMatchOfficial}, want: http.StatusForbidden},
		{name: "created", body: fmt.Sprintf(`{"homeTeamId":%d,"awayTeamId":%d,"roundNumber":2,"venue":"Park Lane"}`, f.away.ID, f.home.ID), user: adminUser(), want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleMatchCreate(rec, jsonRequest(http.MethodPost, tt.body, tt.user, map[string]int64{"id": f.division.ID}))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleMatchResultUpdateRecomputesStandings(t *testing.T) {
	database := setupMatchesTest(t, nil)
	f := seedMatch(t, database.Queries)
	path := map[string]int64{"id": f.match.ID}

	official := &authz.AuthUser{ID: f.official.ID, Role: authz.RoleMatchOfficial}
	rec := httptest.NewRecorder()
	HandleMatchResultUpdate(rec, jsonRequest(http.MethodPut, `{"homeScore":1,"awayScore":0,"status":"completed"}`, official, path))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unassigned official, got %d", rec.Code)
	}

	if _, err := database.Queries.UpdateMatchDetails(context.Background(), dbgen.UpdateMatchDetailsParams{
		MatchDate: f.match.MatchDate,
		RefereeID: sql.NullInt64{Int64: f.official.ID, Valid: true},
		ID:        f.match.ID,
	}); err != nil {
		t.Fatalf("assign referee: %v", err)
	}

	rec = httptest.NewRecorder()
	HandleMatchResultUpdate(rec, jsonRequest(http.MethodPut, `{"status":"completed"}`, official, path))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for completion without score, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleMatchResultUpdate(rec, jsonRequest(http.MethodPut, `{"homeScore":3,"awayScore":1,"status":"completed"}`, official, path))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	standings, err := database.Queries.ListDivisionStandings(context.Background(), f.division.ID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(standings))
	}
	leader := standings[0]
	if leader.TeamName != "Rovers" || leader.DivisionStanding.Points != 3 || leader.DivisionStanding.GoalsFor != 3 {
		t.Fatalf("unexpected leader %+v", leader)
	}

	rec = httptest.NewRecorder()
	HandleMatchResultUpdate(rec, jsonRequest(http.MethodPut, `{"status":"postponed"}`, official, path))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	standings, err = database.Queries.ListDivisionStandings(context.Background(), f.division.ID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	for _, row := range standings {
		if row.DivisionStanding.Played != 0 {
			t.Fatalf("expected standings reset after un-completing, got %+v", row)
		}
	}
}

func TestHandleMatchDetailsUpdateNotifiesOfficial(t *testing.T) {
	sender := newRecordingSender()
	database := setupMatchesTest(t, sender)
	f := seedMatch(t, database.Queries)
	path := map[string]int64{"id": f.match.ID}

	manager, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{Email: "boss@example.com", FullName: "Team Boss", Role: authz.RoleTeamManager})
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleMatchDetailsUpdate(rec, jsonRequest(http.MethodPut, fmt.Sprintf(`{"refereeId":%d}`, manager.ID), adminUser(), path))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-official referee, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleMatchDetailsUpdate(rec, jsonRequest(http.MethodPut, fmt.Sprintf(`{"refereeId":%d,"venue":"Main Ground","matchDate":"2025-09-06T15:00:00Z"}`, f.official.ID), adminUser(), path))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case sent := <-sender.sent:
		if sent.recipient != "ref@example.com" {
			t.Fatalf("unexpected recipient %q", sent.recipient)
		}
		if !strings.Contains(sent.subject, "Rovers vs United") {
			t.Fatalf("unexpected subject %q", sent.subject)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected assignment email")
	}

	req := jsonRequest(http.MethodGet, "", &authz.AuthUser{ID: f.official.ID, Role: authz.RoleMatchOfficial}, nil)
	rec = httptest.NewRecorder()
	HandleOfficialMatches(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Matches []dbgen.ListMatchesByRefereeRow `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].Match.ID != f.match.ID {
		t.Fatalf("expected assigned match, got %+v", resp.Matches)
	}
}

func TestHandleMatchEventCreateValidation(t *testing.T) {
	database := setupMatchesTest(t, nil)
	f := seedMatch(t, database.Queries)
	path := map[string]int64{"id": f.match.ID}

	scorer, err := database.Queries.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{TeamID: sql.NullInt64{Int64: f.home.ID, Valid: true}, Name: "Sam Striker"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "unknown type", body: fmt.Sprintf(`{"teamId":%d,"eventType":"corner","minute":10}`, f.home.ID), want: http.StatusBadRequest},
		{name: "minute too late", body: fmt.Sprintf(`{"teamId":%d,"eventType":"goal","minute":131}`, f.home.ID), want: http.StatusBadRequest},
		{name: "negative extra time", body: fmt.Sprintf(`{"teamId":%d,"eventType":"goal","minute":90,"extraTimeMinute":-1}`, f.home.ID), want: http.StatusBadRequest},
		{name: "team not playing", body: `{"teamId":9999,"eventType":"goal","minute":10}`, want: http.StatusBadRequest},
		{name: "player on other side", body: fmt.Sprintf(`{"teamId":%d,"playerId":%d,"eventType":"goal","minute":10}`, f.away.ID, scorer.ID), want: http.StatusBadRequest},
		{name: "goal", body: fmt.Sprintf(`{"teamId":%d,"playerId":%d,"eventType":"goal","minute":90,"extraTimeMinute":3}`, f.home.ID, scorer.ID), want: http.StatusCreated},
		{name: "card without player", body: fmt.Sprintf(`{"teamId":%d,"eventType":"yellow_card","minute":0}`, f.away.ID), want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleMatchEventCreate(rec, jsonRequest(http.MethodPost, tt.body, adminUser(), path))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	events, err := database.Queries.ListMatchEvents(context.Background(), f.match.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].MatchEvent.EventType != "yellow_card" {
		t.Fatalf("expected events ordered by minute, got %s first", events[0].MatchEvent.EventType)
	}

	rec := httptest.NewRecorder()
	HandleMatchEventDelete(rec, jsonRequest(http.MethodDelete, "", adminUser(), map[string]int64{"id": f.match.ID, "event_id": events[1].MatchEvent.ID}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	HandleMatchEventDelete(rec, jsonRequest(http.MethodDelete, "", adminUser(), map[string]int64{"id": f.match.ID, "event_id": events[1].MatchEvent.ID}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestApplyResultKeepsStoredValues(t *testing.T) {
	existing := dbgen.Match{
		ID:        4,
		HomeScore: sql.NullInt64{Int64: 2, Valid: true},
		AwayScore: sql.NullInt64{Int64: 2, Valid: true},
		Status:    "live",
	}

	params, err := applyResult(existing, resultRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if params.HomeScore.Int64 != 2 || params.AwayScore.Int64 != 2 || params.Status != "completed" {
		t.Fatalf("unexpected params %+v", params)
	}

	home := int64(-1)
	away := int64(0)
	if _, err := applyResult(existing, resultRequest{HomeScore: &home, AwayScore: &away}); err == nil {
		t.Fatalf("expected negative score to be rejected")
	}
	if _, err := applyResult(existing, resultRequest{Status: "abandoned"}); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}
