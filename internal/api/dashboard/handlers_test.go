package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/Fixturely/internal/api/authz"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/testutil"
)

type dashboardFixture struct {
	league   dbgen.League
	home     dbgen.Team
	away     dbgen.Team
	official dbgen.User
}

func setupDashboardTest(t *testing.T) (*dbgen.Queries, dashboardFixture) {
	t.Helper()

	database := testutil.NewTestDB(t)
	prev := queries
	t.Cleanup(func() { queries = prev })
	InitHandlers(database)

	q := database.Queries
	ctx := context.Background()
	var f dashboardFixture
	var err error
	if f.league, err = q.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "Metro League"}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	division, err := q.CreateDivision(ctx, dbgen.CreateDivisionParams{LeagueID: f.league.ID, Name: "North", Level: 1})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	if f.home, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: division.ID, Name: "Harbour City"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if f.away, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: division.ID, Name: "Old Town"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if f.official, err = q.CreateUser(ctx, dbgen.CreateUserParams{Email: "ref@example.com", FullName: "Ref", Role: authz.RoleMatchOfficial}); err != nil {
		t.Fatalf("create official: %v", err)
	}

	played, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{DivisionID: division.ID, RoundNumber: 1, HomeTeamID: f.home.ID, AwayTeamID: f.away.ID})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{
		HomeScore: sql.NullInt64{Int64: 2, Valid: true},
		AwayScore: sql.NullInt64{Int64: 2, Valid: true},
		Status:    "completed",
		ID:        played.ID,
	}); err != nil {
		t.Fatalf("record result: %v", err)
	}

	upcoming, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		DivisionID:  division.ID,
		RoundNumber: 2,
		HomeTeamID:  f.away.ID,
		AwayTeamID:  f.home.ID,
		MatchDate:   sql.NullTime{Time: time.Now().Add(72 * time.Hour), Valid: true},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := q.UpdateMatchDetails(ctx, dbgen.UpdateMatchDetailsParams{
		MatchDate: upcoming.MatchDate,
		RefereeID: sql.NullInt64{Int64: f.official.ID, Valid: true},
		ID:        upcoming.ID,
	}); err != nil {
		t.Fatalf("assign referee: %v", err)
	}
	return q, f
}

func dashboardRequest(user *authz.AuthUser) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	if user != nil {
		req = req.WithContext(authz.ContextWithUser(req.Context(), user))
	}
	return req
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) Data {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var data Data
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	return data
}

func TestHandleDashboardMetricsRequiresLogin(t *testing.T) {
	setupDashboardTest(t)

	rec := httptest.NewRecorder()
	HandleDashboardMetrics(rec, dashboardRequest(nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleDashboardMetricsByRole(t *testing.T) {
	_, f := setupDashboardTest(t)

	rec := httptest.NewRecorder()
	HandleDashboardMetrics(rec, dashboardRequest(&authz.AuthUser{ID: 1, Role: authz.RoleAdmin}))
	admin := decodeDashboard(t, rec)
	if admin.Counts[countTeams] != 2 || admin.Counts[countCompleted] != 1 || admin.Counts[countScheduled] != 1 {
		t.Fatalf("unexpected admin counts %+v", admin.Counts)
	}
	if _, ok := admin.Counts[countNewSponsorships]; !ok {
		t.Fatalf("expected sponsorship count for admin, got %+v", admin.Counts)
	}
	if len(admin.RecentResults) != 1 || admin.RecentResults[0].HomeTeam != "Harbour City" {
		t.Fatalf("unexpected recent results %+v", admin.RecentResults)
	}

	leagueID := f.league.ID
	rec = httptest.NewRecorder()
	HandleDashboardMetrics(rec, dashboardRequest(&authz.AuthUser{ID: 2, Role: authz.RoleLeagueAdmin, ManagedLeagueID: &leagueID}))
	leagueAdmin := decodeDashboard(t, rec)
	if leagueAdmin.Counts[countTeams] != 2 {
		t.Fatalf("expected league team count, got %+v", leagueAdmin.Counts)
	}
	if _, ok := leagueAdmin.Counts[countUsers]; ok {
		t.Fatalf("league admin should not see user count, got %+v", leagueAdmin.Counts)
	}

	rec = httptest.NewRecorder()
	HandleDashboardMetrics(rec, dashboardRequest(&authz.AuthUser{ID: f.official.ID, Role: authz.RoleMatchOfficial}))
	official := decodeDashboard(t, rec)
	if official.Counts[countAssigned] != 1 || len(official.UpcomingMatches) != 1 || official.UpcomingMatches[0].HomeTeam != "Old Town" {
		t.Fatalf("unexpected official dashboard %+v", official)
	}
	if len(official.RecentResults) != 0 {
		t.Fatalf("officials should not get recent results, got %+v", official.RecentResults)
	}

	teamID := f.home.ID
	rec = httptest.NewRecorder()
	HandleDashboardMetrics(rec, dashboardRequest(&authz.AuthUser{ID: 3, Role: authz.RoleTeamManager, ManagedTeamID: &teamID}))
	manager := decodeDashboard(t, rec)
	if len(manager.UpcomingMatches) != 1 {
		t.Fatalf("expected one upcoming match for manager, got %+v", manager.UpcomingMatches)
	}
}

func TestHandleDashboardPageRendersMetrics(t *testing.T) {
	setupDashboardTest(t)

	rec := httptest.NewRecorder()
	HandleDashboardPage(rec, dashboardRequest(&authz.AuthUser{ID: 1, Role: authz.RoleAdmin, FullName: "Alex Admin"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Welcome back, Alex Admin", `data-metric="teams"`, "Recent results", "<!DOCTYPE html>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}
