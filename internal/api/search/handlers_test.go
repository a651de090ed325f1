package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/testutil"
)

func TestHandleSearch(t *testing.T) {
	database := testutil.NewTestDB(t)
	prev := queries
	t.Cleanup(func() { queries = prev })
	InitHandlers(database.Queries)

	ctx := context.Background()
	league, err := database.Queries.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "Sunday League"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	division, err := database.Queries.CreateDivision(ctx, dbgen.CreateDivisionParams{LeagueID: league.ID, Name: "Division One", Level: 1})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	rovers, err := database.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
		DivisionID: division.ID,
		Name:       "Riverside Rovers",
		ShortName:  sql.NullString{String: "RIV", Valid: true},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := database.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{DivisionID: division.ID, Name: "Hilltop United"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := database.Queries.CreatePlayer(ctx, dbgen.CreatePlayerParams{
		TeamID: sql.NullInt64{Int64: rovers.ID, Valid: true},
		Name:   "Rory Vance",
	}); err != nil {
		t.Fatalf("create player: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rovers", nil)
	recorder := httptest.NewRecorder()
	HandleSearch(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	var payload struct {
		Results []Result `json:"results"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Results) != 1 {
		t.Fatalf("expected one result, got %+v", payload.Results)
	}
	got := payload.Results[0]
	if got.Kind != kindTeam || got.ID != rovers.ID || got.Context != "Division One" {
		t.Fatalf("unexpected result %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/search?q=r", nil)
	req.Header.Set("HX-Request", "true")
	recorder = httptest.NewRecorder()
	HandleSearch(recorder, req)
	if !strings.Contains(recorder.Body.String(), "No matches.") {
		t.Fatalf("expected short query to return no matches, got: %s", recorder.Body.String())
	}
}

func TestRankCandidatesOrdersByDistance(t *testing.T) {
	candidates := []candidate{
		{kind: kindTeam, id: 1, name: "Athletic Club Reserves"},
		{kind: kindTeam, id: 1, name: "ACR"},
		{kind: kindTeam, id: 2, name: "Athletic"},
		{kind: kindPlayer, id: 7, name: "Nat Hale"},
	}

	results := rankCandidates("athletic", candidates)
	if len(results) != 2 {
		t.Fatalf("expected two results, got %+v", results)
	}
	if results[0].ID != 2 || results[0].Distance != 0 {
		t.Fatalf("expected exact match first, got %+v", results[0])
	}
	if results[1].ID != 1 {
		t.Fatalf("expected longer name second, got %+v", results[1])
	}
}
