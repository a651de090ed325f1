package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *appdb.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewService(database, rand.New(rand.NewPCG(42, 42)))
	svc.now = func() time.Time { return time.Date(2025, 8, 2, 14, 30, 0, 0, time.UTC) }
	return svc, database
}

func seedDivision(t *testing.T, q *dbgen.Queries, teams int) (dbgen.Division, []dbgen.Team) {
	t.Helper()
	ctx := context.Background()
	league, err := q.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "Premier"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	division, err := q.CreateDivision(ctx, dbgen.CreateDivisionParams{LeagueID: league.ID, Name: "First", Level: 1})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	created := make([]dbgen.Team, 0, teams)
	for i := 0; i < teams; i++ {
		team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
			DivisionID: division.ID,
			Name:       fmt.Sprintf("Team %c", 'A'+i),
		})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		created = append(created, team)
	}
	return division, created
}

func seedCup(t *testing.T, q *dbgen.Queries, total, perGroup, registered int) (dbgen.Cup, []dbgen.CupTeam) {
	t.Helper()
	ctx := context.Background()
	cup, err := q.CreateCup(ctx, dbgen.CreateCupParams{
		Name:          "Winter Cup",
		TotalTeams:    int64(total),
		TeamsPerGroup: int64(perGroup),
	})
	if err != nil {
		t.Fatalf("create cup: %v", err)
	}
	teams := make([]dbgen.CupTeam, 0, registered)
	for i := 0; i < registered; i++ {
		team, err := q.CreateCupTeam(ctx, dbgen.CreateCupTeamParams{
			CupID: cup.ID,
			Name:  fmt.Sprintf("Cup Team %02d", i+1),
		})
		if err != nil {
			t.Fatalf("create cup team: %v", err)
		}
		teams = append(teams, team)
	}
	return cup, teams
}

func TestGenerateDivisionFixtures(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	division, _ := seedDivision(t, database.Queries, 4)

	matches, err := svc.GenerateDivisionFixtures(ctx, division.ID, false, ScheduleOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(matches) != 6 {
		t.Fatalf("expected 6 matches, got %d", len(matches))
	}
	start := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	for _, match := range matches {
		if match.Status != "scheduled" {
			t.Fatalf("expected scheduled match, got %q", match.Status)
		}
		want := start.AddDate(0, 0, 7*int(match.RoundNumber-1))
		if !match.MatchDate.Valid || !match.MatchDate.Time.Equal(want) {
			t.Fatalf("round %d: expected date %v, got %+v", match.RoundNumber, want, match.MatchDate)
		}
	}

	standings, err := database.Queries.ListDivisionStandings(ctx, division.ID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("expected a zeroed row per team, got %d", len(standings))
	}

	if _, err := svc.GenerateDivisionFixtures(ctx, division.ID, false, ScheduleOptions{}); !errors.Is(err, ErrScheduleExists) {
		t.Fatalf("expected ErrScheduleExists, got %v", err)
	}

	regenerated, err := svc.GenerateDivisionFixtures(ctx, division.ID, true, ScheduleOptions{Interval: 24 * time.Hour})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	count, err := database.Queries.CountDivisionMatches(ctx, division.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(regenerated)) || count != 6 {
		t.Fatalf("expected regenerate to replace fixtures, have %d rows", count)
	}
}

func TestGenerateDivisionFixturesTooFewTeams(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	division, _ := seedDivision(t, database.Queries, 1)

	if _, err := svc.GenerateDivisionFixtures(ctx, division.ID, false, ScheduleOptions{}); !errors.Is(err, ErrTooFewParticipants) {
		t.Fatalf("expected ErrTooFewParticipants, got %v", err)
	}
	count, err := database.Queries.CountDivisionMatches(ctx, division.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no matches written, got %d", count)
	}
}

func TestGenerateDivisionFixturesUnknownDivision(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GenerateDivisionFixtures(context.Background(), 404, false, ScheduleOptions{}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRecomputeDivisionStandings(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	division, teams := seedDivision(t, database.Queries, 3)

	matches, err := svc.GenerateDivisionFixtures(ctx, division.ID, false, ScheduleOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	scores := map[[2]int64][2]int64{
		{teams[0].ID, teams[1].ID}: {2, 1},
		{teams[1].ID, teams[2].ID}: {0, 0},
	}
	for _, match := range matches {
		score, ok := scores[[2]int64{match.HomeTeamID, match.AwayTeamID}]
		if !ok {
			flipped, ok := scores[[2]int64{match.AwayTeamID, match.HomeTeamID}]
			if !ok {
				continue
			}
			score = [2]int64{flipped[1], flipped[0]}
		}
		if _, err := database.Queries.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{
			HomeScore: sql.NullInt64{Int64: score[0], Valid: true},
			AwayScore: sql.NullInt64{Int64: score[1], Valid: true},
			Status:    "completed",
			ID:        match.ID,
		}); err != nil {
			t.Fatalf("update result: %v", err)
		}
	}

	table, err := svc.RecomputeDivisionStandings(ctx, division.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	wantOrder := []int64{teams[0].ID, teams[2].ID, teams[1].ID}
	for i, row := range table {
		if row.ParticipantID != wantOrder[i] {
			t.Fatalf("position %d: expected team %d, got %d", i+1, wantOrder[i], row.ParticipantID)
		}
	}

	stored, err := database.Queries.ListDivisionStandings(ctx, division.ID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(stored))
	}
	top := stored[0].DivisionStanding
	if top.TeamID != teams[0].ID || top.Points != 3 || top.GoalDifference != 1 || top.Position != 1 {
		t.Fatalf("unexpected leader row %+v", top)
	}
	if stored[2].DivisionStanding.Points != 1 || stored[2].DivisionStanding.Played != 2 {
		t.Fatalf("unexpected last row %+v", stored[2].DivisionStanding)
	}
}

func TestDrawCupGroupsRequiresFullRegistration(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	cup, _ := seedCup(t, database.Queries, 8, 4, 6)

	if _, err := svc.DrawCupGroups(ctx, cup.ID, 0); !errors.Is(err, ErrRegistrationIncomplete) {
		t.Fatalf("expected ErrRegistrationIncomplete, got %v", err)
	}
	groups, err := database.Queries.CountCupGroups(ctx, cup.ID)
	if err != nil {
		t.Fatalf("count groups: %v", err)
	}
	if groups != 0 {
		t.Fatalf("expected no groups written, got %d", groups)
	}
}

func TestDrawCupGroupsReplacesPreviousDraw(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	cup, teams := seedCup(t, database.Queries, 7, 3, 7)

	draws, err := svc.DrawCupGroups(ctx, cup.ID, 0)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(draws) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(draws))
	}
	if draws[0].Group.GroupName != "Group A" || draws[2].Group.GroupName != "Group C" {
		t.Fatalf("unexpected group names %q, %q", draws[0].Group.GroupName, draws[2].Group.GroupName)
	}
	assigned := 0
	for _, draw := range draws {
		assigned += len(draw.Teams)
	}
	if assigned != len(teams) {
		t.Fatalf("expected %d assigned teams, got %d", len(teams), assigned)
	}

	redraw, err := svc.DrawCupGroups(ctx, cup.ID, 4)
	if err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if len(redraw) != 2 {
		t.Fatalf("expected 2 groups on redraw, got %d", len(redraw))
	}
	stored, err := database.Queries.ListCupGroups(ctx, cup.ID)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected previous groups to be replaced, have %d", len(stored))
	}
}

func TestCreateManualGroup(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	cup, teams := seedCup(t, database.Queries, 4, 2, 4)

	draw, err := svc.CreateManualGroup(ctx, cup.ID, "Group North", []int64{teams[0].ID, teams[1].ID})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if draw.Group.GroupOrder != 1 || len(draw.Teams) != 2 {
		t.Fatalf("unexpected group %+v", draw)
	}

	if _, err := svc.CreateManualGroup(ctx, cup.ID, "Group South", []int64{teams[1].ID, teams[2].ID}); !errors.Is(err, ErrAlreadyGrouped) {
		t.Fatalf("expected ErrAlreadyGrouped, got %v", err)
	}
	if _, err := svc.CreateManualGroup(ctx, cup.ID, "", []int64{teams[2].ID}); !errors.Is(err, ErrEmptyGroupName) {
		t.Fatalf("expected ErrEmptyGroupName, got %v", err)
	}
	if _, err := svc.CreateManualGroup(ctx, cup.ID, "Group South", nil); !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("expected ErrEmptyGroup, got %v", err)
	}
	if _, err := svc.CreateManualGroup(ctx, cup.ID, "Group South", []int64{9999}); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}

	second, err := svc.CreateManualGroup(ctx, cup.ID, "Group South", []int64{teams[2].ID, teams[3].ID})
	if err != nil {
		t.Fatalf("create second group: %v", err)
	}
	if second.Group.GroupOrder != 2 {
		t.Fatalf("expected group order 2, got %d", second.Group.GroupOrder)
	}

	if err := svc.DeleteCupGroup(ctx, cup.ID, draw.Group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	team, err := database.Queries.GetCupTeam(ctx, teams[0].ID)
	if err != nil {
		t.Fatalf("get cup team: %v", err)
	}
	if team.GroupID.Valid {
		t.Fatalf("expected team to be unassigned after group delete")
	}
	if err := svc.DeleteCupGroup(ctx, cup.ID, draw.Group.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for missing group, got %v", err)
	}
}

func TestGenerateCupGroupFixtures(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	cup, teams := seedCup(t, database.Queries, 5, 4, 5)

	if _, err := svc.GenerateCupGroupFixtures(ctx, cup.ID, ScheduleOptions{}); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("expected ErrNoGroups, got %v", err)
	}

	if _, err := svc.CreateManualGroup(ctx, cup.ID, "Group A", []int64{teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID}); err != nil {
		t.Fatalf("create group A: %v", err)
	}
	if _, err := svc.CreateManualGroup(ctx, cup.ID, "Group B", []int64{teams[4].ID}); err != nil {
		t.Fatalf("create group B: %v", err)
	}

	out, err := svc.GenerateCupGroupFixtures(ctx, cup.ID, ScheduleOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out.Matches) != 6 {
		t.Fatalf("expected 6 matches, got %d", len(out.Matches))
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "Group B" {
		t.Fatalf("expected Group B skipped, got %v", out.Skipped)
	}

	again, err := svc.GenerateCupGroupFixtures(ctx, cup.ID, ScheduleOptions{})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	count, err := database.Queries.CountCupGroupStageMatches(ctx, cup.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(again.Matches)) {
		t.Fatalf("expected group stage to be replaced, have %d rows", count)
	}

	match := again.Matches[0]
	if _, err := database.Queries.UpdateCupMatchResult(ctx, dbgen.UpdateCupMatchResultParams{
		HomeScore: sql.NullInt64{Int64: 3, Valid: true},
		AwayScore: sql.NullInt64{Int64: 0, Valid: true},
		Status:    "completed",
		ID:        match.ID,
	}); err != nil {
		t.Fatalf("update result: %v", err)
	}

	standings, err := svc.RecomputeGroupStandings(ctx, match.GroupID.Int64)
	if err != nil {
		t.Fatalf("recompute group: %v", err)
	}
	if len(standings.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings.Rows))
	}
	leader := standings.Rows[0]
	if leader.ParticipantID != match.HomeCupTeamID || leader.Points != 3 || leader.GoalsFor != 3 {
		t.Fatalf("unexpected leader %+v", leader)
	}

	all, err := svc.RecomputeCupStandings(ctx, cup.ID)
	if err != nil {
		t.Fatalf("recompute cup: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected standings for 2 groups, got %d", len(all))
	}
}

func TestRefreshAllStandings(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	division, _ := seedDivision(t, database.Queries, 4)
	if _, err := svc.GenerateDivisionFixtures(ctx, division.ID, false, ScheduleOptions{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cup, _ := seedCup(t, database.Queries, 4, 2, 4)
	if _, err := svc.DrawCupGroups(ctx, cup.ID, 0); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if _, err := database.Queries.UpdateCupStatus(ctx, dbgen.UpdateCupStatusParams{Status: "group_stage", ID: cup.ID}); err != nil {
		t.Fatalf("update cup status: %v", err)
	}

	if err := svc.RefreshAllStandings(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	rows, err := database.Queries.ListCupStandings(ctx, cup.ID)
	if err != nil {
		t.Fatalf("list cup standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 cup standings rows, got %d", len(rows))
	}
}
