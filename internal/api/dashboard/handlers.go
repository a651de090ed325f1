// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const (
	dashboardQueryTimeout = 5 * time.Second
	recentResultsLimit    = 5
	upcomingMatchesLimit  = 5
	maxParallelQueries    = 4
)

// Count keys reported on the dashboard.
const (
	countLeagues          = "activeLeagues"
	countCups             = "runningCups"
	countTeams            = "teams"
	countPlayers          = "players"
	countUsers            = "users"
	countScheduled        = "scheduledMatches"
	countLive             = "liveMatches"
	countCompleted        = "completedMatches"
	countPendingTransfers = "pendingTransfers"
	countNewSponsorships  = "newSponsorships"
	countCupTeams         = "cupTeams"
	countCupGroups        = "cupGroups"
	countAssigned         = "assignedMatches"
)

var queries *dbgen.Queries

// MatchSummary is a fixture line shown in the upcoming and recent lists.
type MatchSummary struct {
	ID        int64         `json:"id"`
	HomeTeam  string        `json:"homeTeam"`
	AwayTeam  string        `json:"awayTeam"`
	HomeScore sql.NullInt64 `json:"homeScore"`
	AwayScore sql.NullInt64 `json:"awayScore"`
	Kickoff   sql.NullTime  `json:"kickoff"`
	Status    string        `json:"status"`
}

// Data is the role-scoped dashboard payload.
type Data struct {
	Role            string           `json:"role"`
	Counts          map[string]int64 `json:"counts"`
	UpcomingMatches []MatchSummary   `json:"upcomingMatches"`
	RecentResults   []MatchSummary   `json:"recentResults"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		log.Warn().Msg("InitHandlers called with nil database; dashboard handlers will be unavailable")
		return
	}
	queries = database.Queries
}

// GET /admin/dashboard
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	data, ok := loadDashboard(w, r)
	if !ok {
		return
	}

	page := pageComponent(authz.UserFromContext(r.Context()), data)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render dashboard page", "Failed to render page")
}

// GET /api/v1/dashboard
func HandleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	data, ok := loadDashboard(w, r)
	if !ok {
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, metricsComponent(data), nil, "Failed to render dashboard metrics", "Failed to render metrics")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, data); err != nil {
		logger.Error().Err(err).Msg("Failed to write dashboard response")
	}
}

func loadDashboard(w http.ResponseWriter, r *http.Request) (Data, bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return Data{}, false
	}
	if !apiutil.RequireRole(w, r, authz.Roles...) {
		return Data{}, false
	}
	user := authz.UserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	data, err := buildDashboardData(ctx, q, user)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Str("role", user.Role).Msg("Failed to build dashboard data")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return Data{}, false
	}
	return data, true
}

type countQuery struct {
	key   string
	count func(context.Context) (int64, error)
}

func buildDashboardData(ctx context.Context, q *dbgen.Queries, user *authz.AuthUser) (Data, error) {
	data := Data{
		Role:            user.Role,
		Counts:          make(map[string]int64),
		UpcomingMatches: []MatchSummary{},
		RecentResults:   []MatchSummary{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelQueries)
	for _, cq := range countsForRole(q, user) {
		g.Go(func() error {
			value, err := cq.count(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", cq.key, err)
			}
			mu.Lock()
			data.Counts[cq.key] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Data{}, err
	}

	upcoming, err := upcomingForRole(ctx, q, user)
	if err != nil {
		return Data{}, err
	}
	data.UpcomingMatches = upcoming
	if user.Role == authz.RoleMatchOfficial {
		data.Counts[countAssigned] = int64(len(upcoming))
	}

	if user.Role != authz.RoleMatchOfficial {
		recent, err := q.ListRecentResults(ctx, recentResultsLimit)
		if err != nil {
			return Data{}, fmt.Errorf("list recent results: %w", err)
		}
		for _, row := range recent {
			data.RecentResults = append(data.RecentResults, summarize(row.Match, row.HomeTeamName, row.AwayTeamName))
		}
	}
	return data, nil
}

func countsForRole(q *dbgen.Queries, user *authz.AuthUser) []countQuery {
	byStatus := func(key, status string) countQuery {
		return countQuery{key: key, count: func(ctx context.Context) (int64, error) { return q.CountMatchesByStatus(ctx, status) }}
	}
	pendingTransfers := countQuery{key: countPendingTransfers, count: func(ctx context.Context) (int64, error) {
		return q.CountTransfersByStatus(ctx, "pending")
	}}

	switch user.Role {
	case authz.RoleAdmin:
		return []countQuery{
			{key: countLeagues, count: q.CountActiveLeagues},
			{key: countCups, count: q.CountRunningCups},
			{key: countTeams, count: q.CountTeams},
			{key: countPlayers, count: q.CountPlayers},
			{key: countUsers, count: q.CountUsers},
			byStatus(countScheduled, "scheduled"),
			byStatus(countLive, "live"),
			byStatus(countCompleted, "completed"),
			pendingTransfers,
			{key: countNewSponsorships, count: func(ctx context.Context) (int64, error) { return q.CountSponsorshipsByStatus(ctx, "new") }},
		}
	case authz.RoleLeagueAdmin:
		counts := []countQuery{byStatus(countLive, "live"), pendingTransfers}
		if user.ManagedLeagueID != nil {
			leagueID := *user.ManagedLeagueID
			counts = append(counts, countQuery{key: countTeams, count: func(ctx context.Context) (int64, error) {
				return q.CountTeamsByLeague(ctx, leagueID)
			}})
		}
		return counts
	case authz.RoleCupAdmin:
		if user.ManagedCupID == nil {
			return nil
		}
		cupID := *user.ManagedCupID
		return []countQuery{
			{key: countCupTeams, count: func(ctx context.Context) (int64, error) { return q.CountCupTeams(ctx, cupID) }},
			{key: countCupGroups, count: func(ctx context.Context) (int64, error) { return q.CountCupGroups(ctx, cupID) }},
		}
	case authz.RoleTeamManager:
		if user.ManagedTeamID == nil {
			return nil
		}
		teamID := *user.ManagedTeamID
		return []countQuery{
			{key: countPlayers, count: func(ctx context.Context) (int64, error) {
				players, err := q.ListPlayersByTeam(ctx, sql.NullInt64{Int64: teamID, Valid: true})
				return int64(len(players)), err
			}},
		}
	}
	return nil
}

func upcomingForRole(ctx context.Context, q *dbgen.Queries, user *authz.AuthUser) ([]MatchSummary, error) {
	upcoming := []MatchSummary{}
	switch user.Role {
	case authz.RoleMatchOfficial:
		rows, err := q.ListMatchesByReferee(ctx, sql.NullInt64{Int64: user.ID, Valid: true})
		if err != nil {
			return nil, fmt.Errorf("list assigned matches: %w", err)
		}
		for _, row := range rows {
			upcoming = append(upcoming, summarize(row.Match, row.HomeTeamName, row.AwayTeamName))
		}
	case authz.RoleTeamManager:
		if user.ManagedTeamID == nil {
			return upcoming, nil
		}
		rows, err := q.ListMatchesByTeam(ctx, *user.ManagedTeamID)
		if err != nil {
			return nil, fmt.Errorf("list team matches: %w", err)
		}
		for _, row := range rows {
			if !slices.Contains([]string{"scheduled", "live"}, row.Match.Status) {
				continue
			}
			upcoming = append(upcoming, summarize(row.Match, row.HomeTeamName, row.AwayTeamName))
			if len(upcoming) == upcomingMatchesLimit {
				break
			}
		}
	}
	return upcoming, nil
}

func summarize(match dbgen.Match, home, away string) MatchSummary {
	return MatchSummary{
		ID:        match.ID,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: match.HomeScore,
		AwayScore: match.AwayScore,
		Kickoff:   match.MatchDate,
		Status:    match.Status,
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}
