// internal/api/search/handlers.go
package search

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const (
	searchTimeout  = 5 * time.Second
	maxResults     = 10
	minQueryLength = 2
	kindTeam       = "team"
	kindPlayer     = "player"
)

var queries *dbgen.Queries

type Result struct {
	Kind     string `json:"kind"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Context  string `json:"context"`
	Distance int    `json:"distance"`
}

type candidate struct {
	kind    string
	id      int64
	name    string
	context string
}

func InitHandlers(q *dbgen.Queries) {
	queries = q
}

// GET /api/v1/search?q=
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(term)) < minQueryLength {
		writeResults(w, r, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	candidates, err := loadCandidates(ctx, queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load search entries")
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}

	writeResults(w, r, rankCandidates(term, candidates))
}

func loadCandidates(ctx context.Context, q *dbgen.Queries) ([]candidate, error) {
	teams, err := q.ListTeamSearchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := q.ListPlayerSearchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	candidates := make([]candidate, 0, len(teams)*2+len(players))
	for _, team := range teams {
		candidates = append(candidates, candidate{kind: kindTeam, id: team.ID, name: team.Name, context: team.DivisionName})
		if team.ShortName.Valid && team.ShortName.String != "" {
			candidates = append(candidates, candidate{kind: kindTeam, id: team.ID, name: team.ShortName.String, context: team.DivisionName})
		}
	}
	for _, player := range players {
		teamName := "Unattached"
		if player.TeamName.Valid {
			teamName = player.TeamName.String
		}
		candidates = append(candidates, candidate{kind: kindPlayer, id: player.ID, name: player.Name, context: teamName})
	}
	return candidates, nil
}

// rankCandidates fuzzy-matches term against the candidates and returns the
// closest results, one per team or player.
func rankCandidates(term string, candidates []candidate) []Result {
	targets := make([]string, len(candidates))
	for i, c := range candidates {
		targets[i] = c.name
	}

	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Sort(ranks)

	seen := make(map[string]bool, len(ranks))
	results := make([]Result, 0, maxResults)
	for _, rank := range ranks {
		c := candidates[rank.OriginalIndex]
		key := fmt.Sprintf("%s:%d", c.kind, c.id)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, Result{Kind: c.kind, ID: c.id, Name: c.name, Context: c.context, Distance: rank.Distance})
		if len(results) == maxResults {
			break
		}
	}
	return results
}

func writeResults(w http.ResponseWriter, r *http.Request, results []Result) {
	if results == nil {
		results = []Result{}
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, views.HTML(buildResultsHTML(results)), nil, "Failed to render search results", "Failed to render results")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"results": results}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write search response")
	}
}

func buildResultsHTML(results []Result) string {
	if len(results) == 0 {
		return `<p class="px-3 py-2 text-sm text-gray-500">No matches.</p>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y divide-gray-100 text-sm">`)
	for _, result := range results {
		b.WriteString(fmt.Sprintf(
			`<li><a class="flex justify-between px-3 py-2 hover:bg-gray-50" href="/%ss/%d"><span class="font-medium text-gray-900">%s</span><span class="text-gray-500">%s</span></a></li>`,
			result.Kind,
			result.ID,
			html.EscapeString(result.Name),
			html.EscapeString(result.Context),
		))
	}
	b.WriteString(`</ul>`)
	return b.String()
}
