package dashboard

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/views"
)

var countLabels = map[string]string{
	countLeagues:          "Active leagues",
	countCups:             "Running cups",
	countTeams:            "Teams",
	countPlayers:          "Players",
	countUsers:            "Users",
	countScheduled:        "Scheduled matches",
	countLive:             "Live now",
	countCompleted:        "Completed matches",
	countPendingTransfers: "Pending transfers",
	countNewSponsorships:  "New sponsorship inquiries",
	countCupTeams:         "Registered teams",
	countCupGroups:        "Groups",
	countAssigned:         "Assigned matches",
}

// Display order for the metric cards.
var countOrder = []string{
	countLive, countScheduled, countCompleted, countAssigned,
	countLeagues, countCups, countTeams, countCupTeams, countCupGroups, countPlayers,
	countPendingTransfers, countNewSponsorships, countUsers,
}

func pageComponent(user *authz.AuthUser, data Data) templ.Component {
	greeting := "Dashboard"
	if user != nil && strings.TrimSpace(user.FullName) != "" {
		greeting = "Welcome back, " + user.FullName
	}
	body := fmt.Sprintf(
		`<h1 class="mb-4 text-2xl font-semibold text-gray-900">%s</h1><div id="dashboard-metrics" hx-get="/api/v1/dashboard" hx-trigger="every 60s" hx-swap="innerHTML">%s</div>`,
		html.EscapeString(greeting),
		buildMetricsHTML(data),
	)
	return views.Page("Dashboard", views.HTML(body))
}

func metricsComponent(data Data) templ.Component {
	return views.HTML(buildMetricsHTML(data))
}

func buildMetricsHTML(data Data) string {
	var b strings.Builder
	b.WriteString(`<div class="grid grid-cols-2 gap-4 md:grid-cols-4">`)
	for _, key := range countOrder {
		value, ok := data.Counts[key]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf(
			`<div class="rounded border bg-white p-4 shadow-sm" data-metric="%s"><p class="text-xs uppercase text-gray-500">%s</p><p class="mt-1 text-2xl font-semibold text-gray-900">%d</p></div>`,
			key,
			countLabels[key],
			value,
		))
	}
	b.WriteString(`</div>`)

	if len(data.UpcomingMatches) > 0 || data.Role == authz.RoleMatchOfficial || data.Role == authz.RoleTeamManager {
		b.WriteString(buildMatchListHTML("Upcoming matches", data.UpcomingMatches, "No upcoming matches."))
	}
	if data.Role != authz.RoleMatchOfficial {
		b.WriteString(buildMatchListHTML("Recent results", data.RecentResults, "No results yet."))
	}
	return b.String()
}

func buildMatchListHTML(title string, matches []MatchSummary, empty string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<section class="mt-6"><h2 class="mb-2 text-lg font-semibold text-gray-900">%s</h2>`, html.EscapeString(title)))
	if len(matches) == 0 {
		b.WriteString(views.EmptyState(empty))
	} else {
		b.WriteString(`<div class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
		for _, match := range matches {
			b.WriteString(views.MatchRow(match.ID, match.HomeTeam, match.AwayTeam, match.HomeScore, match.AwayScore, match.Kickoff, match.Status))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}
