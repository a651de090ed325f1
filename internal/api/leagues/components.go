package leagues

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

func leaguesListComponent(leagues []dbgen.League) templ.Component {
	if len(leagues) == 0 {
		return views.HTML(views.EmptyState("No leagues found."))
	}
	var b strings.Builder
	b.WriteString(`<div class="grid gap-4 md:grid-cols-2">`)
	for _, league := range leagues {
		b.WriteString(buildLeagueCardHTML(league))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func leagueDetailComponent(league dbgen.League) templ.Component {
	return views.HTML(buildLeagueCardHTML(league))
}

func buildLeagueCardHTML(league dbgen.League) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="rounded border bg-white p-4 shadow-sm" data-league-id="%d">`, league.ID))
	b.WriteString(fmt.Sprintf(`<div class="flex items-start justify-between gap-4"><h3 class="text-lg font-semibold text-gray-900">%s</h3>%s</div>`, html.EscapeString(league.Name), views.StatusBadge(league.Status)))
	b.WriteString(`<dl class="mt-3 grid grid-cols-2 gap-2 text-sm">`)
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Season</dt><dd class="text-gray-900">%s</dd>`, views.Text(league.Season)))
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Description</dt><dd class="text-gray-900">%s</dd>`, views.Text(league.Description)))
	b.WriteString(`</dl>`)
	b.WriteString(fmt.Sprintf(`<div id="league-%d-divisions" class="mt-4" hx-get="/api/v1/leagues/%d/divisions" hx-trigger="load, refreshDivisionsList from:body" hx-swap="innerHTML"></div>`, league.ID, league.ID))
	b.WriteString(`</div>`)
	return b.String()
}

func deletedComponent(entity string) templ.Component {
	return views.Deleted(entity)
}

func divisionsListComponent(divisions []dbgen.Division) templ.Component {
	if len(divisions) == 0 {
		return views.HTML(views.EmptyState("No divisions yet."))
	}
	var b strings.Builder
	b.WriteString(`<div class="space-y-3">`)
	for _, division := range divisions {
		b.WriteString(buildDivisionCardHTML(division))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func divisionCardComponent(division dbgen.Division) templ.Component {
	return views.HTML(buildDivisionCardHTML(division))
}

func buildDivisionCardHTML(division dbgen.Division) string {
	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-division-id="%d"><div class="flex items-center justify-between"><h4 class="font-semibold text-gray-900">%s</h4><span class="text-xs text-gray-500">Level %d</span></div><div class="mt-2 flex gap-3 text-sm"><a class="text-blue-600 hover:underline" hx-get="/api/v1/divisions/%d/standings" hx-target="#division-panel">Standings</a><a class="text-blue-600 hover:underline" hx-get="/api/v1/divisions/%d/fixtures" hx-target="#division-panel">Fixtures</a><a class="text-blue-600 hover:underline" hx-get="/api/v1/divisions/%d/teams" hx-target="#division-panel">Teams</a></div></div>`,
		division.ID,
		html.EscapeString(division.Name),
		division.Level,
		division.ID, division.ID, division.ID,
	)
}

func teamsListComponent(teams []dbgen.Team) templ.Component {
	if len(teams) == 0 {
		return views.HTML(views.EmptyState("No teams in this division."))
	}
	var b strings.Builder
	b.WriteString(`<div class="grid gap-3 md:grid-cols-2">`)
	for _, team := range teams {
		b.WriteString(buildTeamCardHTML(team))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func teamCardComponent(team dbgen.Team) templ.Component {
	return views.HTML(buildTeamCardHTML(team))
}

func buildTeamCardHTML(team dbgen.Team) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="rounded border bg-white p-4 shadow-sm" data-team-id="%d"><div class="flex items-center gap-3">`, team.ID))
	if team.LogoUrl.Valid && team.LogoUrl.String != "" {
		b.WriteString(fmt.Sprintf(`<img class="h-10 w-10 rounded object-contain" src="%s" alt="">`, html.EscapeString(team.LogoUrl.String)))
	}
	b.WriteString(fmt.Sprintf(`<h4 class="font-semibold text-gray-900">%s</h4></div>`, html.EscapeString(team.Name)))
	b.WriteString(`<dl class="mt-3 grid grid-cols-2 gap-2 text-sm">`)
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">City</dt><dd class="text-gray-900">%s</dd>`, views.Text(team.HomeCity)))
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Ground</dt><dd class="text-gray-900">%s</dd>`, views.Text(team.HomeVenue)))
	founded := "-"
	if team.FoundedYear.Valid {
		founded = fmt.Sprintf("%d", team.FoundedYear.Int64)
	}
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Founded</dt><dd class="text-gray-900">%s</dd>`, founded))
	b.WriteString(`</dl></div>`)
	return b.String()
}

func fixturesComponent(rounds []fixtureRound) templ.Component {
	if len(rounds) == 0 {
		return views.HTML(views.EmptyState("No fixtures scheduled."))
	}
	var b strings.Builder
	b.WriteString(`<div class="space-y-4">`)
	for _, round := range rounds {
		b.WriteString(fmt.Sprintf(`<section class="rounded border bg-white shadow-sm"><h4 class="border-b px-4 py-2 text-sm font-semibold text-gray-900">Round %d</h4><div class="divide-y divide-gray-100 text-sm">`, round.Round))
		for _, row := range round.Matches {
			m := row.Match
			b.WriteString(views.MatchRow(m.ID, row.HomeTeamName, row.AwayTeamName, m.HomeScore, m.AwayScore, m.MatchDate, m.Status))
		}
		b.WriteString(`</div></section>`)
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func standingsTableComponent(rows []leaguesvc.StandingsRow) templ.Component {
	return views.HTML(views.StandingsTable("", rows))
}

func topScorersComponent(scorers []dbgen.ListDivisionTopScorersRow) templ.Component {
	if len(scorers) == 0 {
		return views.HTML(views.EmptyState("No goals recorded yet."))
	}
	var b strings.Builder
	b.WriteString(`<ol class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
	for i, scorer := range scorers {
		b.WriteString(fmt.Sprintf(
			`<li class="flex items-center justify-between px-4 py-2" data-player-id="%d"><span><span class="mr-2 text-gray-500">%d.</span><span class="font-medium text-gray-900">%s</span> <span class="text-gray-500">%s</span></span><span class="font-semibold">%d</span></li>`,
			scorer.PlayerID, i+1, html.EscapeString(scorer.PlayerName), html.EscapeString(scorer.TeamName), scorer.Goals,
		))
	}
	b.WriteString(`</ol>`)
	return views.HTML(b.String())
}
