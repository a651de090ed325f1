package cups

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

func cupsListComponent(cups []dbgen.Cup) templ.Component {
	if len(cups) == 0 {
		return views.HTML(views.EmptyState("No cups found."))
	}
	var b strings.Builder
	b.WriteString(`<div class="grid gap-4 md:grid-cols-2">`)
	for _, cup := range cups {
		b.WriteString(buildCupCardHTML(cup))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func cupCardComponent(cup dbgen.Cup) templ.Component {
	return views.HTML(buildCupCardHTML(cup))
}

func buildCupCardHTML(cup dbgen.Cup) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="rounded border bg-white p-4 shadow-sm" data-cup-id="%d">`, cup.ID))
	b.WriteString(fmt.Sprintf(`<div class="flex items-start justify-between gap-4"><h3 class="text-lg font-semibold text-gray-900">%s</h3>%s</div>`, html.EscapeString(cup.Name), views.StatusBadge(cup.Status)))
	b.WriteString(`<dl class="mt-3 grid grid-cols-2 gap-2 text-sm">`)
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Season</dt><dd class="text-gray-900">%s</dd>`, views.Text(cup.Season)))
	b.WriteString(fmt.Sprintf(`<dt class="text-gray-500">Teams</dt><dd class="text-gray-900">%d (groups of %d)</dd>`, cup.TotalTeams, cup.TeamsPerGroup))
	b.WriteString(`</dl>`)
	b.WriteString(fmt.Sprintf(`<div class="mt-3 flex gap-3 text-sm"><a class="text-blue-600 hover:underline" hx-get="/api/v1/cups/%d/groups" hx-target="#cup-panel">Groups</a><a class="text-blue-600 hover:underline" hx-get="/api/v1/cups/%d/fixtures" hx-target="#cup-panel">Fixtures</a><a class="text-blue-600 hover:underline" hx-get="/api/v1/cups/%d/standings" hx-target="#cup-panel">Standings</a></div>`, cup.ID, cup.ID, cup.ID))
	b.WriteString(`</div>`)
	return b.String()
}

func deletedComponent(entity string) templ.Component {
	return views.Deleted(entity)
}

func cupTeamsListComponent(teams []dbgen.CupTeam) templ.Component {
	if len(teams) == 0 {
		return views.HTML(views.EmptyState("No teams registered."))
	}
	var b strings.Builder
	b.WriteString(`<div class="divide-y divide-gray-100 rounded border bg-white shadow-sm">`)
	for _, team := range teams {
		b.WriteString(buildCupTeamRowHTML(team))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func cupTeamCardComponent(team dbgen.CupTeam) templ.Component {
	return views.HTML(buildCupTeamRowHTML(team))
}

func buildCupTeamRowHTML(team dbgen.CupTeam) string {
	return fmt.Sprintf(
		`<div class="flex items-center justify-between px-4 py-2 text-sm" data-cup-team-id="%d"><span class="font-medium text-gray-900">%s</span><span class="text-gray-500">%s</span></div>`,
		team.ID,
		html.EscapeString(team.Name),
		views.Text(team.City),
	)
}

func cupPlayersComponent(players []dbgen.CupPlayer) templ.Component {
	if len(players) == 0 {
		return views.HTML(views.EmptyState("No players on this squad."))
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y divide-gray-100 text-sm">`)
	for _, player := range players {
		number := ""
		if player.JerseyNumber.Valid {
			number = fmt.Sprintf("#%d ", player.JerseyNumber.Int64)
		}
		captain := ""
		if player.IsCaptain {
			captain = ` <span class="rounded bg-blue-100 px-1 text-xs text-blue-800">C</span>`
		}
		b.WriteString(fmt.Sprintf(`<li class="px-4 py-2" data-cup-player-id="%d">%s%s%s</li>`, player.ID, number, html.EscapeString(player.PlayerName), captain))
	}
	b.WriteString(`</ul>`)
	return views.HTML(b.String())
}

func groupsComponent(draws []leaguesvc.CupGroupDraw) templ.Component {
	if len(draws) == 0 {
		return views.HTML(views.EmptyState("Groups have not been drawn."))
	}
	var b strings.Builder
	b.WriteString(`<div class="grid gap-4 md:grid-cols-2 lg:grid-cols-4">`)
	for _, draw := range draws {
		b.WriteString(fmt.Sprintf(`<section class="rounded border bg-white shadow-sm" data-group-id="%d"><h4 class="border-b px-4 py-2 text-sm font-semibold text-gray-900">%s</h4><ul class="divide-y divide-gray-100 text-sm">`, draw.Group.ID, html.EscapeString(draw.Group.GroupName)))
		for _, team := range draw.Teams {
			b.WriteString(fmt.Sprintf(`<li class="px-4 py-2">%s</li>`, html.EscapeString(team.Name)))
		}
		b.WriteString(`</ul></section>`)
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func cupFixturesComponent(rows []dbgen.ListCupMatchesRow) templ.Component {
	if len(rows) == 0 {
		return views.HTML(views.EmptyState("No fixtures scheduled."))
	}
	var b strings.Builder
	b.WriteString(`<div class="space-y-4">`)
	heading := ""
	for i, row := range rows {
		m := row.CupMatch
		label := strings.ReplaceAll(m.Stage, "_", " ")
		if row.GroupName.Valid {
			label = row.GroupName.String
		}
		if i == 0 || label != heading {
			if i > 0 {
				b.WriteString(`</div></section>`)
			}
			heading = label
			b.WriteString(fmt.Sprintf(`<section class="rounded border bg-white shadow-sm"><h4 class="border-b px-4 py-2 text-sm font-semibold capitalize text-gray-900">%s</h4><div class="divide-y divide-gray-100 text-sm">`, html.EscapeString(label)))
		}
		b.WriteString(views.MatchRow(m.ID, row.HomeTeamName, row.AwayTeamName, m.HomeScore, m.AwayScore, m.MatchDate, m.Status))
	}
	b.WriteString(`</div></section></div>`)
	return views.HTML(b.String())
}

func groupTablesComponent(tables []groupTable) templ.Component {
	if len(tables) == 0 {
		return views.HTML(views.EmptyState("No standings yet."))
	}
	var b strings.Builder
	b.WriteString(`<div class="space-y-4">`)
	for _, table := range tables {
		b.WriteString(views.StandingsTable(table.GroupName, table.Rows))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}
