package matches

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

var eventLabels = map[string]string{
	"goal":         "Goal",
	"yellow_card":  "Yellow card",
	"red_card":     "Red card",
	"substitution": "Substitution",
	"penalty":      "Penalty",
	"own_goal":     "Own goal",
}

func matchesListComponent(rows []dbgen.ListDivisionMatchesRow) templ.Component {
	if len(rows) == 0 {
		return views.HTML(views.EmptyState("No matches found."))
	}
	var b strings.Builder
	b.WriteString(`<div class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
	for _, row := range rows {
		m := row.Match
		b.WriteString(views.MatchRow(m.ID, row.HomeTeamName, row.AwayTeamName, m.HomeScore, m.AwayScore, m.MatchDate, m.Status))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func assignedMatchesComponent(rows []dbgen.ListMatchesByRefereeRow) templ.Component {
	if len(rows) == 0 {
		return views.HTML(views.EmptyState("No matches assigned to you."))
	}
	var b strings.Builder
	b.WriteString(`<div class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
	for _, row := range rows {
		m := row.Match
		b.WriteString(fmt.Sprintf(`<a class="block hover:bg-gray-50" href="/matches/%d">`, m.ID))
		b.WriteString(views.MatchRow(m.ID, row.HomeTeamName, row.AwayTeamName, m.HomeScore, m.AwayScore, m.MatchDate, m.Status))
		b.WriteString(`</a>`)
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

// matchCardComponent renders a match. Blank team names fall back to IDs.
func matchCardComponent(match dbgen.Match, home, away string) templ.Component {
	if home == "" {
		home = fmt.Sprintf("Team %d", match.HomeTeamID)
	}
	if away == "" {
		away = fmt.Sprintf("Team %d", match.AwayTeamID)
	}
	return views.HTML(fmt.Sprintf(
		`<div class="rounded border bg-white shadow-sm" id="match-%d">%s<div class="border-t px-4 py-2 text-xs text-gray-500">Round %d &middot; %s</div></div>`,
		match.ID,
		views.MatchRow(match.ID, home, away, match.HomeScore, match.AwayScore, match.MatchDate, match.Status),
		match.RoundNumber,
		views.Text(match.Venue),
	))
}

func matchDetailComponent(row dbgen.GetMatchWithTeamsRow, events []dbgen.ListMatchEventsRow) templ.Component {
	m := row.Match
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="space-y-4" hx-ext="ws" ws-connect="/ws/matches/%d">`, m.ID))
	b.WriteString(fmt.Sprintf(
		`<div class="rounded border bg-white shadow-sm">%s<div class="border-t px-4 py-2 text-xs text-gray-500">Round %d &middot; %s</div></div>`,
		views.MatchRow(m.ID, row.HomeTeamName, row.AwayTeamName, m.HomeScore, m.AwayScore, m.MatchDate, m.Status),
		m.RoundNumber,
		views.Text(m.Venue),
	))
	b.WriteString(fmt.Sprintf(`<div id="match-%d-events">%s</div>`, m.ID, buildEventsHTML(events)))
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func eventsComponent(events []dbgen.ListMatchEventsRow) templ.Component {
	return views.HTML(buildEventsHTML(events))
}

func buildEventsHTML(events []dbgen.ListMatchEventsRow) string {
	if len(events) == 0 {
		return views.EmptyState("No events recorded.")
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
	for _, row := range events {
		e := row.MatchEvent
		minute := fmt.Sprintf("%d'", e.Minute)
		if e.ExtraTimeMinute > 0 {
			minute = fmt.Sprintf("%d+%d'", e.Minute, e.ExtraTimeMinute)
		}
		label := eventLabels[e.EventType]
		if label == "" {
			label = e.EventType
		}
		b.WriteString(fmt.Sprintf(
			`<li class="flex items-center gap-3 px-4 py-2" data-event-id="%d" data-team-id="%d"><span class="w-12 font-mono text-gray-500">%s</span><span class="font-medium text-gray-900">%s</span><span class="text-gray-700">%s</span></li>`,
			e.ID,
			e.TeamID,
			minute,
			html.EscapeString(label),
			views.Text(row.PlayerName),
		))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func deletedComponent(entity string) templ.Component {
	return views.Deleted(entity)
}
