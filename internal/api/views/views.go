// Package views holds HTML fragments shared by the htmx handlers.
package views

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
)

const kickoffLayout = "Mon 2 Jan 2006 15:04"

// HTML wraps a prebuilt fragment as a component.
func HTML(fragment string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fragment)
		return err
	})
}

// Page wraps body in the admin document shell. title is escaped.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := fmt.Sprintf(
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s | Fixturely</title><script src="/static/js/htmx.min.js"></script><script src="/static/js/htmx-ws.js"></script><link rel="stylesheet" href="/static/css/main.css"></head><body class="bg-gray-50"><main class="mx-auto max-w-6xl p-6">`,
			html.EscapeString(title),
		)
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func EmptyState(message string) string {
	return fmt.Sprintf(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">%s</div>`, html.EscapeString(message))
}

func Deleted(entity string) templ.Component {
	return HTML(fmt.Sprintf(`<div class="rounded border border-green-200 bg-green-50 p-3 text-sm text-green-800">%s deleted.</div>`, html.EscapeString(entity)))
}

func Text(value sql.NullString) string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return "-"
	}
	return html.EscapeString(value.String)
}

func Kickoff(value sql.NullTime) string {
	if !value.Valid {
		return "TBD"
	}
	return value.Time.Format(kickoffLayout)
}

// Score renders "h - a" once both sides are recorded.
func Score(home, away sql.NullInt64) string {
	if !home.Valid || !away.Valid {
		return "vs"
	}
	return fmt.Sprintf("%d - %d", home.Int64, away.Int64)
}

func StatusBadge(status string) string {
	class := "bg-gray-100 text-gray-700"
	switch status {
	case "live", "group_stage", "knockout", "in_progress":
		class = "bg-yellow-100 text-yellow-800"
	case "completed", "active", "approved":
		class = "bg-green-100 text-green-800"
	case "cancelled", "postponed", "archived", "rejected", "declined":
		class = "bg-red-100 text-red-700"
	}
	return fmt.Sprintf(`<span class="rounded px-2 py-1 text-xs font-medium %s">%s</span>`, class, html.EscapeString(strings.ReplaceAll(status, "_", " ")))
}

// StandingsTable renders a league table. caption may be empty.
func StandingsTable(caption string, rows []leaguesvc.StandingsRow) string {
	var b strings.Builder
	b.WriteString(`<div class="overflow-x-auto rounded border bg-white shadow-sm">`)
	if caption != "" {
		b.WriteString(fmt.Sprintf(`<div class="border-b px-4 py-2 text-sm font-semibold text-gray-900">%s</div>`, html.EscapeString(caption)))
	}
	if len(rows) == 0 {
		b.WriteString(`<p class="p-4 text-sm text-gray-500">No standings yet.</p></div>`)
		return b.String()
	}
	b.WriteString(`<table class="min-w-full text-sm"><thead class="bg-gray-50 text-xs uppercase text-gray-500"><tr>`)
	for _, heading := range []string{"#", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"} {
		b.WriteString(fmt.Sprintf(`<th class="px-3 py-2 text-left">%s</th>`, heading))
	}
	b.WriteString(`</tr></thead><tbody class="divide-y divide-gray-100">`)
	for _, row := range rows {
		b.WriteString(fmt.Sprintf(
			`<tr data-team-id="%d"><td class="px-3 py-2">%d</td><td class="px-3 py-2 font-medium text-gray-900">%s</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%d</td><td class="px-3 py-2">%+d</td><td class="px-3 py-2 font-semibold">%d</td></tr>`,
			row.ParticipantID,
			row.Position,
			html.EscapeString(row.Name),
			row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points,
		))
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

// MatchRow renders a single fixture line.
func MatchRow(id int64, home, away string, homeScore, awayScore sql.NullInt64, kickoff sql.NullTime, status string) string {
	return fmt.Sprintf(
		`<div class="flex items-center justify-between gap-4 px-4 py-2" data-match-id="%d"><span class="w-40 text-xs text-gray-500">%s</span><span class="flex-1 text-right font-medium text-gray-900">%s</span><span class="w-16 text-center font-semibold">%s</span><span class="flex-1 font-medium text-gray-900">%s</span>%s</div>`,
		id,
		Kickoff(kickoff),
		html.EscapeString(home),
		Score(homeScore, awayScore),
		html.EscapeString(away),
		StatusBadge(status),
	)
}
