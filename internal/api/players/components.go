package players

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

func playersListComponent(players []dbgen.Player) templ.Component {
	if len(players) == 0 {
		return views.HTML(views.EmptyState("No players registered."))
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y divide-gray-100 rounded border bg-white text-sm shadow-sm">`)
	for _, player := range players {
		b.WriteString(buildPlayerRowHTML(player))
	}
	b.WriteString(`</ul>`)
	return views.HTML(b.String())
}

func playerCardComponent(player dbgen.Player) templ.Component {
	return views.HTML(`<ul class="rounded border bg-white text-sm shadow-sm">` + buildPlayerRowHTML(player) + `</ul>`)
}

func buildPlayerRowHTML(player dbgen.Player) string {
	jersey := "-"
	if player.JerseyNumber.Valid {
		jersey = fmt.Sprintf("%d", player.JerseyNumber.Int64)
	}
	return fmt.Sprintf(
		`<li class="flex items-center gap-3 px-4 py-2" data-player-id="%d"><span class="w-8 font-mono text-gray-500">%s</span><span class="flex-1 font-medium text-gray-900">%s</span><span class="text-gray-500">%s</span><span class="text-gray-500">%s</span></li>`,
		player.ID,
		jersey,
		html.EscapeString(player.Name),
		views.Text(player.Position),
		views.Text(player.Nationality),
	)
}

func transfersListComponent(transfers []dbgen.ListTransfersRow) templ.Component {
	if len(transfers) == 0 {
		return views.HTML(views.EmptyState("No transfers found."))
	}
	var b strings.Builder
	b.WriteString(`<table class="min-w-full rounded border bg-white text-sm shadow-sm"><thead class="bg-gray-50 text-xs uppercase text-gray-500"><tr>`)
	for _, heading := range []string{"Date", "Player", "From", "To", "Fee", "Status"} {
		b.WriteString(fmt.Sprintf(`<th class="px-3 py-2 text-left">%s</th>`, heading))
	}
	b.WriteString(`</tr></thead><tbody class="divide-y divide-gray-100">`)
	for _, row := range transfers {
		t := row.Transfer
		from := "Free agent"
		if row.FromTeamName.Valid {
			from = row.FromTeamName.String
		}
		fee := "-"
		if t.FeeCents.Valid {
			fee = apiutil.FormatFeeCents(t.FeeCents.Int64)
		}
		b.WriteString(fmt.Sprintf(
			`<tr data-transfer-id="%d"><td class="px-3 py-2">%s</td><td class="px-3 py-2 font-medium text-gray-900">%s</td><td class="px-3 py-2">%s</td><td class="px-3 py-2">%s</td><td class="px-3 py-2">%s</td><td class="px-3 py-2">%s</td></tr>`,
			t.ID,
			t.TransferDate.Format(apiutil.DateLayout),
			html.EscapeString(row.PlayerName),
			html.EscapeString(from),
			html.EscapeString(row.ToTeamName),
			fee,
			views.StatusBadge(t.Status),
		))
	}
	b.WriteString(`</tbody></table>`)
	return views.HTML(b.String())
}

func transferRequestedComponent(playerName string) templ.Component {
	return views.HTML(fmt.Sprintf(`<div class="rounded border border-blue-200 bg-blue-50 p-3 text-sm text-blue-800">Transfer requested for %s.</div>`, html.EscapeString(playerName)))
}

func transferDecidedComponent(transfer dbgen.Transfer) templ.Component {
	return views.HTML(fmt.Sprintf(`<div class="flex items-center gap-2 p-3 text-sm" data-transfer-id="%d">Transfer %s</div>`, transfer.ID, views.StatusBadge(transfer.Status)))
}

func deletedComponent(entity string) templ.Component {
	return views.Deleted(entity)
}
