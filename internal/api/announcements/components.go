package announcements

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

var priorityClasses = map[string]string{
	"low":  "border-gray-200",
	"high": "border-red-300 bg-red-50",
}

func announcementsListComponent(announcements []dbgen.Announcement) templ.Component {
	if len(announcements) == 0 {
		return views.HTML(views.EmptyState("No announcements yet."))
	}
	var b strings.Builder
	b.WriteString(`<div class="space-y-3">`)
	for _, announcement := range announcements {
		b.WriteString(buildAnnouncementHTML(announcement))
	}
	b.WriteString(`</div>`)
	return views.HTML(b.String())
}

func announcementCardComponent(announcement dbgen.Announcement) templ.Component {
	return views.HTML(buildAnnouncementHTML(announcement))
}

func buildAnnouncementHTML(announcement dbgen.Announcement) string {
	class, ok := priorityClasses[announcement.Priority]
	if !ok {
		class = "border-gray-300"
	}
	draft := ""
	if !announcement.Published {
		draft = ` <span class="rounded bg-gray-100 px-2 py-0.5 text-xs text-gray-600">Draft</span>`
	}
	return fmt.Sprintf(
		`<article class="rounded border p-4 shadow-sm %s" data-announcement-id="%d"><h3 class="font-semibold text-gray-900">%s%s</h3><p class="mt-1 text-xs text-gray-500">%s</p><p class="mt-2 whitespace-pre-line text-sm text-gray-700">%s</p></article>`,
		class,
		announcement.ID,
		html.EscapeString(announcement.Title),
		draft,
		announcement.CreatedAt.Format("2 Jan 2006"),
		html.EscapeString(announcement.Body),
	)
}

func deletedComponent() templ.Component {
	return views.Deleted("Announcement")
}
