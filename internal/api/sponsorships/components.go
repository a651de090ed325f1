package sponsorships

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Fixturely/internal/api/views"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

func submittedComponent(inquiry dbgen.Sponsorship) templ.Component {
	return views.HTML(fmt.Sprintf(
		`<div class="rounded border border-green-200 bg-green-50 p-4 text-sm text-green-800">Thanks, %s. We will be in touch about sponsorship for %s.</div>`,
		html.EscapeString(inquiry.ContactName),
		html.EscapeString(inquiry.CompanyName),
	))
}

func inquiriesListComponent(inquiries []dbgen.Sponsorship) templ.Component {
	if len(inquiries) == 0 {
		return views.HTML(views.EmptyState("No sponsorship inquiries."))
	}
	var b strings.Builder
	b.WriteString(`<table class="min-w-full rounded border bg-white text-sm shadow-sm"><thead class="bg-gray-50 text-xs uppercase text-gray-500"><tr>`)
	for _, heading := range []string{"Received", "Company", "Contact", "Package", "Status"} {
		b.WriteString(fmt.Sprintf(`<th class="px-3 py-2 text-left">%s</th>`, heading))
	}
	b.WriteString(`</tr></thead><tbody class="divide-y divide-gray-100">`)
	for _, inquiry := range inquiries {
		b.WriteString(buildInquiryRowHTML(inquiry))
	}
	b.WriteString(`</tbody></table>`)
	return views.HTML(b.String())
}

func inquiryRowComponent(inquiry dbgen.Sponsorship) templ.Component {
	return views.HTML(buildInquiryRowHTML(inquiry))
}

func buildInquiryRowHTML(inquiry dbgen.Sponsorship) string {
	return fmt.Sprintf(
		`<tr data-sponsorship-id="%d"><td class="px-3 py-2">%s</td><td class="px-3 py-2 font-medium text-gray-900">%s</td><td class="px-3 py-2">%s<br><span class="text-gray-500">%s %s</span></td><td class="px-3 py-2">%s</td><td class="px-3 py-2">%s</td></tr>`,
		inquiry.ID,
		inquiry.CreatedAt.Format("2 Jan 2006"),
		html.EscapeString(inquiry.CompanyName),
		html.EscapeString(inquiry.ContactName),
		html.EscapeString(inquiry.Email),
		views.Text(inquiry.Phone),
		views.Text(inquiry.Package),
		views.StatusBadge(inquiry.Status),
	)
}
