package mydocs

import (
	"fmt"
	stdhtml "html"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"docsmith/frontend/admin/listview"
	"docsmith/frontend/shared/html"
	"docsmith/frontend/shared/nav"
	"docsmith/models"
)

func docsURL(s listview.State, page int) string {
	q := url.Values{}
	if s.Query != "" {
		q.Set("q", s.Query)
	}
	if v := s.Filters["type"]; v != "" && v != listview.FilterAll {
		q.Set("type", v)
	}
	if s.SortKey != "" {
		q.Set("sort", s.SortKey)
		q.Set("dir", s.SortDir)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/app/docs"
	}
	return "/app/docs?" + q.Encode()
}

func sortHeader(s listview.State, field, label string) string {
	next := listview.NextSort(s, field)
	marker := ""
	if s.SortKey == field {
		if s.SortDir == listview.DirAsc {
			marker = " &#9650;"
		} else {
			marker = " &#9660;"
		}
	}
	return fmt.Sprintf(`<th><a href="%s">%s%s</a></th>`, docsURL(next, 1), label, marker)
}

func renderMyDocsPage(w http.ResponseWriter, session models.Session, state listview.State, view listview.View[DocRow], errorMessage, status string) {
	var b strings.Builder
	b.WriteString(nav.Render(nav.BuildTopNavData(session), "/app/docs"))
	b.WriteString(`<main class="mydocs"><h1>My Documents</h1>`)
	b.WriteString(html.RenderFlash(status, errorMessage))

	b.WriteString(`<form method="GET" action="/app/docs" class="list-controls">`)
	b.WriteString(`<input type="search" name="q" placeholder="Search documents" value="` + stdhtml.EscapeString(state.Query) + `">`)
	b.WriteString(`<select name="type">`)
	typeFilter := state.Filters["type"]
	for _, opt := range []struct{ value, label string }{
		{listview.FilterAll, "All types"},
		{"email", "Email"},
		{"application", "Application"},
	} {
		selected := ""
		if opt.value == typeFilter || (typeFilter == "" && opt.value == listview.FilterAll) {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, opt.value, selected, opt.label)
	}
	b.WriteString(`</select><button type="submit">Apply</button></form>`)

	if state.UserSorted {
		b.WriteString(`<a class="reset-sort" href="` + docsURL(listview.ResetSort(state), 1) + `">Reset sort</a>`)
	}

	b.WriteString(`<table class="list-table"><thead><tr>`)
	b.WriteString(sortHeader(state, "title", "Title"))
	b.WriteString(sortHeader(state, "type", "Type"))
	b.WriteString(sortHeader(state, "createdAt", "Created"))
	b.WriteString(`<th>Preview</th><th></th></tr></thead><tbody>`)

	if len(view.Items) == 0 {
		b.WriteString(`<tr><td colspan="5" class="empty">No documents yet.</td></tr>`)
	}
	for _, row := range view.Items {
		fmt.Fprintf(&b,
			`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><a href="/app/docs/download?id=%s">Download</a> <form method="POST" action="/app/docs/delete" class="inline"><input type="hidden" name="id" value="%s"><button type="submit" onclick="return confirm('Delete this document?')">Delete</button></form></td></tr>`,
			stdhtml.EscapeString(row.Title),
			stdhtml.EscapeString(row.Type),
			row.CreatedAt.Format("02/01/2006 15:04"),
			stdhtml.EscapeString(row.ContentPreview),
			url.QueryEscape(row.ID),
			stdhtml.EscapeString(row.ID),
		)
	}
	b.WriteString(`</tbody></table>`)

	fmt.Fprintf(&b, `<div class="pagination">Page %d of %d (%d documents)`, view.Page, view.TotalPages, view.FilteredCount)
	if view.HasPrev {
		b.WriteString(` <a href="` + docsURL(state, view.PrevPage) + `">Prev</a>`)
	}
	if view.HasNext {
		b.WriteString(` <a href="` + docsURL(state, view.NextPage) + `">Next</a>`)
	}
	b.WriteString(`</div></main>`)
	b.WriteString(html.CSRFFormScript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.RenderLayout("docsmith | My Documents", b.String())))
}
