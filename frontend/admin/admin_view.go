package admin

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
	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

type dashboardPage struct {
	Stats        DashboardStats
	UserState    listview.State
	UserView     listview.View[UserRow]
	ContactState listview.State
	ContactView  listview.View[ContactRow]
	ErrorMessage string
	Status       string
}

func encodeState(q url.Values, prefix string, s listview.State, page int) {
	if s.Query != "" {
		q.Set(prefix+"q", s.Query)
	}
	for key, val := range s.Filters {
		if val != "" && val != listview.FilterAll {
			q.Set(prefix+key, val)
		}
	}
	if s.SortKey != "" {
		q.Set(prefix+"sort", s.SortKey)
		q.Set(prefix+"dir", s.SortDir)
	}
	if page > 1 {
		q.Set(prefix+"page", strconv.Itoa(page))
	}
}

// dashboardURL merges both table states into one dashboard URL so changing
// one table never resets the other.
func dashboardURL(us listview.State, uPage int, cs listview.State, cPage int) string {
	q := url.Values{}
	encodeState(q, usersParamPrefix, us, uPage)
	encodeState(q, contactsParamPrefix, cs, cPage)
	if len(q) == 0 {
		return "/app/admin"
	}
	return "/app/admin?" + q.Encode()
}

func (p dashboardPage) userSortHeader(field, label string) string {
	next := listview.NextSort(p.UserState, field)
	return sortHeaderCell(dashboardURL(next, 1, p.ContactState, p.ContactView.Page), p.UserState, field, label)
}

func (p dashboardPage) contactSortHeader(field, label string) string {
	next := listview.NextSort(p.ContactState, field)
	return sortHeaderCell(dashboardURL(p.UserState, p.UserView.Page, next, 1), p.ContactState, field, label)
}

func sortHeaderCell(href string, s listview.State, field, label string) string {
	marker := ""
	if s.SortKey == field {
		if s.SortDir == listview.DirAsc {
			marker = " &#9650;"
		} else {
			marker = " &#9660;"
		}
	}
	return fmt.Sprintf(`<th><a href="%s">%s%s</a></th>`, href, label, marker)
}

func renderDashboard(w http.ResponseWriter, session models.Session, page dashboardPage) {
	var b strings.Builder
	b.WriteString(nav.Render(nav.BuildTopNavData(session), "/app/admin"))
	b.WriteString(`<main class="admin"><h1>Admin Dashboard</h1>`)
	b.WriteString(html.RenderFlash(page.Status, page.ErrorMessage))

	fmt.Fprintf(&b, `<section class="stats">
<div class="stat-card"><span class="stat-value">%d</span><span class="stat-label">Total users</span></div>
<div class="stat-card"><span class="stat-value">%d</span><span class="stat-label">Active users</span></div>
<div class="stat-card"><span class="stat-value">%d</span><span class="stat-label">Admins</span></div>
<div class="stat-card"><span class="stat-value">%d</span><span class="stat-label">Messages</span></div>
</section>`, page.Stats.TotalUsers, page.Stats.ActiveUsers, page.Stats.AdminUsers, page.Stats.TotalContacts)

	renderUsersSection(&b, session, page)
	renderContactsSection(&b, page)

	b.WriteString(`</main>`)
	b.WriteString(html.CSRFFormScript())
	b.WriteString(selectAllScript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.RenderLayout("docsmith | Admin", b.String())))
}

func renderUsersSection(b *strings.Builder, session models.Session, page dashboardPage) {
	b.WriteString(`<section class="admin-users"><h2>Users</h2>`)

	b.WriteString(`<form method="GET" action="/app/admin" class="list-controls">`)
	encodeHiddenState(b, contactsParamPrefix, page.ContactState, page.ContactView.Page)
	b.WriteString(`<input type="search" name="uq" placeholder="Search users" value="` + stdhtml.EscapeString(page.UserState.Query) + `">`)
	writeFilterSelect(b, "urole", page.UserState.Filters["role"], []filterOption{
		{listview.FilterAll, "All roles"},
		{rbac.RoleUser, "User"},
		{rbac.RoleAdmin, "Admin"},
	})
	writeFilterSelect(b, "ustatus", page.UserState.Filters["status"], []filterOption{
		{listview.FilterAll, "All statuses"},
		{"active", "Active"},
		{"inactive", "Inactive"},
	})
	b.WriteString(`<button type="submit">Apply</button></form>`)

	if page.UserState.UserSorted {
		href := dashboardURL(listview.ResetSort(page.UserState), 1, page.ContactState, page.ContactView.Page)
		b.WriteString(`<a class="reset-sort" href="` + href + `">Reset sort</a>`)
	}

	b.WriteString(`<form method="POST" action="/app/admin/users/bulk-delete">`)
	b.WriteString(`<table class="list-table" id="users-table"><thead><tr><th><input type="checkbox" data-select-all="users-table"></th>`)
	b.WriteString(page.userSortHeader("username", "Username"))
	b.WriteString(page.userSortHeader("email", "Email"))
	b.WriteString(page.userSortHeader("role", "Role"))
	b.WriteString(page.userSortHeader("status", "Status"))
	b.WriteString(page.userSortHeader("joinDate", "Joined"))
	b.WriteString(page.userSortHeader("lastLogin", "Last login"))
	b.WriteString(`<th></th></tr></thead><tbody>`)

	if len(page.UserView.Items) == 0 {
		b.WriteString(`<tr><td colspan="8" class="empty">No users match.</td></tr>`)
	}
	for _, row := range page.UserView.Items {
		lastLogin := "-"
		if row.LastLogin != nil {
			lastLogin = row.LastLogin.Format("02/01/2006 15:04")
		}
		toggleRole := rbac.RoleAdmin
		toggleLabel := "Make admin"
		if row.Role == rbac.RoleAdmin {
			toggleRole = rbac.RoleUser
			toggleLabel = "Make user"
		}
		fmt.Fprintf(b,
			`<tr><td><input type="checkbox" name="selected" value="%s"></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
			row.RecordID(),
			stdhtml.EscapeString(row.DisplayName),
			stdhtml.EscapeString(row.Email),
			stdhtml.EscapeString(row.Role),
			stdhtml.EscapeString(row.Status),
			row.CreatedAt.Format("02/01/2006"),
			lastLogin,
		)
		if session.UserID != row.ID {
			fmt.Fprintf(b,
				`<button type="submit" formaction="/app/admin/users/role" name="user_id" value="%s" onclick="this.form.role.value='%s'; return confirm('Change this user\'s role?')">%s</button>`,
				row.RecordID(), toggleRole, toggleLabel)
			fmt.Fprintf(b,
				`<button type="submit" formaction="/app/admin/users/delete" name="user_id" value="%s" onclick="return confirm('Delete this user?')">Delete</button>`,
				row.RecordID())
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	b.WriteString(`<input type="hidden" name="role" value="">`)
	b.WriteString(`<button type="submit" onclick="return confirm('Delete the selected users?')">Delete selected</button></form>`)

	writePagination(b, page.UserView.Page, page.UserView.TotalPages, page.UserView.FilteredCount, "users",
		dashboardURL(page.UserState, page.UserView.PrevPage, page.ContactState, page.ContactView.Page),
		dashboardURL(page.UserState, page.UserView.NextPage, page.ContactState, page.ContactView.Page),
		page.UserView.HasPrev, page.UserView.HasNext)
	b.WriteString(`</section>`)
}

func renderContactsSection(b *strings.Builder, page dashboardPage) {
	b.WriteString(`<section class="admin-contacts"><h2>Contact Messages</h2>`)

	b.WriteString(`<form method="GET" action="/app/admin" class="list-controls">`)
	encodeHiddenState(b, usersParamPrefix, page.UserState, page.UserView.Page)
	b.WriteString(`<input type="search" name="cq" placeholder="Search messages" value="` + stdhtml.EscapeString(page.ContactState.Query) + `">`)
	b.WriteString(`<button type="submit">Apply</button></form>`)

	if page.ContactState.UserSorted {
		href := dashboardURL(page.UserState, page.UserView.Page, listview.ResetSort(page.ContactState), 1)
		b.WriteString(`<a class="reset-sort" href="` + href + `">Reset sort</a>`)
	}

	b.WriteString(`<form method="POST" action="/app/admin/contacts/bulk-delete">`)
	b.WriteString(`<table class="list-table" id="contacts-table"><thead><tr><th><input type="checkbox" data-select-all="contacts-table"></th>`)
	b.WriteString(page.contactSortHeader("name", "Name"))
	b.WriteString(page.contactSortHeader("email", "Email"))
	b.WriteString(page.contactSortHeader("createdAt", "Received"))
	b.WriteString(`<th>Message</th><th></th></tr></thead><tbody>`)

	if len(page.ContactView.Items) == 0 {
		b.WriteString(`<tr><td colspan="6" class="empty">No messages match.</td></tr>`)
	}
	for _, row := range page.ContactView.Items {
		fmt.Fprintf(b,
			`<tr><td><input type="checkbox" name="selected" value="%s"></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><button type="submit" formaction="/app/admin/contacts/delete" name="contact_id" value="%s" onclick="return confirm('Delete this message?')">Delete</button></td></tr>`,
			stdhtml.EscapeString(row.ID),
			stdhtml.EscapeString(row.Name),
			stdhtml.EscapeString(row.Email),
			row.CreatedAt.Format("02/01/2006 15:04"),
			stdhtml.EscapeString(row.Message),
			stdhtml.EscapeString(row.ID),
		)
	}
	b.WriteString(`</tbody></table>`)
	b.WriteString(`<button type="submit" onclick="return confirm('Delete the selected messages?')">Delete selected</button></form>`)

	writePagination(b, page.ContactView.Page, page.ContactView.TotalPages, page.ContactView.FilteredCount, "messages",
		dashboardURL(page.UserState, page.UserView.Page, page.ContactState, page.ContactView.PrevPage),
		dashboardURL(page.UserState, page.UserView.Page, page.ContactState, page.ContactView.NextPage),
		page.ContactView.HasPrev, page.ContactView.HasNext)
	b.WriteString(`</section>`)
}

type filterOption struct{ value, label string }

func writeFilterSelect(b *strings.Builder, name, current string, options []filterOption) {
	b.WriteString(`<select name="` + name + `">`)
	for _, opt := range options {
		selected := ""
		if opt.value == current || (current == "" && opt.value == listview.FilterAll) {
			selected = " selected"
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, opt.value, selected, opt.label)
	}
	b.WriteString(`</select>`)
}

// encodeHiddenState carries the other table's state through a GET form so
// submitting one search box does not reset the other table.
func encodeHiddenState(b *strings.Builder, prefix string, s listview.State, page int) {
	q := url.Values{}
	encodeState(q, prefix, s, page)
	for key, vals := range q {
		for _, v := range vals {
			fmt.Fprintf(b, `<input type="hidden" name="%s" value="%s">`, key, stdhtml.EscapeString(v))
		}
	}
}

func writePagination(b *strings.Builder, page, totalPages, count int, noun, prevURL, nextURL string, hasPrev, hasNext bool) {
	fmt.Fprintf(b, `<div class="pagination">Page %d of %d (%d %s)`, page, totalPages, count, noun)
	if hasPrev {
		b.WriteString(` <a href="` + prevURL + `">Prev</a>`)
	}
	if hasNext {
		b.WriteString(` <a href="` + nextURL + `">Next</a>`)
	}
	b.WriteString(`</div>`)
}

// selectAllScript wires the header checkbox: when every visible row is
// checked it clears them, otherwise it checks exactly the visible rows.
func selectAllScript() string {
	return `<script>
(function () {
  var toggles = document.querySelectorAll("input[data-select-all]");
  for (var i = 0; i < toggles.length; i++) {
    toggles[i].addEventListener("change", function () {
      var table = document.getElementById(this.getAttribute("data-select-all"));
      if (!table) return;
      var boxes = table.querySelectorAll("tbody input[type=checkbox]");
      var all = boxes.length > 0;
      for (var j = 0; j < boxes.length; j++) {
        if (!boxes[j].checked) { all = false; break; }
      }
      for (var j = 0; j < boxes.length; j++) {
        boxes[j].checked = !all;
      }
      this.checked = !all;
    });
  }
})();
</script>`
}
