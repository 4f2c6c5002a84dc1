package nav

import (
	"fmt"
	"html"
	"strings"

	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	DisplayName string
	Role        string
	ShowAdmin   bool
}

func BuildTopNavData(session models.Session) TopNavData {
	return TopNavData{
		DisplayName: session.User.DisplayName,
		Role:        session.User.Role,
		ShowAdmin:   rbac.IsAdminRole(session.User.Role),
	}
}

// Render returns the top navigation bar, with the active link highlighted.
func Render(data TopNavData, activePath string) string {
	links := []struct {
		href  string
		label string
	}{
		{"/app/generator/email", "Email"},
		{"/app/generator/application", "Application"},
		{"/app/docs", "My Docs"},
		{"/app/contact", "Contact"},
	}

	var b strings.Builder
	b.WriteString(`<nav class="topnav"><span class="brand">docsmith</span>`)
	for _, l := range links {
		class := ""
		if l.href == activePath {
			class = ` class="active"`
		}
		fmt.Fprintf(&b, `<a href="%s"%s>%s</a>`, l.href, class, l.label)
	}
	if data.ShowAdmin {
		class := ""
		if activePath == "/app/admin" {
			class = ` class="active"`
		}
		fmt.Fprintf(&b, `<a href="/app/admin"%s>Admin</a>`, class)
	}
	fmt.Fprintf(&b, `<span class="nav-user">%s</span>`, html.EscapeString(data.DisplayName))
	b.WriteString(`<form method="POST" action="/logout" class="nav-logout"><button type="submit">Logout</button></form>`)
	b.WriteString(`</nav>`)
	return b.String()
}
