package contact

import (
	stdhtml "html"
	"net/http"
	"strings"

	"docsmith/frontend/shared/html"
	"docsmith/frontend/shared/nav"
	"docsmith/models"
)

func renderContactPage(w http.ResponseWriter, session models.Session, errorMessage, status string) {
	var b strings.Builder
	b.WriteString(nav.Render(nav.BuildTopNavData(session), "/app/contact"))
	b.WriteString(`<main class="contact"><h1>Contact Us</h1>`)
	b.WriteString(html.RenderFlash(status, errorMessage))
	b.WriteString(`<form method="POST" action="/app/contact" class="contact-form">`)
	b.WriteString(`<label>Name <input type="text" name="name" value="` + stdhtml.EscapeString(session.User.DisplayName) + `" required></label>`)
	b.WriteString(`<p class="contact-email">Sending as ` + stdhtml.EscapeString(session.User.Email) + `</p>`)
	b.WriteString(`<label>Message <textarea name="message" rows="8" required></textarea></label>`)
	b.WriteString(`<button type="submit">Send</button></form></main>`)
	b.WriteString(html.CSRFFormScript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.RenderLayout("docsmith | Contact", b.String())))
}
