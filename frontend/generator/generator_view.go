package generator

import (
	stdhtml "html"
	"net/http"
	"strconv"
	"strings"

	"docsmith/frontend/shared/html"
	"docsmith/frontend/shared/nav"
	"docsmith/models"
)

func renderEmailPage(w http.ResponseWriter, session models.Session, form EmailForm, prompt, errorMessage, status string) {
	var b strings.Builder
	b.WriteString(nav.Render(nav.BuildTopNavData(session), "/app/generator/email"))
	b.WriteString(`<main class="generator"><h1>Email Generator</h1>`)
	b.WriteString(html.RenderFlash(status, errorMessage))

	b.WriteString(`<form method="POST" action="/app/generator/email/ai" class="prompt-form">`)
	b.WriteString(`<label>Describe the email you need <textarea name="prompt" rows="3">` + stdhtml.EscapeString(prompt) + `</textarea></label>`)
	writeHiddenEmailFields(&b, form)
	b.WriteString(`<button type="submit">Generate</button></form>`)

	b.WriteString(`<form method="POST" action="/app/generator/email/pdf" class="field-form">`)
	b.WriteString(`<input type="hidden" name="prompt" value="` + stdhtml.EscapeString(prompt) + `">`)
	writeTextInput(&b, "From", "from", form.From)
	writeTextInput(&b, "To", "to", form.To)
	writeTextInput(&b, "Subject", "subject", form.Subject)
	writeTextInput(&b, "Greeting", "greeting", form.Greeting)
	writeTextarea(&b, "Summary", "summary", form.Summary, 8)
	writeTextarea(&b, "Closing", "closing", form.Closing, 2)
	b.WriteString(`<button type="submit">Download PDF</button></form></main>`)
	b.WriteString(html.CSRFFormScript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.RenderLayout("docsmith | Email Generator", b.String())))
}

func renderApplicationPage(w http.ResponseWriter, session models.Session, form ApplicationForm, prompt, errorMessage, status string) {
	var b strings.Builder
	b.WriteString(nav.Render(nav.BuildTopNavData(session), "/app/generator/application"))
	b.WriteString(`<main class="generator"><h1>Application Generator</h1>`)
	b.WriteString(html.RenderFlash(status, errorMessage))

	b.WriteString(`<form method="POST" action="/app/generator/application/ai" class="prompt-form">`)
	b.WriteString(`<label>Describe the application you need <textarea name="prompt" rows="3">` + stdhtml.EscapeString(prompt) + `</textarea></label>`)
	b.WriteString(`<input type="hidden" name="date" value="` + stdhtml.EscapeString(form.Date) + `">`)
	b.WriteString(`<button type="submit">Generate</button></form>`)

	b.WriteString(`<form method="POST" action="/app/generator/application/pdf" class="field-form">`)
	b.WriteString(`<input type="hidden" name="prompt" value="` + stdhtml.EscapeString(prompt) + `">`)
	writeTextInput(&b, "Name", "name", form.Name)
	writeTextInput(&b, "Class / Position", "class_or_position", form.ClassOrPosition)
	writeTextInput(&b, "Organization", "organization", form.Organization)
	writeTextInput(&b, "To", "to", form.To)
	writeTextInput(&b, "To Organization", "to_organization", form.ToOrganization)
	writeTextInput(&b, "Date", "date", form.Date)
	writeTextInput(&b, "Subject", "subject", form.Subject)
	writeTextInput(&b, "Respected", "respected", form.Respected)
	writeTextarea(&b, "Body", "body", form.Body, 10)
	writeTextarea(&b, "Closing", "closing", form.Closing, 2)
	b.WriteString(`<button type="submit">Download PDF</button></form></main>`)
	b.WriteString(html.CSRFFormScript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.RenderLayout("docsmith | Application Generator", b.String())))
}

func writeHiddenEmailFields(b *strings.Builder, form EmailForm) {
	fields := []struct{ name, value string }{
		{"from", form.From},
		{"to", form.To},
		{"subject", form.Subject},
		{"greeting", form.Greeting},
		{"summary", form.Summary},
		{"closing", form.Closing},
	}
	for _, f := range fields {
		b.WriteString(`<input type="hidden" name="` + f.name + `" value="` + stdhtml.EscapeString(f.value) + `">`)
	}
}

func writeTextInput(b *strings.Builder, label, name, value string) {
	b.WriteString(`<label>` + label + ` <input type="text" name="` + name + `" value="` + stdhtml.EscapeString(value) + `"></label>`)
}

func writeTextarea(b *strings.Builder, label, name, value string, rows int) {
	b.WriteString(`<label>` + label + ` <textarea name="` + name + `" rows="` + strconv.Itoa(rows) + `">` + stdhtml.EscapeString(value) + `</textarea></label>`)
}
