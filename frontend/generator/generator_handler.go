package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sessioncontext "docsmith/frontend/shared/context"
	"docsmith/infrastructure/sqlite"
)

// EmailGeneratorPageQueryHandler renders the email generator page.
func EmailGeneratorPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		renderEmailPage(w, session, EmailForm{}, "", r.URL.Query().Get("error"), r.URL.Query().Get("status"))
	}
}

// GenerateEmailFieldsCommandHandler calls the LLM and re-renders the form
// with the generated fields filled in for editing.
func GenerateEmailFieldsCommandHandler(client Completer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/generator/email?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		prompt := strings.TrimSpace(r.FormValue("prompt"))
		if prompt == "" {
			renderEmailPage(w, session, emailFormFromRequest(r), prompt, "please enter a description for your email", "")
			return
		}

		form, err := GenerateEmailFields(r.Context(), client, prompt)
		if err != nil {
			slog.Error("email generation failed", slog.Any("err", err))
			renderEmailPage(w, session, emailFormFromRequest(r), prompt, "generating failed, please try again", "")
			return
		}

		renderEmailPage(w, session, form, prompt, "", "email generated, review the fields and download")
	}
}

// DownloadEmailPDFCommandHandler validates the form, saves a history row and
// streams the rendered PDF.
func DownloadEmailPDFCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/generator/email?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		form := emailFormFromRequest(r)
		prompt := strings.TrimSpace(r.FormValue("prompt"))
		if err := form.Validate(); err != nil {
			if errors.Is(err, ErrMissingFields) {
				renderEmailPage(w, session, form, prompt, err.Error(), "")
				return
			}
			renderEmailPage(w, session, form, prompt, "invalid form", "")
			return
		}

		title := form.Subject
		if title == "" {
			title = "Email Document"
		}
		doc, err := SaveDocument(r.Context(), db, session.UserID, TypeEmail, title, prompt, form, form.Summary)
		if err != nil {
			slog.Error("save email document", slog.Any("err", err))
			renderEmailPage(w, session, form, prompt, "failed to save document", "")
			return
		}

		pdfBytes, err := renderEmailPDF(form, DocRef(doc.ID))
		if err != nil {
			slog.Error("render email pdf", slog.Any("err", err))
			renderEmailPage(w, session, form, prompt, "failed to render pdf", "")
			return
		}

		streamPDF(w, DownloadFilename(TypeEmail, time.Now().UnixMilli()), pdfBytes)
	}
}

// ApplicationGeneratorPageQueryHandler renders the application generator page.
func ApplicationGeneratorPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		form := ApplicationForm{Date: time.Now().Format("02/01/2006")}
		renderApplicationPage(w, session, form, "", r.URL.Query().Get("error"), r.URL.Query().Get("status"))
	}
}

func GenerateApplicationFieldsCommandHandler(client Completer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/generator/application?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		current := applicationFormFromRequest(r)
		prompt := strings.TrimSpace(r.FormValue("prompt"))
		if prompt == "" {
			renderApplicationPage(w, session, current, prompt, "please enter a description for your application", "")
			return
		}

		form, err := GenerateApplicationFields(r.Context(), client, prompt, current.Date)
		if err != nil {
			slog.Error("application generation failed", slog.Any("err", err))
			renderApplicationPage(w, session, current, prompt, "generating failed, please try again", "")
			return
		}

		renderApplicationPage(w, session, form, prompt, "", "application generated, review the fields and download")
	}
}

func DownloadApplicationPDFCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/generator/application?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		form := applicationFormFromRequest(r)
		prompt := strings.TrimSpace(r.FormValue("prompt"))
		if err := form.Validate(); err != nil {
			renderApplicationPage(w, session, form, prompt, ErrMissingFields.Error(), "")
			return
		}

		title := form.Subject
		if title == "" {
			title = "Application Document"
		}
		doc, err := SaveDocument(r.Context(), db, session.UserID, TypeApplication, title, prompt, form, form.Body)
		if err != nil {
			slog.Error("save application document", slog.Any("err", err))
			renderApplicationPage(w, session, form, prompt, "failed to save document", "")
			return
		}

		pdfBytes, err := renderApplicationPDF(form, DocRef(doc.ID))
		if err != nil {
			slog.Error("render application pdf", slog.Any("err", err))
			renderApplicationPage(w, session, form, prompt, "failed to render pdf", "")
			return
		}

		streamPDF(w, DownloadFilename(TypeApplication, time.Now().UnixMilli()), pdfBytes)
	}
}

func emailFormFromRequest(r *http.Request) EmailForm {
	return EmailForm{
		From:     strings.TrimSpace(r.FormValue("from")),
		To:       strings.TrimSpace(r.FormValue("to")),
		Subject:  strings.TrimSpace(r.FormValue("subject")),
		Greeting: strings.TrimSpace(r.FormValue("greeting")),
		Summary:  strings.TrimSpace(r.FormValue("summary")),
		Closing:  strings.TrimSpace(r.FormValue("closing")),
	}
}

func applicationFormFromRequest(r *http.Request) ApplicationForm {
	return ApplicationForm{
		Name:            strings.TrimSpace(r.FormValue("name")),
		ClassOrPosition: strings.TrimSpace(r.FormValue("class_or_position")),
		Organization:    strings.TrimSpace(r.FormValue("organization")),
		To:              strings.TrimSpace(r.FormValue("to")),
		ToOrganization:  strings.TrimSpace(r.FormValue("to_organization")),
		Date:            strings.TrimSpace(r.FormValue("date")),
		Subject:         strings.TrimSpace(r.FormValue("subject")),
		Respected:       strings.TrimSpace(r.FormValue("respected")),
		Body:            strings.TrimSpace(r.FormValue("body")),
		Closing:         strings.TrimSpace(r.FormValue("closing")),
	}
}

func streamPDF(w http.ResponseWriter, filename string, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
