package contact

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	sessioncontext "docsmith/frontend/shared/context"
	"docsmith/infrastructure/sqlite"
)

// ContactPageQueryHandler renders the contact form.
func ContactPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		renderContactPage(w, session, r.URL.Query().Get("error"), r.URL.Query().Get("status"))
	}
}

// SubmitContactCommandHandler stores a message from the signed-in user.
func SubmitContactCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/contact?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		_, err := SaveContact(r.Context(), db, session.UserID, session.User.Email, r.FormValue("name"), r.FormValue("message"))
		if err != nil {
			if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrMessageRequired) {
				http.Redirect(w, r, "/app/contact?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
				return
			}
			slog.Error("save contact", slog.Any("err", err))
			http.Redirect(w, r, "/app/contact?error="+url.QueryEscape("failed to send message"), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/app/contact?status="+url.QueryEscape("message sent, we will get back to you"), http.StatusSeeOther)
	}
}
