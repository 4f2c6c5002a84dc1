package login

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"docsmith/infrastructure/cache"
	sessioncookie "docsmith/infrastructure/session"
	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

// GetLoginScreenHandler renders the login screen.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	errorMessage := r.URL.Query().Get("error")
	status := r.URL.Query().Get("status")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(renderLoginScreen(errorMessage, status)))
}

// CreateLoginHandler authenticates the user and issues a session cookie.
func CreateLoginHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := strings.TrimSpace(r.FormValue("password"))
		if email == "" || password == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("email and password are required"), http.StatusSeeOther)
			return
		}

		user, err := authenticateUser(r.Context(), db, email, password)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid email or password"), http.StatusSeeOther)
				return
			}
			slog.Error("login failed", slog.Any("err", err))
			http.Redirect(w, r, "/login?error="+url.QueryEscape("authentication failed"), http.StatusSeeOther)
			return
		}

		issueSession(w, r, db, sessionCache, userCache, user)
	}
}

// CreateAccountHandler registers a new user and logs them in.
func CreateAccountHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := strings.TrimSpace(r.FormValue("password"))

		user, err := CreateAccount(r.Context(), db, email, password)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailRequired),
				errors.Is(err, ErrPasswordRequired),
				errors.Is(err, ErrEmailExists):
				http.Redirect(w, r, "/login?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			default:
				// Password policy messages are safe to show as-is.
				http.Redirect(w, r, "/login?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			}
			return
		}

		issueSession(w, r, db, sessionCache, userCache, user)
	}
}

// LogoutHandler removes session state, marks the user inactive and clears the cookie.
func LogoutHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessioncookie.CookieName)
		if err == nil && cookie.Value != "" {
			session, ok := sessionCache.FindSessionBySessionToken(cookie.Value)
			if !ok {
				// The cache is empty after a restart; the DB row still
				// identifies the user.
				if dbSession, loadErr := LoadSessionByToken(r.Context(), db, cookie.Value); loadErr == nil {
					session, ok = dbSession, true
				} else if !errors.Is(loadErr, sql.ErrNoRows) {
					slog.Error("load session on logout", slog.Any("err", loadErr))
				}
			}
			if ok {
				if err := MarkInactive(r.Context(), db, session.UserID); err != nil {
					slog.Error("mark user inactive on logout", slog.Any("err", err))
				}
			}
			sessionCache.DeleteSessionBySessionToken(cookie.Value)
			_ = DeleteSessionByToken(r.Context(), db, cookie.Value)
		}
		http.SetCookie(w, sessioncookie.SessionCookie("", -1))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func issueSession(w http.ResponseWriter, r *http.Request, db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, user models.User) {
	session := newSession(user)
	if err := persistSession(r.Context(), db, session); err != nil {
		slog.Error("persist session", slog.Any("err", err))
		http.Redirect(w, r, "/login?error="+url.QueryEscape("failed to create session"), http.StatusSeeOther)
		return
	}

	sessionCache.AddSession(session)
	userCache.Add(user.Email, user)

	http.SetCookie(w, sessioncookie.SessionCookie(session.ID, 12*60*60))
	http.Redirect(w, r, "/app/generator/email", http.StatusSeeOther)
}

func newSession(user models.User) models.Session {
	return models.Session{
		ID:        newSessionToken(),
		UserID:    user.ID,
		User:      user,
		UserRoles: []string{user.Role},
		ExpiresAt: sessioncookie.DefaultExpiry(),
	}
}
