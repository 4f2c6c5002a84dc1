package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"docsmith/frontend/admin/listview"
	sessioncontext "docsmith/frontend/shared/context"
	"docsmith/infrastructure/audit"
	"docsmith/infrastructure/cache"
	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

const (
	usersParamPrefix    = "u"
	contactsParamPrefix = "c"
)

// scopedQuery strips a table prefix so two independent table states can live
// in one dashboard URL ("uq", "usort" for users, "cq", "csort" for contacts).
func scopedQuery(q url.Values, prefix string) url.Values {
	out := url.Values{}
	for key, vals := range q {
		if strings.HasPrefix(key, prefix) {
			out[key[len(prefix):]] = vals
		}
	}
	return out
}

// AdminDashboardQueryHandler renders the stats cards plus the users and
// contacts tables. Each table parses its own view state from the query.
func AdminDashboardQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		users, err := LoadManagedUsers(r.Context(), db)
		if err != nil {
			slog.Error("load users", slog.Any("err", err))
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}
		contacts, err := LoadContacts(r.Context(), db)
		if err != nil {
			slog.Error("load contacts", slog.Any("err", err))
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		userState := listview.ParseState(scopedQuery(r.URL.Query(), usersParamPrefix), []string{"role", "status"})
		contactState := listview.ParseState(scopedQuery(r.URL.Query(), contactsParamPrefix), nil)

		page := dashboardPage{
			Stats:        ComputeStats(users, contacts),
			UserState:    userState,
			UserView:     listview.Apply(UserListConfig(), userState, toUserRows(users)),
			ContactState: contactState,
			ContactView:  listview.Apply(ContactListConfig(), contactState, toContactRows(contacts)),
			ErrorMessage: r.URL.Query().Get("error"),
			Status:       r.URL.Query().Get("status"),
		}
		renderDashboard(w, session, page)
	}
}

// DeleteUserCommandHandler deletes one account after the guard checks.
func DeleteUserCommandHandler(db *sqlite.DB, auditSvc *audit.Service, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectDashboardError(w, r, "invalid form data")
			return
		}

		targetID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
		if err != nil {
			redirectDashboardError(w, r, "invalid user id")
			return
		}
		target, err := GetUserByID(r.Context(), db, targetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				redirectDashboardError(w, r, "user not found")
				return
			}
			slog.Error("load target user", slog.Any("err", err))
			redirectDashboardError(w, r, "failed to delete user")
			return
		}
		if err := CheckDeleteUser(session.User, target); err != nil {
			redirectDashboardError(w, r, err.Error())
			return
		}

		if err := DeleteUserByID(r.Context(), db, auditSvc, session.UserID, target.ID); err != nil {
			slog.Error("delete user", slog.Int64("target_id", target.ID), slog.Any("err", err))
			redirectDashboardError(w, r, "failed to delete user")
			return
		}
		evictUser(sessionCache, userCache, target)

		redirectDashboardStatus(w, r, "user deleted")
	}
}

// UpdateUserRoleCommandHandler toggles an account between user and admin.
func UpdateUserRoleCommandHandler(db *sqlite.DB, auditSvc *audit.Service, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectDashboardError(w, r, "invalid form data")
			return
		}

		targetID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
		if err != nil {
			redirectDashboardError(w, r, "invalid user id")
			return
		}
		newRole := r.FormValue("role")
		target, err := GetUserByID(r.Context(), db, targetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				redirectDashboardError(w, r, "user not found")
				return
			}
			slog.Error("load target user", slog.Any("err", err))
			redirectDashboardError(w, r, "failed to change role")
			return
		}
		if err := CheckRoleChange(session.User, target, newRole); err != nil {
			redirectDashboardError(w, r, err.Error())
			return
		}

		if err := UpdateUserRole(r.Context(), db, auditSvc, session.UserID, target.ID, newRole); err != nil {
			slog.Error("update role", slog.Int64("target_id", target.ID), slog.Any("err", err))
			redirectDashboardError(w, r, "failed to change role")
			return
		}
		evictUser(sessionCache, userCache, target)

		redirectDashboardStatus(w, r, fmt.Sprintf("role changed to %s", newRole))
	}
}

// BulkDeleteUsersCommandHandler deletes the selected accounts. The batch is
// refused entirely when any selected account fails a guard check.
func BulkDeleteUsersCommandHandler(db *sqlite.DB, auditSvc *audit.Service, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectDashboardError(w, r, "invalid form data")
			return
		}

		ids := r.Form["selected"]
		if len(ids) == 0 {
			redirectDashboardError(w, r, "no users selected")
			return
		}

		targets := make([]models.User, 0, len(ids))
		byID := make(map[string]models.User, len(ids))
		for _, raw := range ids {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				redirectDashboardError(w, r, "invalid user id")
				return
			}
			target, err := GetUserByID(r.Context(), db, id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					redirectDashboardError(w, r, "user not found")
					return
				}
				slog.Error("load target user", slog.Any("err", err))
				redirectDashboardError(w, r, "failed to delete users")
				return
			}
			targets = append(targets, target)
			byID[raw] = target
		}
		if err := CheckBulkDelete(session.User, targets); err != nil {
			redirectDashboardError(w, r, err.Error())
			return
		}

		del := func(ctx context.Context, id string) error {
			target := byID[id]
			return DeleteUserByID(ctx, db, auditSvc, session.UserID, target.ID)
		}
		outcomes := listview.DeleteMany(r.Context(), del, ids)
		for _, o := range outcomes {
			if o.Err == nil {
				evictUser(sessionCache, userCache, byID[o.ID])
			} else {
				slog.Error("bulk delete user", slog.String("id", o.ID), slog.Any("err", o.Err))
			}
		}

		if failed := listview.FailedIDs(outcomes); len(failed) > 0 {
			redirectDashboardError(w, r, fmt.Sprintf("%d of %d deletions failed", len(failed), len(ids)))
			return
		}
		redirectDashboardStatus(w, r, fmt.Sprintf("%d users deleted", len(ids)))
	}
}

// DeleteContactCommandHandler removes one contact message.
func DeleteContactCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectDashboardError(w, r, "invalid form data")
			return
		}

		contactID := r.FormValue("contact_id")
		if err := DeleteContactByID(r.Context(), db, auditSvc, session.UserID, contactID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				redirectDashboardError(w, r, "message not found")
				return
			}
			slog.Error("delete contact", slog.String("contact_id", contactID), slog.Any("err", err))
			redirectDashboardError(w, r, "failed to delete message")
			return
		}

		redirectDashboardStatus(w, r, "message deleted")
	}
}

// BulkDeleteContactsCommandHandler removes the selected contact messages.
func BulkDeleteContactsCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectDashboardError(w, r, "invalid form data")
			return
		}

		ids := r.Form["selected"]
		if len(ids) == 0 {
			redirectDashboardError(w, r, "no messages selected")
			return
		}

		del := func(ctx context.Context, id string) error {
			return DeleteContactByID(ctx, db, auditSvc, session.UserID, id)
		}
		outcomes := listview.DeleteMany(r.Context(), del, ids)
		for _, o := range outcomes {
			if o.Err != nil {
				slog.Error("bulk delete contact", slog.String("id", o.ID), slog.Any("err", o.Err))
			}
		}

		if failed := listview.FailedIDs(outcomes); len(failed) > 0 {
			redirectDashboardError(w, r, fmt.Sprintf("%d of %d deletions failed", len(failed), len(ids)))
			return
		}
		redirectDashboardStatus(w, r, fmt.Sprintf("%d messages deleted", len(ids)))
	}
}

func evictUser(sessionCache *cache.UserSessionCache, userCache *cache.UserCache, user models.User) {
	sessionCache.DeleteSessionsByUserID(user.ID)
	userCache.Delete(user.Email)
}

func redirectDashboardError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/app/admin?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func redirectDashboardStatus(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/app/admin?status="+url.QueryEscape(msg), http.StatusSeeOther)
}
