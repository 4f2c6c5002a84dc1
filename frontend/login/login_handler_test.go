package login

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uptrace/bun"

	"docsmith/infrastructure/cache"
	sessioncookie "docsmith/infrastructure/session"
)

func TestLogoutMarksInactiveWhenCacheIsCold(t *testing.T) {
	db := openLoginTestDB(t)

	user, err := CreateAccount(context.Background(), db, "cold@example.com", "ColdCache123!Pass")
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	session := newSession(user)
	if err := persistSession(context.Background(), db, session); err != nil {
		t.Fatalf("persist session: %v", err)
	}

	// Fresh cache, as after a process restart: the session exists only in the DB.
	sessionCache := cache.NewUserSessionCache()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.CookieName, Value: session.ID})
	rec := httptest.NewRecorder()
	LogoutHandler(db, sessionCache)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected logout 303, got %d", rec.Code)
	}

	var storedStatus string
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT status FROM users WHERE id = ?`, user.ID).Scan(ctx, &storedStatus)
	})
	if err != nil {
		t.Fatalf("load status: %v", err)
	}
	if storedStatus != StatusInactive {
		t.Fatalf("expected logout to mark user inactive, got %s", storedStatus)
	}

	if _, err := LoadSessionByToken(context.Background(), db, session.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected session removed, got %v", err)
	}
}
