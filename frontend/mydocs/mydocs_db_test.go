package mydocs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"docsmith/frontend/admin/listview"
	"docsmith/frontend/generator"
	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

func openMyDocsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mydocs-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func insertMyDocsTestUser(t *testing.T, db *sqlite.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		user := models.User{Email: email, DisplayName: "owner", PasswordHash: "x", Role: "user", Status: "active"}
		if _, err := tx.NewInsert().Model(&user).Exec(ctx); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT id FROM users WHERE email = ?`, email).Scan(ctx, &id)
	})
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func TestListDocumentsByUser_ScopedAndNewestFirst(t *testing.T) {
	db := openMyDocsTestDB(t)
	owner := insertMyDocsTestUser(t, db, "owner@example.com")
	other := insertMyDocsTestUser(t, db, "other@example.com")

	for i := 0; i < 3; i++ {
		form := generator.EmailForm{From: "a@b.c", To: "d@e.f", Subject: fmt.Sprintf("Doc %d", i), Greeting: "Hi", Summary: "s", Closing: "c"}
		if _, err := generator.SaveDocument(context.Background(), db, owner, generator.TypeEmail, form.Subject, "p", form, form.Summary); err != nil {
			t.Fatalf("save document: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	otherForm := generator.EmailForm{From: "x@y.z", To: "d@e.f", Subject: "Foreign", Greeting: "Hi", Summary: "s", Closing: "c"}
	if _, err := generator.SaveDocument(context.Background(), db, other, generator.TypeEmail, otherForm.Subject, "p", otherForm, "s"); err != nil {
		t.Fatalf("save foreign document: %v", err)
	}

	docs, err := ListDocumentsByUser(context.Background(), db, owner)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for _, d := range docs {
		if d.UserID != owner {
			t.Fatalf("foreign document leaked into listing: %+v", d)
		}
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].CreatedAt.After(docs[i-1].CreatedAt) {
			t.Fatalf("documents not ordered newest first")
		}
	}
}

func TestGetDocumentForUser_RejectsForeignOwner(t *testing.T) {
	db := openMyDocsTestDB(t)
	owner := insertMyDocsTestUser(t, db, "owner@example.com")
	other := insertMyDocsTestUser(t, db, "other@example.com")

	form := generator.EmailForm{From: "a@b.c", To: "d@e.f", Subject: "Mine", Greeting: "Hi", Summary: "s", Closing: "c"}
	doc, err := generator.SaveDocument(context.Background(), db, owner, generator.TypeEmail, form.Subject, "p", form, "s")
	if err != nil {
		t.Fatalf("save document: %v", err)
	}

	if _, err := GetDocumentForUser(context.Background(), db, doc.ID, owner); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := GetDocumentForUser(context.Background(), db, doc.ID, other); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for foreign reader, got %v", err)
	}
}

func TestDeleteDocumentForUser(t *testing.T) {
	db := openMyDocsTestDB(t)
	owner := insertMyDocsTestUser(t, db, "owner@example.com")
	other := insertMyDocsTestUser(t, db, "other@example.com")

	form := generator.EmailForm{From: "a@b.c", To: "d@e.f", Subject: "Mine", Greeting: "Hi", Summary: "s", Closing: "c"}
	doc, err := generator.SaveDocument(context.Background(), db, owner, generator.TypeEmail, form.Subject, "p", form, "s")
	if err != nil {
		t.Fatalf("save document: %v", err)
	}

	if err := DeleteDocumentForUser(context.Background(), db, doc.ID, other); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("foreign delete should report no rows, got %v", err)
	}
	if err := DeleteDocumentForUser(context.Background(), db, doc.ID, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := GetDocumentForUser(context.Background(), db, doc.ID, owner); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("document still readable after delete, err=%v", err)
	}
}

func TestDocListConfig_TypeFilterAndDefaultOrder(t *testing.T) {
	now := time.Now()
	rows := []DocRow{
		{Document: models.Document{ID: "1", Type: "email", Title: "Older", CreatedAt: now.Add(-time.Hour)}},
		{Document: models.Document{ID: "2", Type: "application", Title: "App", CreatedAt: now.Add(-30 * time.Minute)}},
		{Document: models.Document{ID: "3", Type: "email", Title: "Newest", CreatedAt: now}},
	}

	state := listview.DefaultState()
	state.Filters["type"] = "email"
	derived := listview.Derive(DocListConfig(), state, rows)
	if len(derived) != 2 {
		t.Fatalf("expected 2 email rows, got %d", len(derived))
	}
	if derived[0].ID != "3" || derived[1].ID != "1" {
		t.Fatalf("expected newest first, got %v then %v", derived[0].ID, derived[1].ID)
	}
}
