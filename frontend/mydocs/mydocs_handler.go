package mydocs

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"docsmith/frontend/admin/listview"
	"docsmith/frontend/generator"
	sessioncontext "docsmith/frontend/shared/context"
	"docsmith/infrastructure/sqlite"
)

// MyDocsPageQueryHandler renders the caller's document history as a
// searchable, filterable table.
func MyDocsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		docs, err := ListDocumentsByUser(r.Context(), db, session.UserID)
		if err != nil {
			slog.Error("list documents", slog.Any("err", err))
			http.Error(w, "failed to load documents", http.StatusInternalServerError)
			return
		}

		state := listview.ParseState(r.URL.Query(), []string{"type"})
		view := listview.Apply(DocListConfig(), state, toDocRows(docs))
		renderMyDocsPage(w, session, state, view, r.URL.Query().Get("error"), r.URL.Query().Get("status"))
	}
}

// DownloadDocumentQueryHandler re-renders a saved document and streams it.
func DownloadDocumentQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		docID := r.URL.Query().Get("id")
		doc, err := GetDocumentForUser(r.Context(), db, docID, session.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Redirect(w, r, "/app/docs?error="+url.QueryEscape("document not found"), http.StatusSeeOther)
				return
			}
			slog.Error("load document", slog.Any("err", err))
			http.Error(w, "failed to load document", http.StatusInternalServerError)
			return
		}

		pdfBytes, err := generator.RenderStoredPDF(doc)
		if err != nil {
			slog.Error("render stored document", slog.String("doc_id", doc.ID), slog.Any("err", err))
			http.Redirect(w, r, "/app/docs?error="+url.QueryEscape("failed to render document"), http.StatusSeeOther)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+generator.DownloadFilename(doc.Type, time.Now().UnixMilli()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
	}
}

// DeleteDocumentCommandHandler removes one history row owned by the caller.
func DeleteDocumentCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/docs?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		docID := r.FormValue("id")
		if err := DeleteDocumentForUser(r.Context(), db, docID, session.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Redirect(w, r, "/app/docs?error="+url.QueryEscape("document not found"), http.StatusSeeOther)
				return
			}
			slog.Error("delete document", slog.String("doc_id", docID), slog.Any("err", err))
			http.Redirect(w, r, "/app/docs?error="+url.QueryEscape("failed to delete document"), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/app/docs?status="+url.QueryEscape("document deleted"), http.StatusSeeOther)
	}
}
