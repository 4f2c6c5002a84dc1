package mydocs

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

// ListDocumentsByUser returns the caller's history, newest first.
func ListDocumentsByUser(ctx context.Context, db *sqlite.DB, userID int64) ([]models.Document, error) {
	var docs []models.Document
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&docs).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocumentForUser loads one document only if the caller owns it. A foreign
// or missing id reads as sql.ErrNoRows so handlers cannot leak other users'
// documents.
func GetDocumentForUser(ctx context.Context, db *sqlite.DB, docID string, userID int64) (models.Document, error) {
	var doc models.Document
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&doc).
			Where("id = ?", docID).
			Where("user_id = ?", userID).
			Scan(ctx)
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// DeleteDocumentForUser removes a document the caller owns.
func DeleteDocumentForUser(ctx context.Context, db *sqlite.DB, docID string, userID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.Document)(nil)).
			Where("id = ?", docID).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}
