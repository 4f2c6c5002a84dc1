package generator

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

// SaveDocument writes a history row for a generated document and returns it.
func SaveDocument(ctx context.Context, db *sqlite.DB, userID int64, docType, title, prompt string, form any, previewSource string) (models.Document, error) {
	formJSON, err := json.Marshal(form)
	if err != nil {
		return models.Document{}, err
	}

	doc := models.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Type:           docType,
		Title:          title,
		Prompt:         prompt,
		FormJSON:       string(formJSON),
		ContentPreview: makePreview(previewSource),
		CreatedAt:      time.Now().UTC(),
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&doc).Exec(ctx)
		return err
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// DocRef derives the printable document reference from the document id.
func DocRef(docID string) string {
	ref := strings.ReplaceAll(docID, "-", "")
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return "D" + strings.ToUpper(ref)
}

func makePreview(content string) string {
	content = strings.TrimSpace(content)
	// Truncate on runes so a multi-byte character is never split.
	if runes := []rune(content); len(runes) > 150 {
		content = string(runes[:150])
	}
	return content + "..."
}
