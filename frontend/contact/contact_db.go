package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrMessageRequired = errors.New("message is required")
)

// SaveContact stores a contact form submission. The email is taken from the
// signed-in account, not the form, so messages are always attributable.
func SaveContact(ctx context.Context, db *sqlite.DB, userID int64, email, name, message string) (models.Contact, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" {
		return models.Contact{}, ErrNameRequired
	}
	if message == "" {
		return models.Contact{}, ErrMessageRequired
	}

	row := models.Contact{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&row).Exec(ctx)
		return err
	})
	if err != nil {
		return models.Contact{}, err
	}
	return row, nil
}
