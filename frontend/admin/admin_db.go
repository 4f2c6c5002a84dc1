package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"docsmith/infrastructure/audit"
	"docsmith/infrastructure/rbac"
	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

// LoadManagedUsers returns every account the dashboard manages. The bootstrap
// superAdmin is filtered in SQL; the pipeline excludes it again so a stale
// snapshot cannot surface it.
func LoadManagedUsers(ctx context.Context, db *sqlite.DB) ([]models.User, error) {
	var users []models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&users).
			Where("role != ?", rbac.RoleSuperAdmin).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// LoadContacts returns every contact message.
func LoadContacts(ctx context.Context, db *sqlite.DB) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&contacts).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetUserByID loads one account for guard checks before a mutation.
func GetUserByID(ctx context.Context, db *sqlite.DB, userID int64) (models.User, error) {
	var user models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUserByID removes an account. Sessions, documents and contact messages
// follow via foreign keys. Guard checks run in the handler before this call.
func DeleteUserByID(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID, targetID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.User
		if err := tx.NewSelect().Model(&before).Where("id = ?", targetID).Scan(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.User)(nil)).Where("id = ?", targetID).Exec(ctx); err != nil {
			return err
		}
		return auditSvc.Write(ctx, tx, actorID, "user.delete", "users", before.Email, before, nil)
	})
}

// UpdateUserRole changes an account's role.
func UpdateUserRole(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID, targetID int64, role string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.User
		if err := tx.NewSelect().Model(&before).Where("id = ?", targetID).Scan(ctx); err != nil {
			return err
		}
		after := before
		after.Role = role
		after.UpdatedAt = time.Now().UTC()
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("role = ?", role).
			Set("updated_at = ?", after.UpdatedAt).
			Where("id = ?", targetID).
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
		return auditSvc.Write(ctx, tx, actorID, "user.role", "users", before.Email, before, after)
	})
}

// DeleteContactByID removes one contact message.
func DeleteContactByID(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID int64, contactID string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Contact
		if err := tx.NewSelect().Model(&before).Where("id = ?", contactID).Scan(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Contact)(nil)).Where("id = ?", contactID).Exec(ctx); err != nil {
			return err
		}
		return auditSvc.Write(ctx, tx, actorID, "contact.delete", "contacts", contactID, before, nil)
	})
}
