package login

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"docsmith/infrastructure/argon"
	"docsmith/infrastructure/rbac"
	"docsmith/infrastructure/sqlite"
	"docsmith/models"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailExists      = errors.New("an account with this email already exists")
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func findUserByEmail(ctx context.Context, tx bun.Tx, email string) (models.User, error) {
	var user models.User
	err := tx.NewSelect().
		Model(&user).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// authenticateUser verifies credentials and marks the user active with a
// fresh last_login timestamp.
func authenticateUser(ctx context.Context, db *sqlite.DB, email, password string) (models.User, error) {
	var user models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		user, err = findUserByEmail(ctx, tx, email)
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	ok, err := argon.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, sql.ErrNoRows
	}

	now := time.Now()
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("status = ?", StatusActive).
			Set("last_login = ?", now).
			Set("updated_at = ?", now).
			Where("id = ?", user.ID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	user.Status = StatusActive
	user.LastLogin = &now

	return user, nil
}

// CreateAccount registers a new user. The display name defaults to the part
// of the email before the '@'.
func CreateAccount(ctx context.Context, db *sqlite.DB, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, ErrEmailRequired
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return models.User{}, ErrPasswordRequired
	}
	if err := ValidatePasswordPolicy(password); err != nil {
		return models.User{}, err
	}

	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now()
	user := models.User{
		Email:        email,
		DisplayName:  email[:strings.Index(email, "@")],
		PasswordHash: hash,
		Role:         rbac.RoleUser,
		Status:       StatusActive,
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var count int
		if err := tx.NewRaw(`SELECT COUNT(*) FROM users WHERE LOWER(email) = ?`, strings.ToLower(email)).Scan(ctx, &count); err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailExists
		}
		if _, err := tx.NewInsert().Model(&user).Exec(ctx); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT id FROM users WHERE LOWER(email) = ?`, strings.ToLower(email)).Scan(ctx, &user.ID)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// MarkInactive records that the user has logged out.
func MarkInactive(ctx context.Context, db *sqlite.DB, userID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("status = ?", StatusInactive).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", userID).
			Exec(ctx)
		return err
	})
}

func persistSession(ctx context.Context, db *sqlite.DB, session models.Session) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		// Keep one active session row per token; token is unique ID.
		_, err := tx.NewInsert().Model(&models.Session{
			ID:        session.ID,
			UserID:    session.UserID,
			ExpiresAt: session.ExpiresAt,
		}).Exec(ctx)
		return err
	})
}

func DeleteSessionByToken(ctx context.Context, db *sqlite.DB, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}

func LoadSessionByToken(ctx context.Context, db *sqlite.DB, token string) (models.Session, error) {
	var session models.Session
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model(&session).
			Relation("User").
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}
		session.UserRoles = []string{session.User.Role}
		if session.ScreenPermissions == nil {
			session.ScreenPermissions = make(map[string]int)
		}
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired() {
		_ = DeleteSessionByToken(ctx, db, token)
		return models.Session{}, sql.ErrNoRows
	}
	return session, nil
}

// UpsertUser creates or updates a user with the given role and password.
// Used by the seed command to bootstrap the superAdmin account.
func UpsertUser(ctx context.Context, db *sqlite.DB, email, displayName, role, rawPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	rawPassword = strings.TrimSpace(rawPassword)
	if rawPassword == "" {
		return ErrPasswordRequired
	}
	if err := ValidatePasswordPolicy(rawPassword); err != nil {
		return err
	}
	if displayName == "" {
		if at := strings.Index(email, "@"); at > 0 {
			displayName = email[:at]
		} else {
			displayName = email
		}
	}
	hash, err := argon.CreateHash(rawPassword, argon.DefaultParams)
	if err != nil {
		return err
	}

	now := time.Now()
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (email, display_name, password_hash, role, status, created_at, updated_at)
VALUES (?, ?, ?, ?, 'active', ?, ?)
ON CONFLICT(email) DO UPDATE SET
  password_hash = excluded.password_hash,
  role = excluded.role,
  updated_at = excluded.updated_at`, email, displayName, hash, role, now, now)
		return err
	})
}
