package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/vidshop/internal/models"
)

const userColumns = `id, role, email, password_hash, full_name, username, avatar_url, created_at, updated_at`

// CreateUser inserts u and sets its ID.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (role, email, password_hash, full_name, username, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Role, u.Email, u.PasswordHash, u.FullName, u.Username, u.AvatarURL, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID, err = res.LastInsertId()
	return err
}

// UpdateUser saves the editable profile fields of u (role, username and
// avatar).
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	// MySQL reports 0 affected rows for an unchanged row, so the caller
	// loads the user first instead of relying on RowsAffected.
	_, err := s.DB.ExecContext(ctx, `
		UPDATE users SET role = ?, username = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`,
		u.Role, u.Username, u.AvatarURL, u.UpdatedAt, u.ID)
	if isDuplicateKey(err) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.FullName, &u.Username, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
