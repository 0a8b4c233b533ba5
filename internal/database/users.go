package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/store"
)

// CreateUser inserts a new user. A taken username yields store.ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, formatTime(user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, store.ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetUserByUsername retrieves a single user by username, including the password hash.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetUserByID retrieves a single user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	err := scanner.Scan(&user.ID, &user.Username, &user.PasswordHash, timestamp{&user.CreatedAt})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
