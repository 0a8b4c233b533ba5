// Package store defines the persistence contracts shared by the SQLite and
// MongoDB backends.
package store

import (
	"context"
	"errors"

	"github.com/isdelr/task-manager-be/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// task lookups whose owner does not match.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// TaskStore persists tasks. Every call is scoped by ownerID.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.Task) error
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, id string) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
}

// Backend is a complete persistence backend.
type Backend interface {
	UserStore
	TaskStore
	Ping(ctx context.Context) error
	Close() error
}
