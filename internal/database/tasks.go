package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/store"
)

const taskColumns = "id, owner_id, title, description, category, completed, created_at, updated_at"

// CreateTask inserts a new task.
func (s *Store) CreateTask(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, task.Description, task.Category, task.Completed,
		formatTime(task.CreatedAt), formatTime(task.UpdatedAt))
	if err != nil && isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

// ListTasks returns the owner's tasks in insertion order.
func (s *Store) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	conds := []string{"owner_id = ?"}
	args := []interface{}{ownerID}
	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Completed != nil {
		conds = append(conds, "completed = ?")
		args = append(args, *filter.Completed)
	}

	// Task ids are UUIDv7, so ordering by id is ordering by creation.
	query := "SELECT " + taskColumns + " FROM tasks WHERE " + strings.Join(conds, " AND ") + " ORDER BY id ASC"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task only if it belongs to ownerID.
func (s *Store) GetTask(ctx context.Context, ownerID, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	return scanTask(row)
}

// UpdateTask applies the non-nil fields of patch in a single statement.
func (s *Store) UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = COALESCE(?, title),
			description = COALESCE(?, description),
			category = COALESCE(?, category),
			completed = COALESCE(?, completed),
			updated_at = ?
		WHERE id = ? AND owner_id = ?
		RETURNING `+taskColumns,
		patch.Title, patch.Description, patch.Category, patch.Completed,
		formatTime(time.Now()), id, ownerID)
	return scanTask(row)
}

// DeleteTask removes a task only if it belongs to ownerID.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	err := scanner.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.Completed,
		timestamp{&task.CreatedAt},
		timestamp{&task.UpdatedAt},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, store.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}
