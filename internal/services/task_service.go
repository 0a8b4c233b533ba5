package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/store"
)

// TaskServiceProvider defines the interface for task services. Every method
// is scoped to ownerID.
type TaskServiceProvider interface {
	CreateTask(ctx context.Context, ownerID, title, description string, category models.Category) (models.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	tasks store.TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// CreateTask validates and stores a new, incomplete task for ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID, title, description string, category models.Category) (models.Task, error) {
	if ownerID == "" {
		return models.Task{}, invalid("ownerId", "is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, invalid("title", "is required")
	}
	if !category.Valid() {
		return models.Task{}, invalid("category", "must be one of %v", models.Categories)
	}

	// v7 ids sort by creation time, which the stores rely on for listing order.
	id, err := uuid.NewV7()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}
	now := time.Now().UTC()
	task := models.Task{
		ID:          id.String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns all tasks owned by ownerID that match filter.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, invalid("category", "must be one of %v", models.Categories)
	}
	tasks, err := s.tasks.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task owned by ownerID.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	task, err := s.tasks.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, storeErr(err, "failed to get task")
	}
	return task, nil
}

// UpdateTask applies the fields present in patch and leaves the rest unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (models.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Task{}, invalid("title", "must not be empty")
		}
		patch.Title = &title
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return models.Task{}, invalid("category", "must be one of %v", models.Categories)
	}
	if patch.Empty() {
		return s.GetTask(ctx, ownerID, taskID)
	}

	task, err := s.tasks.UpdateTask(ctx, ownerID, taskID, patch)
	if err != nil {
		return models.Task{}, storeErr(err, "failed to update task")
	}
	return task, nil
}

// DeleteTask removes a task owned by ownerID.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.tasks.DeleteTask(ctx, ownerID, taskID); err != nil {
		return storeErr(err, "failed to delete task")
	}
	return nil
}

func storeErr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
