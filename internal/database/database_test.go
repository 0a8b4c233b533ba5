package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/store"
)

var _ store.Backend = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func seedUser(t *testing.T, s *Store, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "hash-" + username,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func seedTask(t *testing.T, s *Store, ownerID, title string, category models.Category) models.Task {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	now := time.Now().UTC()
	task := models.Task{
		ID:          id.String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: "about " + title,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate #%d: %v", i+1, err)
		}
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.ID != alice.ID || got.PasswordHash != alice.PasswordHash {
		t.Fatalf("got %+v, want %+v", got, alice)
	}
	if !got.CreatedAt.Equal(alice.CreatedAt) {
		t.Fatalf("createdAt=%s, want %s", got.CreatedAt, alice.CreatedAt)
	}

	byID, err := s.GetUserByID(ctx, alice.ID)
	if err != nil || byID.Username != "alice" {
		t.Fatalf("get by id: %+v, %v", byID, err)
	}

	dup := models.User{ID: uuid.New().String(), Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate username err=%v, want ErrDuplicate", err)
	}

	// Usernames are case-sensitive.
	seedUser(t, s, "Alice")

	if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing user err=%v, want ErrNotFound", err)
	}
	if _, err := s.GetUserByID(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing id err=%v, want ErrNotFound", err)
	}
}

func TestListTasksOrderAndScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	first := seedTask(t, s, alice.ID, "first", models.CategoryWork)
	seedTask(t, s, bob.ID, "bob's", models.CategoryWork)
	second := seedTask(t, s, alice.ID, "second", models.CategoryStudy)
	third := seedTask(t, s, alice.ID, "third", models.CategoryWork)

	tasks, err := s.ListTasks(ctx, alice.ID, models.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{first.ID, second.ID, third.ID}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.ID != want[i] {
			t.Fatalf("tasks[%d]=%s, want %s", i, task.ID, want[i])
		}
		if task.OwnerID != alice.ID {
			t.Fatalf("task %s leaked from owner %s", task.ID, task.OwnerID)
		}
	}

	empty, err := s.ListTasks(ctx, "no-such-owner", models.TaskFilter{})
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", empty)
	}
}

func TestListTasksFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")

	work := seedTask(t, s, alice.ID, "work", models.CategoryWork)
	seedTask(t, s, alice.ID, "study", models.CategoryStudy)
	done := true
	if _, err := s.UpdateTask(ctx, alice.ID, work.ID, models.TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	category := models.CategoryWork
	byCategory, err := s.ListTasks(ctx, alice.ID, models.TaskFilter{Category: &category})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != work.ID {
		t.Fatalf("category filter got %+v", byCategory)
	}

	notDone := false
	open, err := s.ListTasks(ctx, alice.ID, models.TaskFilter{Completed: &notDone})
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 || open[0].Title != "study" {
		t.Fatalf("completed filter got %+v", open)
	}
}

func TestTaskOwnership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	task := seedTask(t, s, alice.ID, "secret", models.CategoryPersonal)

	if _, err := s.GetTask(ctx, bob.ID, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get as bob err=%v", err)
	}
	title := "hijacked"
	if _, err := s.UpdateTask(ctx, bob.ID, task.ID, models.TaskPatch{Title: &title}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update as bob err=%v", err)
	}
	if err := s.DeleteTask(ctx, bob.ID, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete as bob err=%v", err)
	}

	got, err := s.GetTask(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("get as alice: %v", err)
	}
	if got.Title != "secret" {
		t.Fatalf("title changed to %q", got.Title)
	}

	if err := s.DeleteTask(ctx, alice.ID, task.ID); err != nil {
		t.Fatalf("delete as alice: %v", err)
	}
	if _, err := s.GetTask(ctx, alice.ID, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get after delete err=%v", err)
	}
	if err := s.DeleteTask(ctx, alice.ID, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete err=%v", err)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	task := seedTask(t, s, alice.ID, "Buy milk", models.CategoryPersonal)

	done := true
	updated, err := s.UpdateTask(ctx, alice.ID, task.ID, models.TaskPatch{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatal("completed not set")
	}
	if updated.Title != task.Title || updated.Description != task.Description || updated.Category != task.Category {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("createdAt changed: %s -> %s", task.CreatedAt, updated.CreatedAt)
	}

	description := ""
	category := models.CategoryOther
	updated, err = s.UpdateTask(ctx, alice.ID, task.ID, models.TaskPatch{Description: &description, Category: &category})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if updated.Description != "" || updated.Category != models.CategoryOther || !updated.Completed || updated.Title != "Buy milk" {
		t.Fatalf("second update got %+v", updated)
	}
}

func TestCategoryConstraint(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")

	task := models.Task{
		ID:        uuid.New().String(),
		OwnerID:   alice.ID,
		Title:     "bad",
		Category:  models.Category("Urgent"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.CreateTask(context.Background(), task); err == nil {
		t.Fatal("expected check constraint to reject unknown category")
	}
}

func TestTaskRequiresExistingOwner(t *testing.T) {
	s := newTestStore(t)
	task := models.Task{
		ID:        uuid.New().String(),
		OwnerID:   "ghost",
		Title:     "orphan",
		Category:  models.CategoryOther,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.CreateTask(context.Background(), task); err == nil {
		t.Fatal("expected foreign key to reject unknown owner")
	}
}
