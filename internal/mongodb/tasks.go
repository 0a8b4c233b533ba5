package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/store"
)

// CreateTask inserts a new task document.
func (s *Store) CreateTask(ctx context.Context, task models.Task) error {
	_, err := s.tasks.InsertOne(ctx, task)
	return translate(err)
}

// ListTasks returns the owner's tasks in insertion order.
func (s *Store) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	query := bson.M{"owner_id": ownerID}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	// _id is a UUIDv7 string, which sorts by creation time.
	cursor, err := s.tasks.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a task only if it belongs to ownerID.
func (s *Store) GetTask(ctx context.Context, ownerID, id string) (models.Task, error) {
	var task models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&task)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

// UpdateTask sets only the non-nil fields of patch and returns the updated document.
func (s *Store) UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch) (models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	var task models.Task
	err := s.tasks.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

// DeleteTask removes a task only if it belongs to ownerID.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.tasks.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
