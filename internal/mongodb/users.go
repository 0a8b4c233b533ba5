package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/isdelr/task-manager-be/internal/models"
)

// CreateUser inserts a new user. The unique index turns a taken username into store.ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return translate(err)
}

// GetUserByUsername retrieves a single user by username, including the password hash.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}
