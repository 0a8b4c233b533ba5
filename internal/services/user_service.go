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
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordBytes = 72
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, username, password string) (models.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService registers users and checks their credentials.
type UserService struct {
	users     store.UserStore
	cost      int
	dummyHash []byte
}

// NewUserService creates a new UserService hashing with the given bcrypt cost.
func NewUserService(users store.UserStore, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown so both failure paths do the same work.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &UserService{users: users, cost: cost, dummyHash: dummy}
}

// CreateUser validates the input, hashes the password and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, invalid("username", "is required")
	}
	if len(password) < MinPasswordLength {
		return models.User{}, invalid("password", "must be at least %d characters", MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return models.User{}, invalid("password", "must be at most %d bytes", maxPasswordBytes)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// VerifyCredentials returns the user when password matches the stored hash.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
