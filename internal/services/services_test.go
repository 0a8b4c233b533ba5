package services_test

import (
	"path/filepath"
	"testing"

	"github.com/isdelr/task-manager-be/internal/database"
	"github.com/isdelr/task-manager-be/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func newTestServices(t *testing.T) (*services.UserService, *services.TaskService) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := database.NewStore(db)
	return services.NewUserService(s, bcrypt.MinCost), services.NewTaskService(s)
}
