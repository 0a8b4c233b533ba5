package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/task-manager-be/internal/models"
	"github.com/isdelr/task-manager-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests for the caller's tasks.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskPayload defines the structure for task creation requests.
type CreateTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTaskPayload defines the structure for partial task updates.
// Absent fields are left unchanged.
type UpdateTaskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

// GetAll handles listing the caller's tasks, optionally filtered by
// ?category= and ?completed=.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), ownerID, filter)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles the request to get a single task by its ID.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	task, err := h.service.GetTask(r.Context(), ownerID, id)
	if err != nil {
		log.Debug().Err(err).Str("user_id", ownerID).Str("task_id", id).Msg("Failed to get task")
		RespondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles the request to create a new task for the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var payload CreateTaskPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}
	category, err := models.ParseCategory(payload.Category)
	if err != nil {
		RespondError(w, r, &services.ValidationError{Field: "category", Message: err.Error()})
		return
	}

	task, err := h.service.CreateTask(r.Context(), ownerID, payload.Title, payload.Description, category)
	if err != nil {
		log.Warn().Err(err).Str("user_id", ownerID).Msg("Failed to create task")
		RespondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles the request to partially update an existing task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	var payload UpdateTaskPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	patch := models.TaskPatch{
		Title:       payload.Title,
		Description: payload.Description,
		Completed:   payload.Completed,
	}
	if payload.Category != nil {
		category, err := models.ParseCategory(*payload.Category)
		if err != nil {
			RespondError(w, r, &services.ValidationError{Field: "category", Message: err.Error()})
			return
		}
		patch.Category = &category
	}

	task, err := h.service.UpdateTask(r.Context(), ownerID, id, patch)
	if err != nil {
		log.Warn().Err(err).Str("user_id", ownerID).Str("task_id", id).Msg("Failed to update task")
		RespondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles the request to delete a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteTask(r.Context(), ownerID, id); err != nil {
		log.Warn().Err(err).Str("user_id", ownerID).Str("task_id", id).Msg("Failed to delete task")
		RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTaskFilter(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter
	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" && raw != "All" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			return filter, &services.ValidationError{Field: "category", Message: err.Error()}
		}
		filter.Category = &category
	}

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, &services.ValidationError{Field: "completed", Message: "must be true or false"}
		}
		filter.Completed = &completed
	}
	return filter, nil
}
