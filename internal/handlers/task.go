package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"todo-tracker/internal/db"
	"todo-tracker/internal/models"
	"todo-tracker/internal/service"
)

/*
handles routes:
- GET /api/tasks - list denormalized tasks, optional page/limit/search
- POST /api/tasks - create a new task
- GET /api/tasks/user/{userID} - the user feed with the result envelope
- GET/PUT/PATCH/DELETE /api/tasks/{taskID}
*/

// ListUserTasks returns the envelope produced by the query service:
// items, total, page, pages and a status note.
func (h *Handler) ListUserTasks(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{
		UserID:   chi.URLParam(r, "userID"),
		Search:   r.URL.Query().Get("search"),
		Paginate: true,
	}
	if v := r.URL.Query().Get("page"); v != "" {
		params.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		params.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("pagination"); v != "" {
		params.Paginate = v != "false"
	}

	page, err := h.Query.ListForUser(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserIDRequired), errors.Is(err, service.ErrInvalidUserID):
			sendError(w, err.Error(), http.StatusBadRequest)
		default:
			sendError(w, "Failed to list tasks", http.StatusInternalServerError)
		}
		return
	}
	sendJSON(w, http.StatusOK, page)
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, limit := 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	views, err := h.TaskRepo.SearchViews(r.Context(), db.TaskViewQuery{
		Search: r.URL.Query().Get("search"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		h.Log.WithError(err).Error("listing tasks failed")
		sendError(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, views)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var input struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		DueDate     *time.Time       `json:"dueDate"`
		Priority    string           `json:"priority"`
		Tags        []string         `json:"tags"`
		Attachments []string         `json:"attachments"`
		Notes       []string         `json:"notes"`
		Subtasks    []models.Subtask `json:"subtasks"`
		Completed   bool             `json:"completed"`
		ProjectID   string           `json:"projectId"`
		AssignedTo  string           `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		sendError(w, "title is required", http.StatusBadRequest)
		return
	}
	if len(title) > 200 {
		sendError(w, "title too long (max 200 chars)", http.StatusBadRequest)
		return
	}
	priority := models.NormalizePriority(input.Priority)
	if priority == "" {
		sendError(w, "Invalid priority value", http.StatusBadRequest)
		return
	}
	projectID, ok := parseOptionalUUID(input.ProjectID)
	if !ok {
		sendError(w, "projectId must be a valid uuid", http.StatusBadRequest)
		return
	}
	assignedTo, ok := parseOptionalUUID(input.AssignedTo)
	if !ok {
		sendError(w, "assignedTo must be a valid uuid", http.StatusBadRequest)
		return
	}

	// References are not validated against projects/users on write;
	// reads tolerate dangling keys.
	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
		Priority:    priority,
		Tags:        input.Tags,
		Attachments: input.Attachments,
		Notes:       input.Notes,
		Subtasks:    input.Subtasks,
		Completed:   input.Completed,
		ProjectID:   projectID,
		AssignedTo:  assignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.TaskRepo.Create(r.Context(), task); err != nil {
		h.Log.WithError(err).Error("creating task failed")
		sendError(w, "Failed to create task", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", "/api/tasks/"+task.ID.String())
	sendJSON(w, http.StatusCreated, task)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		sendError(w, "task_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	view, err := h.TaskRepo.GetViewByID(r.Context(), taskID.String())
	if err != nil {
		h.Log.WithError(err).Error("fetching task failed")
		sendError(w, "Failed to fetch task", http.StatusInternalServerError)
		return
	}
	if view == nil {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		sendError(w, "task_id must be a valid uuid", http.StatusBadRequest)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	existing, err := h.TaskRepo.GetByID(r.Context(), taskID.String())
	if err != nil {
		h.Log.WithError(err).Error("fetching task failed")
		sendError(w, "Failed to fetch task", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}

	var input struct {
		Title       *string           `json:"title"`
		Description *string           `json:"description"`
		DueDate     *time.Time        `json:"dueDate"`
		Priority    *string           `json:"priority"`
		Tags        *[]string         `json:"tags"`
		Attachments *[]string         `json:"attachments"`
		Notes       *[]string         `json:"notes"`
		Subtasks    *[]models.Subtask `json:"subtasks"`
		Completed   *bool             `json:"completed"`
		ProjectID   *string           `json:"projectId"`
		AssignedTo  *string           `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			sendError(w, "title cannot be empty", http.StatusBadRequest)
			return
		}
		if len(title) > 200 {
			sendError(w, "title too long (max 200 chars)", http.StatusBadRequest)
			return
		}
		existing.Title = title
	}
	if input.Description != nil {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.DueDate != nil {
		existing.DueDate = input.DueDate
	}
	if input.Priority != nil {
		priority := models.NormalizePriority(*input.Priority)
		if priority == "" {
			sendError(w, "Invalid priority value", http.StatusBadRequest)
			return
		}
		existing.Priority = priority
	}
	if input.Tags != nil {
		existing.Tags = *input.Tags
	}
	if input.Attachments != nil {
		existing.Attachments = *input.Attachments
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}
	if input.Subtasks != nil {
		existing.Subtasks = *input.Subtasks
	}
	if input.Completed != nil {
		existing.Completed = *input.Completed
	}
	if input.ProjectID != nil {
		projectID, ok := parseOptionalUUID(*input.ProjectID)
		if !ok {
			sendError(w, "projectId must be a valid uuid", http.StatusBadRequest)
			return
		}
		existing.ProjectID = projectID
	}
	if input.AssignedTo != nil {
		assignedTo, ok := parseOptionalUUID(*input.AssignedTo)
		if !ok {
			sendError(w, "assignedTo must be a valid uuid", http.StatusBadRequest)
			return
		}
		existing.AssignedTo = assignedTo
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := h.TaskRepo.Update(r.Context(), existing); err != nil {
		h.Log.WithError(err).Error("updating task failed")
		sendError(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, existing)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		sendError(w, "task_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	if err := h.TaskRepo.Delete(r.Context(), taskID.String()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			sendError(w, "Task not found", http.StatusNotFound)
			return
		}
		h.Log.WithError(err).Error("deleting task failed")
		sendError(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalUUID maps "" to the null uuid and reports invalid input.
func parseOptionalUUID(s string) (uuid.NullUUID, bool) {
	if s == "" {
		return uuid.NullUUID{}, true
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.NullUUID{}, false
	}
	return uuid.NullUUID{UUID: id, Valid: true}, true
}
