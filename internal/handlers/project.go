package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"todo-tracker/internal/db"
	"todo-tracker/internal/models"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ProjectRepo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("listing projects failed")
		sendError(w, "Failed to list projects", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, projects)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var input struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		Members     []string   `json:"members"`
		Tags        []string   `json:"tags"`
		Attachments []string   `json:"attachments"`
		Notes       []string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		sendError(w, "name is required", http.StatusBadRequest)
		return
	}
	status := models.NormalizeProjectStatus(input.Status)
	if status == "" {
		sendError(w, "Invalid status value", http.StatusBadRequest)
		return
	}
	priority := models.NormalizePriority(input.Priority)
	if priority == "" {
		sendError(w, "Invalid priority value", http.StatusBadRequest)
		return
	}

	creator, _ := parseOptionalUUID(UserIDFromContext(r.Context()))
	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		Priority:    priority,
		Members:     input.Members,
		Tags:        input.Tags,
		Attachments: input.Attachments,
		Notes:       input.Notes,
		Active:      true,
		CreatedBy:   creator,
		UpdatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.ProjectRepo.Create(r.Context(), project); err != nil {
		h.Log.WithError(err).Error("creating project failed")
		sendError(w, "Failed to create project", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", "/api/projects/"+project.ID.String())
	sendJSON(w, http.StatusCreated, project)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		sendError(w, "project_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	project, err := h.ProjectRepo.GetByID(r.Context(), projectID.String())
	if err != nil {
		h.Log.WithError(err).Error("fetching project failed")
		sendError(w, "Failed to fetch project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		sendError(w, "Project not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		sendError(w, "project_id must be a valid uuid", http.StatusBadRequest)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	existing, err := h.ProjectRepo.GetByID(r.Context(), projectID.String())
	if err != nil {
		h.Log.WithError(err).Error("fetching project failed")
		sendError(w, "Failed to fetch project", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		sendError(w, "Project not found", http.StatusNotFound)
		return
	}

	var input struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		Members     *[]string  `json:"members"`
		Tags        *[]string  `json:"tags"`
		Attachments *[]string  `json:"attachments"`
		Notes       *[]string  `json:"notes"`
		Active      *bool      `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			sendError(w, "name cannot be empty", http.StatusBadRequest)
			return
		}
		existing.Name = name
	}
	if input.Description != nil {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.StartDate != nil {
		existing.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		existing.EndDate = input.EndDate
	}
	if input.Status != nil {
		status := models.NormalizeProjectStatus(*input.Status)
		if status == "" {
			sendError(w, "Invalid status value", http.StatusBadRequest)
			return
		}
		existing.Status = status
	}
	if input.Priority != nil {
		priority := models.NormalizePriority(*input.Priority)
		if priority == "" {
			sendError(w, "Invalid priority value", http.StatusBadRequest)
			return
		}
		existing.Priority = priority
	}
	if input.Members != nil {
		existing.Members = *input.Members
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
	if input.Active != nil {
		existing.Active = *input.Active
	}
	existing.UpdatedBy, _ = parseOptionalUUID(UserIDFromContext(r.Context()))
	existing.UpdatedAt = time.Now().UTC()

	if err := h.ProjectRepo.Update(r.Context(), existing); err != nil {
		h.Log.WithError(err).Error("updating project failed")
		sendError(w, "Failed to update project", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, existing)
}

// DeleteProject does not cascade: tasks keep their project_id and reads
// degrade to a null project sub-document.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		sendError(w, "project_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	if err := h.ProjectRepo.Delete(r.Context(), projectID.String()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			sendError(w, "Project not found", http.StatusNotFound)
			return
		}
		h.Log.WithError(err).Error("deleting project failed")
		sendError(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
