package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Priority    Priority      `json:"priority"`
	Tags        StringList    `json:"tags"`
	Attachments StringList    `json:"attachments"`
	Notes       StringList    `json:"notes"`
	Subtasks    SubtaskList   `json:"subtasks"`
	Completed   bool          `json:"completed"`
	ProjectID   uuid.NullUUID `json:"projectId"`
	AssignedTo  uuid.NullUUID `json:"assignedTo"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Subtask mirrors a subset of Task and lives inside its parent document.
type Subtask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
}

// convert various user inputs to standard priority values
func NormalizePriority(p string) Priority {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "", "medium", "normal":
		return PriorityMedium
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return ""
	}
}
