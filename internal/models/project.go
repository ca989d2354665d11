package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not-started"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	Members     StringList    `json:"members"`
	Tags        StringList    `json:"tags"`
	Attachments StringList    `json:"attachments"`
	Notes       StringList    `json:"notes"`
	Active      bool          `json:"active"`
	CreatedBy   uuid.NullUUID `json:"createdBy"`
	UpdatedBy   uuid.NullUUID `json:"updatedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func NormalizeProjectStatus(s string) ProjectStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "not-started", "not_started", "notstarted":
		return ProjectStatusNotStarted
	case "in-progress", "in_progress", "inprogress", "in progress":
		return ProjectStatusInProgress
	case "completed", "done":
		return ProjectStatusCompleted
	case "on-hold", "on_hold", "onhold", "on hold":
		return ProjectStatusOnHold
	default:
		return ""
	}
}
