package service

import (
	"context"
	"fmt"

	"todo-tracker/internal/db"
)

// Stats is the report-counts summary.
type Stats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
	TotalProjects  int `json:"totalProjects"`
	TotalUsers     int `json:"totalUsers"`
}

type StatsService struct {
	tasks    db.TaskRepositoryInterface
	projects db.ProjectRepositoryInterface
	users    db.UserRepositoryInterface
}

func NewStatsService(tasks db.TaskRepositoryInterface, projects db.ProjectRepositoryInterface, users db.UserRepositoryInterface) *StatsService {
	return &StatsService{tasks: tasks, projects: projects, users: users}
}

func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalTasks, err = s.tasks.Count(ctx); err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	if stats.CompletedTasks, err = s.tasks.CountByCompleted(ctx, true); err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks

	if stats.TotalProjects, err = s.projects.Count(ctx); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return stats, nil
}
