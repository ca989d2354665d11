// Package service orchestrates repositories into the operations the
// handlers expose.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"todo-tracker/internal/db"
	"todo-tracker/internal/models"
)

var (
	ErrUserIDRequired = errors.New("userId is required")
	ErrInvalidUserID  = errors.New("userId must be a valid uuid")
)

var (
	userTaskQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todotracker_user_task_queries_total",
			Help: "Total number of user task feed queries",
		},
		[]string{"status"},
	)

	userTaskQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "todotracker_user_task_query_duration_seconds",
			Help:    "Duration of user task feed queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

const (
	defaultPage  = 1
	defaultLimit = 10

	notePaginated = "paginated results"
	noteComplete  = "complete result set, pagination disabled"
)

// ListParams carries the caller-supplied query parameters. Zero values
// mean "not supplied" for Page and Limit.
type ListParams struct {
	UserID   string
	Page     int
	Limit    int
	Search   string
	Paginate bool
}

// TaskQueryService returns a user's tasks as denormalized views with
// optional free-text filtering and pagination.
type TaskQueryService struct {
	tasks db.TaskRepositoryInterface
	log   *logrus.Logger
}

func NewTaskQueryService(tasks db.TaskRepositoryInterface, log *logrus.Logger) *TaskQueryService {
	return &TaskQueryService{tasks: tasks, log: log}
}

// ListForUser selects the tasks assigned to params.UserID, joins their
// project and user references, filters by the search term across the
// searchable field set and returns one page plus the total match count,
// or the complete match set when pagination is disabled.
//
// Page values below 1 are clamped to 1, so the skip never goes negative.
func (s *TaskQueryService) ListForUser(ctx context.Context, params ListParams) (*models.TaskPage, error) {
	if params.UserID == "" {
		return nil, ErrUserIDRequired
	}
	userID, err := uuid.Parse(params.UserID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	start := time.Now()
	result, err := s.listForUser(ctx, userID, page, limit, params.Search, params.Paginate)
	userTaskQueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		userTaskQueryCount.WithLabelValues("error").Inc()
		s.log.WithFields(logrus.Fields{
			"user_id": params.UserID,
			"search":  params.Search,
		}).WithError(err).Error("user task query failed")
		return nil, err
	}
	userTaskQueryCount.WithLabelValues("success").Inc()
	return result, nil
}

func (s *TaskQueryService) listForUser(ctx context.Context, userID uuid.UUID, page, limit int, term string, paginate bool) (*models.TaskPage, error) {
	assignee := uuid.NullUUID{UUID: userID, Valid: true}

	if !paginate {
		views, err := s.tasks.SearchViews(ctx, db.TaskViewQuery{
			Assignee: assignee,
			Search:   term,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch user tasks: %w", err)
		}
		return &models.TaskPage{
			Items: views,
			Total: len(views),
			Page:  page,
			Pages: 1,
			Note:  noteComplete,
		}, nil
	}

	views, err := s.tasks.SearchViews(ctx, db.TaskViewQuery{
		Assignee: assignee,
		Search:   term,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch user tasks: %w", err)
	}

	// Exact count over the same filter, independent of skip/limit.
	total, err := s.tasks.CountViews(ctx, assignee, term)
	if err != nil {
		return nil, fmt.Errorf("count user tasks: %w", err)
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return &models.TaskPage{
		Items: views,
		Total: total,
		Page:  page,
		Pages: pages,
		Note:  notePaginated,
	}, nil
}
