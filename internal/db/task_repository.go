package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-tracker/internal/models"
	"todo-tracker/internal/search"
)

// defines methods for task db operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetViewByID(ctx context.Context, id string) (*models.TaskView, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	SearchViews(ctx context.Context, q TaskViewQuery) ([]*models.TaskView, error)
	CountViews(ctx context.Context, assignee uuid.NullUUID, term string) (int, error)
	Count(ctx context.Context) (int, error)
	CountByCompleted(ctx context.Context, completed bool) (int, error)
}

// TaskViewQuery selects denormalized task views. A zero Assignee means no
// assignment filter; Limit <= 0 disables the LIMIT/OFFSET stage.
type TaskViewQuery struct {
	Assignee uuid.NullUUID
	Search   string
	Offset   int
	Limit    int
}

type TaskRepository struct {
	db        *sql.DB
	predicate *search.PredicateBuilder
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{
		db:        db,
		predicate: search.NewTaskPredicateBuilder(),
	}
}

const taskColumns = `t.id, t.title, t.description, t.due_date, t.priority,
 t.tags, t.attachments, t.notes, t.subtasks, t.completed,
 t.project_id, t.assigned_to, t.created_at, t.updated_at`

// One query joins projects and users for any number of tasks; a dangling
// or null foreign key simply yields NULL columns for the sub-document.
const taskViewSelect = `SELECT ` + taskColumns + `,
 p.id, p.name, p.description, p.start_date, p.end_date, p.status, p.priority,
 p.members, p.tags, p.attachments, p.notes, p.active,
 p.created_by, p.updated_by, p.created_at, p.updated_at,
 u.id, u.name, u.email, u.role
 FROM tasks t
 LEFT JOIN projects p ON p.id = t.project_id
 LEFT JOIN users u ON u.id = t.assigned_to`

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (id, title, description, due_date, priority,
	 tags, attachments, notes, subtasks, completed, project_id, assigned_to,
	 created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, nullTime(task.DueDate), task.Priority,
		task.Tags, task.Attachments, task.Notes, task.Subtasks, task.Completed,
		task.ProjectID, task.AssignedTo, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

func (r *TaskRepository) GetViewByID(ctx context.Context, id string) (*models.TaskView, error) {
	query := taskViewSelect + ` WHERE t.id = $1`
	view, err := scanTaskView(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return view, err
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, due_date = $3,
	 priority = $4, tags = $5, attachments = $6, notes = $7, subtasks = $8,
	 completed = $9, project_id = $10, assigned_to = $11, updated_at = $12
	 WHERE id = $13`

	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, nullTime(task.DueDate), task.Priority,
		task.Tags, task.Attachments, task.Notes, task.Subtasks, task.Completed,
		task.ProjectID, task.AssignedTo, task.UpdatedAt, task.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *TaskRepository) SearchViews(ctx context.Context, q TaskViewQuery) ([]*models.TaskView, error) {
	where, args := r.buildFilter(q.Assignee, q.Search)

	query := taskViewSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY t.created_at, t.id"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]*models.TaskView, 0)
	for rows.Next() {
		view, err := scanTaskView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// CountViews counts every view matching the same filter SearchViews uses,
// independent of any LIMIT/OFFSET.
func (r *TaskRepository) CountViews(ctx context.Context, assignee uuid.NullUUID, term string) (int, error) {
	where, args := r.buildFilter(assignee, term)

	query := `SELECT COUNT(*) FROM tasks t
	 LEFT JOIN projects p ON p.id = t.project_id
	 LEFT JOIN users u ON u.id = t.assigned_to`
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count)
	return count, err
}

func (r *TaskRepository) CountByCompleted(ctx context.Context, completed bool) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE completed = $1`, completed).Scan(&count)
	return count, err
}

func (r *TaskRepository) buildFilter(assignee uuid.NullUUID, term string) (string, []any) {
	var where []string
	var args []any

	if assignee.Valid {
		where = append(where, fmt.Sprintf("t.assigned_to = $%d", len(args)+1))
		args = append(args, assignee.UUID)
	}
	cond, condArgs := r.predicate.Build(term, search.TaskFields(), len(args)+1)
	if cond != "" {
		where = append(where, cond)
		args = append(args, condArgs...)
	}
	return strings.Join(where, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var due sql.NullTime
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &due, &task.Priority,
		&task.Tags, &task.Attachments, &task.Notes, &task.Subtasks, &task.Completed,
		&task.ProjectID, &task.AssignedTo, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.DueDate = timePtr(due)
	return task, nil
}

func scanTaskView(row rowScanner) (*models.TaskView, error) {
	view := &models.TaskView{}
	var due sql.NullTime

	var (
		pID                  uuid.NullUUID
		pName, pDescription  sql.NullString
		pStart, pEnd         sql.NullTime
		pStatus, pPriority   sql.NullString
		pMembers, pTags      models.StringList
		pAttachments, pNotes models.StringList
		pActive              sql.NullBool
		pCreatedBy           uuid.NullUUID
		pUpdatedBy           uuid.NullUUID
		pCreated, pUpdated   sql.NullTime

		uID                 uuid.NullUUID
		uName, uEmail, uRole sql.NullString
	)

	err := row.Scan(
		&view.ID, &view.Title, &view.Description, &due, &view.Priority,
		&view.Tags, &view.Attachments, &view.Notes, &view.Subtasks, &view.Completed,
		&view.ProjectID, &view.AssignedTo, &view.CreatedAt, &view.UpdatedAt,
		&pID, &pName, &pDescription, &pStart, &pEnd, &pStatus, &pPriority,
		&pMembers, &pTags, &pAttachments, &pNotes, &pActive,
		&pCreatedBy, &pUpdatedBy, &pCreated, &pUpdated,
		&uID, &uName, &uEmail, &uRole,
	)
	if err != nil {
		return nil, err
	}
	view.DueDate = timePtr(due)

	if pID.Valid {
		view.Project = &models.Project{
			ID:          pID.UUID,
			Name:        pName.String,
			Description: pDescription.String,
			StartDate:   timePtr(pStart),
			EndDate:     timePtr(pEnd),
			Status:      models.ProjectStatus(pStatus.String),
			Priority:    models.Priority(pPriority.String),
			Members:     pMembers,
			Tags:        pTags,
			Attachments: pAttachments,
			Notes:       pNotes,
			Active:      pActive.Bool,
			CreatedBy:   pCreatedBy,
			UpdatedBy:   pUpdatedBy,
			CreatedAt:   pCreated.Time,
			UpdatedAt:   pUpdated.Time,
		}
	}
	if uID.Valid {
		view.Assignee = &models.User{
			ID:    uID.UUID,
			Name:  uName.String,
			Email: uEmail.String,
			Role:  uRole.String,
		}
	}
	return view, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
