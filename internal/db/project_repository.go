package db

import (
	"context"
	"database/sql"

	"todo-tracker/internal/models"
)

// defines methods for project db operations
type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, description, start_date, end_date, status,
 priority, members, tags, attachments, notes, active, created_by, updated_by,
 created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description,
		nullTime(project.StartDate), nullTime(project.EndDate),
		project.Status, project.Priority,
		project.Members, project.Tags, project.Attachments, project.Notes,
		project.Active, project.CreatedBy, project.UpdatedBy,
		project.CreatedAt, project.UpdatedAt)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return project, err
}

func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `UPDATE projects SET name = $1, description = $2, start_date = $3,
	 end_date = $4, status = $5, priority = $6, members = $7, tags = $8,
	 attachments = $9, notes = $10, active = $11, updated_by = $12,
	 updated_at = $13 WHERE id = $14`

	res, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description,
		nullTime(project.StartDate), nullTime(project.EndDate),
		project.Status, project.Priority,
		project.Members, project.Tags, project.Attachments, project.Notes,
		project.Active, project.UpdatedBy, project.UpdatedAt, project.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes the project only. Tasks referencing it keep their
// project_id; reads degrade to a null project sub-document.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var start, end sql.NullTime
	err := row.Scan(
		&project.ID, &project.Name, &project.Description, &start, &end,
		&project.Status, &project.Priority,
		&project.Members, &project.Tags, &project.Attachments, &project.Notes,
		&project.Active, &project.CreatedBy, &project.UpdatedBy,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.StartDate = timePtr(start)
	project.EndDate = timePtr(end)
	return project, nil
}
