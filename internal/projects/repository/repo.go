package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptask-dev/uptask-backend/internal/projects/domain"
)

// ProjectRepository is the SQL-backed project store. Identifier assignment is
// owned here: ids come from the database, never from callers.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id::text, creator_id::text, name, description, client, delivery_date, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.CreatorID, &p.Name, &p.Description, &p.Client,
		&p.DeliveryDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project owned by creatorID with an empty collaborator
// set and returns the stored row.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
insert into projects (creator_id, name, description, client, delivery_date)
values ($1::uuid, $2, $3, $4, $5)
returning ` + projectColumns + `;
`
	return scanProject(r.db.QueryRowContext(ctx, q,
		p.CreatorID, p.Name, p.Description, p.Client, p.DeliveryDate))
}

// ListForUser returns every project the user created or collaborates on,
// without tasks. This backs the summary listing.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects p
where p.creator_id = $1::uuid
   or exists (
        select 1 from project_collaborators pc
        where pc.project_id = p.id and pc.user_id = $1::uuid
   )
order by created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.Name, &p.Description, &p.Client,
			&p.DeliveryDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindByID loads a project with its collaborator projections (needed for
// authorization checks) but without tasks.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1::uuid;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}

	if p.Collaborators, err = r.collaborators(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByIDExpanded loads a project with collaborator projections and the full
// task list, including who completed each task.
func (r *ProjectRepository) FindByIDExpanded(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `
select t.id::text, t.name, t.description, t.priority, t.delivery_date, t.completed,
       coalesce(t.completed_by::text, ''), coalesce(u.name, ''), t.completed_at
from tasks t
left join users u on u.id = t.completed_by
where t.project_id = $1::uuid
order by t.created_at asc;
`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Priority, &t.DeliveryDate,
			&t.Completed, &t.CompletedByID, &t.CompletedByName, &t.CompletedAt); err != nil {
			return nil, err
		}
		p.Tasks = append(p.Tasks, t)
	}
	return p, rows.Err()
}

func (r *ProjectRepository) collaborators(ctx context.Context, projectID string) ([]domain.Collaborator, error) {
	const q = `
select u.id::text, coalesce(u.name, ''), coalesce(u.email, '')
from project_collaborators pc
join users u on u.id = pc.user_id
where pc.project_id = $1::uuid
order by pc.added_at asc;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Collaborator
	for rows.Next() {
		var c domain.Collaborator
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists the four mutable scalar fields.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
update projects
set name = $2, description = $3, client = $4, delivery_date = $5, updated_at = now()
where id = $1::uuid
returning ` + projectColumns + `;
`
	return scanProject(r.db.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Description, p.Client, p.DeliveryDate))
}

// Delete removes the project. Collaborator rows and tasks go with it via
// ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const q = `delete from projects where id = $1::uuid;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddCollaborator appends the user to the project's collaborator set as a
// single conditional insert, so two concurrent adds cannot both succeed.
// Returns false when the user was already a member.
func (r *ProjectRepository) AddCollaborator(ctx context.Context, projectID, userID string) (bool, error) {
	const q = `
insert into project_collaborators (project_id, user_id)
values ($1::uuid, $2::uuid)
on conflict do nothing;
`
	res, err := r.db.ExecContext(ctx, q, projectID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveCollaborator drops the user from the collaborator set. Removing a
// non-member is a no-op, not an error.
func (r *ProjectRepository) RemoveCollaborator(ctx context.Context, projectID, userID string) error {
	const q = `
delete from project_collaborators
where project_id = $1::uuid and user_id = $2::uuid;
`
	_, err := r.db.ExecContext(ctx, q, projectID, userID)
	return err
}

// ListDueBetween returns delivery reminders: projects whose delivery date
// falls inside the window, with the creator's contact projection attached.
func (r *ProjectRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.DueProject, error) {
	const q = `
select p.id::text, p.name, p.delivery_date,
       coalesce(u.name, ''), coalesce(u.email, '')
from projects p
join users u on u.id = p.creator_id
where p.delivery_date >= $1 and p.delivery_date < $2
order by p.delivery_date asc;
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DueProject
	for rows.Next() {
		var d domain.DueProject
		if err := rows.Scan(&d.ID, &d.Name, &d.DeliveryDate, &d.CreatorName, &d.CreatorEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
