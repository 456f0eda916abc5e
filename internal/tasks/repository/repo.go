package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptask-dev/uptask-backend/internal/tasks/domain"
)

// TaskRepository provides persistence operations for tasks.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id::text, project_id::text, name, description, priority, delivery_date,
  completed, coalesce(completed_by::text, ''), completed_at, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Priority,
		&t.DeliveryDate, &t.Completed, &t.CompletedBy, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	const q = `
insert into tasks (project_id, name, description, priority, delivery_date)
values ($1::uuid, $2, $3, $4, $5)
returning ` + taskColumns + `;
`
	return scanTask(r.db.QueryRowContext(ctx, q,
		t.ProjectID, t.Name, t.Description, t.Priority, t.DeliveryDate))
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	const q = `select ` + taskColumns + ` from tasks where id = $1::uuid;`
	return scanTask(r.db.QueryRowContext(ctx, q, id))
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	const q = `
update tasks
set name = $2, description = $3, priority = $4, delivery_date = $5, updated_at = now()
where id = $1::uuid
returning ` + taskColumns + `;
`
	return scanTask(r.db.QueryRowContext(ctx, q,
		t.ID, t.Name, t.Description, t.Priority, t.DeliveryDate))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	const q = `delete from tasks where id = $1::uuid;`

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

// SetCompletion flips the completion state, recording who did it. Clearing
// completion also clears the completed-by reference.
func (r *TaskRepository) SetCompletion(ctx context.Context, id string, completed bool, byUserID string) (*domain.Task, error) {
	const q = `
update tasks
set completed = $2,
    completed_by = case when $2 then $3::uuid else null end,
    completed_at = case when $2 then now() else null end,
    updated_at = now()
where id = $1::uuid
returning ` + taskColumns + `;
`
	return scanTask(r.db.QueryRowContext(ctx, q, id, completed, byUserID))
}
