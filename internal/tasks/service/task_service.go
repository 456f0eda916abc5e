package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	projdomain "github.com/uptask-dev/uptask-backend/internal/projects/domain"
	"github.com/uptask-dev/uptask-backend/internal/tasks/domain"
)

// TaskStore is the persistence surface for tasks.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	SetCompletion(ctx context.Context, id string, completed bool, byUserID string) (*domain.Task, error)
}

// ProjectStore loads parent projects with their collaborator set, which is
// all the task rules need for gating.
type ProjectStore interface {
	FindByID(ctx context.Context, id string) (*projdomain.Project, error)
}

// TaskService applies the parent project's authorization rules to task
// operations: mutation follows the project write gate, reading and
// completion-toggling follow the read gate.
type TaskService struct {
	store    TaskStore
	projects ProjectStore
}

func NewTaskService(store TaskStore, projects ProjectStore) *TaskService {
	return &TaskService{store: store, projects: projects}
}

type CreateTaskInput struct {
	ProjectID    string
	Name         string
	Description  string
	Priority     string
	DeliveryDate time.Time
}

func (s *TaskService) Create(ctx context.Context, principal string, in CreateTaskInput) (*domain.Task, error) {
	if in.Priority == "" {
		in.Priority = domain.PriorityLow
	}
	if !domain.ValidPriority(in.Priority) {
		return nil, domain.ErrInvalidPriority
	}

	if _, err := s.writableProject(ctx, principal, in.ProjectID); err != nil {
		return nil, err
	}

	if in.DeliveryDate.IsZero() {
		in.DeliveryDate = time.Now()
	}

	t := &domain.Task{
		ProjectID:    in.ProjectID,
		Name:         in.Name,
		Description:  in.Description,
		Priority:     in.Priority,
		DeliveryDate: in.DeliveryDate,
	}
	return s.store.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, principal, id string) (*domain.Task, error) {
	t, p, err := s.taskWithProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanRead(principal) {
		return nil, projdomain.ErrAccessDenied
	}
	return t, nil
}

type UpdateTaskInput struct {
	Name         *string
	Description  *string
	Priority     *string
	DeliveryDate *time.Time
}

func (s *TaskService) Update(ctx context.Context, principal, id string, in UpdateTaskInput) (*domain.Task, error) {
	t, p, err := s.taskWithProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanWrite(principal) {
		return nil, projdomain.ErrNotCreator
	}

	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		if !domain.ValidPriority(*in.Priority) {
			return nil, domain.ErrInvalidPriority
		}
		t.Priority = *in.Priority
	}
	if in.DeliveryDate != nil {
		t.DeliveryDate = *in.DeliveryDate
	}

	return s.store.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, principal, id string) error {
	t, p, err := s.taskWithProject(ctx, id)
	if err != nil {
		return err
	}
	if !p.CanWrite(principal) {
		return projdomain.ErrNotCreator
	}
	return s.store.Delete(ctx, t.ID)
}

// ToggleComplete flips the task's completion state. Collaborators may do
// this too; the flip records who performed it.
func (s *TaskService) ToggleComplete(ctx context.Context, principal, id string) (*domain.Task, error) {
	t, p, err := s.taskWithProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanRead(principal) {
		return nil, projdomain.ErrAccessDenied
	}
	return s.store.SetCompletion(ctx, t.ID, !t.Completed, principal)
}

func (s *TaskService) taskWithProject(ctx context.Context, id string) (*domain.Task, *projdomain.Project, error) {
	if !validID(id) {
		return nil, nil, domain.ErrNotFound
	}

	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.projects.FindByID(ctx, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

func (s *TaskService) writableProject(ctx context.Context, principal, projectID string) (*projdomain.Project, error) {
	if !validID(projectID) {
		return nil, projdomain.ErrNotFound
	}

	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.CanWrite(principal) {
		return nil, projdomain.ErrNotCreator
	}
	return p, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
