package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	projdomain "github.com/uptask-dev/uptask-backend/internal/projects/domain"
	"github.com/uptask-dev/uptask-backend/internal/tasks/domain"
)

type fakeTaskStore struct {
	tasks map[string]*domain.Task
}

func (f *fakeTaskStore) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	stored := *t
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.tasks[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskStore) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	stored, ok := f.tasks[t.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	*stored = *t
	cp := *stored
	return &cp, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) SetCompletion(_ context.Context, id string, completed bool, byUserID string) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.Completed = completed
	if completed {
		t.CompletedBy = byUserID
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedBy = ""
		t.CompletedAt = nil
	}
	cp := *t
	return &cp, nil
}

type fakeProjectStore struct {
	projects map[string]*projdomain.Project
}

func (f *fakeProjectStore) FindByID(_ context.Context, id string) (*projdomain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, projdomain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func setup(t *testing.T) (*TaskService, *fakeTaskStore, *fakeProjectStore) {
	t.Helper()
	ts := &fakeTaskStore{tasks: make(map[string]*domain.Task)}
	ps := &fakeProjectStore{projects: make(map[string]*projdomain.Project)}
	return NewTaskService(ts, ps), ts, ps
}

func seed(ps *fakeProjectStore, creator, member string) *projdomain.Project {
	p := &projdomain.Project{
		ID:        uuid.NewString(),
		CreatorID: creator,
	}
	if member != "" {
		p.Collaborators = []projdomain.Collaborator{{ID: member}}
	}
	ps.projects[p.ID] = p
	return p
}

func TestCreate_WriteGated(t *testing.T) {
	svc, _, ps := setup(t)
	ctx := context.Background()

	creator := uuid.NewString()
	member := uuid.NewString()
	p := seed(ps, creator, member)

	t.Run("creator creates", func(t *testing.T) {
		task, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: p.ID, Name: "Deploy"})
		require.NoError(t, err)
		assert.Equal(t, p.ID, task.ProjectID)
		assert.Equal(t, domain.PriorityLow, task.Priority, "priority defaults")
	})

	t.Run("collaborator cannot create", func(t *testing.T) {
		_, err := svc.Create(ctx, member, CreateTaskInput{ProjectID: p.ID, Name: "Deploy"})
		assert.ErrorIs(t, err, projdomain.ErrNotCreator)
	})

	t.Run("malformed project id", func(t *testing.T) {
		_, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: "abc", Name: "Deploy"})
		assert.ErrorIs(t, err, projdomain.ErrNotFound)
	})

	t.Run("invalid priority", func(t *testing.T) {
		_, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: p.ID, Name: "Deploy", Priority: "urgent"})
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

func TestGet_ReadGated(t *testing.T) {
	svc, _, ps := setup(t)
	ctx := context.Background()

	creator := uuid.NewString()
	member := uuid.NewString()
	p := seed(ps, creator, member)

	task, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: p.ID, Name: "Deploy"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, member, task.ID)
	assert.NoError(t, err, "collaborator reads")

	_, err = svc.Get(ctx, uuid.NewString(), task.ID)
	assert.ErrorIs(t, err, projdomain.ErrAccessDenied)

	_, err = svc.Get(ctx, creator, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDelete_CreatorOnly(t *testing.T) {
	svc, ts, ps := setup(t)
	ctx := context.Background()

	creator := uuid.NewString()
	member := uuid.NewString()
	p := seed(ps, creator, member)

	task, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: p.ID, Name: "Deploy"})
	require.NoError(t, err)

	name := "Ship"
	_, err = svc.Update(ctx, member, task.ID, UpdateTaskInput{Name: &name})
	assert.ErrorIs(t, err, projdomain.ErrNotCreator)

	got, err := svc.Update(ctx, creator, task.ID, UpdateTaskInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ship", got.Name)

	assert.ErrorIs(t, svc.Delete(ctx, member, task.ID), projdomain.ErrNotCreator)
	require.NoError(t, svc.Delete(ctx, creator, task.ID))
	_, ok := ts.tasks[task.ID]
	assert.False(t, ok)
}

func TestToggleComplete_RecordsWho(t *testing.T) {
	svc, _, ps := setup(t)
	ctx := context.Background()

	creator := uuid.NewString()
	member := uuid.NewString()
	p := seed(ps, creator, member)

	task, err := svc.Create(ctx, creator, CreateTaskInput{ProjectID: p.ID, Name: "Deploy"})
	require.NoError(t, err)

	t.Run("collaborator completes", func(t *testing.T) {
		got, err := svc.ToggleComplete(ctx, member, task.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, member, got.CompletedBy)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("toggle back clears completion", func(t *testing.T) {
		got, err := svc.ToggleComplete(ctx, creator, task.ID)
		require.NoError(t, err)
		assert.False(t, got.Completed)
		assert.Empty(t, got.CompletedBy)
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("stranger cannot toggle", func(t *testing.T) {
		_, err := svc.ToggleComplete(ctx, uuid.NewString(), task.ID)
		assert.ErrorIs(t, err, projdomain.ErrAccessDenied)
	})
}
