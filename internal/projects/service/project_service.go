package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/uptask-dev/uptask-backend/internal/mailer"
	"github.com/uptask-dev/uptask-backend/internal/projects/domain"
	"github.com/uptask-dev/uptask-backend/internal/users"
)

// ProjectStore is the persistence surface the service needs from a project
// repository.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByIDExpanded(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddCollaborator(ctx context.Context, projectID, userID string) (bool, error)
	RemoveCollaborator(ctx context.Context, projectID, userID string) error
}

// UserDirectory resolves collaborator candidates.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

// ProjectService implements the authorization and membership rules around
// projects. Every operation takes the authenticated principal's directory id.
type ProjectService struct {
	store  ProjectStore
	dir    UserDirectory
	mailer mailer.Mailer
}

// NewProjectService creates the service. mail may be nil; invite email is
// best-effort and skipped entirely without one.
func NewProjectService(store ProjectStore, dir UserDirectory, mail mailer.Mailer) *ProjectService {
	return &ProjectService{store: store, dir: dir, mailer: mail}
}

// List returns every project the principal created or collaborates on.
// Tasks are omitted; listing is a summary view.
func (s *ProjectService) List(ctx context.Context, principal string) ([]domain.Project, error) {
	return s.store.ListForUser(ctx, principal)
}

type CreateProjectInput struct {
	Name         string
	Description  string
	Client       string
	DeliveryDate time.Time
}

// Create persists a new project. The creator is always the principal and the
// collaborator set starts empty; the store assigns the id, so nothing a
// client sends can pick one.
func (s *ProjectService) Create(ctx context.Context, principal string, in CreateProjectInput) (*domain.Project, error) {
	if in.DeliveryDate.IsZero() {
		in.DeliveryDate = time.Now()
	}

	p := &domain.Project{
		CreatorID:    principal,
		Name:         in.Name,
		Description:  in.Description,
		Client:       in.Client,
		DeliveryDate: in.DeliveryDate,
	}
	return s.store.Create(ctx, p)
}

// Get loads a single project with tasks and collaborator projections.
// A malformed id and a missing project are deliberately indistinguishable;
// a readable-but-forbidden project comes back as ErrAccessDenied, which the
// transport reports in a not-found shape.
func (s *ProjectService) Get(ctx context.Context, principal, id string) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	p, err := s.store.FindByIDExpanded(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.CanRead(principal) {
		return nil, domain.ErrAccessDenied
	}
	return p, nil
}

// UpdateProjectInput carries the partial edit payload. Nil means "leave the
// field as it is"; a present empty value is applied as-is.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	Client       *string
	DeliveryDate *time.Time
}

// Edit applies a partial update to the four mutable scalar fields.
// Creator-gated.
func (s *ProjectService) Edit(ctx context.Context, principal, id string, in UpdateProjectInput) (*domain.Project, error) {
	p, err := s.writableProject(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Client != nil {
		p.Client = *in.Client
	}
	if in.DeliveryDate != nil {
		p.DeliveryDate = *in.DeliveryDate
	}

	return s.store.Update(ctx, p)
}

// Delete removes the project. Creator-gated; the store cascades to tasks and
// membership rows.
func (s *ProjectService) Delete(ctx context.Context, principal, id string) error {
	p, err := s.writableProject(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, p.ID)
}

// FindCollaborator looks a candidate up by email. Any authenticated principal
// may search; only the public projection is returned.
func (s *ProjectService) FindCollaborator(ctx context.Context, email string) (*users.User, error) {
	return s.dir.FindByEmail(ctx, email)
}

// AddCollaborator grants the user behind email read access to the project.
// Preconditions run in a fixed order, each with its own outcome: well-formed
// id, project exists, principal is creator, candidate exists, candidate is
// not the creator, candidate is not already a member. The final append is a
// conditional insert, so a concurrent duplicate add loses cleanly.
func (s *ProjectService) AddCollaborator(ctx context.Context, principal, projectID, email string) error {
	p, err := s.writableProject(ctx, principal, projectID)
	if err != nil {
		return err
	}

	candidate, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if candidate.ID == p.CreatorID {
		return domain.ErrCreatorCollaborator
	}
	if p.HasCollaborator(candidate.ID) {
		return domain.ErrAlreadyCollaborator
	}

	added, err := s.store.AddCollaborator(ctx, p.ID, candidate.ID)
	if err != nil {
		return err
	}
	if !added {
		// Lost a race with an identical add between the membership check and
		// the insert. Same outcome as the check itself.
		return domain.ErrAlreadyCollaborator
	}

	s.sendInvite(ctx, p, candidate)
	return nil
}

// RemoveCollaborator revokes membership. Removing a user who is not a member
// is a silent success; only the gates can fail.
func (s *ProjectService) RemoveCollaborator(ctx context.Context, principal, projectID, userID string) error {
	p, err := s.writableProject(ctx, principal, projectID)
	if err != nil {
		return err
	}
	if !validID(userID) {
		// A malformed id cannot name a member, so this is the same silent
		// no-op as removing a non-member. It never reaches the store, whose
		// uuid cast would reject it.
		return nil
	}
	return s.store.RemoveCollaborator(ctx, p.ID, userID)
}

// writableProject runs the shared precondition ladder for mutating
// operations: id shape, existence, then the write gate.
func (s *ProjectService) writableProject(ctx context.Context, principal, id string) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.CanWrite(principal) {
		return nil, domain.ErrNotCreator
	}
	return p, nil
}

func (s *ProjectService) sendInvite(ctx context.Context, p *domain.Project, u *users.User) {
	if s.mailer == nil || u.Email == "" {
		return
	}

	msg := mailer.Message{
		To:      []string{u.Email},
		Subject: fmt.Sprintf("You were added to %q", p.Name),
		Body: fmt.Sprintf("Hi %s,\n\nYou now have access to the project %q.\n",
			u.Name, p.Name),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("[projects] invite mail to %s failed: %v", u.Email, err)
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
