package domain

import "time"

// Project is the central aggregate: a piece of client work owned by the user
// who created it and shared read-only with a set of collaborators.
// It is storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creator_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Client       string    `json:"client"`
	DeliveryDate time.Time `json:"delivery_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Collaborators is populated on single-project reads. List views leave it
	// nil; membership checks on loaded projects go through HasCollaborator.
	Collaborators []Collaborator `json:"collaborators,omitempty"`

	// Tasks is populated on single-project reads only.
	Tasks []Task `json:"tasks,omitempty"`
}

// Collaborator is the public projection of a directory user attached to a
// project. Nothing beyond id, name and email ever leaves the store.
type Collaborator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is the read projection of a project task, including who completed it.
type Task struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	DeliveryDate    time.Time  `json:"delivery_date"`
	Completed       bool       `json:"completed"`
	CompletedByID   string     `json:"completed_by_id,omitempty"`
	CompletedByName string     `json:"completed_by_name,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// CanWrite reports whether the given principal may mutate the project or its
// membership. Only the creator ever can.
func (p *Project) CanWrite(userID string) bool {
	return userID != "" && p.CreatorID == userID
}

// CanRead reports whether the given principal may see the project: the
// creator, or anyone in the collaborator set.
func (p *Project) CanRead(userID string) bool {
	return p.CanWrite(userID) || p.HasCollaborator(userID)
}

// HasCollaborator tests membership by user id.
func (p *Project) HasCollaborator(userID string) bool {
	if userID == "" {
		return false
	}
	for _, c := range p.Collaborators {
		if c.ID == userID {
			return true
		}
	}
	return false
}
