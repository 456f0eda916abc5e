package domain

import (
	"errors"
	"time"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task belongs to exactly one project. Creating, editing and deleting tasks
// is creator-only; flipping completion is open to anyone who can read the
// parent project.
type Task struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	DeliveryDate time.Time  `json:"delivery_date"`
	Completed    bool       `json:"completed"`
	CompletedBy  string     `json:"completed_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	ErrNotFound        = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid task priority")
)

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
