package domain

import "errors"

var (
	// ErrNotFound covers missing projects and malformed project ids alike, so
	// callers cannot distinguish "no such record" from "bad identifier".
	ErrNotFound = errors.New("project not found")

	// ErrAccessDenied is a failed read gate. The HTTP layer reports it with a
	// not-found response to avoid leaking that the project exists; it stays a
	// distinct value internally so logs can tell the two apart.
	ErrAccessDenied = errors.New("project access denied")

	// ErrNotCreator is a failed write gate.
	ErrNotCreator = errors.New("only the project creator may do this")

	ErrCreatorCollaborator = errors.New("the project creator cannot be added as a collaborator")
	ErrAlreadyCollaborator = errors.New("user is already a collaborator on this project")
)
