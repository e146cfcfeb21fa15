package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction kinds
const (
	InteractionKindNote  = "note"
	InteractionKindCall  = "call"
	InteractionKindEmail = "email"
)

// Interaction is a logged touchpoint on a case: a note, a call, or an email.
type Interaction struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CaseID      uuid.UUID  `json:"case_id" db:"case_id"`
	WorkspaceID *uuid.UUID `json:"workspace_id" db:"workspace_id"`
	AuthorID    uuid.UUID  `json:"author_id" db:"author_id"`
	Kind        string     `json:"kind" db:"kind"`
	Body        string     `json:"body" db:"body"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
