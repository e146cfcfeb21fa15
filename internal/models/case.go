package models

import (
	"time"

	"github.com/google/uuid"
)

// Case statuses
const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in_progress"
	CaseStatusClosed     = "closed"
)

// Case is a rental damage/claim case. A nil WorkspaceID makes the case
// globally visible.
type Case struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WorkspaceID *uuid.UUID `json:"workspace_id" db:"workspace_id"`
	BikeID      *uuid.UUID `json:"bike_id" db:"bike_id"`
	ContactID   *uuid.UUID `json:"contact_id" db:"contact_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CaseDocument references a file stored in object storage for a case.
type CaseDocument struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CaseID     uuid.UUID `json:"case_id" db:"case_id"`
	ObjectKey  string    `json:"object_key" db:"object_key"`
	FileName   string    `json:"file_name" db:"file_name"`
	UploadedBy uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
