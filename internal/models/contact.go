package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WorkspaceID *uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Name        string     `json:"name" db:"name"`
	Email       *string    `json:"email" db:"email"`
	Phone       *string    `json:"phone" db:"phone"`
	Kind        string     `json:"kind" db:"kind"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
