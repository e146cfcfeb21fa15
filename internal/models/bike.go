package models

import (
	"time"

	"github.com/google/uuid"
)

type Bike struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WorkspaceID *uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Plate       string     `json:"plate" db:"plate"`
	Model       string     `json:"model" db:"model"`
	VIN         string     `json:"vin" db:"vin"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
