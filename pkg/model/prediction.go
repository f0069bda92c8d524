package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Prediction is a user's race outcome guess. Only the owning user may
// read or mutate it.
//
//nolint:tagliatelle // client compatibility
type Prediction struct {
	ID         int       `json:"-"`
	ExternalID uuid.UUID `json:"id"`
	UserID     int       `json:"-"`
	Race       string    `json:"race"`
	Driver     string    `json:"driver"`
	Position   int       `json:"position"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
