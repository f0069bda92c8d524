package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is an account holder. PasswordHash is never serialized.
//
//nolint:tagliatelle // client compatibility
type User struct {
	ID           int       `json:"-"`
	ExternalID   uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
