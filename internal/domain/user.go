package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

type User struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ImageURL     string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the caller resolved by the auth layer. It is passed
// explicitly into every service call that needs it; services never dig
// credentials out of an ambient context.
type Identity struct {
	ID   uuid.UUID
	Role Role
}
