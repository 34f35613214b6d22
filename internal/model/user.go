package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 使用者角色（授權用）
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin returns true only for the admin role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsOrganizer returns true for organizers and admins; admin implies organizer access.
func (r Role) IsOrganizer() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     *string   `json:"full_name" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateUserParams struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Role      *Role   `json:"-"`
}

type RoleCounts struct {
	Admin       int `json:"admin"`
	Organizer   int `json:"organizer"`
	Participant int `json:"participant"`
}
