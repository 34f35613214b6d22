package model

import "github.com/google/uuid"

// Permissions 由角色推導一次，之後只讀
type Permissions struct {
	UserID      uuid.UUID `json:"user_id"`
	Role        Role      `json:"role"`
	IsAdmin     bool      `json:"isAdmin"`
	IsOrganizer bool      `json:"isOrganizer"`
}

// PermissionsFor derives the capability flags; an unknown role gets participant rights.
func PermissionsFor(userID uuid.UUID, role Role) Permissions {
	if !role.IsValid() {
		role = RoleParticipant
	}
	return Permissions{
		UserID:      userID,
		Role:        role,
		IsAdmin:     role.IsAdmin(),
		IsOrganizer: role.IsOrganizer(),
	}
}

func (p Permissions) Authenticated() bool {
	return p.UserID != uuid.Nil
}
