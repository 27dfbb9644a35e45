// api/model/workspace.go
package model

import "time"

// Workspace membership roles.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleMember  = "member"
	RoleClient  = "client"
)

// Workspace is the tenant boundary. Every resource record belongs to exactly
// one workspace, directly or through its parent.
type Workspace struct {
	ID        string       `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name"`
	OwnerID   string       `json:"owner_id"`
	Members   []Membership `json:"members" gorm:"foreignKey:WorkspaceID"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Membership ties a principal to a workspace with a role.
type Membership struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	WorkspaceID string    `json:"workspace_id" gorm:"index"`
	PrincipalID string    `json:"principal_id" gorm:"index"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleOf returns the membership role of the given principal in the workspace,
// or the empty string if the principal is not a member. The workspace owner is
// always treated as RoleOwner.
func (w *Workspace) RoleOf(principalID string) string {
	if w == nil {
		return ""
	}
	if w.OwnerID == principalID {
		return RoleOwner
	}
	for _, m := range w.Members {
		if m.PrincipalID == principalID {
			return m.Role
		}
	}
	return ""
}
