// api/model/principal.go
package model

import "time"

// Principal types. Only Superadmin and Company may authenticate through the
// password form; members and clients arrive via invitation links.
const (
	TypeSuperadmin = "superadmin"
	TypeCompany    = "company"
	TypeMember     = "member"
	TypeClient     = "client"

	// Legacy spelling still present in older tenant databases.
	TypeSuperAdminLegacy = "super admin"
)

// Principal statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Principal is an authenticated actor. Every authorization entry point takes
// the principal explicitly; there is no ambient current-user lookup in the core.
type Principal struct {
	ID                 string          `json:"id" gorm:"primaryKey"`
	Name               string          `json:"name"`
	Email              string          `json:"email" gorm:"uniqueIndex"`
	PasswordHash       string          `json:"-"`
	Type               string          `json:"type"`
	Status             string          `json:"status"`
	LoginEnabled       bool            `json:"login_enabled"`
	CurrentWorkspaceID string          `json:"current_workspace_id,omitempty"`
	Permissions        []Permission    `json:"permissions" gorm:"many2many:principal_permissions"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Permission is a named grant such as "projects_view_any" or the legacy
// "manage-own-projects". Granted to a role or directly to a principal.
type Permission struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex"`
	Module string `json:"module"`
	Action string `json:"action"`
}

// Identified reports whether the principal carries an identity at all.
func (p *Principal) Identified() bool {
	return p != nil && p.ID != ""
}

// BypassesPermissions reports whether the principal type skips fine-grained
// permission checks entirely.
func (p *Principal) BypassesPermissions() bool {
	if p == nil {
		return false
	}
	switch p.Type {
	case TypeSuperadmin, TypeSuperAdminLegacy, TypeCompany:
		return true
	}
	return false
}

// Has reports whether the principal directly holds the named grant.
func (p *Principal) Has(name string) bool {
	if p == nil {
		return false
	}
	for _, grant := range p.Permissions {
		if grant.Name == name {
			return true
		}
	}
	return false
}

// CanLoginDirectly reports whether the principal type is in the allow-list for
// password-form authentication.
func (p *Principal) CanLoginDirectly() bool {
	if p == nil {
		return false
	}
	switch p.Type {
	case TypeSuperadmin, TypeSuperAdminLegacy, TypeCompany:
		return true
	}
	return false
}
