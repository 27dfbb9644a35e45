// api/model/resource.go
package model

import "time"

// Module names against which permissions are defined.
const (
	ModuleProjects = "projects"
	ModuleTasks    = "tasks"
	ModuleBugs     = "bugs"
	ModuleInvoices = "invoices"
)

// Bug statuses used by resource-level policies.
const (
	BugStatusOpen     = "open"
	BugStatusResolved = "resolved"
)

// Project is the top-level resource record of a workspace.
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	WorkspaceID string    `json:"workspace_id" gorm:"index"`
	CreatedBy   string    `json:"created_by" gorm:"index"`
	Name        string    `json:"name"`
	ClientID    string    `json:"client_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task belongs to a project and reaches its workspace through it.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ProjectID   string    `json:"project_id" gorm:"index"`
	WorkspaceID string    `json:"workspace_id" gorm:"index"`
	CreatedBy   string    `json:"created_by" gorm:"index"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Bug carries reporter and assignee relationships used by entity-level
// visibility predicates.
type Bug struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ProjectID   string    `json:"project_id" gorm:"index"`
	WorkspaceID string    `json:"workspace_id" gorm:"index"`
	CreatedBy   string    `json:"created_by" gorm:"index"`
	ReporterID  string    `json:"reporter_id" gorm:"index"`
	AssigneeID  string    `json:"assignee_id,omitempty" gorm:"index"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Invoice is workspace-scoped with an owning principal.
type Invoice struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	WorkspaceID string    `json:"workspace_id" gorm:"index"`
	CreatedBy   string    `json:"created_by" gorm:"index"`
	ProjectID   string    `json:"project_id,omitempty"`
	Number      string    `json:"number"`
	Amount      int64     `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
