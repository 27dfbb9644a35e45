// api/policy/bug.go

// Package policy holds entity-level access predicates. They compose with the
// module-level evaluator: mutating a record requires the module CRUD
// permission AND the relationship predicate AND workspace membership.
package policy

import (
	"fmt"

	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/model"
)

type BugPolicy struct {
	evaluator *authz.Evaluator
}

func NewBugPolicy(evaluator *authz.Evaluator) *BugPolicy {
	return &BugPolicy{evaluator: evaluator}
}

// CanView reports whether the principal may see the bug: workspace owner or
// manager, the bug's reporter, the assignee, or the client attached to the
// bug's project.
func (bp *BugPolicy) CanView(p *model.Principal, bug *model.Bug, project *model.Project, ws *model.Workspace) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}

	switch ws.RoleOf(p.ID) {
	case model.RoleOwner, model.RoleManager:
		return true
	}
	if bug.ReporterID == p.ID || bug.AssigneeID == p.ID {
		return true
	}
	if project != nil && project.ID == bug.ProjectID && project.ClientID == p.ID {
		return true
	}
	return false
}

// CanUpdate conjoins the module-level update permission, the relationship
// predicate and workspace membership.
func (bp *BugPolicy) CanUpdate(p *model.Principal, bug *model.Bug, project *model.Project, ws *model.Workspace) bool {
	return bp.canMutate(p, bug, project, ws, "update")
}

func (bp *BugPolicy) CanDelete(p *model.Principal, bug *model.Bug, project *model.Project, ws *model.Workspace) bool {
	return bp.canMutate(p, bug, project, ws, "delete")
}

func (bp *BugPolicy) canMutate(p *model.Principal, bug *model.Bug, project *model.Project, ws *model.Workspace, action string) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}
	if ws.RoleOf(p.ID) == "" {
		return false
	}
	if !bp.evaluator.HasPermission(p, fmt.Sprintf("%s_%s", model.ModuleBugs, action)) {
		return false
	}
	return bp.CanView(p, bug, project, ws)
}
