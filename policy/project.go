// api/policy/project.go
package policy

import (
	"fmt"

	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/model"
)

type ProjectPolicy struct {
	evaluator *authz.Evaluator
}

func NewProjectPolicy(evaluator *authz.Evaluator) *ProjectPolicy {
	return &ProjectPolicy{evaluator: evaluator}
}

// CanView: workspace owner or manager, the project's creator, or the client
// the project is for.
func (pp *ProjectPolicy) CanView(p *model.Principal, project *model.Project, ws *model.Workspace) bool {
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
	return project.CreatedBy == p.ID || project.ClientID == p.ID
}

func (pp *ProjectPolicy) CanUpdate(p *model.Principal, project *model.Project, ws *model.Workspace) bool {
	return pp.canMutate(p, project, ws, "update")
}

func (pp *ProjectPolicy) CanDelete(p *model.Principal, project *model.Project, ws *model.Workspace) bool {
	return pp.canMutate(p, project, ws, "delete")
}

func (pp *ProjectPolicy) canMutate(p *model.Principal, project *model.Project, ws *model.Workspace, action string) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}
	if ws.RoleOf(p.ID) == "" {
		return false
	}
	if !pp.evaluator.HasPermission(p, fmt.Sprintf("%s_%s", model.ModuleProjects, action)) {
		return false
	}
	return pp.CanView(p, project, ws)
}
