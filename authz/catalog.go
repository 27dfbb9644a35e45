// api/authz/catalog.go
package authz

import (
	"fmt"

	"github.com/orbitpm/api/model"
)

// roleModules is the static role → allowed module mapping. Configuration
// data, not derived state.
var roleModules = map[string][]string{
	model.RoleOwner:   {model.ModuleProjects, model.ModuleTasks, model.ModuleBugs, model.ModuleInvoices},
	model.RoleManager: {model.ModuleProjects, model.ModuleTasks, model.ModuleBugs, model.ModuleInvoices},
	model.RoleMember:  {model.ModuleProjects, model.ModuleTasks, model.ModuleBugs},
	model.RoleClient:  {model.ModuleProjects, model.ModuleBugs},
}

// ModulesForRole returns the modules a workspace role may touch at all.
func ModulesForRole(role string) []string {
	modules := roleModules[role]
	out := make([]string, len(modules))
	copy(out, modules)
	return out
}

// RoleAllowsModule reports whether the role's module list includes the module.
func RoleAllowsModule(role, module string) bool {
	for _, m := range roleModules[role] {
		if m == module {
			return true
		}
	}
	return false
}

// DefaultGrants returns the permission names seeded onto a principal when it
// joins a workspace with the given role. Owners and managers get unscoped
// manage grants, members get ownership-scoped ones, clients get view only.
func DefaultGrants(role string) []string {
	var grants []string
	for _, module := range roleModules[role] {
		switch role {
		case model.RoleOwner, model.RoleManager:
			grants = append(grants, ManageAny(module))
			for _, action := range moduleActions {
				grants = append(grants, fmt.Sprintf("%s_%s", module, action))
			}
		case model.RoleMember:
			grants = append(grants,
				ManageOwn(module),
				fmt.Sprintf("%s_view", module),
				fmt.Sprintf("%s_create", module),
				fmt.Sprintf("%s_update", module),
			)
		case model.RoleClient:
			grants = append(grants, View(module), fmt.Sprintf("%s_view", module))
		}
	}
	return grants
}
