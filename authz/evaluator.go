// api/authz/evaluator.go
package authz

import (
	"fmt"

	"go.uber.org/zap"

	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

// Evaluator answers permission questions for a principal. Superadmin and
// company principals bypass the catalog entirely; everyone else resolves
// through a staged fallback chain so principals provisioned under the old
// coarse permission scheme still resolve sensibly.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// ModulePermissionSet is the convenience bundle of CRUD answers for a module.
type ModulePermissionSet struct {
	ViewAny bool `json:"view_any"`
	View    bool `json:"view"`
	Create  bool `json:"create"`
	Update  bool `json:"update"`
	Delete  bool `json:"delete"`
}

// HasPermission decides a single permission name. Unknown names are treated as
// permission absent, never as an error.
func (e *Evaluator) HasPermission(p *model.Principal, name string) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}
	return e.resolveChain(p, fallbackChain(name))
}

// HasAnyPermission is true if any of the names resolves true. A name that
// resolves to nothing short-circuits to the next name.
func (e *Evaluator) HasAnyPermission(p *model.Principal, names []string) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}
	for _, name := range names {
		if e.resolveChain(p, fallbackChain(name)) {
			return true
		}
	}
	return false
}

// HasAllPermissions requires every name to resolve true.
func (e *Evaluator) HasAllPermissions(p *model.Principal, names []string) bool {
	if !p.Identified() {
		return false
	}
	if p.BypassesPermissions() {
		return true
	}
	for _, name := range names {
		if !e.resolveChain(p, fallbackChain(name)) {
			return false
		}
	}
	return true
}

// ModulePermissions evaluates the five CRUD permissions for a module, each
// independently through HasPermission.
func (e *Evaluator) ModulePermissions(p *model.Principal, module string) ModulePermissionSet {
	return ModulePermissionSet{
		ViewAny: e.HasPermission(p, fmt.Sprintf("%s_view_any", module)),
		View:    e.HasPermission(p, fmt.Sprintf("%s_view", module)),
		Create:  e.HasPermission(p, fmt.Sprintf("%s_create", module)),
		Update:  e.HasPermission(p, fmt.Sprintf("%s_update", module)),
		Delete:  e.HasPermission(p, fmt.Sprintf("%s_delete", module)),
	}
}

// resolveChain interprets an ordered list of fallback permission names. The
// first registered name answers; an unregistered name falls through to the
// next; an exhausted chain is a default deny.
func (e *Evaluator) resolveChain(p *model.Principal, chain []string) bool {
	for _, name := range chain {
		switch e.registry.Resolve(p, name) {
		case ResultGranted:
			return true
		case ResultDenied:
			return false
		case ResultUnregistered:
			logger.Debug("Permission name not in catalog, trying fallback",
				zap.String("permission", name),
				zap.String("principalID", p.ID))
		}
	}
	return false
}

// fallbackChain builds the ordered fallback list for a permission name:
// the name itself, then the coarse access-module grant, then the legacy
// manage-own and view grants of the same module.
func fallbackChain(name string) []string {
	chain := []string{name}
	module := ModuleOf(name)
	if module == "" {
		return chain
	}
	for _, fallback := range []string{AccessModule(module), ManageOwn(module), View(module)} {
		if fallback != name {
			chain = append(chain, fallback)
		}
	}
	return chain
}
