// api/authz/registry.go
package authz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/orbitpm/api/model"
)

// Result is the outcome of resolving a permission name against a principal.
// Unregistered means the name is not a recognized permission in the catalog;
// it is never an error, it routes the caller to the next fallback name.
type Result int

const (
	ResultUnregistered Result = iota
	ResultDenied
	ResultGranted
)

func (r Result) String() string {
	switch r {
	case ResultGranted:
		return "granted"
	case ResultDenied:
		return "denied"
	default:
		return "unregistered"
	}
}

// Fine-grained permission actions, newer generation of the catalog.
var moduleActions = []string{"view_any", "view", "create", "update", "delete"}

// Registry is the typed permission catalog. The catalog evolves over time:
// fine-grained `{module}_{action}` names replace the older coarse
// `manage-any-*` / `access-*-module` generation, and during a migration a
// module may carry only one of the two generations.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// DefaultRegistry returns a catalog with both permission generations
// registered for every standard module.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, module := range []string{model.ModuleProjects, model.ModuleTasks, model.ModuleBugs, model.ModuleInvoices} {
		r.RegisterModule(module)
		r.RegisterLegacyModule(module)
	}
	return r
}

// Register adds a single permission name to the catalog.
func (r *Registry) Register(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		r.names[name] = struct{}{}
	}
}

// RegisterModule registers the current-generation permission names for a module.
func (r *Registry) RegisterModule(module string) {
	for _, action := range moduleActions {
		r.Register(fmt.Sprintf("%s_%s", module, action))
	}
	r.Register(ManageAny(module), ManageOwn(module))
}

// RegisterLegacyModule registers the pre-migration coarse names for a module.
func (r *Registry) RegisterLegacyModule(module string) {
	r.Register(AccessModule(module), View(module))
}

// Registered reports whether the name is a recognized permission.
func (r *Registry) Registered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// Resolve looks up a permission name for a principal. An unrecognized name
// yields ResultUnregistered regardless of the principal's grants.
func (r *Registry) Resolve(p *model.Principal, name string) Result {
	if !r.Registered(name) {
		return ResultUnregistered
	}
	if p.Has(name) {
		return ResultGranted
	}
	return ResultDenied
}

// Coarse permission name constructors.

func ManageAny(module string) string    { return "manage-any-" + module }
func ManageOwn(module string) string    { return "manage-own-" + module }
func AccessModule(module string) string { return "access-" + module + "-module" }
func View(module string) string         { return "view-" + module }

// ModuleOf extracts the module from a permission name of either generation,
// or returns "" if the shape is not recognized.
func ModuleOf(name string) string {
	switch {
	case strings.HasPrefix(name, "manage-any-"):
		return strings.TrimPrefix(name, "manage-any-")
	case strings.HasPrefix(name, "manage-own-"):
		return strings.TrimPrefix(name, "manage-own-")
	case strings.HasPrefix(name, "access-") && strings.HasSuffix(name, "-module"):
		return strings.TrimSuffix(strings.TrimPrefix(name, "access-"), "-module")
	case strings.HasPrefix(name, "view-"):
		return strings.TrimPrefix(name, "view-")
	}
	if i := strings.Index(name, "_"); i > 0 {
		return name[:i]
	}
	return ""
}
