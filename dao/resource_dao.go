// api/dao/resource_dao.go
package dao

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
	"github.com/orbitpm/api/scope"
)

// ResourceDAO reads module records through the visibility filter. Every
// query goes through the scoper; there is no unscoped read path.
type ResourceDAO struct {
	db     *gorm.DB
	scoper *scope.Scoper
}

func NewResourceDAO(gormDB *gorm.DB, scoper *scope.Scoper) *ResourceDAO {
	return &ResourceDAO{db: gormDB, scoper: scoper}
}

// ListProjects returns the projects visible to the principal, optionally
// restricted to one workspace.
func (d *ResourceDAO) ListProjects(ctx context.Context, p *model.Principal, workspaceID string) ([]model.Project, error) {
	var projects []model.Project
	q := d.db.WithContext(ctx).Scopes(d.scoper.FilterDefault(p, model.ModuleProjects))
	if workspaceID != "" {
		q = q.Scopes(scope.InWorkspace(workspaceID))
	}
	if err := q.Find(&projects).Error; err != nil {
		logger.Error("Error listing projects", zap.Error(err), zap.String("principalID", principalID(p)))
		return nil, err
	}
	return projects, nil
}

// ListBugs returns the bugs visible to the principal, optionally restricted
// to one workspace.
func (d *ResourceDAO) ListBugs(ctx context.Context, p *model.Principal, workspaceID string) ([]model.Bug, error) {
	var bugs []model.Bug
	q := d.db.WithContext(ctx).Scopes(d.scoper.FilterDefault(p, model.ModuleBugs))
	if workspaceID != "" {
		q = q.Scopes(scope.InWorkspace(workspaceID))
	}
	if err := q.Find(&bugs).Error; err != nil {
		logger.Error("Error listing bugs", zap.Error(err), zap.String("principalID", principalID(p)))
		return nil, err
	}
	return bugs, nil
}

func principalID(p *model.Principal) string {
	if p == nil {
		return ""
	}
	return p.ID
}
