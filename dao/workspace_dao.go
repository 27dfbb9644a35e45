// api/dao/workspace_dao.go
package dao

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/orbitpm/api/db"
	orbit_errors "github.com/orbitpm/api/errors"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

type WorkspaceDAO struct {
	db *gorm.DB
}

func NewWorkspaceDAO(gormDB *gorm.DB) *WorkspaceDAO {
	return &WorkspaceDAO{db: gormDB}
}

func (d *WorkspaceDAO) GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	cached, err := db.GetCachedWorkspace(ctx, workspaceID)
	if err == nil && cached != nil {
		return cached, nil
	}

	var workspace model.Workspace
	err = d.db.WithContext(ctx).
		Preload("Members").
		First(&workspace, "id = ?", workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, orbit_errors.ErrWorkspaceNotFound
	} else if err != nil {
		logger.Error("Error retrieving workspace", zap.Error(err), zap.String("workspaceID", workspaceID))
		return nil, err
	}

	if err := db.CacheWorkspace(ctx, &workspace); err != nil {
		logger.Warn("Failed to cache workspace", zap.Error(err), zap.String("workspaceID", workspaceID))
	}

	return &workspace, nil
}

// MemberRole returns the role of a principal inside a workspace.
func (d *WorkspaceDAO) MemberRole(ctx context.Context, workspaceID, principalID string) (string, error) {
	workspace, err := d.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	role := workspace.RoleOf(principalID)
	if role == "" {
		return "", orbit_errors.ErrNotWorkspaceMember
	}
	return role, nil
}

func (d *WorkspaceDAO) AddMember(ctx context.Context, membership model.Membership) error {
	if err := d.db.WithContext(ctx).Create(&membership).Error; err != nil {
		logger.Error("Error adding workspace member",
			zap.Error(err),
			zap.String("workspaceID", membership.WorkspaceID),
			zap.String("principalID", membership.PrincipalID))
		return err
	}

	if err := db.DeleteCachedWorkspace(ctx, membership.WorkspaceID); err != nil {
		logger.Warn("Failed to invalidate workspace cache", zap.Error(err), zap.String("workspaceID", membership.WorkspaceID))
	}
	return nil
}
