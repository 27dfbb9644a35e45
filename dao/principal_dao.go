// api/dao/principal_dao.go
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

// PrincipalDAO handles principal persistence with a cache-aside read path.
type PrincipalDAO struct {
	db *gorm.DB
}

func NewPrincipalDAO(gormDB *gorm.DB) *PrincipalDAO {
	return &PrincipalDAO{db: gormDB}
}

func (d *PrincipalDAO) GetPrincipal(ctx context.Context, principalID string) (*model.Principal, error) {
	// Try the cache first
	cached, err := db.GetCachedPrincipal(ctx, principalID)
	if err == nil && cached != nil {
		return cached, nil
	}

	var principal model.Principal
	err = d.db.WithContext(ctx).
		Preload("Permissions").
		First(&principal, "id = ?", principalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, orbit_errors.ErrPrincipalNotFound
	} else if err != nil {
		logger.Error("Error retrieving principal", zap.Error(err), zap.String("principalID", principalID))
		return nil, err
	}

	if err := db.CachePrincipal(ctx, &principal); err != nil {
		logger.Warn("Failed to cache principal", zap.Error(err), zap.String("principalID", principalID))
	}

	return &principal, nil
}

func (d *PrincipalDAO) FindByEmail(ctx context.Context, email string) (*model.Principal, error) {
	var principal model.Principal
	err := d.db.WithContext(ctx).
		Preload("Permissions").
		First(&principal, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, orbit_errors.ErrPrincipalNotFound
	} else if err != nil {
		logger.Error("Error retrieving principal by email", zap.Error(err), zap.String("email", email))
		return nil, err
	}
	return &principal, nil
}

func (d *PrincipalDAO) CreatePrincipal(ctx context.Context, principal model.Principal) (string, error) {
	if err := d.db.WithContext(ctx).Create(&principal).Error; err != nil {
		logger.Error("Error creating principal", zap.Error(err))
		return "", err
	}
	return principal.ID, nil
}

func (d *PrincipalDAO) UpdatePrincipal(ctx context.Context, principal model.Principal) (*model.Principal, error) {
	if err := d.db.WithContext(ctx).Save(&principal).Error; err != nil {
		logger.Error("Error updating principal", zap.Error(err), zap.String("principalID", principal.ID))
		return nil, err
	}

	if err := db.DeleteCachedPrincipal(ctx, principal.ID); err != nil {
		logger.Warn("Failed to invalidate principal cache", zap.Error(err), zap.String("principalID", principal.ID))
	}

	return &principal, nil
}

// GrantPermissions attaches named grants to a principal.
func (d *PrincipalDAO) GrantPermissions(ctx context.Context, principalID string, names []string) error {
	var grants []model.Permission
	if err := d.db.WithContext(ctx).Where("name IN ?", names).Find(&grants).Error; err != nil {
		return err
	}

	principal := model.Principal{ID: principalID}
	if err := d.db.WithContext(ctx).Model(&principal).Association("Permissions").Append(&grants); err != nil {
		logger.Error("Error granting permissions", zap.Error(err), zap.String("principalID", principalID))
		return err
	}

	if err := db.DeleteCachedPrincipal(ctx, principalID); err != nil {
		logger.Warn("Failed to invalidate principal cache", zap.Error(err), zap.String("principalID", principalID))
	}
	return nil
}
