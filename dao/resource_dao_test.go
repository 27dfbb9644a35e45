// api/dao/resource_dao_test.go
package dao_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/dao"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
	"github.com/orbitpm/api/scope"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	os.Exit(m.Run())
}

func setupResourceDAO(t *testing.T) *dao.ResourceDAO {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&name=resources"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Project{}))

	require.NoError(t, gormDB.Exec("DELETE FROM projects").Error)
	seed := []model.Project{
		{ID: "p1", WorkspaceID: "ws-1", CreatedBy: "dev-1", Name: "Website"},
		{ID: "p2", WorkspaceID: "ws-1", CreatedBy: "dev-2", Name: "Mobile app"},
		{ID: "p3", WorkspaceID: "ws-2", CreatedBy: "dev-1", Name: "Backoffice"},
	}
	require.NoError(t, gormDB.Create(&seed).Error)

	return dao.NewResourceDAO(gormDB, scope.NewScoper(authz.DefaultRegistry()))
}

func TestResourceDAO_ListProjects(t *testing.T) {
	d := setupResourceDAO(t)
	ctx := context.Background()

	manager := &model.Principal{
		ID:   "mgr-1",
		Type: model.TypeMember,
		Permissions: []model.Permission{
			{ID: "g1", Name: authz.ManageAny(model.ModuleProjects)},
		},
	}
	dev := &model.Principal{
		ID:   "dev-1",
		Type: model.TypeMember,
		Permissions: []model.Permission{
			{ID: "g2", Name: authz.ManageOwn(model.ModuleProjects)},
		},
	}
	stranger := &model.Principal{ID: "nobody", Type: model.TypeMember}

	t.Run("ManageAnySeesAll", func(t *testing.T) {
		projects, err := d.ListProjects(ctx, manager, "")
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})

	t.Run("ManageOwnSeesOwn", func(t *testing.T) {
		projects, err := d.ListProjects(ctx, dev, "")
		require.NoError(t, err)
		require.Len(t, projects, 2)
		for _, p := range projects {
			assert.Equal(t, "dev-1", p.CreatedBy)
		}
	})

	t.Run("WorkspaceNarrowing", func(t *testing.T) {
		projects, err := d.ListProjects(ctx, dev, "ws-1")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "p1", projects[0].ID)
	})

	t.Run("NoGrantSeesNothing", func(t *testing.T) {
		projects, err := d.ListProjects(ctx, stranger, "")
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}
