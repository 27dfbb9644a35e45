// api/policy/bug_test.go
package policy_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbitpm/api/authz"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
	"github.com/orbitpm/api/policy"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	os.Exit(m.Run())
}

func workspace() *model.Workspace {
	return &model.Workspace{
		ID:      "ws1",
		OwnerID: "owner-1",
		Members: []model.Membership{
			{WorkspaceID: "ws1", PrincipalID: "manager-1", Role: model.RoleManager},
			{WorkspaceID: "ws1", PrincipalID: "dev-1", Role: model.RoleMember},
			{WorkspaceID: "ws1", PrincipalID: "dev-2", Role: model.RoleMember},
			{WorkspaceID: "ws1", PrincipalID: "client-1", Role: model.RoleClient},
		},
	}
}

func member(id string, grants ...string) *model.Principal {
	p := &model.Principal{ID: id, Type: model.TypeMember, Status: model.StatusActive}
	for _, g := range grants {
		p.Permissions = append(p.Permissions, model.Permission{Name: g})
	}
	return p
}

func TestBugPolicy_CanView(t *testing.T) {
	bp := policy.NewBugPolicy(authz.NewEvaluator(authz.DefaultRegistry()))
	ws := workspace()
	project := &model.Project{ID: "pr1", WorkspaceID: "ws1", CreatedBy: "manager-1", ClientID: "client-1"}
	bug := &model.Bug{ID: "b1", ProjectID: "pr1", WorkspaceID: "ws1", CreatedBy: "dev-1", ReporterID: "dev-1", AssigneeID: "dev-2", Status: model.BugStatusOpen}

	t.Run("WorkspaceOwnerAndManager", func(t *testing.T) {
		assert.True(t, bp.CanView(member("owner-1"), bug, project, ws))
		assert.True(t, bp.CanView(member("manager-1"), bug, project, ws))
	})

	t.Run("ReporterAndAssignee", func(t *testing.T) {
		assert.True(t, bp.CanView(member("dev-1"), bug, project, ws))
		assert.True(t, bp.CanView(member("dev-2"), bug, project, ws))
	})

	t.Run("ClientOfTheProject", func(t *testing.T) {
		client := &model.Principal{ID: "client-1", Type: model.TypeClient, Status: model.StatusActive}
		assert.True(t, bp.CanView(client, bug, project, ws))
	})

	t.Run("UnrelatedMemberDenied", func(t *testing.T) {
		assert.False(t, bp.CanView(member("stranger"), bug, project, ws))
	})

	t.Run("SuperadminBypasses", func(t *testing.T) {
		p := &model.Principal{ID: "root", Type: model.TypeSuperadmin}
		assert.True(t, bp.CanView(p, bug, project, ws))
	})
}

func TestBugPolicy_CanUpdate(t *testing.T) {
	bp := policy.NewBugPolicy(authz.NewEvaluator(authz.DefaultRegistry()))
	ws := workspace()
	project := &model.Project{ID: "pr1", WorkspaceID: "ws1", ClientID: "client-1"}
	bug := &model.Bug{ID: "b1", ProjectID: "pr1", WorkspaceID: "ws1", ReporterID: "dev-1", AssigneeID: "dev-2"}

	t.Run("NeedsModulePermissionAndRelationship", func(t *testing.T) {
		// Reporter with the module grant may update.
		assert.True(t, bp.CanUpdate(member("dev-1", "bugs_update"), bug, project, ws))
		// Reporter without the module grant may not.
		assert.False(t, bp.CanUpdate(member("dev-1"), bug, project, ws))
		// Module grant without a relationship is not enough.
		grantedStranger := member("dev-3", "bugs_update")
		ws.Members = append(ws.Members, model.Membership{WorkspaceID: "ws1", PrincipalID: "dev-3", Role: model.RoleMember})
		assert.False(t, bp.CanUpdate(grantedStranger, bug, project, ws))
	})

	t.Run("NeedsWorkspaceMembership", func(t *testing.T) {
		outsider := member("outsider", "bugs_update")
		assert.False(t, bp.CanUpdate(outsider, bug, project, ws))
	})

	t.Run("DeleteMirrorsUpdate", func(t *testing.T) {
		assert.True(t, bp.CanDelete(member("dev-1", "bugs_delete"), bug, project, ws))
		assert.False(t, bp.CanDelete(member("dev-1", "bugs_update"), bug, project, ws))
	})
}

func TestProjectPolicy(t *testing.T) {
	pp := policy.NewProjectPolicy(authz.NewEvaluator(authz.DefaultRegistry()))
	ws := workspace()
	project := &model.Project{ID: "pr1", WorkspaceID: "ws1", CreatedBy: "dev-1", ClientID: "client-1"}

	t.Run("CreatorClientAndManagersSee", func(t *testing.T) {
		assert.True(t, pp.CanView(member("dev-1"), project, ws))
		assert.True(t, pp.CanView(member("manager-1"), project, ws))
		client := &model.Principal{ID: "client-1", Type: model.TypeClient}
		assert.True(t, pp.CanView(client, project, ws))
		assert.False(t, pp.CanView(member("dev-2"), project, ws))
	})

	t.Run("UpdateConjoinsGrantAndRelationship", func(t *testing.T) {
		assert.True(t, pp.CanUpdate(member("dev-1", "projects_update"), project, ws))
		assert.False(t, pp.CanUpdate(member("dev-1"), project, ws))
		assert.False(t, pp.CanUpdate(member("dev-2", "projects_update"), project, ws))
	})
}
