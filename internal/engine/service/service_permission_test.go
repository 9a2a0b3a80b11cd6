package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/errs"
)

type fakePermRepo struct {
	grants map[string][]string // roleId -> codes
	loads  int
}

func (f *fakePermRepo) ListPermissions() ([]model.Permission, error) { return nil, nil }

func (f *fakePermRepo) GetRolePermissionCodes(roleId string) ([]string, error) {
	f.loads++
	return f.grants[roleId], nil
}

func (f *fakePermRepo) SyncCatalog(perms []model.Permission) error { return nil }

func (f *fakePermRepo) GrantToRole(roleId string, codes []string) error {
	f.grants[roleId] = append(f.grants[roleId], codes...)
	return nil
}

func (f *fakePermRepo) RevokeFromRole(roleId string, codes []string) error { return nil }

func (f *fakePermRepo) ReplaceRoleGrants(roleId string, codes []string) error {
	f.grants[roleId] = append([]string(nil), codes...)
	return nil
}

type fakeRoleRepo struct {
	roles map[string]model.Role
}

func (f *fakeRoleRepo) GetRoleById(roleId string) (*model.Role, error) {
	role, ok := f.roles[roleId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (f *fakeRoleRepo) ListRoles() ([]model.Role, error) { return nil, nil }
func (f *fakeRoleRepo) AddRole(role *model.Role) error {
	f.roles[role.RoleId] = *role
	return nil
}
func (f *fakeRoleRepo) UpdateRole(roleId string, updates map[string]interface{}) error { return nil }
func (f *fakeRoleRepo) DeleteRole(roleId string) error                                 { return nil }

func newPermFixture(grants map[string][]string) (*PermissionService, *fakePermRepo) {
	permRepo := &fakePermRepo{grants: grants}
	roleRepo := &fakeRoleRepo{roles: make(map[string]model.Role)}
	return NewPermissionService(permRepo, roleRepo), permRepo
}

func TestHasPermission(t *testing.T) {
	svc, _ := newPermFixture(map[string][]string{
		"agent": {"cases.view.own", "cases.edit.own"},
	})
	ctx := context.Background()

	ok, err := svc.HasPermission(ctx, "agent", "cases.view.own")
	require.NoError(t, err)
	assert.True(t, ok)

	// 精确匹配，不做范围推导
	ok, err = svc.HasPermission(ctx, "agent", "cases.view.team")
	require.NoError(t, err)
	assert.False(t, ok)

	// 未知角色等价于空授权集合
	ok, err = svc.HasPermission(ctx, "ghost", "cases.view.own")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissions(t *testing.T) {
	svc, _ := newPermFixture(map[string][]string{
		"agent": {"cases.view.own", "documents.view.own"},
	})
	ctx := context.Background()

	codes := []string{"cases.view.own", "cases.edit.all", "documents.view.own"}
	result, err := svc.HasPermissions(ctx, "agent", codes)
	require.NoError(t, err)
	require.Len(t, result, 3)

	// 批量结果与逐个判断一致
	for _, code := range codes {
		single, err := svc.HasPermission(ctx, "agent", code)
		require.NoError(t, err)
		assert.Equal(t, single, result[code], code)
	}
}

func TestGetHighestScope(t *testing.T) {
	svc, _ := newPermFixture(map[string][]string{
		"supervisor": {"cases.view.own", "cases.view.team", "cases.edit.own"},
		"admin":      {"cases.view.all", "cases.view.own"},
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		roleId string
		module string
		action string
		want   authz.Scope
	}{
		{"own and team yields team", "supervisor", "cases", "view", authz.ScopeTeam},
		{"single own grant", "supervisor", "cases", "edit", authz.ScopeOwn},
		{"all dominates", "admin", "cases", "view", authz.ScopeAll},
		{"no grant yields none", "supervisor", "cases", "delete", authz.ScopeNone},
		{"unknown role yields none", "ghost", "cases", "view", authz.ScopeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := svc.GetHighestScope(ctx, tt.roleId, tt.module, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, scope)
		})
	}
}

func TestRoleGrantCache(t *testing.T) {
	svc, permRepo := newPermFixture(map[string][]string{
		"agent": {"cases.view.own"},
	})
	ctx := context.Background()

	_, err := svc.HasPermission(ctx, "agent", "cases.view.own")
	require.NoError(t, err)
	_, err = svc.GetHighestScope(ctx, "agent", "cases", "view")
	require.NoError(t, err)
	assert.Equal(t, 1, permRepo.loads)

	// 失效后重新加载
	svc.InvalidateRole("agent")
	_, err = svc.HasPermission(ctx, "agent", "cases.view.own")
	require.NoError(t, err)
	assert.Equal(t, 2, permRepo.loads)
}

func TestPermissionCatalog(t *testing.T) {
	catalog := model.PermissionCatalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		_, dup := seen[p.Code]
		assert.False(t, dup, "duplicate code %s", p.Code)
		seen[p.Code] = struct{}{}

		module, action, scope, err := authz.SplitCode(p.Code)
		require.NoError(t, err)
		assert.Equal(t, p.Module, module)
		assert.Equal(t, p.Action, action)
		assert.Equal(t, p.Scope, scope.String())
	}

	// 内置角色授予的 code 必须都在目录里
	for roleId, codes := range model.BuiltinRoleGrants() {
		for _, code := range codes {
			_, ok := seen[code]
			assert.True(t, ok, "role %s grants unknown code %s", roleId, code)
		}
	}
}

func TestSyncCatalogPreservesOperatorEdits(t *testing.T) {
	permRepo := &fakePermRepo{grants: make(map[string][]string)}
	roleRepo := &fakeRoleRepo{roles: make(map[string]model.Role)}
	svc := NewPermissionService(permRepo, roleRepo)
	ctx := context.Background()

	// 首次同步建角色并写入默认授予
	require.NoError(t, svc.SyncCatalog(ctx))
	require.NotEmpty(t, permRepo.grants[model.BuiltinRoleAgent])

	// 运营侧撤销 agent 的一个默认授予
	revoked := permRepo.grants[model.BuiltinRoleAgent][0]
	permRepo.grants[model.BuiltinRoleAgent] = permRepo.grants[model.BuiltinRoleAgent][1:]
	svc.InvalidateRole(model.BuiltinRoleAgent)

	// 角色已存在，重启后的同步不回放默认授予
	require.NoError(t, svc.SyncCatalog(ctx))
	assert.NotContains(t, permRepo.grants[model.BuiltinRoleAgent], revoked)

	ok, err := svc.HasPermission(ctx, model.BuiltinRoleAgent, revoked)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceRolePermissions(t *testing.T) {
	permRepo := &fakePermRepo{grants: map[string][]string{
		"ops": {"cases.view.own", "cases.edit.own"},
	}}
	roleRepo := &fakeRoleRepo{roles: map[string]model.Role{
		"ops": {RoleId: "ops", Name: "ops"},
	}}
	svc := NewPermissionService(permRepo, roleRepo)
	ctx := context.Background()

	t.Run("unknown role returns not found", func(t *testing.T) {
		err := svc.ReplaceRolePermissions(ctx, "ghost", []string{"cases.view.own"})
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("invalid code is rejected", func(t *testing.T) {
		err := svc.ReplaceRolePermissions(ctx, "ops", []string{"not-a-code"})
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("replace overwrites the grant set and cache", func(t *testing.T) {
		// 预热缓存后整体覆盖，旧授予不再命中
		ok, err := svc.HasPermission(ctx, "ops", "cases.edit.own")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, svc.ReplaceRolePermissions(ctx, "ops", []string{"cases.view.team"}))
		assert.Equal(t, []string{"cases.view.team"}, permRepo.grants["ops"])

		ok, err = svc.HasPermission(ctx, "ops", "cases.edit.own")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.HasPermission(ctx, "ops", "cases.view.team")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
