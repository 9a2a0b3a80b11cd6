package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/log"
	"gorm.io/gorm"
)

// PermissionService 解析角色在某权限点上的授权情况。
// 角色的授权集合按 roleId 缓存在内存，授权变更后需调用 InvalidateRole
type PermissionService struct {
	permRepo repo.IPermissionRepository
	roleRepo repo.IRoleRepository

	mu    sync.RWMutex
	cache map[string]map[string]struct{} // roleId -> 已授予的权限 code 集合
}

func NewPermissionService(permRepo repo.IPermissionRepository, roleRepo repo.IRoleRepository) *PermissionService {
	return &PermissionService{
		permRepo: permRepo,
		roleRepo: roleRepo,
		cache:    make(map[string]map[string]struct{}),
	}
}

// HasPermission 判断角色是否被授予了指定权限点（精确匹配 code）。
// 未知角色视为空授权集合，返回 false 而不是错误
func (s *PermissionService) HasPermission(ctx context.Context, roleId, code string) (bool, error) {
	granted, err := s.roleGrants(roleId)
	if err != nil {
		return false, err
	}
	_, ok := granted[code]
	return ok, nil
}

// HasPermissions 批量判断，结果等价于逐个调用 HasPermission
func (s *PermissionService) HasPermissions(ctx context.Context, roleId string, codes []string) (map[string]bool, error) {
	granted, err := s.roleGrants(roleId)
	if err != nil {
		return nil, err
	}
	result := make(map[string]bool, len(codes))
	for _, code := range codes {
		_, ok := granted[code]
		result[code] = ok
	}
	return result, nil
}

// GetHighestScope 返回角色在 (module, action) 上被授予的最高范围。
// 按 own < team < all 的全序取最大值，一个都没有时返回 ScopeNone
func (s *PermissionService) GetHighestScope(ctx context.Context, roleId, module, action string) (authz.Scope, error) {
	granted, err := s.roleGrants(roleId)
	if err != nil {
		return authz.ScopeNone, err
	}
	highest := authz.ScopeNone
	for _, scope := range authz.Scopes() {
		if _, ok := granted[authz.Code(module, action, scope)]; ok && scope > highest {
			highest = scope
		}
	}
	return highest, nil
}

// ListPermissions 列出全量权限目录
func (s *PermissionService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	perms, err := s.permRepo.ListPermissions()
	if err != nil {
		return nil, fmt.Errorf("list permissions failed: %w", err)
	}
	return perms, nil
}

// GetRolePermissions 获取角色已授予的权限 code 列表
func (s *PermissionService) GetRolePermissions(ctx context.Context, roleId string) ([]string, error) {
	if _, err := s.roleRepo.GetRoleById(roleId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("role not found")
		}
		return nil, fmt.Errorf("get role failed: %w", err)
	}
	codes, err := s.permRepo.GetRolePermissionCodes(roleId)
	if err != nil {
		return nil, fmt.Errorf("get role permissions failed: %w", err)
	}
	return codes, nil
}

// GrantPermissions 为角色授予权限，code 必须存在于权限目录
func (s *PermissionService) GrantPermissions(ctx context.Context, roleId string, codes []string) error {
	if _, err := s.roleRepo.GetRoleById(roleId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("role not found")
		}
		return fmt.Errorf("get role failed: %w", err)
	}
	for _, code := range codes {
		if _, _, _, err := authz.SplitCode(code); err != nil {
			return errs.Newf(errs.KindValidation, "invalid permission code: %q", code)
		}
	}
	if err := s.permRepo.GrantToRole(roleId, codes); err != nil {
		log.Errorw("grant permissions failed", "roleId", roleId, "error", err)
		return fmt.Errorf("grant permissions failed: %w", err)
	}
	s.InvalidateRole(roleId)
	return nil
}

// ReplaceRolePermissions 以给定集合整体覆盖角色的授权
func (s *PermissionService) ReplaceRolePermissions(ctx context.Context, roleId string, codes []string) error {
	if _, err := s.roleRepo.GetRoleById(roleId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("role not found")
		}
		return fmt.Errorf("get role failed: %w", err)
	}
	for _, code := range codes {
		if _, _, _, err := authz.SplitCode(code); err != nil {
			return errs.Newf(errs.KindValidation, "invalid permission code: %q", code)
		}
	}
	if err := s.permRepo.ReplaceRoleGrants(roleId, codes); err != nil {
		log.Errorw("replace role permissions failed", "roleId", roleId, "error", err)
		return fmt.Errorf("replace role permissions failed: %w", err)
	}
	s.InvalidateRole(roleId)
	return nil
}

// RevokePermissions 撤销角色的权限
func (s *PermissionService) RevokePermissions(ctx context.Context, roleId string, codes []string) error {
	if err := s.permRepo.RevokeFromRole(roleId, codes); err != nil {
		log.Errorw("revoke permissions failed", "roleId", roleId, "error", err)
		return fmt.Errorf("revoke permissions failed: %w", err)
	}
	s.InvalidateRole(roleId)
	return nil
}

// InvalidateRole 使角色的授权缓存失效
func (s *PermissionService) InvalidateRole(roleId string) {
	s.mu.Lock()
	delete(s.cache, roleId)
	s.mu.Unlock()
}

// SyncCatalog 同步权限目录并为内置角色补齐默认授予，幂等，启动时调用
func (s *PermissionService) SyncCatalog(ctx context.Context) error {
	if err := s.permRepo.SyncCatalog(model.PermissionCatalog()); err != nil {
		return fmt.Errorf("sync permission catalog failed: %w", err)
	}
	builtin := map[string]model.Role{
		model.BuiltinRoleAdmin:      {RoleId: model.BuiltinRoleAdmin, Name: "admin", DisplayName: "系统管理员"},
		model.BuiltinRoleSupervisor: {RoleId: model.BuiltinRoleSupervisor, Name: "supervisor", DisplayName: "团队主管"},
		model.BuiltinRoleAgent:      {RoleId: model.BuiltinRoleAgent, Name: "agent", DisplayName: "办案人员"},
		model.BuiltinRoleViewer:     {RoleId: model.BuiltinRoleViewer, Name: "viewer", DisplayName: "只读访问"},
	}
	grants := model.BuiltinRoleGrants()
	for roleId, role := range builtin {
		if _, err := s.roleRepo.GetRoleById(roleId); err == nil {
			// 角色已存在，不重放默认授予，保留运营侧的增删
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("get builtin role failed: %w", err)
		}
		role.IsEnabled = 1
		if err := s.roleRepo.AddRole(&role); err != nil {
			return fmt.Errorf("create builtin role failed: %w", err)
		}
		if err := s.permRepo.GrantToRole(roleId, grants[roleId]); err != nil {
			return fmt.Errorf("grant builtin role failed: %w", err)
		}
		s.InvalidateRole(roleId)
	}
	log.Infow("permission catalog synced", "permissions", len(model.PermissionCatalog()))
	return nil
}

// roleGrants 获取角色的授权集合，缓存未命中时从库加载
func (s *PermissionService) roleGrants(roleId string) (map[string]struct{}, error) {
	s.mu.RLock()
	granted, ok := s.cache[roleId]
	s.mu.RUnlock()
	if ok {
		return granted, nil
	}

	codes, err := s.permRepo.GetRolePermissionCodes(roleId)
	if err != nil {
		return nil, fmt.Errorf("load role permissions failed: %w", err)
	}
	granted = make(map[string]struct{}, len(codes))
	for _, code := range codes {
		granted[code] = struct{}{}
	}

	s.mu.Lock()
	s.cache[roleId] = granted
	s.mu.Unlock()
	return granted, nil
}
