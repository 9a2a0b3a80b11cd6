package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/log"
	"gorm.io/gorm"
)

// RoleService 角色管理，内置角色不允许删除
type RoleService struct {
	roleRepo    repo.IRoleRepository
	permService *PermissionService
}

func NewRoleService(roleRepo repo.IRoleRepository, permService *PermissionService) *RoleService {
	return &RoleService{roleRepo: roleRepo, permService: permService}
}

// isBuiltinRole 是否为内置角色
func isBuiltinRole(roleId string) bool {
	switch roleId {
	case model.BuiltinRoleAdmin, model.BuiltinRoleSupervisor, model.BuiltinRoleAgent, model.BuiltinRoleViewer:
		return true
	}
	return false
}

// CreateRole 创建自定义角色
func (s *RoleService) CreateRole(ctx context.Context, req *model.CreateRoleReq) (*model.Role, error) {
	if req.RoleId == "" {
		return nil, errs.Validation("role id cannot be empty")
	}
	if req.Name == "" {
		return nil, errs.Validation("role name cannot be empty")
	}

	if _, err := s.roleRepo.GetRoleById(req.RoleId); err == nil {
		return nil, errs.Conflict("role id already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check role failed: %w", err)
	}

	role := &model.Role{
		RoleId:      req.RoleId,
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		IsEnabled:   1,
	}
	if role.DisplayName == "" {
		role.DisplayName = role.Name
	}
	if err := s.roleRepo.AddRole(role); err != nil {
		log.Errorw("create role failed", "roleId", req.RoleId, "error", err)
		return nil, fmt.Errorf("create role failed: %w", err)
	}

	log.Infow("role created", "roleId", role.RoleId, "name", role.Name)
	return role, nil
}

// GetRoleById 获取角色
func (s *RoleService) GetRoleById(ctx context.Context, roleId string) (*model.Role, error) {
	role, err := s.roleRepo.GetRoleById(roleId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("role not found")
		}
		return nil, fmt.Errorf("get role failed: %w", err)
	}
	return role, nil
}

// ListRoles 列出全部角色
func (s *RoleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleRepo.ListRoles()
	if err != nil {
		log.Errorw("list roles failed", "error", err)
		return nil, fmt.Errorf("list roles failed: %w", err)
	}
	return roles, nil
}

// UpdateRole 更新角色
func (s *RoleService) UpdateRole(ctx context.Context, roleId string, req *model.UpdateRoleReq) (*model.Role, error) {
	if _, err := s.GetRoleById(ctx, roleId); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.roleRepo.UpdateRole(roleId, updates); err != nil {
			log.Errorw("update role failed", "roleId", roleId, "error", err)
			return nil, fmt.Errorf("update role failed: %w", err)
		}
	}
	return s.GetRoleById(ctx, roleId)
}

// DeleteRole 删除自定义角色及其权限授予
func (s *RoleService) DeleteRole(ctx context.Context, roleId string) error {
	if isBuiltinRole(roleId) {
		return errs.Conflict("builtin role cannot be deleted")
	}
	if _, err := s.GetRoleById(ctx, roleId); err != nil {
		return err
	}
	if err := s.roleRepo.DeleteRole(roleId); err != nil {
		log.Errorw("delete role failed", "roleId", roleId, "error", err)
		return fmt.Errorf("delete role failed: %w", err)
	}
	s.permService.InvalidateRole(roleId)
	log.Infow("role deleted", "roleId", roleId)
	return nil
}
