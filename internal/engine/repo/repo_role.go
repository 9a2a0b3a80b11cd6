// Copyright 2025 Caseflow Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/database"
)

type IRoleRepository interface {
	GetRoleById(roleId string) (*model.Role, error)
	ListRoles() ([]model.Role, error)
	AddRole(role *model.Role) error
	UpdateRole(roleId string, updates map[string]interface{}) error
	DeleteRole(roleId string) error
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{IDatabase: db}
}

// GetRoleById 根据角色 ID 获取角色
func (r *RoleRepo) GetRoleById(roleId string) (*model.Role, error) {
	var role model.Role
	err := r.Database().Where("role_id = ?", roleId).First(&role).Error
	return &role, err
}

// ListRoles 列出全部角色
func (r *RoleRepo) ListRoles() ([]model.Role, error) {
	var roles []model.Role
	err := r.Database().Order("id ASC").Find(&roles).Error
	return roles, err
}

// AddRole 新增角色
func (r *RoleRepo) AddRole(role *model.Role) error {
	return r.Database().Create(role).Error
}

// UpdateRole 更新角色
func (r *RoleRepo) UpdateRole(roleId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Role{}).
		Where("role_id = ?", roleId).Updates(updates).Error
}

// DeleteRole 删除角色及其权限授予
func (r *RoleRepo) DeleteRole(roleId string) error {
	if err := r.Database().Where("role_id = ?", roleId).
		Delete(&model.RolePermission{}).Error; err != nil {
		return err
	}
	return r.Database().Where("role_id = ?", roleId).Delete(&model.Role{}).Error
}
