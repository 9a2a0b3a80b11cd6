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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/database"
)

type IPermissionRepository interface {
	ListPermissions() ([]model.Permission, error)
	GetRolePermissionCodes(roleId string) ([]string, error)
	SyncCatalog(perms []model.Permission) error
	GrantToRole(roleId string, codes []string) error
	RevokeFromRole(roleId string, codes []string) error
	ReplaceRoleGrants(roleId string, codes []string) error
}

type PermissionRepo struct {
	database.IDatabase
}

func NewPermissionRepo(db database.IDatabase) IPermissionRepository {
	return &PermissionRepo{IDatabase: db}
}

// ListPermissions 列出全量权限目录
func (r *PermissionRepo) ListPermissions() ([]model.Permission, error) {
	var perms []model.Permission
	err := r.Database().Order("module, action, scope").Find(&perms).Error
	return perms, err
}

// GetRolePermissionCodes 获取角色已授予的权限 code 列表
func (r *PermissionRepo) GetRolePermissionCodes(roleId string) ([]string, error) {
	var codes []string
	err := r.Database().Model(&model.RolePermission{}).
		Where("role_id = ?", roleId).Pluck("code", &codes).Error
	return codes, err
}

// SyncCatalog 幂等同步权限目录，已存在的 code 跳过
func (r *PermissionRepo) SyncCatalog(perms []model.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	return r.Database().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&perms).Error
}

// GrantToRole 为角色授予权限，重复授予幂等
func (r *PermissionRepo) GrantToRole(roleId string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	grants := make([]model.RolePermission, 0, len(codes))
	for _, code := range codes {
		grants = append(grants, model.RolePermission{RoleId: roleId, Code: code})
	}
	return r.Database().Clauses(clause.OnConflict{DoNothing: true}).Create(&grants).Error
}

// RevokeFromRole 撤销角色的指定权限
func (r *PermissionRepo) RevokeFromRole(roleId string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return r.Database().Where("role_id = ? AND code IN ?", roleId, codes).
		Delete(&model.RolePermission{}).Error
}

// ReplaceRoleGrants 整体替换角色权限，单事务执行
func (r *PermissionRepo) ReplaceRoleGrants(roleId string, codes []string) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleId).
			Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if len(codes) == 0 {
			return nil
		}
		grants := make([]model.RolePermission, 0, len(codes))
		for _, code := range codes {
			grants = append(grants, model.RolePermission{RoleId: roleId, Code: code})
		}
		return tx.Create(&grants).Error
	})
}
