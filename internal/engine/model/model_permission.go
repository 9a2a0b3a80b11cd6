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

package model

import "github.com/caseflow/caseflow/pkg/authz"

// Permission 权限表，code 形如 "cases.view.team"
type Permission struct {
	BaseModel
	Code        string `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Module      string `gorm:"column:module;not null;index" json:"module"` // cases / documents / teams / users / roles
	Action      string `gorm:"column:action;not null" json:"action"`
	Scope       string `gorm:"column:scope;not null" json:"scope"` // own / team / all
	Description string `gorm:"column:description" json:"description"`
}

func (Permission) TableName() string {
	return "t_permission"
}

// RolePermission 角色-权限关联表
type RolePermission struct {
	BaseModel
	RoleId string `gorm:"column:role_id;not null;index:idx_role_perm,unique" json:"roleId"`
	Code   string `gorm:"column:code;not null;index:idx_role_perm,unique" json:"code"`
}

func (RolePermission) TableName() string {
	return "t_role_permission"
}

// 业务模块名
const (
	ModuleCases     = "cases"
	ModuleDocuments = "documents"
	ModuleTeams     = "teams"
	ModuleUsers     = "users"
	ModuleRoles     = "roles"
)

type permDef struct {
	Module string
	Action string
	Scopes []authz.Scope
}

// permissionCatalog 全量权限目录，启动时同步到 t_permission
var permissionCatalog = []permDef{
	{ModuleCases, "view", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleCases, "create", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleCases, "edit", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleCases, "delete", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleCases, "assign", []authz.Scope{authz.ScopeTeam, authz.ScopeAll}},
	{ModuleDocuments, "view", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleDocuments, "create", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleDocuments, "edit", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleDocuments, "delete", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleTeams, "view", []authz.Scope{authz.ScopeTeam, authz.ScopeAll}},
	{ModuleTeams, "create", []authz.Scope{authz.ScopeAll}},
	{ModuleTeams, "edit", []authz.Scope{authz.ScopeTeam, authz.ScopeAll}},
	{ModuleTeams, "delete", []authz.Scope{authz.ScopeAll}},
	{ModuleTeams, "manageMembers", []authz.Scope{authz.ScopeTeam, authz.ScopeAll}},
	{ModuleUsers, "view", []authz.Scope{authz.ScopeOwn, authz.ScopeTeam, authz.ScopeAll}},
	{ModuleUsers, "create", []authz.Scope{authz.ScopeAll}},
	{ModuleUsers, "edit", []authz.Scope{authz.ScopeOwn, authz.ScopeAll}},
	{ModuleUsers, "delete", []authz.Scope{authz.ScopeAll}},
	{ModuleRoles, "view", []authz.Scope{authz.ScopeAll}},
	{ModuleRoles, "edit", []authz.Scope{authz.ScopeAll}},
}

// PermissionCatalog 展开权限目录为持久化行
func PermissionCatalog() []Permission {
	var perms []Permission
	for _, def := range permissionCatalog {
		for _, scope := range def.Scopes {
			perms = append(perms, Permission{
				Code:   authz.Code(def.Module, def.Action, scope),
				Module: def.Module,
				Action: def.Action,
				Scope:  scope.String(),
			})
		}
	}
	return perms
}

// BuiltinRoleGrants 内置角色的默认权限授予
func BuiltinRoleGrants() map[string][]string {
	grants := map[string][]string{
		BuiltinRoleAdmin:      {},
		BuiltinRoleSupervisor: {},
		BuiltinRoleAgent:      {},
		BuiltinRoleViewer:     {},
	}
	for _, p := range PermissionCatalog() {
		// admin 拥有全部权限
		grants[BuiltinRoleAdmin] = append(grants[BuiltinRoleAdmin], p.Code)
		switch p.Scope {
		case authz.ScopeTeam.String():
			grants[BuiltinRoleSupervisor] = append(grants[BuiltinRoleSupervisor], p.Code)
		case authz.ScopeOwn.String():
			grants[BuiltinRoleSupervisor] = append(grants[BuiltinRoleSupervisor], p.Code)
			grants[BuiltinRoleAgent] = append(grants[BuiltinRoleAgent], p.Code)
			if p.Action == "view" {
				grants[BuiltinRoleViewer] = append(grants[BuiltinRoleViewer], p.Code)
			}
		}
	}
	return grants
}

// GrantPermissionReq request for granting permissions to a role
type GrantPermissionReq struct {
	Codes []string `json:"codes"`
}
