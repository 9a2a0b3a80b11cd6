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

package authz

import (
	"context"

	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/google/wire"
)

// ProviderSet 提供授权门相关依赖
var ProviderSet = wire.NewSet(NewGate)

// Actor 发起操作的主体
type Actor struct {
	UserId string
	RoleId string
}

// Permission 一个 (module, action) 权限请求，范围不限
type Permission struct {
	Module string
	Action string
}

// PermissionSource 角色权限解析（由 PermissionService 实现）
type PermissionSource interface {
	HasPermission(ctx context.Context, roleId, code string) (bool, error)
	GetHighestScope(ctx context.Context, roleId, module, action string) (Scope, error)
}

// MembershipSource 团队成员关系查询（由 TeamMemberService 实现）
type MembershipSource interface {
	GetActiveTeamIds(ctx context.Context, userId string) ([]string, error)
}

// Gate 按请求编排权限解析与范围限制。
// 解析失败一律拒绝，绝不退化为隐式 all 范围放行。
type Gate struct {
	perms   PermissionSource
	members MembershipSource
}

func NewGate(perms PermissionSource, members MembershipSource) *Gate {
	return &Gate{perms: perms, members: members}
}

// Authorize 解析操作者对 (module, action) 的最高授权范围并构建数据限制。
// loc 非空且给定 resourceId 时追加单资源归属检查。
func (g *Gate) Authorize(ctx context.Context, actor *Actor, module, action string, loc ResourceLocator, resourceId string) (Restriction, error) {
	if actor == nil || actor.UserId == "" {
		return Restriction{}, errs.Unauthenticated("no actor in request context")
	}

	scope, err := g.perms.GetHighestScope(ctx, actor.RoleId, module, action)
	if err != nil {
		return Restriction{}, errs.Internal(err)
	}
	if !scope.Granted() {
		return Restriction{}, errs.Forbidden(module, action)
	}

	restriction, err := g.buildRestriction(ctx, actor, scope)
	if err != nil {
		return Restriction{}, err
	}

	if loc != nil && resourceId != "" {
		if err := restriction.CheckResource(ctx, loc, resourceId); err != nil {
			return Restriction{}, err
		}
	}

	return restriction, nil
}

// RequireAll 要求全部权限点被授予（任意范围），附带范围取各权限范围的最小值
func (g *Gate) RequireAll(ctx context.Context, actor *Actor, perms []Permission) (Restriction, error) {
	if actor == nil || actor.UserId == "" {
		return Restriction{}, errs.Unauthenticated("no actor in request context")
	}

	lowest := ScopeAll
	for _, p := range perms {
		scope, err := g.perms.GetHighestScope(ctx, actor.RoleId, p.Module, p.Action)
		if err != nil {
			return Restriction{}, errs.Internal(err)
		}
		if !scope.Granted() {
			return Restriction{}, errs.Forbidden(p.Module, p.Action)
		}
		if scope < lowest {
			lowest = scope
		}
	}

	return g.buildRestriction(ctx, actor, lowest)
}

// RequireAny 要求至少一个权限点被授予，附带范围取满足项中的最大值
func (g *Gate) RequireAny(ctx context.Context, actor *Actor, perms []Permission) (Restriction, error) {
	if actor == nil || actor.UserId == "" {
		return Restriction{}, errs.Unauthenticated("no actor in request context")
	}

	highest := ScopeNone
	for _, p := range perms {
		scope, err := g.perms.GetHighestScope(ctx, actor.RoleId, p.Module, p.Action)
		if err != nil {
			return Restriction{}, errs.Internal(err)
		}
		if scope > highest {
			highest = scope
		}
	}
	if !highest.Granted() {
		if len(perms) > 0 {
			return Restriction{}, errs.Forbidden(perms[0].Module, perms[0].Action)
		}
		return Restriction{}, errs.New(errs.KindForbidden, "no permission requested")
	}

	return g.buildRestriction(ctx, actor, highest)
}

func (g *Gate) buildRestriction(ctx context.Context, actor *Actor, scope Scope) (Restriction, error) {
	restriction := Restriction{Scope: scope}
	switch scope {
	case ScopeOwn:
		restriction.OwnerId = actor.UserId
	case ScopeTeam:
		teamIds, err := g.members.GetActiveTeamIds(ctx, actor.UserId)
		if err != nil {
			return Restriction{}, errs.Internal(err)
		}
		restriction.TeamIds = teamIds
	}
	return restriction, nil
}
