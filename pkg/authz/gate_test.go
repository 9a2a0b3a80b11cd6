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
	"errors"
	"testing"

	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPerms 以 roleId -> 权限点集合的静态表实现 PermissionSource
type stubPerms struct {
	grants map[string]map[string]bool
	err    error
}

func (s *stubPerms) HasPermission(_ context.Context, roleId, code string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.grants[roleId][code], nil
}

func (s *stubPerms) GetHighestScope(_ context.Context, roleId, module, action string) (Scope, error) {
	if s.err != nil {
		return ScopeNone, s.err
	}
	highest := ScopeNone
	for _, scope := range Scopes() {
		if s.grants[roleId][Code(module, action, scope)] && scope > highest {
			highest = scope
		}
	}
	return highest, nil
}

type stubMembers struct {
	teams map[string][]string
	err   error
}

func (s *stubMembers) GetActiveTeamIds(_ context.Context, userId string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.teams[userId], nil
}

type stubLocator struct {
	owners map[string]string
	teams  map[string][]string
}

func (s *stubLocator) OwnerId(_ context.Context, resourceId string) (string, error) {
	owner, ok := s.owners[resourceId]
	if !ok {
		return "", errs.NotFound("resource not found")
	}
	return owner, nil
}

func (s *stubLocator) TeamIds(_ context.Context, resourceId string) ([]string, error) {
	teams, ok := s.teams[resourceId]
	if !ok {
		return nil, errs.NotFound("resource not found")
	}
	return teams, nil
}

func newTestGate() *Gate {
	perms := &stubPerms{grants: map[string]map[string]bool{
		"agent": {
			"cases.view.own":  true,
			"cases.edit.own":  true,
			"docs.view.team":  true,
			"teams.view.team": true,
		},
		"supervisor": {
			"cases.view.own":  true,
			"cases.view.team": true,
			"cases.edit.team": true,
			"docs.view.all":   true,
		},
		"admin": {
			"cases.view.all": true,
			"cases.edit.all": true,
			"teams.edit.all": true,
		},
	}}
	members := &stubMembers{teams: map[string][]string{
		"u1": {"team-a"},
		"u2": {"team-a", "team-b"},
	}}
	return NewGate(perms, members)
}

func TestGate_Authorize_NoActor(t *testing.T) {
	gate := newTestGate()

	_, err := gate.Authorize(context.Background(), nil, "cases", "view", nil, "")
	assert.True(t, errs.IsKind(err, errs.KindUnauthenticated))

	_, err = gate.Authorize(context.Background(), &Actor{}, "cases", "view", nil, "")
	assert.True(t, errs.IsKind(err, errs.KindUnauthenticated))
}

func TestGate_Authorize_NoGrant(t *testing.T) {
	gate := newTestGate()

	_, err := gate.Authorize(context.Background(), &Actor{UserId: "u1", RoleId: "agent"}, "teams", "edit", nil, "")
	require.True(t, errs.IsKind(err, errs.KindForbidden))

	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "teams", e.Module)
	assert.Equal(t, "edit", e.Action)
}

func TestGate_Authorize_ScopeMonotonicity(t *testing.T) {
	gate := newTestGate()

	// supervisor 同时拥有 own 和 team，取最大者 team
	r, err := gate.Authorize(context.Background(), &Actor{UserId: "u1", RoleId: "supervisor"}, "cases", "view", nil, "")
	require.NoError(t, err)
	assert.Equal(t, ScopeTeam, r.Scope)
	assert.Equal(t, []string{"team-a"}, r.TeamIds)

	r, err = gate.Authorize(context.Background(), &Actor{UserId: "u1", RoleId: "admin"}, "cases", "view", nil, "")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, r.Scope)
	assert.Empty(t, r.TeamIds)
}

func TestGate_Authorize_OwnResourceCheck(t *testing.T) {
	gate := newTestGate()
	loc := &stubLocator{
		owners: map[string]string{"c1": "u1", "c2": "u9"},
		teams:  map[string][]string{"c1": {"team-a"}, "c2": {"team-z"}},
	}
	actor := &Actor{UserId: "u1", RoleId: "agent"}

	r, err := gate.Authorize(context.Background(), actor, "cases", "edit", loc, "c1")
	require.NoError(t, err)
	assert.Equal(t, ScopeOwn, r.Scope)
	assert.Equal(t, "u1", r.OwnerId)

	_, err = gate.Authorize(context.Background(), actor, "cases", "edit", loc, "c2")
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	// 定位失败按资源不存在处理，而不是授权错误
	_, err = gate.Authorize(context.Background(), actor, "cases", "edit", loc, "missing")
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestGate_Authorize_TeamResourceCheck(t *testing.T) {
	gate := newTestGate()
	loc := &stubLocator{
		owners: map[string]string{"c1": "u9", "c2": "u9"},
		teams:  map[string][]string{"c1": {"team-a"}, "c2": {"team-z"}},
	}
	actor := &Actor{UserId: "u1", RoleId: "supervisor"}

	_, err := gate.Authorize(context.Background(), actor, "cases", "edit", loc, "c1")
	assert.NoError(t, err)

	_, err = gate.Authorize(context.Background(), actor, "cases", "edit", loc, "c2")
	assert.True(t, errs.IsKind(err, errs.KindForbidden))
}

func TestGate_Authorize_ResolverFailureDenies(t *testing.T) {
	gate := NewGate(&stubPerms{err: errors.New("storage down")}, &stubMembers{})

	_, err := gate.Authorize(context.Background(), &Actor{UserId: "u1", RoleId: "agent"}, "cases", "view", nil, "")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInternal))
}

func TestGate_RequireAll(t *testing.T) {
	gate := newTestGate()
	actor := &Actor{UserId: "u1", RoleId: "supervisor"}

	// 全部满足，附带范围为各权限的最小范围
	r, err := gate.RequireAll(context.Background(), actor, []Permission{
		{Module: "cases", Action: "view"},
		{Module: "docs", Action: "view"},
	})
	require.NoError(t, err)
	assert.Equal(t, ScopeTeam, r.Scope)

	// 任意一个缺失即拒绝
	_, err = gate.RequireAll(context.Background(), actor, []Permission{
		{Module: "cases", Action: "view"},
		{Module: "teams", Action: "edit"},
	})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))
}

func TestGate_RequireAny(t *testing.T) {
	gate := newTestGate()
	actor := &Actor{UserId: "u1", RoleId: "supervisor"}

	// 满足项中的最大范围
	r, err := gate.RequireAny(context.Background(), actor, []Permission{
		{Module: "teams", Action: "edit"},
		{Module: "docs", Action: "view"},
	})
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, r.Scope)

	_, err = gate.RequireAny(context.Background(), actor, []Permission{
		{Module: "teams", Action: "edit"},
		{Module: "roles", Action: "manage"},
	})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))
}
