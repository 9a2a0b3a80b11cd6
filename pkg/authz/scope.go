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
	"fmt"
	"strings"
)

// Scope 权限可见范围，全序 none < own < team < all
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeTeam
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "own"
	case ScopeTeam:
		return "team"
	case ScopeAll:
		return "all"
	default:
		return "none"
	}
}

// Granted 是否授予了任意范围
func (s Scope) Granted() bool {
	return s > ScopeNone
}

// ParseScope 解析范围字符串，none 不是合法的授权范围
func ParseScope(raw string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "own":
		return ScopeOwn, nil
	case "team":
		return ScopeTeam, nil
	case "all":
		return ScopeAll, nil
	default:
		return ScopeNone, fmt.Errorf("invalid scope: %q", raw)
	}
}

// Scopes 全部可授权范围，按从窄到宽排列
func Scopes() []Scope {
	return []Scope{ScopeOwn, ScopeTeam, ScopeAll}
}

// Code 组合权限点标识 "<module>.<action>.<scope>"，如 "cases.view.own"
func Code(module, action string, scope Scope) string {
	return module + "." + action + "." + scope.String()
}

// SplitCode 拆分权限点标识
func SplitCode(code string) (module, action string, scope Scope, err error) {
	parts := strings.Split(code, ".")
	if len(parts) != 3 {
		return "", "", ScopeNone, fmt.Errorf("invalid permission code: %q", code)
	}
	scope, err = ParseScope(parts[2])
	if err != nil {
		return "", "", ScopeNone, fmt.Errorf("invalid permission code: %q", code)
	}
	return parts[0], parts[1], scope, nil
}
