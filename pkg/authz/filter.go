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
	"slices"

	"github.com/caseflow/caseflow/pkg/errs"
	"gorm.io/gorm"
)

// ResourceLocator 定位具体资源的归属，按资源类型各实现一份。
// 加载资源失败视为资源不存在，不是授权错误。
type ResourceLocator interface {
	// OwnerId 返回资源的属主用户ID
	OwnerId(ctx context.Context, resourceId string) (string, error)
	// TeamIds 返回资源关联的团队ID集合
	TeamIds(ctx context.Context, resourceId string) ([]string, error)
}

// Restriction 已解析范围对应的数据访问限制
type Restriction struct {
	Scope   Scope
	OwnerId string   // ScopeOwn 时为操作者用户ID
	TeamIds []string // ScopeTeam 时为操作者当前激活的团队ID集合
}

// Apply 将限制转为查询条件。ownerCol/teamCol 为目标表的归属列名。
// 未解析出范围时结果恒为空，不会退化为全量。
func (r Restriction) Apply(tx *gorm.DB, ownerCol, teamCol string) *gorm.DB {
	switch r.Scope {
	case ScopeAll:
		return tx
	case ScopeOwn:
		return tx.Where(ownerCol+" = ?", r.OwnerId)
	case ScopeTeam:
		if len(r.TeamIds) == 0 {
			// 不属于任何团队，结果恒为空
			return tx.Where("1 = 0")
		}
		return tx.Where(teamCol+" IN ?", r.TeamIds)
	default:
		return tx.Where("1 = 0")
	}
}

// CheckResource 单资源检查：资源归属是否落在限制允许的集合内
func (r Restriction) CheckResource(ctx context.Context, loc ResourceLocator, resourceId string) error {
	switch r.Scope {
	case ScopeAll:
		return nil
	case ScopeOwn:
		ownerId, err := loc.OwnerId(ctx, resourceId)
		if err != nil {
			return asNotFound(err)
		}
		if ownerId != r.OwnerId {
			return errs.New(errs.KindForbidden, "resource is outside your scope")
		}
		return nil
	case ScopeTeam:
		teamIds, err := loc.TeamIds(ctx, resourceId)
		if err != nil {
			return asNotFound(err)
		}
		for _, id := range teamIds {
			if slices.Contains(r.TeamIds, id) {
				return nil
			}
		}
		return errs.New(errs.KindForbidden, "resource is outside your teams")
	default:
		return errs.New(errs.KindForbidden, "no scope resolved")
	}
}

// asNotFound 定位器失败统一归为资源不存在，已分类的错误原样透传
func asNotFound(err error) error {
	if errs.IsKind(err, errs.KindNotFound) {
		return err
	}
	return errs.Wrap(errs.KindNotFound, err, "resource not found")
}
