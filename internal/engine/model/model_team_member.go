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

import (
	"time"

	"github.com/caseflow/caseflow/pkg/errs"
)

// MemberRole 团队内角色
type MemberRole string

const (
	MemberRoleManager MemberRole = "manager" // 每个团队最多一个活跃 manager
	MemberRoleLead    MemberRole = "lead"
	MemberRoleSenior  MemberRole = "senior"
	MemberRoleMember  MemberRole = "member"
)

// ParseMemberRole 校验并解析团队角色
func ParseMemberRole(s string) (MemberRole, error) {
	switch MemberRole(s) {
	case MemberRoleManager, MemberRoleLead, MemberRoleSenior, MemberRoleMember:
		return MemberRole(s), nil
	}
	return "", errs.Newf(errs.KindValidation, "invalid team member role: %q", s)
}

// TeamMember 团队成员表，离队做软删除（is_active=false, left_at 置值）
// 同一 (team_id, user_id) 同时只允许一条活跃记录，重新加入时新增记录
type TeamMember struct {
	BaseModel
	TeamId   string     `gorm:"column:team_id;not null;index" json:"teamId"`
	UserId   string     `gorm:"column:user_id;not null;index" json:"userId"`
	Role     MemberRole `gorm:"column:role;not null" json:"role"`
	IsActive bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	JoinedAt time.Time  `gorm:"column:joined_at;not null" json:"joinedAt"`
	LeftAt   *time.Time `gorm:"column:left_at" json:"leftAt,omitempty"` // 仅 is_active=false 时非空
}

func (TeamMember) TableName() string {
	return "t_team_member"
}

// AddMemberReq request for adding a team member
type AddMemberReq struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

// UpdateMemberRoleReq request for changing a member's role
type UpdateMemberRoleReq struct {
	Role string `json:"role"`
}

// TransferLeadershipReq request for transferring team leadership
type TransferLeadershipReq struct {
	FromUserId   string `json:"fromUserId"`
	NewManagerId string `json:"newManagerId"`
}

// MemberInfo member joined with user display fields
type MemberInfo struct {
	TeamMember
	Username  string `json:"username" gorm:"column:username"`
	FirstName string `json:"firstName" gorm:"column:first_name"`
	LastName  string `json:"lastName" gorm:"column:last_name"`
}
