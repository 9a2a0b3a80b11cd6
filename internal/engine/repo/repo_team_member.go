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
	"time"

	"gorm.io/gorm"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/database"
)

type ITeamMemberRepository interface {
	WithTx(tx *gorm.DB) ITeamMemberRepository
	GetActiveMember(teamId, userId string) (*model.TeamMember, error)
	GetActiveManager(teamId string) (*model.TeamMember, error)
	ListActiveMembers(teamId string) ([]model.MemberInfo, error)
	ListMembershipHistory(teamId, userId string) ([]model.TeamMember, error)
	GetActiveTeamIds(userId string) ([]string, error)
	CountMembershipRows(teamId string) (int64, error)
	CountActiveMembers(teamId string) (int64, error)
	AddMember(member *model.TeamMember) error
	UpdateMemberRole(id uint64, role model.MemberRole) error
	Deactivate(id uint64, leftAt time.Time) error
	DeleteByTeam(teamId string) error
}

type TeamMemberRepo struct {
	database.IDatabase
}

func NewTeamMemberRepo(db database.IDatabase) ITeamMemberRepository {
	return &TeamMemberRepo{IDatabase: db}
}

// WithTx 返回绑定到事务的仓储
func (r *TeamMemberRepo) WithTx(tx *gorm.DB) ITeamMemberRepository {
	return &TeamMemberRepo{IDatabase: txSource{tx: tx}}
}

// GetActiveMember 获取用户在团队中的活跃成员记录
func (r *TeamMemberRepo) GetActiveMember(teamId, userId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.Database().Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, userId, true).
		First(&member).Error
	return &member, err
}

// GetActiveManager 获取团队当前活跃的 manager
func (r *TeamMemberRepo) GetActiveManager(teamId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.Database().Where("team_id = ? AND role = ? AND is_active = ?",
		teamId, model.MemberRoleManager, true).First(&member).Error
	return &member, err
}

// ListActiveMembers 列出团队活跃成员，关联用户展示字段
func (r *TeamMemberRepo) ListActiveMembers(teamId string) ([]model.MemberInfo, error) {
	var members []model.MemberInfo
	err := r.Database().Table("t_team_member AS m").
		Select("m.*, u.username, u.first_name, u.last_name").
		Joins("LEFT JOIN t_user AS u ON u.user_id = m.user_id").
		Where("m.team_id = ? AND m.is_active = ?", teamId, true).
		Order("m.joined_at ASC").Scan(&members).Error
	return members, err
}

// ListMembershipHistory 列出用户在团队的全部成员记录（含已离队）
func (r *TeamMemberRepo) ListMembershipHistory(teamId, userId string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.Database().Where("team_id = ? AND user_id = ?", teamId, userId).
		Order("joined_at ASC").Find(&members).Error
	return members, err
}

// GetActiveTeamIds 获取用户当前所在团队的 ID 列表
func (r *TeamMemberRepo) GetActiveTeamIds(userId string) ([]string, error) {
	var teamIds []string
	err := r.Database().Model(&model.TeamMember{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		Pluck("team_id", &teamIds).Error
	return teamIds, err
}

// CountMembershipRows 统计团队全部成员记录数，含已离队
func (r *TeamMemberRepo) CountMembershipRows(teamId string) (int64, error) {
	var count int64
	err := r.Database().Model(&model.TeamMember{}).
		Where("team_id = ?", teamId).Count(&count).Error
	return count, err
}

// CountActiveMembers 统计团队活跃成员数
func (r *TeamMemberRepo) CountActiveMembers(teamId string) (int64, error) {
	var count int64
	err := r.Database().Model(&model.TeamMember{}).
		Where("team_id = ? AND is_active = ?", teamId, true).Count(&count).Error
	return count, err
}

// AddMember 新增成员记录
func (r *TeamMemberRepo) AddMember(member *model.TeamMember) error {
	return r.Database().Create(member).Error
}

// UpdateMemberRole 更新成员团队角色
func (r *TeamMemberRepo) UpdateMemberRole(id uint64, role model.MemberRole) error {
	return r.Database().Model(&model.TeamMember{}).
		Where("id = ?", id).Update("role", role).Error
}

// Deactivate 软删除成员记录
func (r *TeamMemberRepo) Deactivate(id uint64, leftAt time.Time) error {
	return r.Database().Model(&model.TeamMember{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "left_at": leftAt}).Error
}

// DeleteByTeam 物理删除团队的全部成员记录
func (r *TeamMemberRepo) DeleteByTeam(teamId string) error {
	return r.Database().Where("team_id = ?", teamId).Delete(&model.TeamMember{}).Error
}
