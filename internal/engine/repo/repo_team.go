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

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/database"
)

type ITeamRepository interface {
	WithTx(tx *gorm.DB) ITeamRepository
	GetTeamById(teamId string) (*model.Team, error)
	GetTeamByCode(code string) (*model.Team, error)
	GetTeamByName(name string) (*model.Team, error)
	ListTeams(pageNum, pageSize int) ([]model.Team, error)
	CountTeams() (int64, error)
	AddTeam(team *model.Team) error
	UpdateTeam(teamId string, updates map[string]interface{}) error
	SetManager(teamId, managerId string) error
	SetActive(teamId string, active bool) error
	HardDeleteTeam(teamId string) error
}

type TeamRepo struct {
	database.IDatabase
}

func NewTeamRepo(db database.IDatabase) ITeamRepository {
	return &TeamRepo{IDatabase: db}
}

// WithTx 返回绑定到事务的仓储
func (r *TeamRepo) WithTx(tx *gorm.DB) ITeamRepository {
	return &TeamRepo{IDatabase: txSource{tx: tx}}
}

// GetTeamById 根据团队 ID 获取团队
func (r *TeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	var team model.Team
	err := r.Database().Where("team_id = ?", teamId).First(&team).Error
	return &team, err
}

// GetTeamByCode 根据编码获取团队
func (r *TeamRepo) GetTeamByCode(code string) (*model.Team, error) {
	var team model.Team
	err := r.Database().Where("code = ?", code).First(&team).Error
	return &team, err
}

// GetTeamByName 根据名称获取团队
func (r *TeamRepo) GetTeamByName(name string) (*model.Team, error) {
	var team model.Team
	err := r.Database().Where("name = ?", name).First(&team).Error
	return &team, err
}

// ListTeams 分页列出团队
func (r *TeamRepo) ListTeams(pageNum, pageSize int) ([]model.Team, error) {
	var teams []model.Team
	err := r.Database().Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Order("id DESC").Find(&teams).Error
	return teams, err
}

// CountTeams 统计团队总数
func (r *TeamRepo) CountTeams() (int64, error) {
	var count int64
	err := r.Database().Model(&model.Team{}).Count(&count).Error
	return count, err
}

// AddTeam 新增团队
func (r *TeamRepo) AddTeam(team *model.Team) error {
	return r.Database().Create(team).Error
}

// UpdateTeam 更新团队
func (r *TeamRepo) UpdateTeam(teamId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).Updates(updates).Error
}

// SetManager 更新团队记录的 manager，需与成员表变更同事务
func (r *TeamRepo) SetManager(teamId, managerId string) error {
	return r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).Update("manager_id", managerId).Error
}

// SetActive 启用/停用团队
func (r *TeamRepo) SetActive(teamId string, active bool) error {
	return r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).Update("is_active", active).Error
}

// HardDeleteTeam 物理删除团队记录
func (r *TeamRepo) HardDeleteTeam(teamId string) error {
	return r.Database().Where("team_id = ?", teamId).Delete(&model.Team{}).Error
}
