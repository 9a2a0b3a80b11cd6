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

import "gorm.io/datatypes"

// Team 团队表
type Team struct {
	BaseModel
	TeamId      string         `gorm:"column:team_id;not null;uniqueIndex" json:"teamId"`
	Code        string         `gorm:"column:code;not null;uniqueIndex" json:"code"` // 团队编码，唯一
	Name        string         `gorm:"column:name;not null;uniqueIndex" json:"name"` // 团队名称，唯一
	Description string         `gorm:"column:description" json:"description"`
	ManagerId   string         `gorm:"column:manager_id" json:"managerId"` // 当前 manager 的 user_id，与成员表同事务维护
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Settings    datatypes.JSON `gorm:"column:settings" json:"settings"`
}

func (Team) TableName() string {
	return "t_team"
}

// CreateTeamReq request for creating team
type CreateTeamReq struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ManagerId   string         `json:"managerId"` // 初始 manager，同事务写入成员表
	Settings    datatypes.JSON `json:"settings"`
}

// UpdateTeamReq request for updating team
type UpdateTeamReq struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Settings    *datatypes.JSON `json:"settings,omitempty"`
}

// TeamInfo team with member statistics
type TeamInfo struct {
	Team
	MemberCount int64 `json:"memberCount" gorm:"-"`
}
