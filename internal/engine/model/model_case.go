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

// 案件状态
const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in_progress"
	CaseStatusClosed     = "closed"
)

// Case 案件表，owner_id / team_id 供范围过滤使用
type Case struct {
	BaseModel
	CaseId   string         `gorm:"column:case_id;not null;uniqueIndex" json:"caseId"`
	Title    string         `gorm:"column:title;not null" json:"title"`
	Status   string         `gorm:"column:status;not null;default:open" json:"status"`
	Priority int            `gorm:"column:priority;not null;default:0" json:"priority"`
	OwnerId  string         `gorm:"column:owner_id;not null;index" json:"ownerId"` // 责任人
	TeamId   string         `gorm:"column:team_id;index" json:"teamId"`            // 归属团队，可为空
	Detail   datatypes.JSON `gorm:"column:detail" json:"detail"`
}

func (Case) TableName() string {
	return "t_case"
}

// CreateCaseReq request for creating a case
type CreateCaseReq struct {
	Title    string         `json:"title"`
	Priority int            `json:"priority"`
	TeamId   string         `json:"teamId"`
	Detail   datatypes.JSON `json:"detail"`
}

// UpdateCaseReq request for updating a case
type UpdateCaseReq struct {
	Title    *string         `json:"title,omitempty"`
	Status   *string         `json:"status,omitempty"`
	Priority *int            `json:"priority,omitempty"`
	Detail   *datatypes.JSON `json:"detail,omitempty"`
}

// AssignCaseReq request for reassigning a case
type AssignCaseReq struct {
	OwnerId string `json:"ownerId"`
	TeamId  string `json:"teamId"`
}
