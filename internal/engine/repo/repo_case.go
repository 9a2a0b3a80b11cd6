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
	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/database"
)

type ICaseRepository interface {
	GetCaseById(caseId string) (*model.Case, error)
	ListCases(res authz.Restriction, pageNum, pageSize int) ([]model.Case, error)
	CountCases(res authz.Restriction) (int64, error)
	AddCase(c *model.Case) error
	UpdateCase(caseId string, updates map[string]interface{}) error
	DeleteCase(caseId string) error
}

type CaseRepo struct {
	database.IDatabase
}

func NewCaseRepo(db database.IDatabase) ICaseRepository {
	return &CaseRepo{IDatabase: db}
}

// GetCaseById 根据案件 ID 获取案件
func (r *CaseRepo) GetCaseById(caseId string) (*model.Case, error) {
	var c model.Case
	err := r.Database().Where("case_id = ?", caseId).First(&c).Error
	return &c, err
}

// ListCases 在访问限制内分页列出案件
func (r *CaseRepo) ListCases(res authz.Restriction, pageNum, pageSize int) ([]model.Case, error) {
	var cases []model.Case
	tx := res.Apply(r.Database().Model(&model.Case{}), "owner_id", "team_id")
	err := tx.Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Order("id DESC").Find(&cases).Error
	return cases, err
}

// CountCases 在访问限制内统计案件数
func (r *CaseRepo) CountCases(res authz.Restriction) (int64, error) {
	var count int64
	tx := res.Apply(r.Database().Model(&model.Case{}), "owner_id", "team_id")
	err := tx.Count(&count).Error
	return count, err
}

// AddCase 新增案件
func (r *CaseRepo) AddCase(c *model.Case) error {
	return r.Database().Create(c).Error
}

// UpdateCase 更新案件
func (r *CaseRepo) UpdateCase(caseId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Case{}).
		Where("case_id = ?", caseId).Updates(updates).Error
}

// DeleteCase 删除案件
func (r *CaseRepo) DeleteCase(caseId string) error {
	return r.Database().Where("case_id = ?", caseId).Delete(&model.Case{}).Error
}
