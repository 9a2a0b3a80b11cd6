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

type IDocumentRepository interface {
	GetDocumentById(docId string) (*model.Document, error)
	ListDocuments(res authz.Restriction, pageNum, pageSize int) ([]model.Document, error)
	CountDocuments(res authz.Restriction) (int64, error)
	ListByCase(caseId string) ([]model.Document, error)
	AddDocument(doc *model.Document) error
	UpdateDocument(docId string, updates map[string]interface{}) error
	DeleteDocument(docId string) error
}

type DocumentRepo struct {
	database.IDatabase
}

func NewDocumentRepo(db database.IDatabase) IDocumentRepository {
	return &DocumentRepo{IDatabase: db}
}

// GetDocumentById 根据文档 ID 获取文档
func (r *DocumentRepo) GetDocumentById(docId string) (*model.Document, error) {
	var doc model.Document
	err := r.Database().Where("doc_id = ?", docId).First(&doc).Error
	return &doc, err
}

// ListDocuments 在访问限制内分页列出文档
func (r *DocumentRepo) ListDocuments(res authz.Restriction, pageNum, pageSize int) ([]model.Document, error) {
	var docs []model.Document
	tx := res.Apply(r.Database().Model(&model.Document{}), "owner_id", "team_id")
	err := tx.Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Order("id DESC").Find(&docs).Error
	return docs, err
}

// CountDocuments 在访问限制内统计文档数
func (r *DocumentRepo) CountDocuments(res authz.Restriction) (int64, error) {
	var count int64
	tx := res.Apply(r.Database().Model(&model.Document{}), "owner_id", "team_id")
	err := tx.Count(&count).Error
	return count, err
}

// ListByCase 列出案件关联的文档
func (r *DocumentRepo) ListByCase(caseId string) ([]model.Document, error) {
	var docs []model.Document
	err := r.Database().Where("case_id = ?", caseId).Order("id DESC").Find(&docs).Error
	return docs, err
}

// AddDocument 新增文档
func (r *DocumentRepo) AddDocument(doc *model.Document) error {
	return r.Database().Create(doc).Error
}

// UpdateDocument 更新文档
func (r *DocumentRepo) UpdateDocument(docId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Document{}).
		Where("doc_id = ?", docId).Updates(updates).Error
}

// DeleteDocument 删除文档
func (r *DocumentRepo) DeleteDocument(docId string) error {
	return r.Database().Where("doc_id = ?", docId).Delete(&model.Document{}).Error
}
