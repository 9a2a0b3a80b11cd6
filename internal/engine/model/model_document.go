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

// Document 知识文档表
type Document struct {
	BaseModel
	DocId   string `gorm:"column:doc_id;not null;uniqueIndex" json:"docId"`
	Title   string `gorm:"column:title;not null" json:"title"`
	Content string `gorm:"column:content;type:longtext" json:"content"`
	CaseId  string `gorm:"column:case_id;index" json:"caseId"`            // 关联案件，可为空
	OwnerId string `gorm:"column:owner_id;not null;index" json:"ownerId"` // 作者
	TeamId  string `gorm:"column:team_id;index" json:"teamId"`
}

func (Document) TableName() string {
	return "t_document"
}

// CreateDocumentReq request for creating a document
type CreateDocumentReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	CaseId  string `json:"caseId"`
	TeamId  string `json:"teamId"`
}

// UpdateDocumentReq request for updating a document
type UpdateDocumentReq struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
