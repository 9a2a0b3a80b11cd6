package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/id"
	"github.com/caseflow/caseflow/pkg/log"
	"gorm.io/gorm"
)

// DocumentService 知识文档增删改查，访问范围与案件同规则
type DocumentService struct {
	docRepo  repo.IDocumentRepository
	caseRepo repo.ICaseRepository
}

func NewDocumentService(docRepo repo.IDocumentRepository, caseRepo repo.ICaseRepository) *DocumentService {
	return &DocumentService{docRepo: docRepo, caseRepo: caseRepo}
}

// documentLocator 文档资源的归属定位
type documentLocator struct {
	docRepo repo.IDocumentRepository
}

func (l documentLocator) OwnerId(ctx context.Context, resourceId string) (string, error) {
	doc, err := l.docRepo.GetDocumentById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("document not found")
		}
		return "", fmt.Errorf("get document failed: %w", err)
	}
	return doc.OwnerId, nil
}

func (l documentLocator) TeamIds(ctx context.Context, resourceId string) ([]string, error) {
	doc, err := l.docRepo.GetDocumentById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("document not found")
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	if doc.TeamId == "" {
		return nil, nil
	}
	return []string{doc.TeamId}, nil
}

// Locator 返回文档的资源定位器
func (s *DocumentService) Locator() authz.ResourceLocator {
	return documentLocator{docRepo: s.docRepo}
}

// CreateDocument 创建文档，操作者即作者
func (s *DocumentService) CreateDocument(ctx context.Context, ownerId string, req *model.CreateDocumentReq) (*model.Document, error) {
	if req.Title == "" {
		return nil, errs.Validation("document title cannot be empty")
	}
	if req.CaseId != "" {
		if _, err := s.caseRepo.GetCaseById(req.CaseId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("case not found")
			}
			return nil, fmt.Errorf("get case failed: %w", err)
		}
	}

	doc := &model.Document{
		DocId:   id.XID(),
		Title:   req.Title,
		Content: req.Content,
		CaseId:  req.CaseId,
		OwnerId: ownerId,
		TeamId:  req.TeamId,
	}
	if err := s.docRepo.AddDocument(doc); err != nil {
		log.Errorw("create document failed", "title", req.Title, "error", err)
		return nil, fmt.Errorf("create document failed: %w", err)
	}
	log.Infow("document created", "docId", doc.DocId, "ownerId", ownerId)
	return doc, nil
}

// GetDocumentById 获取文档详情
func (s *DocumentService) GetDocumentById(ctx context.Context, docId string) (*model.Document, error) {
	doc, err := s.docRepo.GetDocumentById(docId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("document not found")
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return doc, nil
}

// ListDocuments 在访问限制内分页列出文档
func (s *DocumentService) ListDocuments(ctx context.Context, res authz.Restriction, pageNum, pageSize int) ([]model.Document, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	docs, err := s.docRepo.ListDocuments(res, pageNum, pageSize)
	if err != nil {
		log.Errorw("list documents failed", "error", err)
		return nil, 0, fmt.Errorf("list documents failed: %w", err)
	}
	total, err := s.docRepo.CountDocuments(res)
	if err != nil {
		return nil, 0, fmt.Errorf("count documents failed: %w", err)
	}
	return docs, total, nil
}

// ListByCase 列出案件关联的文档
func (s *DocumentService) ListByCase(ctx context.Context, caseId string) ([]model.Document, error) {
	docs, err := s.docRepo.ListByCase(caseId)
	if err != nil {
		return nil, fmt.Errorf("list documents by case failed: %w", err)
	}
	return docs, nil
}

// UpdateDocument 更新文档
func (s *DocumentService) UpdateDocument(ctx context.Context, docId string, req *model.UpdateDocumentReq) (*model.Document, error) {
	if _, err := s.GetDocumentById(ctx, docId); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.docRepo.UpdateDocument(docId, updates); err != nil {
			log.Errorw("update document failed", "docId", docId, "error", err)
			return nil, fmt.Errorf("update document failed: %w", err)
		}
	}
	return s.GetDocumentById(ctx, docId)
}

// DeleteDocument 删除文档
func (s *DocumentService) DeleteDocument(ctx context.Context, docId string) error {
	if _, err := s.GetDocumentById(ctx, docId); err != nil {
		return err
	}
	if err := s.docRepo.DeleteDocument(docId); err != nil {
		log.Errorw("delete document failed", "docId", docId, "error", err)
		return fmt.Errorf("delete document failed: %w", err)
	}
	log.Infow("document deleted", "docId", docId)
	return nil
}
