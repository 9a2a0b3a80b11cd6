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

// CaseService 案件增删改查，列表与单资源访问都受范围限制约束
type CaseService struct {
	caseRepo repo.ICaseRepository
	userRepo repo.IUserRepository
}

func NewCaseService(caseRepo repo.ICaseRepository, userRepo repo.IUserRepository) *CaseService {
	return &CaseService{caseRepo: caseRepo, userRepo: userRepo}
}

// caseLocator 案件资源的归属定位
type caseLocator struct {
	caseRepo repo.ICaseRepository
}

func (l caseLocator) OwnerId(ctx context.Context, resourceId string) (string, error) {
	c, err := l.caseRepo.GetCaseById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("case not found")
		}
		return "", fmt.Errorf("get case failed: %w", err)
	}
	return c.OwnerId, nil
}

func (l caseLocator) TeamIds(ctx context.Context, resourceId string) ([]string, error) {
	c, err := l.caseRepo.GetCaseById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("case not found")
		}
		return nil, fmt.Errorf("get case failed: %w", err)
	}
	if c.TeamId == "" {
		return nil, nil
	}
	return []string{c.TeamId}, nil
}

// Locator 返回案件的资源定位器
func (s *CaseService) Locator() authz.ResourceLocator {
	return caseLocator{caseRepo: s.caseRepo}
}

// CreateCase 创建案件，操作者即初始责任人
func (s *CaseService) CreateCase(ctx context.Context, ownerId string, req *model.CreateCaseReq) (*model.Case, error) {
	if req.Title == "" {
		return nil, errs.Validation("case title cannot be empty")
	}
	c := &model.Case{
		CaseId:   id.XID(),
		Title:    req.Title,
		Status:   model.CaseStatusOpen,
		Priority: req.Priority,
		OwnerId:  ownerId,
		TeamId:   req.TeamId,
		Detail:   req.Detail,
	}
	if err := s.caseRepo.AddCase(c); err != nil {
		log.Errorw("create case failed", "title", req.Title, "error", err)
		return nil, fmt.Errorf("create case failed: %w", err)
	}
	log.Infow("case created", "caseId", c.CaseId, "ownerId", ownerId)
	return c, nil
}

// GetCaseById 获取案件详情
func (s *CaseService) GetCaseById(ctx context.Context, caseId string) (*model.Case, error) {
	c, err := s.caseRepo.GetCaseById(caseId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("case not found")
		}
		return nil, fmt.Errorf("get case failed: %w", err)
	}
	return c, nil
}

// ListCases 在访问限制内分页列出案件
func (s *CaseService) ListCases(ctx context.Context, res authz.Restriction, pageNum, pageSize int) ([]model.Case, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	cases, err := s.caseRepo.ListCases(res, pageNum, pageSize)
	if err != nil {
		log.Errorw("list cases failed", "error", err)
		return nil, 0, fmt.Errorf("list cases failed: %w", err)
	}
	total, err := s.caseRepo.CountCases(res)
	if err != nil {
		return nil, 0, fmt.Errorf("count cases failed: %w", err)
	}
	return cases, total, nil
}

// UpdateCase 更新案件
func (s *CaseService) UpdateCase(ctx context.Context, caseId string, req *model.UpdateCaseReq) (*model.Case, error) {
	if _, err := s.GetCaseById(ctx, caseId); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Status != nil {
		switch *req.Status {
		case model.CaseStatusOpen, model.CaseStatusInProgress, model.CaseStatusClosed:
			updates["status"] = *req.Status
		default:
			return nil, errs.Newf(errs.KindValidation, "invalid case status: %q", *req.Status)
		}
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Detail != nil {
		updates["detail"] = *req.Detail
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.caseRepo.UpdateCase(caseId, updates); err != nil {
			log.Errorw("update case failed", "caseId", caseId, "error", err)
			return nil, fmt.Errorf("update case failed: %w", err)
		}
	}
	return s.GetCaseById(ctx, caseId)
}

// AssignCase 重新指派案件的责任人或归属团队
func (s *CaseService) AssignCase(ctx context.Context, caseId string, req *model.AssignCaseReq) (*model.Case, error) {
	if _, err := s.GetCaseById(ctx, caseId); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.OwnerId != "" {
		if _, err := s.userRepo.GetUserById(req.OwnerId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("assignee not found")
			}
			return nil, fmt.Errorf("get user failed: %w", err)
		}
		updates["owner_id"] = req.OwnerId
	}
	if req.TeamId != "" {
		updates["team_id"] = req.TeamId
	}
	if len(updates) == 0 {
		return nil, errs.Validation("nothing to assign")
	}

	updates["updated_at"] = time.Now()
	if err := s.caseRepo.UpdateCase(caseId, updates); err != nil {
		log.Errorw("assign case failed", "caseId", caseId, "error", err)
		return nil, fmt.Errorf("assign case failed: %w", err)
	}
	log.Infow("case assigned", "caseId", caseId, "ownerId", req.OwnerId, "teamId", req.TeamId)
	return s.GetCaseById(ctx, caseId)
}

// DeleteCase 删除案件
func (s *CaseService) DeleteCase(ctx context.Context, caseId string) error {
	if _, err := s.GetCaseById(ctx, caseId); err != nil {
		return err
	}
	if err := s.caseRepo.DeleteCase(caseId); err != nil {
		log.Errorw("delete case failed", "caseId", caseId, "error", err)
		return fmt.Errorf("delete case failed: %w", err)
	}
	log.Infow("case deleted", "caseId", caseId)
	return nil
}
