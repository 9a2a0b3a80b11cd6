package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/database"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/id"
	"github.com/caseflow/caseflow/pkg/log"
	"gorm.io/gorm"
)

// TeamService 团队基础信息的增删改查，成员与生命周期变更见 TeamMemberService
type TeamService struct {
	teamRepo   repo.ITeamRepository
	memberRepo repo.ITeamMemberRepository
	userRepo   repo.IUserRepository
	txRunner   database.TxRunner
}

func NewTeamService(
	teamRepo repo.ITeamRepository,
	memberRepo repo.ITeamMemberRepository,
	userRepo repo.IUserRepository,
	txRunner database.TxRunner,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		txRunner:   txRunner,
	}
}

// teamLocator 团队资源的归属定位：属主是当前 manager，归属团队是其自身
type teamLocator struct {
	teamRepo repo.ITeamRepository
}

func (l teamLocator) OwnerId(ctx context.Context, resourceId string) (string, error) {
	team, err := l.teamRepo.GetTeamById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("team not found")
		}
		return "", fmt.Errorf("get team failed: %w", err)
	}
	return team.ManagerId, nil
}

func (l teamLocator) TeamIds(ctx context.Context, resourceId string) ([]string, error) {
	team, err := l.teamRepo.GetTeamById(resourceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("team not found")
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	return []string{team.TeamId}, nil
}

// Locator 返回团队的资源定位器
func (s *TeamService) Locator() authz.ResourceLocator {
	return teamLocator{teamRepo: s.teamRepo}
}

// IsActiveTeam 团队是否存在且处于激活状态
func (s *TeamService) IsActiveTeam(ctx context.Context, teamId string) (bool, error) {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get team failed: %w", err)
	}
	return team.IsActive, nil
}

// CreateTeam 创建团队。code 与 name 全局唯一；
// 指定初始 manager 时，成员记录与团队同事务创建
func (s *TeamService) CreateTeam(ctx context.Context, req *model.CreateTeamReq) (*model.Team, error) {
	// 1. 基础校验
	if req.Code == "" {
		return nil, errs.Validation("team code cannot be empty")
	}
	if req.Name == "" {
		return nil, errs.Validation("team name cannot be empty")
	}

	// 2. code 唯一
	if _, err := s.teamRepo.GetTeamByCode(req.Code); err == nil {
		return nil, errs.Conflict("team code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check team code failed: %w", err)
	}

	// 3. name 唯一
	if _, err := s.teamRepo.GetTeamByName(req.Name); err == nil {
		return nil, errs.Conflict("team name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check team name failed: %w", err)
	}

	// 4. 初始 manager 必须是激活用户
	if req.ManagerId != "" {
		user, err := s.userRepo.GetUserById(req.ManagerId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("manager user not found")
			}
			return nil, fmt.Errorf("get user failed: %w", err)
		}
		if user.IsEnabled != 1 {
			return nil, errs.Conflict("manager user is not active")
		}
	}

	team := &model.Team{
		TeamId:      id.GetUUID(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ManagerId:   req.ManagerId,
		IsActive:    true,
		Settings:    req.Settings,
	}

	// 5. 团队与初始 manager 成员记录同事务写入
	err := s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.teamRepo.WithTx(tx).AddTeam(team); err != nil {
			return fmt.Errorf("create team failed: %w", err)
		}
		if req.ManagerId != "" {
			member := &model.TeamMember{
				TeamId:   team.TeamId,
				UserId:   req.ManagerId,
				Role:     model.MemberRoleManager,
				IsActive: true,
				JoinedAt: time.Now(),
			}
			if err := s.memberRepo.WithTx(tx).AddMember(member); err != nil {
				return fmt.Errorf("create manager membership failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("create team failed", "code", req.Code, "error", err)
		return nil, err
	}

	log.Infow("team created", "teamId", team.TeamId, "code", team.Code, "name", team.Name)
	return team, nil
}

// UpdateTeam 更新团队基础信息
func (s *TeamService) UpdateTeam(ctx context.Context, teamId string, req *model.UpdateTeamReq) (*model.Team, error) {
	if _, err := s.teamRepo.GetTeamById(teamId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("team not found")
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		existing, err := s.teamRepo.GetTeamByName(*req.Name)
		if err == nil && existing.TeamId != teamId {
			return nil, errs.Conflict("team name already exists")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check team name failed: %w", err)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Settings != nil {
		updates["settings"] = *req.Settings
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.teamRepo.UpdateTeam(teamId, updates); err != nil {
			log.Errorw("update team failed", "teamId", teamId, "error", err)
			return nil, fmt.Errorf("update team failed: %w", err)
		}
	}

	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, fmt.Errorf("get updated team failed: %w", err)
	}
	return team, nil
}

// GetTeamById 获取团队详情，附带活跃成员数
func (s *TeamService) GetTeamById(ctx context.Context, teamId string) (*model.TeamInfo, error) {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("team not found")
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	count, err := s.memberRepo.CountActiveMembers(teamId)
	if err != nil {
		return nil, fmt.Errorf("count team members failed: %w", err)
	}
	return &model.TeamInfo{Team: *team, MemberCount: count}, nil
}

// ListTeams 分页列出团队
func (s *TeamService) ListTeams(ctx context.Context, pageNum, pageSize int) ([]model.Team, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	teams, err := s.teamRepo.ListTeams(pageNum, pageSize)
	if err != nil {
		log.Errorw("list teams failed", "error", err)
		return nil, 0, fmt.Errorf("list teams failed: %w", err)
	}
	total, err := s.teamRepo.CountTeams()
	if err != nil {
		return nil, 0, fmt.Errorf("count teams failed: %w", err)
	}
	return teams, total, nil
}
