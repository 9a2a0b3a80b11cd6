package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/database"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/log"
	"gorm.io/gorm"
)

// 删除团队的执行结果
const (
	TeamDeleteDeactivated = "deactivated" // 仍有成员记录，仅停用
	TeamDeleteDeleted     = "deleted"     // 无任何成员记录，物理删除
)

// TeamMemberService 维护团队成员关系的结构不变量：
// 每个团队同一时刻至多一个活跃 manager，Team.manager_id 与成员表同事务更新，
// 成员离队只做软删除。同团队的成员变更串行执行，杜绝 check-then-act 竞态
// （MySQL 没有部分唯一索引，唯一性约束无法下沉到存储层）
type TeamMemberService struct {
	memberRepo repo.ITeamMemberRepository
	teamRepo   repo.ITeamRepository
	userRepo   repo.IUserRepository
	txRunner   database.TxRunner

	mu        sync.Mutex
	teamLocks map[string]*sync.Mutex
}

func NewTeamMemberService(
	memberRepo repo.ITeamMemberRepository,
	teamRepo repo.ITeamRepository,
	userRepo repo.IUserRepository,
	txRunner database.TxRunner,
) *TeamMemberService {
	return &TeamMemberService{
		memberRepo: memberRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		txRunner:   txRunner,
		teamLocks:  make(map[string]*sync.Mutex),
	}
}

// lockTeam 获取团队级互斥锁，同团队的成员变更全部串行
func (s *TeamMemberService) lockTeam(teamId string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.teamLocks[teamId]
	if !ok {
		lock = &sync.Mutex{}
		s.teamLocks[teamId] = lock
	}
	return lock
}

// AddMember 添加团队成员。
// 前置条件：团队存在且激活；用户存在且激活；该用户在团队没有活跃成员记录；
// role=manager 时团队不能已有活跃 manager。manager 入队时同事务更新 Team.manager_id
func (s *TeamMemberService) AddMember(ctx context.Context, teamId string, req *model.AddMemberReq) (*model.TeamMember, error) {
	role, err := model.ParseMemberRole(req.Role)
	if err != nil {
		return nil, err
	}

	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	// 1. 团队必须存在且激活
	team, err := s.getTeam(teamId)
	if err != nil {
		return nil, err
	}
	if !team.IsActive {
		return nil, errs.Conflict("team is not active")
	}

	// 2. 用户必须存在且激活
	user, err := s.userRepo.GetUserById(req.UserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if user.IsEnabled != 1 {
		return nil, errs.Conflict("user is not active")
	}

	// 3. 同一 (team, user) 只允许一条活跃记录
	if _, err := s.memberRepo.GetActiveMember(teamId, req.UserId); err == nil {
		return nil, errs.Conflict("user already has an active membership in this team")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get active member failed: %w", err)
	}

	// 4. manager 唯一性
	if role == model.MemberRoleManager {
		if _, err := s.memberRepo.GetActiveManager(teamId); err == nil {
			return nil, errs.Conflict("team already has an active manager")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get active manager failed: %w", err)
		}
	}

	member := &model.TeamMember{
		TeamId:   teamId,
		UserId:   req.UserId,
		Role:     role,
		IsActive: true,
		JoinedAt: time.Now(),
	}

	// 5. 成员记录与 manager_id 同事务写入。
	// manager 唯一性在事务内复查一次，进程外的并发写入也会被拦截
	err = s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		txMembers := s.memberRepo.WithTx(tx)
		if role == model.MemberRoleManager {
			if _, err := txMembers.GetActiveManager(teamId); err == nil {
				return errs.Conflict("team already has an active manager")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("get active manager failed: %w", err)
			}
		}
		if err := txMembers.AddMember(member); err != nil {
			return fmt.Errorf("create membership failed: %w", err)
		}
		if role == model.MemberRoleManager {
			if err := s.teamRepo.WithTx(tx).SetManager(teamId, req.UserId); err != nil {
				return fmt.Errorf("set team manager failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("add team member failed", "teamId", teamId, "userId", req.UserId, "error", err)
		return nil, err
	}

	log.Infow("team member added", "teamId", teamId, "userId", req.UserId, "role", role)
	return member, nil
}

// RemoveMember 移除团队成员（软删除）。
// 当前在任的 manager 不允许直接移除，必须先转移领导权
func (s *TeamMemberService) RemoveMember(ctx context.Context, teamId, userId string) error {
	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	team, err := s.getTeam(teamId)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.GetActiveMember(teamId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("active membership not found")
		}
		return fmt.Errorf("get active member failed: %w", err)
	}

	if member.Role == model.MemberRoleManager && team.ManagerId == userId {
		return errs.Conflict("cannot remove the current team manager, transfer leadership first")
	}

	if err := s.memberRepo.Deactivate(member.ID, time.Now()); err != nil {
		log.Errorw("remove team member failed", "teamId", teamId, "userId", userId, "error", err)
		return fmt.Errorf("deactivate membership failed: %w", err)
	}

	log.Infow("team member removed", "teamId", teamId, "userId", userId)
	return nil
}

// UpdateMemberRole 变更成员的团队角色。
// 升为 manager 受唯一性约束并同事务更新 Team.manager_id；
// 在任 manager 不允许在此处降级，必须走 TransferLeadership
func (s *TeamMemberService) UpdateMemberRole(ctx context.Context, teamId, userId string, req *model.UpdateMemberRoleReq) error {
	newRole, err := model.ParseMemberRole(req.Role)
	if err != nil {
		return err
	}

	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	team, err := s.getTeam(teamId)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.GetActiveMember(teamId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("active membership not found")
		}
		return fmt.Errorf("get active member failed: %w", err)
	}
	if member.Role == newRole {
		return nil
	}

	if member.Role == model.MemberRoleManager && team.ManagerId == userId {
		return errs.Conflict("cannot demote the current team manager, transfer leadership first")
	}

	if newRole == model.MemberRoleManager {
		if _, err := s.memberRepo.GetActiveManager(teamId); err == nil {
			return errs.Conflict("team already has an active manager")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("get active manager failed: %w", err)
		}
	}

	err = s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		txMembers := s.memberRepo.WithTx(tx)
		if newRole == model.MemberRoleManager {
			// 事务内复查 manager 唯一性
			if _, err := txMembers.GetActiveManager(teamId); err == nil {
				return errs.Conflict("team already has an active manager")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("get active manager failed: %w", err)
			}
		}
		if err := txMembers.UpdateMemberRole(member.ID, newRole); err != nil {
			return fmt.Errorf("update member role failed: %w", err)
		}
		if newRole == model.MemberRoleManager {
			if err := s.teamRepo.WithTx(tx).SetManager(teamId, userId); err != nil {
				return fmt.Errorf("set team manager failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("update member role failed", "teamId", teamId, "userId", userId, "error", err)
		return err
	}

	log.Infow("team member role updated", "teamId", teamId, "userId", userId, "role", newRole)
	return nil
}

// TransferLeadership 转移团队领导权：原 manager 降为 lead，目标成员升为 manager。
// req.FromUserId 必须与当前在任 manager 一致，避免基于过期信息的转移。
// 两步变更与 Team.manager_id 更新必须同事务提交，不允许出现零个或两个 manager 的中间态
func (s *TeamMemberService) TransferLeadership(ctx context.Context, teamId string, req *model.TransferLeadershipReq) error {
	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.getTeam(teamId); err != nil {
		return err
	}

	manager, err := s.memberRepo.GetActiveManager(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Conflict("team has no active manager to transfer from")
		}
		return fmt.Errorf("get active manager failed: %w", err)
	}
	if manager.UserId != req.FromUserId {
		return errs.Conflict("fromUserId is not the current team manager")
	}
	if manager.UserId == req.NewManagerId {
		return errs.Conflict("user is already the team manager")
	}

	successor, err := s.memberRepo.GetActiveMember(teamId, req.NewManagerId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Conflict("new manager must already be an active team member")
		}
		return fmt.Errorf("get active member failed: %w", err)
	}

	err = s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.memberRepo.WithTx(tx)
		if err := txRepo.UpdateMemberRole(manager.ID, model.MemberRoleLead); err != nil {
			return fmt.Errorf("demote current manager failed: %w", err)
		}
		if err := txRepo.UpdateMemberRole(successor.ID, model.MemberRoleManager); err != nil {
			return fmt.Errorf("promote new manager failed: %w", err)
		}
		if err := s.teamRepo.WithTx(tx).SetManager(teamId, req.NewManagerId); err != nil {
			return fmt.Errorf("set team manager failed: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Errorw("transfer leadership failed", "teamId", teamId,
			"from", manager.UserId, "to", req.NewManagerId, "error", err)
		return err
	}

	log.Infow("team leadership transferred", "teamId", teamId,
		"from", manager.UserId, "to", req.NewManagerId)
	return nil
}

// DeleteTeam 删除团队。
// 存在任何成员记录（含已离队）时仅停用，返回 deactivated；
// 无任何成员记录时物理删除团队及残留成员行，返回 deleted
func (s *TeamMemberService) DeleteTeam(ctx context.Context, teamId string) (string, error) {
	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	team, err := s.getTeam(teamId)
	if err != nil {
		return "", err
	}

	rows, err := s.memberRepo.CountMembershipRows(teamId)
	if err != nil {
		return "", fmt.Errorf("count memberships failed: %w", err)
	}

	if rows > 0 {
		if err := s.teamRepo.SetActive(teamId, false); err != nil {
			log.Errorw("deactivate team failed", "teamId", teamId, "error", err)
			return "", fmt.Errorf("deactivate team failed: %w", err)
		}
		log.Infow("team deactivated", "teamId", teamId, "name", team.Name, "memberships", rows)
		return TeamDeleteDeactivated, nil
	}

	err = s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.memberRepo.WithTx(tx).DeleteByTeam(teamId); err != nil {
			return fmt.Errorf("delete memberships failed: %w", err)
		}
		if err := s.teamRepo.WithTx(tx).HardDeleteTeam(teamId); err != nil {
			return fmt.Errorf("delete team failed: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Errorw("hard delete team failed", "teamId", teamId, "error", err)
		return "", err
	}

	log.Infow("team deleted", "teamId", teamId, "name", team.Name)
	return TeamDeleteDeleted, nil
}

// ToggleTeamStatus 翻转团队激活状态，无成员前置条件
func (s *TeamMemberService) ToggleTeamStatus(ctx context.Context, teamId string) (bool, error) {
	lock := s.lockTeam(teamId)
	lock.Lock()
	defer lock.Unlock()

	team, err := s.getTeam(teamId)
	if err != nil {
		return false, err
	}

	next := !team.IsActive
	if err := s.teamRepo.SetActive(teamId, next); err != nil {
		log.Errorw("toggle team status failed", "teamId", teamId, "error", err)
		return false, fmt.Errorf("toggle team status failed: %w", err)
	}

	log.Infow("team status toggled", "teamId", teamId, "isActive", next)
	return next, nil
}

// ListMembers 列出团队活跃成员
func (s *TeamMemberService) ListMembers(ctx context.Context, teamId string) ([]model.MemberInfo, error) {
	if _, err := s.getTeam(teamId); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListActiveMembers(teamId)
	if err != nil {
		return nil, fmt.Errorf("list team members failed: %w", err)
	}
	return members, nil
}

// IsUserInTeam 用户当前是否是团队的活跃成员
func (s *TeamMemberService) IsUserInTeam(ctx context.Context, userId, teamId string) (bool, error) {
	_, err := s.memberRepo.GetActiveMember(teamId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get active member failed: %w", err)
	}
	return true, nil
}

// IsUserTeamManager 用户当前是否是团队的活跃 manager
func (s *TeamMemberService) IsUserTeamManager(ctx context.Context, userId, teamId string) (bool, error) {
	manager, err := s.memberRepo.GetActiveManager(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get active manager failed: %w", err)
	}
	return manager.UserId == userId, nil
}

// GetUserTeams 获取用户当前所在的团队列表
func (s *TeamMemberService) GetUserTeams(ctx context.Context, userId string) ([]model.Team, error) {
	teamIds, err := s.memberRepo.GetActiveTeamIds(userId)
	if err != nil {
		return nil, fmt.Errorf("get user team ids failed: %w", err)
	}
	teams := make([]model.Team, 0, len(teamIds))
	for _, teamId := range teamIds {
		team, err := s.teamRepo.GetTeamById(teamId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("get team failed: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, nil
}

// GetActiveTeamIds 获取用户当前所在团队的 ID 集合，供范围过滤使用
func (s *TeamMemberService) GetActiveTeamIds(ctx context.Context, userId string) ([]string, error) {
	teamIds, err := s.memberRepo.GetActiveTeamIds(userId)
	if err != nil {
		return nil, fmt.Errorf("get user team ids failed: %w", err)
	}
	return teamIds, nil
}

// getTeam 获取团队，不存在归为 NotFound
func (s *TeamMemberService) getTeam(teamId string) (*model.Team, error) {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("team not found")
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	return team, nil
}
