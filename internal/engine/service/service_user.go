package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/id"
	"github.com/caseflow/caseflow/pkg/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户管理
type UserService struct {
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
}

func NewUserService(userRepo repo.IUserRepository, roleRepo repo.IRoleRepository) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo}
}

// AddUser 创建用户，密码 bcrypt 加密存储
func (s *UserService) AddUser(ctx context.Context, req *model.AddUserReq) (*model.UserInfo, error) {
	// 1. 基础校验
	if req.Username == "" {
		return nil, errs.Validation("username cannot be empty")
	}
	if req.Password == "" {
		return nil, errs.Validation("password cannot be empty")
	}
	if req.RoleId == "" {
		return nil, errs.Validation("role id cannot be empty")
	}

	// 2. 角色必须存在
	if _, err := s.roleRepo.GetRoleById(req.RoleId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("role not found")
		}
		return nil, fmt.Errorf("get role failed: %w", err)
	}

	// 3. 用户名唯一
	if _, err := s.userRepo.GetUserByUsername(req.Username); err == nil {
		return nil, errs.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username failed: %w", err)
	}

	// 4. 密码加密
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Email:     req.Email,
		Phone:     req.Phone,
		RoleId:    req.RoleId,
		IsEnabled: 1,
	}
	if err := s.userRepo.AddUser(user); err != nil {
		log.Errorw("create user failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	log.Infow("user created", "userId", user.UserId, "username", user.Username)
	info := model.ToUserInfo(user)
	return &info, nil
}

// GetUserById 获取用户信息
func (s *UserService) GetUserById(ctx context.Context, userId string) (*model.UserInfo, error) {
	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	info := model.ToUserInfo(user)
	return &info, nil
}

// ListUsers 分页列出用户
func (s *UserService) ListUsers(ctx context.Context, pageNum, pageSize int) ([]model.UserInfo, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	users, err := s.userRepo.ListUsers(pageNum, pageSize)
	if err != nil {
		log.Errorw("list users failed", "error", err)
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	total, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}

	infos := make([]model.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, model.ToUserInfo(&users[i]))
	}
	return infos, total, nil
}

// UpdateUser 更新用户信息
func (s *UserService) UpdateUser(ctx context.Context, userId string, req *model.UpdateUserReq) (*model.UserInfo, error) {
	if _, err := s.userRepo.GetUserById(userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.RoleId != nil && *req.RoleId != "" {
		if _, err := s.roleRepo.GetRoleById(*req.RoleId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("role not found")
			}
			return nil, fmt.Errorf("get role failed: %w", err)
		}
		updates["role_id"] = *req.RoleId
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.userRepo.UpdateUser(userId, updates); err != nil {
			log.Errorw("update user failed", "userId", userId, "error", err)
			return nil, fmt.Errorf("update user failed: %w", err)
		}
	}

	return s.GetUserById(ctx, userId)
}

// DeleteUser 删除用户
func (s *UserService) DeleteUser(ctx context.Context, userId string) error {
	if _, err := s.userRepo.GetUserById(userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user not found")
		}
		return fmt.Errorf("get user failed: %w", err)
	}
	if err := s.userRepo.DeleteUser(userId); err != nil {
		log.Errorw("delete user failed", "userId", userId, "error", err)
		return fmt.Errorf("delete user failed: %w", err)
	}
	log.Infow("user deleted", "userId", userId)
	return nil
}

// IsActiveUser 用户是否存在且处于激活状态
func (s *UserService) IsActiveUser(ctx context.Context, userId string) (bool, error) {
	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get user failed: %w", err)
	}
	return user.IsEnabled == 1, nil
}
