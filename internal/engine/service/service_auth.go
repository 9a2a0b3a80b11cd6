package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/jwt"
	"github.com/caseflow/caseflow/pkg/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthService 登录认证，签发 JWT 并在 redis 维护会话
type AuthService struct {
	userRepo repo.IUserRepository
	rdb      *redis.Client
	auth     http.Auth
}

func NewAuthService(userRepo repo.IUserRepository, rdb *redis.Client, auth http.Auth) *AuthService {
	return &AuthService{userRepo: userRepo, rdb: rdb, auth: auth}
}

// Login 用户名密码登录。
// 签发 access/refresh token，并写入 redis 会话，登出或过期后 token 失效
func (s *AuthService) Login(ctx context.Context, req *model.Login) (*model.LoginResp, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errs.Validation("username and password cannot be empty")
	}

	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Unauthenticated("incorrect username or password")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if user.IsEnabled != 1 {
		return nil, errs.Unauthenticated("user is disabled")
	}
	if !model.VerifyPassword(user.Password, req.Password) {
		return nil, errs.Unauthenticated("incorrect username or password")
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, user.RoleId,
		[]byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("generate token failed: %w", err)
	}

	sessionKey := s.auth.RedisKeyPrefix + user.UserId
	sessionTTL := s.auth.AccessExpire * time.Minute
	if err := s.rdb.Set(ctx, sessionKey, aToken, sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("store session failed: %w", err)
	}

	log.Infow("user logged in", "userId", user.UserId, "username", user.Username)
	return &model.LoginResp{
		UserInfo: model.ToUserInfo(user),
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
	}, nil
}

// Refresh 用 refresh_token 换发新的 token 对并续期会话。
// access_token 可能已过期，因此身份只认 refresh_token 本身
func (s *AuthService) Refresh(ctx context.Context, req *model.RefreshReq) (*model.LoginResp, error) {
	if req.RefreshToken == "" {
		return nil, errs.Validation("refreshToken cannot be empty")
	}

	userId, err := jwt.ParseRefreshToken(req.RefreshToken, s.auth.SecretKey)
	if err != nil {
		return nil, errs.Unauthenticated("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Unauthenticated("user no longer exists")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if user.IsEnabled != 1 {
		return nil, errs.Unauthenticated("user is disabled")
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, user.RoleId,
		[]byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("generate token failed: %w", err)
	}

	sessionKey := s.auth.RedisKeyPrefix + user.UserId
	sessionTTL := s.auth.AccessExpire * time.Minute
	if err := s.rdb.Set(ctx, sessionKey, aToken, sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("store session failed: %w", err)
	}

	log.Infow("token refreshed", "userId", user.UserId)
	return &model.LoginResp{
		UserInfo: model.ToUserInfo(user),
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
	}, nil
}

// Logout 删除 redis 会话，使当前 token 失效
func (s *AuthService) Logout(ctx context.Context, userId string) error {
	sessionKey := s.auth.RedisKeyPrefix + userId
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	log.Infow("user logged out", "userId", userId)
	return nil
}
