package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/middleware"
	"github.com/caseflow/caseflow/pkg/log"
)

/**
 * @file: router_auth.go
 * @description: 认证路由
 */

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		// 登录
		authGroup.Post("/login", rt.login)

		// 刷新 token，access_token 过期后仍可调用
		authGroup.Post("/refresh", rt.refresh)

		// 登出
		authGroup.Post("/logout", auth, rt.logout)
	}
}

// login 用户名密码登录
func (rt *Router) login(c *fiber.Ctx) error {
	var req model.Login
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse login request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	resp, err := rt.AuthService.Login(c.UserContext(), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// refresh 刷新 token 对
func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse refresh request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	resp, err := rt.AuthService.Refresh(c.UserContext(), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// logout 登出当前用户
func (rt *Router) logout(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.AuthService.Logout(c.UserContext(), actor.UserId); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
