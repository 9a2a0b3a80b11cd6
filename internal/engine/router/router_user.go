package router

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/middleware"
	"github.com/caseflow/caseflow/pkg/log"
)

/**
 * @file: router_user.go
 * @description: 用户路由
 */

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		// 创建用户
		userGroup.Post("/create", auth,
			middleware.RequireScope(rt.Gate, model.ModuleUsers, "create"), rt.addUser)

		// 查询用户列表
		userGroup.Get("/list", auth,
			middleware.RequireScope(rt.Gate, model.ModuleUsers, "view"), rt.listUsers)

		// 当前用户信息
		userGroup.Get("/me", auth, rt.currentUser)

		// 获取用户详情
		userGroup.Get("/:userId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleUsers, "view"), rt.getUserById)

		// 更新用户
		userGroup.Put("/:userId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleUsers, "edit"), rt.updateUser)

		// 删除用户
		userGroup.Delete("/:userId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleUsers, "delete"), rt.deleteUser)
	}
}

// addUser 创建用户
func (rt *Router) addUser(c *fiber.Ctx) error {
	var req model.AddUserReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse add user request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	info, err := rt.UserService.AddUser(c.UserContext(), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, info)
}

// listUsers 分页查询用户
func (rt *Router) listUsers(c *fiber.Ctx) error {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	users, total, err := rt.UserService.ListUsers(c.UserContext(), pageNum, pageSize)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": users, "total": total})
}

// currentUser 当前登录用户信息
func (rt *Router) currentUser(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	info, err := rt.UserService.GetUserById(c.UserContext(), actor.UserId)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, info)
}

// getUserById 用户详情
func (rt *Router) getUserById(c *fiber.Ctx) error {
	info, err := rt.UserService.GetUserById(c.UserContext(), c.Params("userId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, info)
}

// updateUser 更新用户
func (rt *Router) updateUser(c *fiber.Ctx) error {
	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update user request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	info, err := rt.UserService.UpdateUser(c.UserContext(), c.Params("userId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, info)
}

// deleteUser 删除用户
func (rt *Router) deleteUser(c *fiber.Ctx) error {
	if err := rt.UserService.DeleteUser(c.UserContext(), c.Params("userId")); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
