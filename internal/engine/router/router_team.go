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
 * @file: router_team.go
 * @description: 团队与成员路由
 */

func (rt *Router) teamRouter(r fiber.Router, auth fiber.Handler) {
	teamGroup := r.Group("/team")
	{
		// 创建团队
		teamGroup.Post("/create", auth,
			middleware.RequireScope(rt.Gate, model.ModuleTeams, "create"), rt.createTeam)

		// 查询团队列表
		teamGroup.Get("/list", auth,
			middleware.RequireScope(rt.Gate, model.ModuleTeams, "view"), rt.listTeams)

		// 当前用户所属团队
		teamGroup.Get("/user/myteams", auth, rt.getUserTeams)

		// 团队详情
		teamGroup.Get("/:teamId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "view", rt.TeamService.Locator(), "teamId"),
			rt.getTeamById)

		// 更新团队
		teamGroup.Put("/:teamId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "edit", rt.TeamService.Locator(), "teamId"),
			rt.updateTeam)

		// 删除团队（有成员记录时仅停用）
		teamGroup.Delete("/:teamId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleTeams, "delete"), rt.deleteTeam)

		// 启用/停用团队
		teamGroup.Post("/:teamId/toggle", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "edit", rt.TeamService.Locator(), "teamId"),
			rt.toggleTeamStatus)

		// 成员列表
		teamGroup.Get("/:teamId/members", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "view", rt.TeamService.Locator(), "teamId"),
			rt.listTeamMembers)

		// 添加成员
		teamGroup.Post("/:teamId/member", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "manageMembers", rt.TeamService.Locator(), "teamId"),
			rt.addTeamMember)

		// 变更成员角色
		teamGroup.Put("/:teamId/member/:userId/role", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "manageMembers", rt.TeamService.Locator(), "teamId"),
			rt.updateTeamMemberRole)

		// 移除成员
		teamGroup.Delete("/:teamId/member/:userId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "manageMembers", rt.TeamService.Locator(), "teamId"),
			rt.removeTeamMember)

		// 转移领导权
		teamGroup.Post("/:teamId/transfer", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleTeams, "manageMembers", rt.TeamService.Locator(), "teamId"),
			rt.transferLeadership)
	}
}

// createTeam 创建团队
func (rt *Router) createTeam(c *fiber.Ctx) error {
	var req model.CreateTeamReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create team request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	team, err := rt.TeamService.CreateTeam(c.UserContext(), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, team)
}

// listTeams 分页查询团队
func (rt *Router) listTeams(c *fiber.Ctx) error {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	teams, total, err := rt.TeamService.ListTeams(c.UserContext(), pageNum, pageSize)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": teams, "total": total})
}

// getUserTeams 当前用户所属团队
func (rt *Router) getUserTeams(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	teams, err := rt.TeamMemberService.GetUserTeams(c.UserContext(), actor.UserId)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, teams)
}

// getTeamById 团队详情
func (rt *Router) getTeamById(c *fiber.Ctx) error {
	info, err := rt.TeamService.GetTeamById(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, info)
}

// updateTeam 更新团队
func (rt *Router) updateTeam(c *fiber.Ctx) error {
	var req model.UpdateTeamReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update team request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	team, err := rt.TeamService.UpdateTeam(c.UserContext(), c.Params("teamId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, team)
}

// deleteTeam 删除团队，返回实际执行的动作
func (rt *Router) deleteTeam(c *fiber.Ctx) error {
	action, err := rt.TeamMemberService.DeleteTeam(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"action": action})
}

// toggleTeamStatus 启用/停用团队
func (rt *Router) toggleTeamStatus(c *fiber.Ctx) error {
	active, err := rt.TeamMemberService.ToggleTeamStatus(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"isActive": active})
}

// listTeamMembers 成员列表
func (rt *Router) listTeamMembers(c *fiber.Ctx) error {
	members, err := rt.TeamMemberService.ListMembers(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, members)
}

// addTeamMember 添加成员
func (rt *Router) addTeamMember(c *fiber.Ctx) error {
	var req model.AddMemberReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse add member request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	member, err := rt.TeamMemberService.AddMember(c.UserContext(), c.Params("teamId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, member)
}

// updateTeamMemberRole 变更成员角色
func (rt *Router) updateTeamMemberRole(c *fiber.Ctx) error {
	var req model.UpdateMemberRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update member role request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.TeamMemberService.UpdateMemberRole(c.UserContext(), c.Params("teamId"), c.Params("userId"), &req); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// removeTeamMember 移除成员
func (rt *Router) removeTeamMember(c *fiber.Ctx) error {
	if err := rt.TeamMemberService.RemoveMember(c.UserContext(), c.Params("teamId"), c.Params("userId")); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// transferLeadership 转移领导权
func (rt *Router) transferLeadership(c *fiber.Ctx) error {
	var req model.TransferLeadershipReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse transfer leadership request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.TeamMemberService.TransferLeadership(c.UserContext(), c.Params("teamId"), &req); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
