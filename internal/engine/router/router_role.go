package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/middleware"
	"github.com/caseflow/caseflow/pkg/log"
)

/**
 * @file: router_role.go
 * @description: 角色与权限路由
 */

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/role")
	{
		// 创建角色
		roleGroup.Post("/create", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.createRole)

		// 角色列表
		roleGroup.Get("/list", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "view"), rt.listRoles)

		// 角色详情
		roleGroup.Get("/:roleId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "view"), rt.getRoleById)

		// 更新角色
		roleGroup.Put("/:roleId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.updateRole)

		// 删除角色
		roleGroup.Delete("/:roleId", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.deleteRole)

		// 查询角色已授予的权限
		roleGroup.Get("/:roleId/permissions", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "view"), rt.getRolePermissions)

		// 整体覆盖角色权限
		roleGroup.Put("/:roleId/permissions", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.replaceRolePermissions)

		// 授予权限
		roleGroup.Post("/:roleId/permissions", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.grantPermissions)

		// 撤销权限
		roleGroup.Delete("/:roleId/permissions", auth,
			middleware.RequireScope(rt.Gate, model.ModuleRoles, "edit"), rt.revokePermissions)
	}

	// 全量权限目录
	r.Get("/permission/list", auth,
		middleware.RequireScope(rt.Gate, model.ModuleRoles, "view"), rt.listPermissions)
}

// createRole 创建角色
func (rt *Router) createRole(c *fiber.Ctx) error {
	var req model.CreateRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create role request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	role, err := rt.RoleService.CreateRole(c.UserContext(), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, role)
}

// listRoles 角色列表
func (rt *Router) listRoles(c *fiber.Ctx) error {
	roles, err := rt.RoleService.ListRoles(c.UserContext())
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, roles)
}

// getRoleById 角色详情
func (rt *Router) getRoleById(c *fiber.Ctx) error {
	role, err := rt.RoleService.GetRoleById(c.UserContext(), c.Params("roleId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, role)
}

// updateRole 更新角色
func (rt *Router) updateRole(c *fiber.Ctx) error {
	var req model.UpdateRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update role request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	role, err := rt.RoleService.UpdateRole(c.UserContext(), c.Params("roleId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, role)
}

// deleteRole 删除角色
func (rt *Router) deleteRole(c *fiber.Ctx) error {
	if err := rt.RoleService.DeleteRole(c.UserContext(), c.Params("roleId")); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// getRolePermissions 查询角色已授予的权限
func (rt *Router) getRolePermissions(c *fiber.Ctx) error {
	codes, err := rt.PermissionService.GetRolePermissions(c.UserContext(), c.Params("roleId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, codes)
}

// grantPermissions 为角色授予权限
func (rt *Router) grantPermissions(c *fiber.Ctx) error {
	var req model.GrantPermissionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse grant permission request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.PermissionService.GrantPermissions(c.UserContext(), c.Params("roleId"), req.Codes); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// replaceRolePermissions 以请求集合整体覆盖角色权限
func (rt *Router) replaceRolePermissions(c *fiber.Ctx) error {
	var req model.GrantPermissionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse replace permission request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.PermissionService.ReplaceRolePermissions(c.UserContext(), c.Params("roleId"), req.Codes); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// revokePermissions 撤销角色权限
func (rt *Router) revokePermissions(c *fiber.Ctx) error {
	var req model.GrantPermissionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse revoke permission request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.PermissionService.RevokePermissions(c.UserContext(), c.Params("roleId"), req.Codes); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// listPermissions 全量权限目录
func (rt *Router) listPermissions(c *fiber.Ctx) error {
	perms, err := rt.PermissionService.ListPermissions(c.UserContext())
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, perms)
}
