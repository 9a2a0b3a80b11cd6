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
 * @file: router_case.go
 * @description: 案件路由，列表按解析出的范围过滤，单资源在授权时做归属检查
 */

func (rt *Router) caseRouter(r fiber.Router, auth fiber.Handler) {
	caseGroup := r.Group("/case")
	{
		// 创建案件
		caseGroup.Post("/create", auth,
			middleware.RequireScope(rt.Gate, model.ModuleCases, "create"), rt.createCase)

		// 查询案件列表
		caseGroup.Get("/list", auth,
			middleware.RequireScope(rt.Gate, model.ModuleCases, "view"), rt.listCases)

		// 案件详情
		caseGroup.Get("/:caseId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleCases, "view", rt.CaseService.Locator(), "caseId"),
			rt.getCaseById)

		// 更新案件
		caseGroup.Put("/:caseId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleCases, "edit", rt.CaseService.Locator(), "caseId"),
			rt.updateCase)

		// 指派案件
		caseGroup.Post("/:caseId/assign", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleCases, "assign", rt.CaseService.Locator(), "caseId"),
			rt.assignCase)

		// 删除案件
		caseGroup.Delete("/:caseId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleCases, "delete", rt.CaseService.Locator(), "caseId"),
			rt.deleteCase)

		// 案件关联文档
		caseGroup.Get("/:caseId/documents", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleCases, "view", rt.CaseService.Locator(), "caseId"),
			rt.listCaseDocuments)
	}
}

// createCase 创建案件
func (rt *Router) createCase(c *fiber.Ctx) error {
	var req model.CreateCaseReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create case request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	actor := middleware.ActorFromCtx(c)
	result, err := rt.CaseService.CreateCase(c.UserContext(), actor.UserId, &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, result)
}

// listCases 在访问限制内分页查询案件
func (rt *Router) listCases(c *fiber.Ctx) error {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	restriction := middleware.RestrictionFromCtx(c)

	cases, total, err := rt.CaseService.ListCases(c.UserContext(), restriction, pageNum, pageSize)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": cases, "total": total})
}

// getCaseById 案件详情
func (rt *Router) getCaseById(c *fiber.Ctx) error {
	result, err := rt.CaseService.GetCaseById(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, result)
}

// updateCase 更新案件
func (rt *Router) updateCase(c *fiber.Ctx) error {
	var req model.UpdateCaseReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update case request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	result, err := rt.CaseService.UpdateCase(c.UserContext(), c.Params("caseId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, result)
}

// assignCase 指派案件
func (rt *Router) assignCase(c *fiber.Ctx) error {
	var req model.AssignCaseReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse assign case request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	result, err := rt.CaseService.AssignCase(c.UserContext(), c.Params("caseId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, result)
}

// deleteCase 删除案件
func (rt *Router) deleteCase(c *fiber.Ctx) error {
	if err := rt.CaseService.DeleteCase(c.UserContext(), c.Params("caseId")); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

// listCaseDocuments 案件关联文档
func (rt *Router) listCaseDocuments(c *fiber.Ctx) error {
	docs, err := rt.DocumentService.ListByCase(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, docs)
}
