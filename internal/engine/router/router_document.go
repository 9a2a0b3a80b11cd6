package router

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/middleware"
	"github.com/caseflow/caseflow/pkg/log"
)

/**
 * @file: router_document.go
 * @description: 知识文档路由
 */

func (rt *Router) documentRouter(r fiber.Router, auth fiber.Handler) {
	docGroup := r.Group("/document")
	{
		// 创建文档（案件或文档模块任一创建权限即可）
		docGroup.Post("/create", auth,
			middleware.RequireAnyPermission(rt.Gate,
				authz.Permission{Module: model.ModuleDocuments, Action: "create"},
				authz.Permission{Module: model.ModuleCases, Action: "create"},
			), rt.createDocument)

		// 查询文档列表
		docGroup.Get("/list", auth,
			middleware.RequireScope(rt.Gate, model.ModuleDocuments, "view"), rt.listDocuments)

		// 文档详情
		docGroup.Get("/:docId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleDocuments, "view", rt.DocumentService.Locator(), "docId"),
			rt.getDocumentById)

		// 更新文档
		docGroup.Put("/:docId", auth,
			middleware.RequireScopeOn(rt.Gate, model.ModuleDocuments, "edit", rt.DocumentService.Locator(), "docId"),
			rt.updateDocument)

		// 删除文档（需文档删除和查看两个权限点）
		docGroup.Delete("/:docId", auth,
			middleware.RequireAllPermissions(rt.Gate,
				authz.Permission{Module: model.ModuleDocuments, Action: "delete"},
				authz.Permission{Module: model.ModuleDocuments, Action: "view"},
			), rt.deleteDocument)
	}
}

// createDocument 创建文档
func (rt *Router) createDocument(c *fiber.Ctx) error {
	var req model.CreateDocumentReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create document request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	actor := middleware.ActorFromCtx(c)
	doc, err := rt.DocumentService.CreateDocument(c.UserContext(), actor.UserId, &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, doc)
}

// listDocuments 在访问限制内分页查询文档
func (rt *Router) listDocuments(c *fiber.Ctx) error {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	restriction := middleware.RestrictionFromCtx(c)

	docs, total, err := rt.DocumentService.ListDocuments(c.UserContext(), restriction, pageNum, pageSize)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": docs, "total": total})
}

// getDocumentById 文档详情
func (rt *Router) getDocumentById(c *fiber.Ctx) error {
	doc, err := rt.DocumentService.GetDocumentById(c.UserContext(), c.Params("docId"))
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, doc)
}

// updateDocument 更新文档
func (rt *Router) updateDocument(c *fiber.Ctx) error {
	var req model.UpdateDocumentReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update document request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	doc, err := rt.DocumentService.UpdateDocument(c.UserContext(), c.Params("docId"), &req)
	if err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepJSON(c, doc)
}

// deleteDocument 删除文档
func (rt *Router) deleteDocument(c *fiber.Ctx) error {
	restriction := middleware.RestrictionFromCtx(c)
	if err := restriction.CheckResource(c.UserContext(), rt.DocumentService.Locator(), c.Params("docId")); err != nil {
		return http.WithRepBizErr(c, err)
	}

	if err := rt.DocumentService.DeleteDocument(c.UserContext(), c.Params("docId")); err != nil {
		return http.WithRepBizErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
