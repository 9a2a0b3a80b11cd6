package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/caseflow/caseflow/internal/engine/service"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/middleware"
)

/**
 * @file: router.go
 * @description: setup router
 *  		     internal api router, use by web
 */

type Router struct {
	Http *http.Http
	Rdb  *redis.Client
	Gate *authz.Gate

	AuthService       *service.AuthService
	UserService       *service.UserService
	RoleService       *service.RoleService
	PermissionService *service.PermissionService
	TeamService       *service.TeamService
	TeamMemberService *service.TeamMemberService
	CaseService       *service.CaseService
	DocumentService   *service.DocumentService
}

func NewRouter(
	httpConf *http.Http,
	rdb *redis.Client,
	gate *authz.Gate,
	authService *service.AuthService,
	userService *service.UserService,
	roleService *service.RoleService,
	permissionService *service.PermissionService,
	teamService *service.TeamService,
	teamMemberService *service.TeamMemberService,
	caseService *service.CaseService,
	documentService *service.DocumentService,
) *Router {
	return &Router{
		Http:              httpConf,
		Rdb:               rdb,
		Gate:              gate,
		AuthService:       authService,
		UserService:       userService,
		RoleService:       roleService,
		PermissionService: permissionService,
		TeamService:       teamService,
		TeamMemberService: teamMemberService,
		CaseService:       caseService,
		DocumentService:   documentService,
	}
}

// Setup 注册全部路由与中间件
func (rt *Router) Setup(app *fiber.App) {
	app.Use(middleware.CorsMiddleware())
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return http.WithRepNotDetail(c)
	})

	api := app.Group(rt.Http.ContextPath)
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.Rdb)

	rt.authRouter(api, auth)
	rt.userRouter(api, auth)
	rt.roleRouter(api, auth)
	rt.teamRouter(api, auth)
	rt.caseRouter(api, auth)
	rt.documentRouter(api, auth)
}
