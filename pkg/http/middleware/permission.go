package middleware

import (
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: permission.go
 * @description: 统一权限验证中间件，按 (module, action) 解析范围并注入数据限制
 */

const (
	localsActor       = "actor"
	localsScope       = "scope"
	localsRestriction = "restriction"
)

// ActorFromCtx 从认证中间件写入的 claims 构建操作者
func ActorFromCtx(c *fiber.Ctx) *authz.Actor {
	claims, ok := c.Locals("claims").(*jwt.AuthClaims)
	if !ok || claims == nil {
		return nil
	}
	return &authz.Actor{UserId: claims.UserId, RoleId: claims.RoleId}
}

// RestrictionFromCtx 读取权限中间件注入的数据限制
func RestrictionFromCtx(c *fiber.Ctx) authz.Restriction {
	r, ok := c.Locals(localsRestriction).(authz.Restriction)
	if !ok {
		// 权限中间件未执行时不放行任何数据
		return authz.Restriction{Scope: authz.ScopeNone}
	}
	return r
}

// RequireScope 要求 (module, action) 的任意范围授权，列表型操作使用
func RequireScope(gate *authz.Gate, module, action string) fiber.Handler {
	return requireScope(gate, module, action, nil, "")
}

// RequireScopeOn 要求 (module, action) 授权并对路径参数指定的单个资源做归属检查
func RequireScopeOn(gate *authz.Gate, module, action string, loc authz.ResourceLocator, param string) fiber.Handler {
	return requireScope(gate, module, action, loc, param)
}

func requireScope(gate *authz.Gate, module, action string, loc authz.ResourceLocator, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)

		resourceId := ""
		if param != "" {
			resourceId = c.Params(param)
		}

		restriction, err := gate.Authorize(c.UserContext(), actor, module, action, loc, resourceId)
		if err != nil {
			return http.WithRepBizErr(c, err)
		}

		c.Locals(localsActor, actor)
		c.Locals(localsScope, restriction.Scope)
		c.Locals(localsRestriction, restriction)
		return c.Next()
	}
}

// RequireAllPermissions 要求全部权限点被授予（任意范围）
func RequireAllPermissions(gate *authz.Gate, perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)

		restriction, err := gate.RequireAll(c.UserContext(), actor, perms)
		if err != nil {
			return http.WithRepBizErr(c, err)
		}

		c.Locals(localsActor, actor)
		c.Locals(localsScope, restriction.Scope)
		c.Locals(localsRestriction, restriction)
		return c.Next()
	}
}

// RequireAnyPermission 要求至少一个权限点被授予，附带满足项中的最大范围
func RequireAnyPermission(gate *authz.Gate, perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)

		restriction, err := gate.RequireAny(c.UserContext(), actor, perms)
		if err != nil {
			return http.WithRepBizErr(c, err)
		}

		c.Locals(localsActor, actor)
		c.Locals(localsScope, restriction.Scope)
		c.Locals(localsRestriction, restriction)
		return c.Next()
	}
}
