package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/authz"
	httpx "github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/http/jwt"
)

const testSecret = "test-secret"

func newAuthApp(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Use(AuthorizationMiddleware(testSecret, "session:", client))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return httpx.WithRepNotDetail(c)
	})
	return app, mr
}

func bodyCode(t *testing.T, resp io.Reader) int {
	t.Helper()
	var out struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp).Decode(&out))
	return out.Code
}

func TestAuthorizationMiddleware(t *testing.T) {
	t.Run("valid token with session passes", func(t *testing.T) {
		app, mr := newAuthApp(t)
		aToken, _, err := jwt.GenToken("u1", "agent", []byte(testSecret), 30, 60)
		require.NoError(t, err)
		require.NoError(t, mr.Set("session:u1", aToken))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+aToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, httpx.Success.Code, bodyCode(t, resp.Body))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		app, _ := newAuthApp(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
		assert.Equal(t, httpx.TokenBeEmpty.Code, bodyCode(t, resp.Body))
	})

	t.Run("valid token without session is rejected", func(t *testing.T) {
		app, _ := newAuthApp(t)
		aToken, _, err := jwt.GenToken("u1", "agent", []byte(testSecret), 30, 60)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+aToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, httpx.TokenExpired.Code, bodyCode(t, resp.Body))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		app, _ := newAuthApp(t)
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, httpx.InvalidToken.Code, bodyCode(t, resp.Body))
	})
}

type stubPermSource struct {
	scopes map[string]authz.Scope // "roleId/module.action" -> scope
}

func (s stubPermSource) HasPermission(ctx context.Context, roleId, code string) (bool, error) {
	return false, nil
}

func (s stubPermSource) GetHighestScope(ctx context.Context, roleId, module, action string) (authz.Scope, error) {
	return s.scopes[roleId+"/"+module+"."+action], nil
}

type stubMemberSource struct {
	teams map[string][]string
}

func (s stubMemberSource) GetActiveTeamIds(ctx context.Context, userId string) ([]string, error) {
	return s.teams[userId], nil
}

func newScopeApp(gate *authz.Gate) *fiber.App {
	app := fiber.New()
	// 模拟认证中间件写入 claims
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("claims", &jwt.AuthClaims{UserId: "u1", RoleId: "agent"})
		return c.Next()
	})
	app.Get("/cases", RequireScope(gate, "cases", "view"), func(c *fiber.Ctx) error {
		restriction := RestrictionFromCtx(c)
		return httpx.WithRepJSON(c, fiber.Map{
			"scope":   restriction.Scope.String(),
			"teamIds": restriction.TeamIds,
		})
	})
	return app
}

func TestRequireScope(t *testing.T) {
	t.Run("granted team scope injects restriction", func(t *testing.T) {
		gate := authz.NewGate(
			stubPermSource{scopes: map[string]authz.Scope{"agent/cases.view": authz.ScopeTeam}},
			stubMemberSource{teams: map[string][]string{"u1": {"eng"}}},
		)
		resp, err := newScopeApp(gate).Test(httptest.NewRequest("GET", "/cases", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out struct {
			Detail struct {
				Scope   string   `json:"scope"`
				TeamIds []string `json:"teamIds"`
			} `json:"detail"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "team", out.Detail.Scope)
		assert.Equal(t, []string{"eng"}, out.Detail.TeamIds)
	})

	t.Run("no grant is forbidden", func(t *testing.T) {
		gate := authz.NewGate(stubPermSource{scopes: map[string]authz.Scope{}}, stubMemberSource{})
		resp, err := newScopeApp(gate).Test(httptest.NewRequest("GET", "/cases", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
