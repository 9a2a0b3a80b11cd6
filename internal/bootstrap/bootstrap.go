// Copyright 2025 Caseflow Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/caseflow/caseflow/internal/engine/config"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/internal/engine/router"
	"github.com/caseflow/caseflow/internal/engine/service"
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/caseflow/caseflow/pkg/cache"
	"github.com/caseflow/caseflow/pkg/database"
	httpx "github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/log"
)

// App 组装完成的应用
type App struct {
	HttpApp *fiber.App
	Conf    *config.AppConfig
}

// NewApp 按配置装配全部依赖。
// 所有协作者在此一次性构造并注入，组件不在调用时自行创建依赖
func NewApp(configFile string) (*App, func(), error) {
	appConf := config.NewConf(configFile)

	log.MustInit(&appConf.Log)

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database failed: %w", err)
	}
	gormDB := database.NewGormDB(db)

	rdb, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis failed: %w", err)
	}

	// 仓储层
	userRepo := repo.NewUserRepo(gormDB)
	roleRepo := repo.NewRoleRepo(gormDB)
	permRepo := repo.NewPermissionRepo(gormDB)
	teamRepo := repo.NewTeamRepo(gormDB)
	memberRepo := repo.NewTeamMemberRepo(gormDB)
	caseRepo := repo.NewCaseRepo(gormDB)
	docRepo := repo.NewDocumentRepo(gormDB)

	// 服务层
	permService := service.NewPermissionService(permRepo, roleRepo)
	memberService := service.NewTeamMemberService(memberRepo, teamRepo, userRepo, gormDB)
	teamService := service.NewTeamService(teamRepo, memberRepo, userRepo, gormDB)
	caseService := service.NewCaseService(caseRepo, userRepo)
	docService := service.NewDocumentService(docRepo, caseRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, permService)
	authService := service.NewAuthService(userRepo, rdb, appConf.Http.Auth)

	// 授权门：权限解析 + 成员关系
	gate := authz.NewGate(permService, memberService)

	// 启动时同步权限目录与内置角色
	if err := permService.SyncCatalog(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("sync permission catalog failed: %w", err)
	}

	app := httpx.NewFiber(appConf.Http)
	rt := router.NewRouter(&appConf.Http, rdb, gate,
		authService, userService, roleService, permService,
		teamService, memberService, caseService, docService)
	rt.Setup(app)

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis failed: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Errorf("close database failed: %v", err)
			}
		}
	}

	return &App{HttpApp: app, Conf: appConf}, cleanup, nil
}

// Run 启动 HTTP 服务并阻塞到退出信号
func Run(app *App, cleanup func()) {
	wait := httpx.Serve(app.HttpApp, app.Conf.Http)
	wait()
	cleanup()
}
