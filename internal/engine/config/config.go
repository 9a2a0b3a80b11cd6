package config

import (
	"fmt"
	"sync"

	"github.com/caseflow/caseflow/pkg/cache"
	"github.com/caseflow/caseflow/pkg/conf"
	"github.com/caseflow/caseflow/pkg/database"
	"github.com/caseflow/caseflow/pkg/http"
	"github.com/caseflow/caseflow/pkg/log"
)

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) *AppConfig {
	once.Do(func() {
		if err := conf.LoadConfigFile(confFile, &cfg); err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	return &cfg
}
