package conf

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/caseflow/caseflow/pkg/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

/**
 * @file: conf.go
 * @description: 配置加载，支持热更新
 */

func init() {
	viper.AutomaticEnv()
}

// LoadConfigFile 加载配置文件并监听变更, cfg 必须是结构体指针
func LoadConfigFile(confFile string, cfg interface{}) error {
	cfgValue := reflect.ValueOf(cfg)
	if cfgValue.Kind() != reflect.Ptr || cfgValue.IsNil() {
		return errors.New("cfg must be a non-nil pointer")
	}

	vCfg := viper.New()
	vCfg.SetConfigFile(confFile)

	if err := vCfg.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	// 配置动态改变时，回调函数
	vCfg.WatchConfig()
	vCfg.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := vCfg.Unmarshal(cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := vCfg.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}

	log.Infof("configuration file loaded: %s", confFile)

	return nil
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}
