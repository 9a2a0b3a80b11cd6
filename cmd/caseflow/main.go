package main

import (
	"flag"

	"github.com/caseflow/caseflow/internal/bootstrap"
	"github.com/caseflow/caseflow/pkg/log"
	"github.com/caseflow/caseflow/pkg/runner"
)

/**
 * @file: main.go
 * @description: caseflow server
 */

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	app, cleanup, err := bootstrap.NewApp(configFile)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	log.Infow("caseflow starting", "host", runner.Hostname, "pid", runner.Pid, "pwd", runner.Pwd)

	bootstrap.Run(app, cleanup)
}
