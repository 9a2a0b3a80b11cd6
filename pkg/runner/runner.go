package runner

import (
	"os"
)

// 进程运行环境信息, 启动时打印
var (
	Hostname string
	Pwd      string
	Pid      int
)

func init() {
	var err error
	Hostname, err = os.Hostname()
	if err != nil {
		Hostname = "unknown"
	}

	Pwd, _ = os.Getwd()
	Pid = os.Getpid()
}
