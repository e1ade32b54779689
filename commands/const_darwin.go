package commands

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	_etc = "/usr/local/etc/com.github.quiniela"

	DEFAULT_CONFIG = _etc + "/quiniela-web.yaml"
)

var shutdown = []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
