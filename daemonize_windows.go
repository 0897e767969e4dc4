// +build windows

package main

import (
	log "github.com/sirupsen/logrus"
)

// Daemonize runs proc in the foreground. Windows has no detach semantics;
// use the service command instead.
func Daemonize(proc func()) {
	log.Warn("daemon mode is not supported on windows, running in foreground")
	proc()
}
