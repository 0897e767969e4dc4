// +build !windows

package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/sevlyar/go-daemon"
)

// Daemonize detaches from the terminal and runs proc in the background
// process.
func Daemonize(proc func()) {
	context := new(daemon.Context)
	if options.Pidfile != "" {
		context.PidFileName = options.Pidfile
		context.PidFilePerm = 0644
	}

	child, err := context.Reborn()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Unable to run")
	}
	if child != nil {
		return
	}
	defer context.Release()

	log.Info("daemon started")

	proc()
}
