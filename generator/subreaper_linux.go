// +build linux

package generator

import (
	"github.com/ramr/go-reaper"
	log "github.com/sirupsen/logrus"
)

// Register as child subreaper so orphaned descendants reparent to this
// process instead of pid 1. Nothing ever waits on them afterwards.
func enableChildSubReaper() {
	if err := reaper.EnableChildSubReaper(); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("fail to register as child subreaper")
	}
}
