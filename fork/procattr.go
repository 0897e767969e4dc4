// +build !windows

package fork

import (
	"syscall"
)

// No Pdeathsig: spawned copies must survive their parent.
func getSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
