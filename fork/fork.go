// Package fork emulates the fork(2) call-returns-twice contract on top of
// os/exec. A process "forks" by re-launching its own executable with a role
// marker in the environment; the caller learns from the returned Branch
// whether it is the originating side or the spawned copy.
package fork

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RoleEnv carries the role marker to the spawned copy of the executable.
const RoleEnv = "ZOMBIEMAKER_FORK_ROLE"

// Branch tells the caller of Fork which side of the fork it is on.
type Branch int

const (
	// Originator is the side that created a new process. It receives the
	// handle of the spawned copy.
	Originator Branch = iota
	// Spawned is the side running inside the new process. It receives no
	// handle.
	Spawned
)

func (b Branch) String() string {
	if b == Spawned {
		return "spawned"
	}
	return "originator"
}

// CurrentRole returns the role marker of the current process, or the empty
// string if this process was launched directly by a user.
func CurrentRole() string {
	return os.Getenv(RoleEnv)
}

// Fork launches a copy of the current executable carrying the given role and
// returns (Originator, handle, nil) to the caller. In the spawned copy the
// same call returns (Spawned, nil, nil) without creating another process, so
// a single callsite can host both sides of the fork the way a fork(2) caller
// does.
//
// The copy inherits the parent environment plus extraEnv, shares the parent
// stdout and stderr, and is started in its own process group. The caller is
// free never to wait on the returned handle.
func Fork(role string, extraEnv []string) (Branch, *os.Process, error) {
	if CurrentRole() == role {
		return Spawned, nil, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return Originator, nil, fmt.Errorf("fork failed: %w", err)
	}
	cmd := exec.Command(exe)
	cmd.Env = append(forkEnv(role), extraEnv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = getSysProcAttr()
	if err := cmd.Start(); err != nil {
		return Originator, nil, fmt.Errorf("fork failed: %w", err)
	}
	return Originator, cmd.Process, nil
}

// forkEnv returns the current environment with any previous role marker
// replaced by the given role. getenv(3) resolves duplicate keys to the first
// occurrence, so the stale marker must not stay in front of the new one.
func forkEnv(role string) []string {
	environ := os.Environ()
	env := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, RoleEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, RoleEnv+"="+role)
}
