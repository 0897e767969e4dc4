// Package generator implements the zombie generator loop: on a fixed cadence
// it forks short-lived maker copies of the executable, and each maker forks
// one sleeping child and exits without waiting on it. No process in the chain
// ever collects a child's exit status.
package generator

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/procfault/zombiemaker/fork"
	"github.com/procfault/zombiemaker/procinfo"
)

// Roles carried by the forked copies of the executable.
const (
	// RoleMaker marks the copy that creates one zombie and exits at once.
	RoleMaker = "maker"
	// RoleZombie marks the sleeping child nobody will ever wait on.
	RoleZombie = "zombie"
)

const (
	// DefaultInterval is the pause between two maker forks.
	DefaultInterval = 30 * time.Second
	// DefaultChildLifetime is how long a spawned child sleeps before it
	// exits and turns into a zombie.
	DefaultChildLifetime = 60 * time.Second
)

const lifetimeEnv = "ZOMBIEMAKER_CHILD_LIFETIME"

// Generator runs the spawn loop. It never waits on anything it creates, so
// every terminated descendant stays in the process table until the generator
// itself exits.
type Generator struct {
	interval time.Duration
	lifetime time.Duration

	pid       int
	startedAt time.Time
	spawned   int64

	spawn func(role string, extraEnv []string) (fork.Branch, *os.Process, error)
}

// New creates a generator with the given spawn interval and child lifetime.
// Non-positive values fall back to the defaults.
func New(interval time.Duration, lifetime time.Duration) *Generator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if lifetime <= 0 {
		lifetime = DefaultChildLifetime
	}
	return &Generator{
		interval:  interval,
		lifetime:  lifetime,
		pid:       os.Getpid(),
		startedAt: time.Now(),
		spawn:     fork.Fork,
	}
}

// PID returns the pid of the generator process.
func (g *Generator) PID() int {
	return g.pid
}

// StartedAt returns the creation time of the generator.
func (g *Generator) StartedAt() time.Time {
	return g.startedAt
}

// Interval returns the pause between two maker forks.
func (g *Generator) Interval() time.Duration {
	return g.interval
}

// ChildLifetime returns how long each spawned child sleeps.
func (g *Generator) ChildLifetime() time.Duration {
	return g.lifetime
}

// ChildrenSpawned returns how many maker processes were forked so far.
func (g *Generator) ChildrenSpawned() int64 {
	return atomic.LoadInt64(&g.spawned)
}

// Run forks a maker, sleeps one interval and repeats until the context is
// cancelled. It returns a non-nil error only when a fork fails; an
// undisturbed run never returns.
func (g *Generator) Run(ctx context.Context) error {
	enableChildSubReaper()
	log.WithFields(log.Fields{"pid": g.pid}).Info("zombie maker service started")

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()
	for {
		if err := g.spawnMaker(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			g.logAbandoned()
			return nil
		case <-ticker.C:
		}
	}
}

func (g *Generator) spawnMaker() error {
	branch, maker, err := g.spawn(RoleMaker, []string{lifetimeEnv + "=" + g.lifetime.String()})
	if err != nil {
		return err
	}
	if branch == fork.Spawned {
		// the generator itself never carries a role marker
		return nil
	}
	atomic.AddInt64(&g.spawned, 1)
	log.WithFields(log.Fields{"pid": g.pid, "maker": maker.Pid}).Debug("spawned maker process")
	return nil
}

func (g *Generator) logAbandoned() {
	children, err := procinfo.Children(g.pid)
	if err != nil {
		log.Info("stop generating zombie processes")
		return
	}
	log.WithFields(log.Fields{
		"children": len(children),
		"zombies":  procinfo.CountZombies(children),
	}).Info("stop generating, abandoning unreaped children")
}

// RunMaker performs one create-zombie cycle and hosts both sides of the
// fork. The originating side logs the pid pair and returns at once so the
// process can exit without waiting on its child. The spawned side sleeps the
// given lifetime, logs its exit and returns; by then its parent is gone and
// nothing will ever collect it.
func RunMaker(lifetime time.Duration) error {
	branch, child, err := fork.Fork(RoleZombie, nil)
	if err != nil {
		return err
	}
	if branch == fork.Spawned {
		runZombie(lifetime)
		return nil
	}
	log.WithFields(log.Fields{"pid": os.Getpid(), "child": child.Pid}).Info("created child process")
	return nil
}

func runZombie(lifetime time.Duration) {
	log.WithFields(log.Fields{"pid": os.Getpid()}).Info("child process started")
	time.Sleep(lifetime)
	log.WithFields(log.Fields{"pid": os.Getpid()}).Info("child process exiting")
}

// ChildLifetimeFromEnv reads the lifetime the generator handed down to its
// forked copies. It falls back to the default when the marker is missing or
// unparsable.
func ChildLifetimeFromEnv() time.Duration {
	if v := os.Getenv(lifetimeEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultChildLifetime
}
