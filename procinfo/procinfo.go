// Package procinfo takes point-in-time snapshots of the OS process table.
// Nothing here tracks processes between calls; every function rescans.
package procinfo

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StateZombie is the state letter of a terminated process whose exit status
// nobody collected yet.
const StateZombie = "Z"

// Proc is one row of a process table snapshot.
type Proc struct {
	PID       int32     `json:"pid"`
	PPID      int32     `json:"ppid"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Zombie    bool      `json:"zombie"`
	StartedAt time.Time `json:"started_at"`
}

func snapshot(p *process.Process) Proc {
	proc := Proc{PID: p.Pid}
	if ppid, err := p.Ppid(); err == nil {
		proc.PPID = ppid
	}
	if name, err := p.Name(); err == nil {
		proc.Name = name
	}
	if state, err := p.Status(); err == nil {
		proc.State = state
	} else {
		proc.State = "?"
	}
	proc.Zombie = proc.State == StateZombie
	if created, err := p.CreateTime(); err == nil && created > 0 {
		proc.StartedAt = time.UnixMilli(created)
	}
	return proc
}

// Children returns a snapshot of the current children of the given process.
func Children(pid int) ([]Proc, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("fail to read process table: %w", err)
	}
	result := make([]Proc, 0)
	for _, p := range procs {
		ppid, err := p.Ppid()
		if err != nil || int(ppid) != pid {
			continue
		}
		result = append(result, snapshot(p))
	}
	return result, nil
}

// ByName returns a snapshot of all processes running the named executable.
func ByName(name string) ([]Proc, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("fail to read process table: %w", err)
	}
	result := make([]Proc, 0)
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil || pname != name {
			continue
		}
		result = append(result, snapshot(p))
	}
	return result, nil
}

// CountZombies returns how many entries of a snapshot are zombies.
func CountZombies(procs []Proc) int {
	n := 0
	for _, p := range procs {
		if p.Zombie {
			n++
		}
	}
	return n
}

// Uptime renders the age of a process in a human readable form.
func Uptime(startedAt time.Time) string {
	if startedAt.IsZero() {
		return "-"
	}
	return time.Since(startedAt).Round(time.Second).String()
}
