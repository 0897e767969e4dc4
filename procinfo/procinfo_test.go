package procinfo

import (
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func TestChildrenSeesRunningChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix sleep command")
	}
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("fail to start helper: %v", err)
	}
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	children, err := Children(os.Getpid())
	if err != nil {
		t.Fatalf("fail to snapshot children: %v", err)
	}
	found := false
	for _, c := range children {
		if int(c.PID) == cmd.Process.Pid {
			found = true
			if c.Zombie {
				t.Error("a running child should not be classified as zombie")
			}
			if int(c.PPID) != os.Getpid() {
				t.Errorf("expected ppid %d, got %d", os.Getpid(), c.PPID)
			}
		}
	}
	if !found {
		t.Errorf("child %d not found in snapshot", cmd.Process.Pid)
	}
}

func TestChildrenSeesZombie(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("zombies are a posix concept")
	}
	// an exited child stays a zombie until Wait collects it
	cmd := exec.Command("sleep", "0")
	if err := cmd.Start(); err != nil {
		t.Fatalf("fail to start helper: %v", err)
	}
	defer cmd.Wait()

	deadline := time.Now().Add(5 * time.Second)
	for {
		children, err := Children(os.Getpid())
		if err != nil {
			t.Fatalf("fail to snapshot children: %v", err)
		}
		for _, c := range children {
			if int(c.PID) == cmd.Process.Pid && c.Zombie {
				if c.State != StateZombie {
					t.Errorf("expected state %s, got %s", StateZombie, c.State)
				}
				if CountZombies(children) < 1 {
					t.Error("zombie count should include the helper")
				}
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("child %d never showed up as zombie", cmd.Process.Pid)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestCountZombies(t *testing.T) {
	procs := []Proc{
		{PID: 1, State: "S"},
		{PID: 2, State: StateZombie, Zombie: true},
		{PID: 3, State: StateZombie, Zombie: true},
	}
	if CountZombies(procs) != 2 {
		t.Error("fail to count zombies")
	}
	if CountZombies(nil) != 0 {
		t.Error("empty snapshot should have no zombies")
	}
}

func TestUptime(t *testing.T) {
	if Uptime(time.Time{}) != "-" {
		t.Error("unknown start time should render as -")
	}
	if Uptime(time.Now().Add(-90*time.Second)) == "-" {
		t.Error("known start time should render a duration")
	}
}
