package fork

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Fork launches this test binary again; the copies must not run the
	// test suite themselves.
	if CurrentRole() != "" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func TestCurrentRoleDefault(t *testing.T) {
	if CurrentRole() != "" {
		t.Error("a directly launched process should carry no role")
	}
}

func TestBranchString(t *testing.T) {
	if Originator.String() != "originator" || Spawned.String() != "spawned" {
		t.Error("fail to render branch names")
	}
}

func TestForkOriginatorBranch(t *testing.T) {
	branch, proc, err := Fork("helper", nil)
	if err != nil {
		t.Fatalf("fail to fork: %v", err)
	}
	if branch != Originator {
		t.Errorf("expected originator branch, got %v", branch)
	}
	if proc == nil {
		t.Fatal("originator branch should receive the child handle")
	}
	if proc.Pid == os.Getpid() {
		t.Error("child pid should differ from the originator pid")
	}
	// reap the helper so it does not outlive the test run
	proc.Wait()
}

func TestForkSpawnedBranch(t *testing.T) {
	os.Setenv(RoleEnv, "helper")
	defer os.Unsetenv(RoleEnv)

	branch, proc, err := Fork("helper", nil)
	if err != nil {
		t.Fatalf("fail to fork: %v", err)
	}
	if branch != Spawned {
		t.Errorf("expected spawned branch, got %v", branch)
	}
	if proc != nil {
		t.Error("spawned branch should not receive a handle")
	}
}

func TestForkReplacesStaleRole(t *testing.T) {
	os.Setenv(RoleEnv, "older")
	defer os.Unsetenv(RoleEnv)

	env := forkEnv("newer")
	found := ""
	count := 0
	for _, kv := range env {
		if len(kv) > len(RoleEnv) && kv[:len(RoleEnv)+1] == RoleEnv+"=" {
			found = kv[len(RoleEnv)+1:]
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one role marker, got %d", count)
	}
	if found != "newer" {
		t.Errorf("expected role newer, got %s", found)
	}
}
