package generator

import (
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/procfault/zombiemaker/fork"
)

func TestGenCollector(t *testing.T) {
	g := New(time.Second, time.Second)
	self, _ := os.FindProcess(os.Getpid())
	g.spawn = func(role string, extraEnv []string) (fork.Branch, *os.Process, error) {
		return fork.Originator, self, nil
	}
	for i := 0; i < 3; i++ {
		if err := g.spawnMaker(); err != nil {
			t.Fatalf("fail to spawn: %v", err)
		}
	}

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewGenCollector(g)); err != nil {
		t.Fatalf("fail to register collector: %v", err)
	}
	fams, err := reg.Gather()
	if err != nil {
		t.Fatalf("fail to gather metrics: %v", err)
	}

	var spawned, startTime float64 = -1, -1
	for _, fam := range fams {
		switch fam.GetName() {
		case "zombiemaker_generator_children_spawned_total":
			spawned = fam.GetMetric()[0].GetCounter().GetValue()
		case "zombiemaker_generator_start_time_seconds":
			startTime = fam.GetMetric()[0].GetCounter().GetValue()
		}
	}
	if spawned != 3 {
		t.Errorf("expected 3 spawned children, got %v", spawned)
	}
	if startTime <= 0 {
		t.Errorf("expected a positive start time, got %v", startTime)
	}
}
