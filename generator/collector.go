package generator

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/procfault/zombiemaker/procinfo"
)

const namespace = "zombiemaker"

type genCollector struct {
	spawnedDesc   *prometheus.Desc
	unreapedDesc  *prometheus.Desc
	startTimeDesc *prometheus.Desc
	gen           *Generator
}

// NewGenCollector returns new Collector exposing generator statistics.
func NewGenCollector(gen *Generator) *genCollector {
	var (
		subsystem = "generator"
	)

	return &genCollector{
		spawnedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "children_spawned_total"),
			"Total child processes spawned",
			nil,
			nil,
		),
		unreapedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "unreaped_children"),
			"Terminated children whose exit status was never collected",
			nil,
			nil,
		),
		startTimeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "start_time_seconds"),
			"Generator start time",
			nil,
			nil,
		),
		gen: gen,
	}
}

// Describe generates prometheus metric description
func (c *genCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.spawnedDesc
	ch <- c.unreapedDesc
	ch <- c.startTimeDesc
}

// Collect gathers prometheus metrics from the generator counters and a fresh
// process table snapshot
func (c *genCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.spawnedDesc, prometheus.CounterValue, float64(c.gen.ChildrenSpawned()))
	ch <- prometheus.MustNewConstMetric(c.startTimeDesc, prometheus.CounterValue, float64(c.gen.StartedAt().Unix()))

	children, err := procinfo.Children(c.gen.PID())
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.unreapedDesc, prometheus.GaugeValue, float64(procinfo.CountZombies(children)))
}
