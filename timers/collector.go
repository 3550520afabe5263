package timers

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// # Collector
//
// Exposes the buckets of a tree as Prometheus counters:
//
//	timerstree_partition_seconds_total{phase, partition}
//	timerstree_partition_entrances_total{phase, partition}
//
// Values are local to the process, and only closed partitions are counted.
// Collect reads the tree, so it must not run concurrently with
// [TimersTree.BeginPartition] or [TimersTree.EndPartition]; gather once the
// instrumented section is over, e.g. with [WriteTextfile].
type Collector struct {
	tree      *TimersTree
	seconds   *prometheus.Desc
	entrances *prometheus.Desc
}

// NewCollector returns a collector for t.
func NewCollector(t *TimersTree) *Collector {
	constLabels := prometheus.Labels{"phase": t.Name()}
	return &Collector{
		tree: t,
		seconds: prometheus.NewDesc(
			"timerstree_partition_seconds_total",
			"Self time accumulated by a partition, in seconds.",
			[]string{"partition"}, constLabels,
		),
		entrances: prometheus.NewDesc(
			"timerstree_partition_entrances_total",
			"Number of times a partition was entered.",
			[]string{"partition"}, constLabels,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.seconds
	ch <- c.entrances
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	elapsed := c.tree.Elapsed()
	entrances := c.tree.Entrances()

	for k := range elapsed {
		label := c.partitionLabel(k)
		ch <- prometheus.MustNewConstMetric(c.seconds, prometheus.CounterValue, elapsed[k], label)
		ch <- prometheus.MustNewConstMetric(c.entrances, prometheus.CounterValue, float64(entrances[k]), label)
	}
}

// partitionLabel falls back to the key for trees with more keys than
// partitions.
func (c *Collector) partitionLabel(key int) string {
	label, err := c.tree.labelOf(key)
	if err != nil {
		return strconv.Itoa(key)
	}
	return label
}

// WriteTextfile writes the buckets of t to filename in the Prometheus text
// format, for the textfile collector of a node exporter.
func WriteTextfile(t *TimersTree, filename string) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(t)); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(filename, reg); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
