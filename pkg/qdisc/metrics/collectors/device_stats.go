/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
	compbasemetrics "k8s.io/component-base/metrics"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/metrics"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

var (
	descDeviceQueueLength = prometheus.NewDesc(
		"qdisc_queue_length",
		metrics.HelpMsgWithStability("The number of packets currently resident in the queue discipline attached to each device.", compbasemetrics.ALPHA),
		[]string{"device", "discipline"}, nil,
	)
	descDeviceBacklogBytes = prometheus.NewDesc(
		"qdisc_backlog_bytes",
		metrics.HelpMsgWithStability("The number of bytes currently resident in the queue discipline attached to each device.", compbasemetrics.ALPHA),
		[]string{"device", "discipline"}, nil,
	)
	descDeviceDrops = prometheus.NewDesc(
		"qdisc_drops_total",
		metrics.HelpMsgWithStability("The number of packets refused at admission by the queue discipline attached to each device.", compbasemetrics.ALPHA),
		[]string{"device", "discipline"}, nil,
	)
)

// DeviceSnapshot is the per-device view the collector exports.
type DeviceSnapshot struct {
	Device     string
	Discipline string
	Stats      types.Stats
}

// StatsSource provides point-in-time stats for every device with an attached discipline.
type StatsSource interface {
	Snapshots() []DeviceSnapshot
}

type deviceStatsCollector struct {
	source StatsSource
}

// Check if deviceStatsCollector implements necessary interface
var _ prometheus.Collector = &deviceStatsCollector{}

// NewDeviceStatsCollector implements the prometheus.Collector interface and
// exposes the qlen, backlog and drop counters of every attached discipline.
func NewDeviceStatsCollector(source StatsSource) prometheus.Collector {
	return &deviceStatsCollector{
		source: source,
	}
}

// Describe implements the prometheus.Collector interface.
func (c *deviceStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descDeviceQueueLength
	ch <- descDeviceBacklogBytes
	ch <- descDeviceDrops
}

// Collect implements the prometheus.Collector interface.
func (c *deviceStatsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, snap := range c.source.Snapshots() {
		ch <- prometheus.MustNewConstMetric(
			descDeviceQueueLength,
			prometheus.GaugeValue,
			float64(snap.Stats.QLen),
			snap.Device, snap.Discipline,
		)
		ch <- prometheus.MustNewConstMetric(
			descDeviceBacklogBytes,
			prometheus.GaugeValue,
			float64(snap.Stats.BacklogBytes),
			snap.Device, snap.Discipline,
		)
		ch <- prometheus.MustNewConstMetric(
			descDeviceDrops,
			prometheus.CounterValue,
			float64(snap.Stats.Drops),
			snap.Device, snap.Discipline,
		)
	}
}
