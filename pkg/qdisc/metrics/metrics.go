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

// Package metrics holds the Prometheus instrumentation for queue disciplines. All metrics register into the
// controller-runtime registry so a single /metrics endpoint serves them alongside any runtime collectors.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	compbasemetrics "k8s.io/component-base/metrics"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

const (
	// --- Subsystems ---
	QdiscComponent = "qdisc"
	QdiscSimulator = "qdiscsim"
)

var (
	// --- Common Label Sets ---
	DeviceLabels        = []string{"device"}
	DeviceOutcomeLabels = []string{"device", "outcome"}

	// --- Common Buckets ---

	// SojournBuckets covers packet residency from 10us to 10s.
	SojournBuckets = []float64{
		0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
	}
)

// --- Queue Discipline Metrics ---
var (
	admitCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: QdiscComponent,
			Name:      "admit_total",
			Help:      HelpMsgWithStability("Counter of packets offered to the queue discipline, broken out by device and admit outcome.", compbasemetrics.ALPHA),
		},
		DeviceOutcomeLabels,
	)

	releaseCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: QdiscComponent,
			Name:      "released_total",
			Help:      HelpMsgWithStability("Counter of packets released for transmission for each device.", compbasemetrics.ALPHA),
		},
		DeviceLabels,
	)

	releasedBytesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: QdiscComponent,
			Name:      "released_bytes_total",
			Help:      HelpMsgWithStability("Counter of bytes released for transmission for each device.", compbasemetrics.ALPHA),
		},
		DeviceLabels,
	)

	sojournSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: QdiscComponent,
			Name:      "sojourn_seconds",
			Help:      HelpMsgWithStability("Distribution of the time packets spent resident in the queue discipline for each device.", compbasemetrics.ALPHA),
			Buckets:   SojournBuckets,
		},
		DeviceLabels,
	)
)

// SimulatorInfo exposes build information of the running simulator.
var SimulatorInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: QdiscSimulator,
		Name:      "info",
		Help:      HelpMsgWithStability("General information of the current build of the queue discipline simulator.", compbasemetrics.ALPHA),
	},
	[]string{"commit", "build_ref"},
)

var registerMetrics sync.Once

// Register all metrics.
func Register(customCollectors ...prometheus.Collector) {
	registerMetrics.Do(func() {
		metrics.Registry.MustRegister(admitCounter)
		metrics.Registry.MustRegister(releaseCounter)
		metrics.Registry.MustRegister(releasedBytesCounter)
		metrics.Registry.MustRegister(sojournSeconds)
		metrics.Registry.MustRegister(SimulatorInfo)
		for _, collector := range customCollectors {
			metrics.Registry.MustRegister(collector)
		}
	})
}

// Reset clears every recorded series. Used by tests.
func Reset() {
	admitCounter.Reset()
	releaseCounter.Reset()
	releasedBytesCounter.Reset()
	sojournSeconds.Reset()
	SimulatorInfo.Reset()
}

// HelpMsgWithStability prefixes a help message with its stability level, matching the Kubernetes metrics convention.
func HelpMsgWithStability(msg string, stability compbasemetrics.StabilityLevel) string {
	return fmt.Sprintf("[%v] %v", stability, msg)
}

// RecordAdmit records one admit attempt for the device.
func RecordAdmit(device string, outcome types.AdmitOutcome) {
	admitCounter.WithLabelValues(device, outcome.String()).Inc()
}

// RecordRelease records one released packet for the device together with its residency time.
func RecordRelease(device string, byteSize uint64, sojourn time.Duration) {
	releaseCounter.WithLabelValues(device).Inc()
	releasedBytesCounter.WithLabelValues(device).Add(float64(byteSize))
	sojournSeconds.WithLabelValues(device).Observe(sojourn.Seconds())
}

// RecordSimulatorInfo records the build information of the running binary.
func RecordSimulatorInfo(commitSha, buildRef string) {
	SimulatorInfo.WithLabelValues(commitSha, buildRef).Set(1)
}
