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

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/gopacket/layers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/profiling"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/discipline"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/lane"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/host"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/metrics"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/metrics/collectors"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/trace"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/version"
)

func NewRunner() *Runner {
	return &Runner{
		executableName: "qdiscsim",
		args:           os.Args[1:],
		clock:          clock.RealClock{},
	}
}

// Runner plays traffic through a simulated device with a queue discipline attached.
type Runner struct {
	executableName string
	args           []string
	clock          clock.WithTicker
}

// WithExecutableName sets the name of the executable containing the runner.
// The name is used in the version log upon startup and is otherwise opaque.
func (r *Runner) WithExecutableName(exeName string) *Runner {
	r.executableName = exeName
	return r
}

// Run parses flags, initializes logging and runs the simulation until the traffic source is exhausted and the queue is
// drained, the configured duration elapses, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	opts := NewOptions()
	fs := pflag.NewFlagSet(r.executableName, pflag.ExitOnError)
	opts.AddFlags(fs)
	if err := fs.Parse(r.args); err != nil {
		return err
	}
	if err := opts.Complete(); err != nil {
		return err
	}

	logger := logutil.InitLogging(&opts.ZapOptions)
	setupLog := logger.WithName("setup")
	setupLog.Info(r.executableName+" build", "commit-sha", version.CommitSHA, "build-ref", version.BuildRef)

	opts.ApplyEnvironment(setupLog)
	if err := opts.Validate(); err != nil {
		setupLog.Error(err, "Invalid options")
		return err
	}

	// Print all flag values
	flags := make(map[string]any)
	fs.VisitAll(func(f *pflag.Flag) {
		flags[f.Name] = f.Value
	})
	setupLog.Info("Flags processed", "flags", flags)

	return r.simulate(ctx, opts, logger)
}

// simulation holds the wiring of one run.
type simulation struct {
	host     *host.Host
	device   *host.Device
	source   trace.Source
	linkType layers.LinkType
	drops    *trace.Recorder
	sent     *trace.Recorder
	closers  []io.Closer
}

func (r *Runner) simulate(ctx context.Context, opts *Options, logger logr.Logger) (err error) {
	setupLog := logger.WithName("setup")

	sim, err := r.setup(opts, logger)
	// Files opened during setup are closed on every path.
	defer func() {
		for _, c := range sim.closers {
			err = multierr.Append(err, c.Close())
		}
	}()
	if err != nil {
		setupLog.Error(err, "Failed to set up simulation")
		return err
	}

	metrics.Register(collectors.NewDeviceStatsCollector(sim.host))
	metrics.RecordSimulatorInfo(version.CommitSHA, version.BuildRef)

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	simCtx, stopSim := context.WithCancel(gctx)
	defer stopSim()

	transmitter, err := host.NewTransmitter(sim.device, opts.TxInterval, opts.TxBurst, sim.sink(logger), logger,
		host.WithTransmitClock(r.clock))
	if err != nil {
		return err
	}

	g.Go(func() error { return r.produce(simCtx, sim, opts.TxInterval, stopSim, logger) })
	g.Go(func() error { return transmitter.Run(simCtx) })
	if opts.MetricsPort > 0 {
		r.serveMetrics(simCtx, g, opts, setupLog)
	}

	setupLog.Info("Simulation starting", "device", opts.Device, "discipline", opts.Discipline,
		"capacity", opts.Capacity, "lane", opts.Lane)
	runErr := g.Wait()

	if dump, derr := sim.device.Dump(); derr == nil {
		setupLog.Info("Simulation finished", "stats", dump.Stats, "remaining", dump.Stats.QLen)
	}
	runErr = multierr.Append(runErr, sim.host.Shutdown())
	if sim.drops != nil {
		runErr = multierr.Append(runErr, sim.drops.Err())
		setupLog.Info("Recorded dropped packets", "written", sim.drops.Written(),
			"queueFull", sim.drops.Disposed(types.DisposeReasonQueueFull),
			"purged", sim.drops.Disposed(types.DisposeReasonDestroy)+sim.drops.Disposed(types.DisposeReasonReset))
	}
	if sim.sent != nil {
		setupLog.Info("Recorded transmitted packets", "written", sim.sent.Written())
	}
	return runErr
}

// setup builds the host, device, traffic source and recorders. The returned simulation is never nil, so its closers
// can be released even when setup fails part way.
func (r *Runner) setup(opts *Options, logger logr.Logger) (*simulation, error) {
	sim := &simulation{}

	registry := host.NewRegistry()
	factory := discipline.NewFactory(discipline.WithLane(lane.RegisteredLaneName(opts.Lane)))
	if err := registry.Register(discipline.DisciplineName, factory); err != nil {
		return sim, err
	}
	sim.host = host.New(registry, logger)
	dev, err := sim.host.AddDevice(opts.Device)
	if err != nil {
		return sim, err
	}
	sim.device = dev

	var src trace.Source
	if opts.PcapFile != "" {
		f, err := os.Open(opts.PcapFile)
		if err != nil {
			return sim, fmt.Errorf("failed to open pcap file: %w", err)
		}
		sim.closers = append(sim.closers, f)
		pcapSrc, err := trace.NewPcapSource(f)
		if err != nil {
			return sim, fmt.Errorf("failed to read pcap file %s: %w", opts.PcapFile, err)
		}
		src, sim.linkType = pcapSrc, pcapSrc.LinkType()
	} else {
		synth, err := trace.NewSyntheticSource(trace.SyntheticConfig{
			Count:      opts.Packets,
			Flows:      opts.Flows,
			MinPayload: opts.MinPayload,
			MaxPayload: opts.MaxPayload,
			Seed:       opts.Seed,
		}, r.clock)
		if err != nil {
			return sim, err
		}
		src, sim.linkType = synth, layers.LinkTypeEthernet
	}
	paced, err := trace.NewPaced(src, opts.ArrivalInterval, r.clock)
	if err != nil {
		return sim, err
	}
	sim.source = paced
	sim.closers = append(sim.closers, closerFunc(func() error { paced.Stop(); return nil }))

	if sim.drops, err = r.openRecorder(sim, opts.DropPcap); err != nil {
		return sim, err
	}
	if sim.sent, err = r.openRecorder(sim, opts.TxPcap); err != nil {
		return sim, err
	}

	attach := host.AttachOptions{Observer: metrics.NewObserver(opts.Device)}
	if sim.drops != nil {
		attach.Dispose = sim.drops.Dispose
	}
	if err := sim.host.Attach(opts.Device, opts.Discipline, opts.Capacity, attach); err != nil {
		return sim, err
	}
	return sim, nil
}

// openRecorder creates a pcap recorder at path, or returns nil when path is empty.
func (r *Runner) openRecorder(sim *simulation, path string) (*trace.Recorder, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create pcap file: %w", err)
	}
	sim.closers = append(sim.closers, f)
	rec, err := trace.NewRecorder(f, sim.linkType)
	if err != nil {
		return nil, fmt.Errorf("failed to start pcap file %s: %w", path, err)
	}
	return rec, nil
}

// produce offers every packet from the source to the device. Once the source is exhausted it waits for the queue to
// drain and then stops the simulation.
func (r *Runner) produce(ctx context.Context, sim *simulation, pollInterval time.Duration, stopSim context.CancelFunc,
	logger logr.Logger) error {
	logger = logger.WithName("producer")
	var offered int
	for {
		pkt, err := sim.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("traffic source failed after %d packets: %w", offered, err)
		}
		offered++
		// Drops are counted by the discipline and recorded by the disposer; only unexpected refusals are logged.
		if outcome, err := sim.device.Enqueue(pkt); err != nil && outcome != types.AdmitOutcomeRejectedQueueFull {
			logger.Error(err, "Packet refused", "packetID", pkt.ID(), "flow", pkt.Flow())
		}
	}
	logger.V(logutil.DEFAULT).Info("Traffic source exhausted, waiting for the queue to drain", "offered", offered)

	ticker := r.clock.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		dump, err := sim.device.Dump()
		if err != nil {
			return err
		}
		if dump.Stats.QLen == 0 {
			stopSim()
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
		}
	}
}

// sink returns the transmitter's sink, recording transmitted packets when a recorder is configured.
func (s *simulation) sink(logger logr.Logger) host.SinkFunc {
	if s.sent == nil {
		return nil
	}
	return func(pkt types.Packet) {
		if err := s.sent.Record(pkt); err != nil {
			logger.Error(err, "Failed to record transmitted packet", "packetID", pkt.ID())
		}
	}
}

// serveMetrics exposes the controller-runtime registry, and pprof when enabled, until ctx is done.
func (r *Runner) serveMetrics(ctx context.Context, g *errgroup.Group, opts *Options, setupLog logr.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(crmetrics.Registry, promhttp.HandlerOpts{}))
	if opts.EnablePprof {
		setupLog.Info("Setting pprof handlers")
		profiling.SetupPprofHandlers(mux)
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		setupLog.Info("Metrics server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
