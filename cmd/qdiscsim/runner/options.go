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
	"flag"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/util/env"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/discipline"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/lane"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/trace"
)

const (
	DefaultMetricsPort  = 9090
	ZapLogLevelFlagName = "zap-log-level"

	// Environment overrides, consulted for flags left at their defaults.
	EnvCapacity   = "QDISC_CAPACITY"
	EnvLane       = "QDISC_LANE"
	EnvTxInterval = "QDISC_TX_INTERVAL"
	EnvTxBurst    = "QDISC_TX_BURST"
)

// Options contains the command-line configuration for the simulator.
type Options struct {
	//
	// Device and discipline.
	//
	Device     string // Name of the simulated egress device.
	Discipline string // Registered discipline identifier to attach.
	Capacity   int    // Maximum number of packets the discipline buffers.
	Lane       string // Lane implementation backing the discipline.
	//
	// Traffic.
	//
	PcapFile        string        // Replay frames from this pcap file instead of synthesizing traffic.
	Packets         int           // Number of synthetic packets; 0 runs until stopped.
	Flows           int           // Number of synthetic UDP flows.
	MinPayload      int           // Lower bound of synthetic payload size.
	MaxPayload      int           // Upper bound of synthetic payload size.
	Seed            uint64        // Seed for synthetic payload sizes.
	ArrivalInterval time.Duration // Time between offered packets.
	//
	// Link.
	//
	TxInterval time.Duration // Time between transmit opportunities.
	TxBurst    int           // Packets sent per transmit opportunity.
	Duration   time.Duration // Stop after this long; 0 runs until the source is exhausted and drained, or a signal.
	//
	// Recording.
	//
	DropPcap string // Write dropped and purged packets to this pcap file.
	TxPcap   string // Write transmitted packets to this pcap file.
	//
	// Diagnostics.
	//
	LogVerbosity int         // Number for the log level verbosity.
	ZapOptions   zap.Options // Zap logging options.
	MetricsPort  int         // The metrics port exposed by the simulator; 0 disables the endpoint.
	EnablePprof  bool        // Enables pprof handlers on the metrics endpoint.

	// internal
	fs *pflag.FlagSet // FlagSet used in AddFlags() and consulted in Complete()
}

// NewOptions returns a new Options struct initialized with default values.
func NewOptions() *Options {
	return &Options{
		Device:          "eth0",
		Discipline:      discipline.DisciplineName,
		Capacity:        discipline.DefaultCapacity,
		Lane:            string(lane.ListLaneName),
		Flows:           8,
		MinPayload:      64,
		MaxPayload:      1458,
		Seed:            1,
		ArrivalInterval: time.Millisecond,
		TxInterval:      2 * time.Millisecond,
		TxBurst:         1,
		LogVerbosity:    logging.DEFAULT,
		ZapOptions:      zap.Options{Development: true},
		MetricsPort:     DefaultMetricsPort,
		EnablePprof:     true,
	}
}

// AddFlags binds the Options fields to command-line flags on the given FlagSet.
func (opts *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	opts.fs = fs

	fs.StringVar(&opts.Device, "device", opts.Device,
		"Name of the simulated egress device.")
	fs.StringVar(&opts.Discipline, "discipline", opts.Discipline,
		"Registered queue discipline to attach to the device.")
	fs.IntVar(&opts.Capacity, "capacity", opts.Capacity,
		"Maximum number of packets the discipline buffers. Overridable with "+EnvCapacity+".")
	fs.StringVar(&opts.Lane, "lane", opts.Lane,
		"Lane implementation backing the discipline (ListLane or RingLane). Overridable with "+EnvLane+".")

	fs.StringVar(&opts.PcapFile, "pcap-file", opts.PcapFile,
		"Replay frames from this pcap file. When empty, synthetic UDP traffic is generated.")
	fs.IntVar(&opts.Packets, "packets", opts.Packets,
		"Number of synthetic packets to offer. 0 generates until stopped.")
	fs.IntVar(&opts.Flows, "flows", opts.Flows,
		"Number of synthetic UDP flows.")
	fs.IntVar(&opts.MinPayload, "min-payload", opts.MinPayload,
		"Minimum synthetic UDP payload size in bytes.")
	fs.IntVar(&opts.MaxPayload, "max-payload", opts.MaxPayload,
		"Maximum synthetic UDP payload size in bytes.")
	fs.Uint64Var(&opts.Seed, "seed", opts.Seed,
		"Seed for synthetic payload sizes.")
	fs.DurationVar(&opts.ArrivalInterval, "arrival-interval", opts.ArrivalInterval,
		"Time between offered packets.")

	fs.DurationVar(&opts.TxInterval, "tx-interval", opts.TxInterval,
		"Time between transmit opportunities on the simulated link. Overridable with "+EnvTxInterval+".")
	fs.IntVar(&opts.TxBurst, "tx-burst", opts.TxBurst,
		"Packets sent per transmit opportunity. Overridable with "+EnvTxBurst+".")
	fs.DurationVar(&opts.Duration, "duration", opts.Duration,
		"Stop after this long. 0 runs until the source is exhausted and the queue drained, or until interrupted.")

	fs.StringVar(&opts.DropPcap, "drop-pcap", opts.DropPcap,
		"Write dropped and purged packets to this pcap file.")
	fs.StringVar(&opts.TxPcap, "tx-pcap", opts.TxPcap,
		"Write transmitted packets to this pcap file.")

	fs.IntVarP(&opts.LogVerbosity, "v", "v", opts.LogVerbosity,
		"Number for the log level verbosity.")
	fs.IntVar(&opts.MetricsPort, "metrics-port", opts.MetricsPort,
		"The metrics port exposed by the simulator. 0 disables the endpoint.")
	fs.BoolVar(&opts.EnablePprof, "enable-pprof", opts.EnablePprof,
		"Enables pprof handlers. Defaults to true. Set to false to disable pprof handlers.")

	// Bind zap flags (zap expects a standard Go FlagSet; pflag.FlagSet is not compatible).
	gofs := flag.NewFlagSet("zap", flag.ExitOnError)
	opts.ZapOptions.BindFlags(gofs)
	fs.AddGoFlagSet(gofs)
}

// Complete performs post-processing of parsed command-line arguments.
func (opts *Options) Complete() error {
	if opts.fs == nil {
		return fmt.Errorf("AddFlags must be called before Complete")
	}
	// Derive the zap log level from the -v flag when --zap-log-level is not set explicitly.
	zapLogLevelFlag := opts.fs.Lookup(ZapLogLevelFlagName)
	if zapLogLevelFlag != nil && !zapLogLevelFlag.Changed {
		// See https://pkg.go.dev/sigs.k8s.io/controller-runtime/pkg/log/zap#Options.Level
		lvl := -1 * (opts.LogVerbosity)
		opts.ZapOptions.Level = uberzap.NewAtomicLevelAt(zapcore.Level(int8(lvl)))
		zapLogLevelFlag.Changed = true
	}
	return nil
}

// ApplyEnvironment overrides flags left at their defaults with values from the environment. It runs after logging is
// initialized so that malformed values are reported.
func (opts *Options) ApplyEnvironment(logger logr.Logger) {
	if !opts.changed("capacity") {
		opts.Capacity = env.GetEnvInt(EnvCapacity, opts.Capacity, logger)
	}
	if !opts.changed("lane") {
		opts.Lane = env.GetEnvString(EnvLane, opts.Lane, logger)
	}
	if !opts.changed("tx-interval") {
		opts.TxInterval = env.GetEnvDuration(EnvTxInterval, opts.TxInterval, logger)
	}
	if !opts.changed("tx-burst") {
		opts.TxBurst = env.GetEnvInt(EnvTxBurst, opts.TxBurst, logger)
	}
}

func (opts *Options) changed(name string) bool {
	if opts.fs == nil {
		return false
	}
	f := opts.fs.Lookup(name)
	return f != nil && f.Changed
}

// Validate checks the Options for invalid or conflicting values.
func (opts *Options) Validate() error {
	if opts.Device == "" {
		return fmt.Errorf("invalid value %q for flag %q: must not be empty", opts.Device, "device")
	}
	if opts.Capacity <= 0 {
		return fmt.Errorf("invalid value %d for flag %q: must be positive", opts.Capacity, "capacity")
	}
	if !lane.IsRegistered(lane.RegisteredLaneName(opts.Lane)) {
		return fmt.Errorf("invalid value %q for flag %q: no such lane", opts.Lane, "lane")
	}

	for _, pc := range []struct {
		name  string
		value int
	}{
		{"flows", opts.Flows},
		{"tx-burst", opts.TxBurst},
	} {
		if pc.value <= 0 {
			return fmt.Errorf("invalid value %d for flag %q: must be positive", pc.value, pc.name)
		}
	}
	if opts.Packets < 0 {
		return fmt.Errorf("invalid value %d for flag %q: must be >= 0", opts.Packets, "packets")
	}
	if opts.MinPayload < 0 || opts.MaxPayload < opts.MinPayload {
		return fmt.Errorf("invalid payload range [%d, %d]: min-payload must be >= 0 and <= max-payload",
			opts.MinPayload, opts.MaxPayload)
	}
	if opts.MaxPayload > trace.MaxSyntheticPayload {
		return fmt.Errorf("invalid value %d for flag %q: must be <= %d to fit in one IPv4 datagram",
			opts.MaxPayload, "max-payload", trace.MaxSyntheticPayload)
	}

	for _, dc := range []struct {
		name  string
		value time.Duration
	}{
		{"arrival-interval", opts.ArrivalInterval},
		{"tx-interval", opts.TxInterval},
	} {
		if dc.value <= 0 {
			return fmt.Errorf("invalid value %v for flag %q: must be positive", dc.value, dc.name)
		}
	}
	if opts.Duration < 0 {
		return fmt.Errorf("invalid value %v for flag %q: must be >= 0", opts.Duration, "duration")
	}

	if opts.MetricsPort < 0 || opts.MetricsPort > 65535 {
		return fmt.Errorf("invalid value %d for flag %q: must be between 0 and 65535", opts.MetricsPort, "metrics-port")
	}
	if opts.LogVerbosity < 0 {
		return fmt.Errorf("invalid value %d for flag %q: must be >= 0", opts.LogVerbosity, "v")
	}
	if opts.DropPcap != "" && opts.DropPcap == opts.TxPcap {
		return fmt.Errorf("drop-pcap and tx-pcap must be different files, both are %q", opts.DropPcap)
	}
	return nil
}
