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

package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// SinkFunc receives packets released for transmission.
type SinkFunc func(pkt types.Packet)

// TransmitterOption configures a `Transmitter`.
type TransmitterOption func(*Transmitter)

// WithTransmitClock sets the clock that paces the transmitter. Defaults to the real clock.
func WithTransmitClock(clk clock.WithTicker) TransmitterOption {
	return func(t *Transmitter) {
		t.clock = clk
	}
}

// Transmitter drains a device at a fixed rate: every interval it releases up to burst packets and hands them to the
// sink. It models a link of bounded capacity, which is what lets a standing queue build up in front of it.
type Transmitter struct {
	device   *Device
	interval time.Duration
	burst    int
	sink     SinkFunc
	clock    clock.WithTicker
	logger   logr.Logger
}

// NewTransmitter creates a transmitter for device. interval and burst must be positive. A nil sink discards packets.
func NewTransmitter(device *Device, interval time.Duration, burst int, sink SinkFunc, logger logr.Logger,
	opts ...TransmitterOption) (*Transmitter, error) {
	if device == nil {
		return nil, fmt.Errorf("%w: transmitter requires a device", types.ErrInvalidParameter)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: transmit interval must be positive, but got %v", types.ErrInvalidParameter, interval)
	}
	if burst <= 0 {
		return nil, fmt.Errorf("%w: transmit burst must be positive, but got %d", types.ErrInvalidParameter, burst)
	}
	if sink == nil {
		sink = func(types.Packet) {}
	}
	t := &Transmitter{
		device:   device,
		interval: interval,
		burst:    burst,
		sink:     sink,
		logger:   logger.WithName("transmitter").WithValues("device", device.Name()),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = clock.RealClock{}
	}
	return t, nil
}

// Run transmits until ctx is cancelled, then returns nil. It returns early with an error only if the attached
// discipline fails in a way other than having nothing attached.
func (t *Transmitter) Run(ctx context.Context) error {
	t.logger.V(logutil.DEFAULT).Info("Transmitter starting", "interval", t.interval, "burst", t.burst)
	defer t.logger.V(logutil.DEFAULT).Info("Transmitter stopped")

	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			if err := t.transmitBurst(); err != nil {
				return err
			}
		}
	}
}

func (t *Transmitter) transmitBurst() error {
	pkts, err := t.device.DequeueBatch(t.burst)
	for _, pkt := range pkts {
		t.sink(pkt)
	}
	if err != nil {
		if errors.Is(err, ErrNoDiscipline) {
			t.logger.V(logutil.DEBUG).Info("Nothing to transmit, no discipline attached")
			return nil
		}
		return fmt.Errorf("transmitter on device %q failed: %w", t.device.Name(), err)
	}
	if len(pkts) > 0 {
		t.logger.V(logutil.TRACE).Info("Transmitted burst", "packets", len(pkts))
	}
	return nil
}
