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
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/metrics/collectors"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// AttachOptions carries the per-instance collaborators handed to a discipline factory.
type AttachOptions struct {
	// Params are factory-specific creation parameters.
	Params map[string]string
	// Observer receives admit and release records. Optional.
	Observer contracts.Observer
	// Dispose receives dropped and purged packets. Optional.
	Dispose types.DisposeFunc
}

// Host owns a set of devices and the registry used to create their disciplines.
type Host struct {
	registry *Registry
	logger   logr.Logger

	mu      sync.RWMutex
	devices map[string]*Device
}

var _ collectors.StatsSource = &Host{}

// New creates a host with no devices.
func New(registry *Registry, logger logr.Logger) *Host {
	return &Host{
		registry: registry,
		logger:   logger.WithName("host"),
		devices:  make(map[string]*Device),
	}
}

// AddDevice creates a device named name.
func (h *Host) AddDevice(name string) (*Device, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.devices[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDeviceExists, name)
	}
	dev := NewDevice(name, h.logger)
	h.devices[name] = dev
	return dev, nil
}

// Device returns the device named name.
func (h *Host) Device(name string) (*Device, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dev, ok := h.devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
	return dev, nil
}

// Attach creates a discipline of the registered kind id with the given capacity and attaches it to the named device.
func (h *Host) Attach(device, id string, capacity int, opts AttachOptions) error {
	dev, err := h.Device(device)
	if err != nil {
		return err
	}
	factory, err := h.registry.Lookup(id)
	if err != nil {
		return err
	}
	q, err := factory(capacity, opts.Params, h.logger.WithValues("device", device), opts.Observer, opts.Dispose)
	if err != nil {
		return fmt.Errorf("failed to create discipline %q for device %q: %w", id, device, err)
	}
	return dev.Attach(q)
}

// Snapshots returns the current stats of every device with an attached discipline, ordered by device name.
func (h *Host) Snapshots() []collectors.DeviceSnapshot {
	var snaps []collectors.DeviceSnapshot
	for _, dev := range h.sortedDevices() {
		dump, err := dev.Dump()
		if err != nil {
			continue
		}
		snaps = append(snaps, collectors.DeviceSnapshot{
			Device:     dump.Device,
			Discipline: dump.Discipline,
			Stats:      dump.Stats,
		})
	}
	return snaps
}

// Shutdown detaches and destroys every attached discipline. Errors from individual devices are combined; devices with
// nothing attached are skipped.
func (h *Host) Shutdown() error {
	var errs error
	devs := h.sortedDevices()
	for _, dev := range devs {
		if err := dev.Detach(); err != nil && !errors.Is(err, ErrNoDiscipline) {
			errs = multierr.Append(errs, err)
		}
	}
	h.logger.V(logutil.DEFAULT).Info("Host shut down", "devices", len(devs), "errors", len(multierr.Errors(errs)))
	return errs
}

func (h *Host) sortedDevices() []*Device {
	h.mu.RLock()
	defer h.mu.RUnlock()
	devs := make([]*Device, 0, len(h.devices))
	for _, dev := range h.devices {
		devs = append(devs, dev)
	}
	slices.SortFunc(devs, func(a, b *Device) int { return strings.Compare(a.name, b.name) })
	return devs
}
