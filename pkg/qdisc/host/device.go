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
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// Dump is the reporting view of a device and its attached discipline.
type Dump struct {
	Device     string
	InstanceID string
	Discipline string
	Params     map[string]string
	Stats      types.Stats
}

// Device is one egress path. At most one discipline is attached at a time.
//
// # Concurrency
//
// Every method takes the device lock for its full duration, so calls into the attached discipline never overlap. The
// discipline's disposer and observer run under this lock and MUST NOT call back into the device.
type Device struct {
	name   string
	logger logr.Logger

	mu         sync.Mutex
	qdisc      contracts.Qdisc
	instanceID string
}

// NewDevice creates a device with no discipline attached.
func NewDevice(name string, logger logr.Logger) *Device {
	return &Device{
		name:   name,
		logger: logger.WithValues("device", name),
	}
}

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// Attach installs q as the device's discipline. A previously attached discipline is destroyed first; its destroy error,
// if any, is returned after the new discipline is in place.
func (d *Device) Attach(q contracts.Qdisc) error {
	if q == nil {
		return fmt.Errorf("%w: cannot attach a nil discipline", types.ErrInvalidParameter)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.qdisc != nil {
		if derr := d.qdisc.Destroy(); derr != nil {
			err = fmt.Errorf("failed to destroy replaced discipline %q (instance %s): %w", d.qdisc.Name(), d.instanceID, derr)
		}
	}
	d.qdisc = q
	d.instanceID = uuid.NewString()
	d.logger.V(logutil.DEFAULT).Info("Queue discipline attached", "discipline", q.Name(), "instanceID", d.instanceID)
	return err
}

// Detach destroys the attached discipline and leaves the device without one.
func (d *Device) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return err
	}
	d.qdisc = nil
	d.logger.V(logutil.DEFAULT).Info("Queue discipline detached", "discipline", q.Name(), "instanceID", d.instanceID)
	d.instanceID = ""
	if err := q.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy discipline %q on device %q: %w", q.Name(), d.name, err)
	}
	return nil
}

// Enqueue offers pkt to the attached discipline.
func (d *Device) Enqueue(pkt types.Packet) (types.AdmitOutcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return types.AdmitOutcomeRejectedOther, fmt.Errorf("%w: %w", types.ErrRejected, err)
	}
	return q.Admit(pkt)
}

// Dequeue releases one packet from the attached discipline, or (nil, nil) when it is empty.
func (d *Device) Dequeue() (types.Packet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return nil, err
	}
	return q.Release()
}

// DequeueBatch releases up to limit packets under a single lock acquisition. It stops early when the discipline is
// empty and returns whatever it released before an error.
func (d *Device) DequeueBatch(limit int) ([]types.Packet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return nil, err
	}
	var pkts []types.Packet
	for range limit {
		pkt, err := q.Release()
		if err != nil {
			return pkts, err
		}
		if pkt == nil {
			break
		}
		pkts = append(pkts, pkt)
	}
	return pkts, nil
}

// Peek returns the head packet of the attached discipline without removing it.
func (d *Device) Peek() (types.Packet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return nil, err
	}
	return q.Peek()
}

// Change reconfigures the attached discipline.
func (d *Device) Change(params map[string]string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return err
	}
	return q.Reconfigure(params)
}

// Reset resets the attached discipline.
func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return err
	}
	return q.Reset()
}

// Dump reports the attached discipline's identity, parameters and counters.
func (d *Device) Dump() (Dump, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.attachedLocked()
	if err != nil {
		return Dump{}, err
	}
	return Dump{
		Device:     d.name,
		InstanceID: d.instanceID,
		Discipline: q.Name(),
		Params:     q.Describe(),
		Stats:      q.Stats(),
	}, nil
}

func (d *Device) attachedLocked() (contracts.Qdisc, error) {
	if d.qdisc == nil {
		return nil, fmt.Errorf("%w on device %q", ErrNoDiscipline, d.name)
	}
	return d.qdisc, nil
}
