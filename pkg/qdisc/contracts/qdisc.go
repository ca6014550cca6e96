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

package contracts

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// Qdisc is the call surface a host scheduling framework uses to drive one queue discipline instance.
//
// # Concurrency
//
// Implementations are single-owner and perform no internal locking. A host that invokes a `Qdisc` from more than one
// goroutine MUST serialize every call under one external lock. No method blocks, sleeps or spawns work.
type Qdisc interface {
	// Name returns the discipline identifier (e.g., "fqcodel+").
	Name() string

	// Admit offers a packet for buffering. See `types.AdmitOutcome` for the outcome/error pairing.
	Admit(pkt types.Packet) (types.AdmitOutcome, error)

	// Release removes and returns the oldest resident packet.
	// Returns (nil, nil) when nothing is buffered; that is the normal idle signal, not an error.
	Release() (types.Packet, error)

	// Peek returns the oldest resident packet without removing it, or (nil, nil) when nothing is buffered.
	Peek() (types.Packet, error)

	// Reset disposes of every resident packet and clears occupancy counters. Cumulative counters survive.
	Reset() error

	// Destroy disposes of every resident packet. No operation is valid afterwards.
	Destroy() error

	// Reconfigure applies new parameters. Unsupported keys yield an error wrapping `types.ErrInvalidParameter` and
	// leave the instance unchanged.
	Reconfigure(params map[string]string) error

	// Describe returns the currently configured parameters for reporting.
	Describe() map[string]string

	// Stats returns a snapshot of the instance's counters.
	Stats() types.Stats
}

// Observer receives one record per admit and per release from a discipline. It is the structured counterpart of the
// discipline's log lines and is how metrics are fed without the discipline importing a metrics library.
//
// Conformance: Implementations MUST be non-blocking and MUST NOT call back into the discipline.
type Observer interface {
	// AdmitObserved is called once per admit attempt on an active discipline with the outcome and the resulting qlen.
	AdmitObserved(outcome types.AdmitOutcome, qlen int)

	// ReleaseObserved is called once per released packet with its sojourn time and the resulting qlen.
	ReleaseObserved(pkt types.Packet, sojourn time.Duration, qlen int)
}

// Factory creates a new, active `Qdisc` bound to the given capacity. Params carries host-supplied options; a factory
// MUST reject options it does not understand with `types.ErrInvalidParameter`.
type Factory func(capacity int, params map[string]string, logger logr.Logger, observer Observer,
	dispose types.DisposeFunc) (Qdisc, error)
