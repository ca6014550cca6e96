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

package types

import (
	"strconv"
	"time"
)

// Packet is the contract for a unit of outbound traffic offered to a queue discipline.
//
// The discipline never inspects packet contents. It relies only on the byte length for backlog accounting and on the
// identifier for observability. Ownership of a `Packet` moves into the discipline on a successful admit and moves back
// to the caller on release, or to the `DisposeFunc` when the packet is dropped or purged.
type Packet interface {
	// ID returns an identifier used only for logging and tracing. It carries no scheduling meaning.
	ID() string

	// ByteSize returns the length of the packet in bytes. It MUST be constant while the packet is resident.
	ByteSize() uint64
}

// LaneItem is the enriched, read-only view of a `Packet` while it is resident in a lane.
//
// The discipline wraps every admitted packet in its own `LaneItem` so that lanes and admission policies can reason
// about residency (e.g., sojourn time) without the host's packet type having to carry that state.
type LaneItem interface {
	// Packet returns the packet this item wraps.
	Packet() Packet

	// EnqueueTime is the timestamp at which the discipline admitted the packet.
	EnqueueTime() time.Time
}

// DisposeReason explains why a packet was handed to the disposal path instead of being released for transmission.
type DisposeReason int

const (
	// DisposeReasonQueueFull indicates the packet was refused at admission because the lane was at capacity.
	DisposeReasonQueueFull DisposeReason = iota
	// DisposeReasonReset indicates the packet was purged by a reset of the discipline.
	DisposeReasonReset
	// DisposeReasonDestroy indicates the packet was purged because the discipline was destroyed.
	DisposeReasonDestroy
	// DisposeReasonPolicy indicates the admission policy refused the packet for a reason other than capacity.
	DisposeReasonPolicy
)

// String returns a human-readable string representation of the DisposeReason.
func (r DisposeReason) String() string {
	switch r {
	case DisposeReasonQueueFull:
		return "QueueFull"
	case DisposeReasonReset:
		return "Reset"
	case DisposeReasonDestroy:
		return "Destroy"
	case DisposeReasonPolicy:
		return "Policy"
	default:
		return "UnknownDisposeReason(" + strconv.Itoa(int(r)) + ")"
	}
}

// DisposeFunc receives packets whose ownership is returned to the host for disposal rather than transmission.
// It is invoked synchronously, exactly once per disposed packet, and MUST NOT call back into the discipline.
type DisposeFunc func(pkt Packet, reason DisposeReason)

// Stats is a point-in-time snapshot of a discipline's counters.
type Stats struct {
	// QLen is the number of packets currently resident. It always mirrors the lane length.
	QLen int
	// BacklogBytes is the sum of the byte sizes of all resident packets.
	BacklogBytes uint64
	// Drops counts admissions refused since creation. It is monotonic and survives a reset.
	Drops uint64
	// Admitted counts packets accepted since creation. It survives a reset.
	Admitted uint64
	// Released counts packets handed back for transmission since creation. It survives a reset.
	Released uint64
	// ReleasedBytes is the byte total of all released packets. It survives a reset.
	ReleasedBytes uint64
}
