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

package framework

import (
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// LaneCapability defines a functional capability that a Lane implementation can provide.
type LaneCapability string

const (
	// CapabilityFIFO indicates that the lane operates in a First-In, First-Out manner.
	// PeekHead() will return the oldest item by push order.
	CapabilityFIFO LaneCapability = "FIFO"

	// CapabilityPreallocated indicates that the lane reserves storage for its full capacity at construction time and
	// performs no allocation on the hot path.
	CapabilityPreallocated LaneCapability = "Preallocated"
)

// LaneAccessor defines a Lane's read-only methods. It is the view handed to admission policies.
type LaneAccessor interface {
	// Name returns a string identifier for the concrete lane implementation type (e.g., "ListLane").
	Name() string

	// Capabilities returns the set of functional capabilities this lane instance provides.
	Capabilities() []LaneCapability

	// Len returns the current number of items in the lane.
	Len() int

	// ByteSize returns the current total byte size of all items in the lane.
	ByteSize() uint64

	// PeekHead returns the oldest item without removing it.
	// Returns ErrLaneEmpty if the lane is empty.
	PeekHead() (types.LaneItem, error)

	// PeekTail returns the newest item without removing it.
	// Returns ErrLaneEmpty if the lane is empty.
	PeekTail() (types.LaneItem, error)
}

// Lane defines the contract for a single ordered packet store.
//
// Lanes are single-owner data structures: they perform no internal locking and MUST only be driven by the discipline
// that created them. Capacity enforcement is the responsibility of the `AdmissionPolicy`, not the lane, although a
// preallocated lane may refuse to grow past the size it reserved.
type Lane interface {
	LaneAccessor

	// Push appends an item to the tail.
	// Returns ErrLaneFull if the lane cannot store the item. The lane is unchanged in that case.
	// Contract: The caller MUST NOT provide a nil item.
	Push(item types.LaneItem) error

	// PopHead removes and returns the oldest item.
	// Returns ErrLaneEmpty if the lane is empty.
	PopHead() (types.LaneItem, error)

	// Drain removes all items from the lane and returns them in head-to-tail order.
	// The lane MUST be empty, with a byte size of zero, after this operation.
	Drain() []types.LaneItem
}
