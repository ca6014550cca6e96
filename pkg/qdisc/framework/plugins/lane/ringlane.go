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

package lane

import (
	"fmt"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// RingLaneName is the name of the ring-buffer lane implementation.
//
// This lane reserves a fixed array of slots equal to the discipline's capacity when it is constructed, so the hot path
// never allocates. It advertises `CapabilityFIFO` and `CapabilityPreallocated`.
//
// Construction fails for a non-positive capacity or for one above `MaxRingLaneCapacity`; the discipline surfaces the
// latter as a resource exhaustion.
const RingLaneName RegisteredLaneName = "RingLane"

// MaxRingLaneCapacity bounds the number of slots a ring lane will reserve up front.
const MaxRingLaneCapacity = 1 << 20

func init() {
	MustRegisterLane(RingLaneName,
		func(capacity int) (framework.Lane, error) {
			return newRingLane(capacity)
		})
}

// ringLane is the internal implementation of the RingLane.
type ringLane struct {
	slots    []types.LaneItem
	head     int // index of the oldest item
	count    int
	byteSize uint64
}

var _ framework.Lane = &ringLane{}

func newRingLane(capacity int) (*ringLane, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring lane capacity must be positive, but got %d", capacity)
	}
	if capacity > MaxRingLaneCapacity {
		return nil, fmt.Errorf("ring lane capacity %d exceeds the maximum of %d slots", capacity, MaxRingLaneCapacity)
	}
	return &ringLane{slots: make([]types.LaneItem, capacity)}, nil
}

func (r *ringLane) Push(item types.LaneItem) error {
	if r.count == len(r.slots) {
		return framework.ErrLaneFull
	}
	r.slots[(r.head+r.count)%len(r.slots)] = item
	r.count++
	r.byteSize += item.Packet().ByteSize()
	return nil
}

func (r *ringLane) PopHead() (types.LaneItem, error) {
	if r.count == 0 {
		return nil, framework.ErrLaneEmpty
	}
	item := r.slots[r.head]
	r.slots[r.head] = nil // release the reference so the packet can be collected once the caller drops it
	r.head = (r.head + 1) % len(r.slots)
	r.count--
	r.byteSize -= item.Packet().ByteSize()
	return item, nil
}

func (r *ringLane) Drain() []types.LaneItem {
	drained := make([]types.LaneItem, 0, r.count)
	for r.count > 0 {
		idx := r.head
		drained = append(drained, r.slots[idx])
		r.slots[idx] = nil
		r.head = (r.head + 1) % len(r.slots)
		r.count--
	}
	r.head = 0
	r.byteSize = 0
	return drained
}

func (r *ringLane) Name() string { return string(RingLaneName) }

func (r *ringLane) Capabilities() []framework.LaneCapability {
	return []framework.LaneCapability{framework.CapabilityFIFO, framework.CapabilityPreallocated}
}

func (r *ringLane) Len() int         { return r.count }
func (r *ringLane) ByteSize() uint64 { return r.byteSize }

func (r *ringLane) PeekHead() (types.LaneItem, error) {
	if r.count == 0 {
		return nil, framework.ErrLaneEmpty
	}
	return r.slots[r.head], nil
}

func (r *ringLane) PeekTail() (types.LaneItem, error) {
	if r.count == 0 {
		return nil, framework.ErrLaneEmpty
	}
	return r.slots[(r.head+r.count-1)%len(r.slots)], nil
}
