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
	"container/list"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// ListLaneName is the name of the list-based lane implementation.
//
// This lane is a doubly linked list of resident items. It allocates one list element per push and never refuses an
// item, leaving capacity enforcement entirely to the admission policy. It advertises `CapabilityFIFO`.
//
// # Behavioral Guarantees
//
// Strict First-In, First-Out ordering: items leave in exactly the order they were pushed. This is the default lane of
// the discipline and the direct analogue of a kernel `sk_buff_head`.
const ListLaneName RegisteredLaneName = "ListLane"

func init() {
	MustRegisterLane(ListLaneName,
		func(_ int) (framework.Lane, error) {
			// The list grows on demand and does not need the capacity hint.
			return newListLane(), nil
		})
}

// listLane is the internal implementation of the ListLane.
// See the documentation for the exported `ListLaneName` constant for detailed user-facing information.
type listLane struct {
	items    *list.List
	byteSize uint64
}

var _ framework.Lane = &listLane{}

// newListLane creates a new `listLane` instance.
func newListLane() *listLane {
	return &listLane{
		items: list.New(),
	}
}

// --- `framework.Lane` Interface Implementation ---

// Push appends an item to the back of the list.
func (l *listLane) Push(item types.LaneItem) error {
	l.items.PushBack(item)
	l.byteSize += item.Packet().ByteSize()
	return nil
}

// PopHead removes the item at the front of the list.
func (l *listLane) PopHead() (types.LaneItem, error) {
	front := l.items.Front()
	if front == nil {
		return nil, framework.ErrLaneEmpty
	}
	item := l.items.Remove(front).(types.LaneItem)
	l.byteSize -= item.Packet().ByteSize()
	return item, nil
}

// Drain removes all items from the list and returns them.
func (l *listLane) Drain() []types.LaneItem {
	drained := make([]types.LaneItem, 0, l.items.Len())
	for e := l.items.Front(); e != nil; e = e.Next() {
		drained = append(drained, e.Value.(types.LaneItem))
	}
	l.items.Init()
	l.byteSize = 0
	return drained
}

// Name returns the name of the lane.
func (l *listLane) Name() string {
	return string(ListLaneName)
}

// Capabilities returns the capabilities of the lane.
func (l *listLane) Capabilities() []framework.LaneCapability {
	return []framework.LaneCapability{framework.CapabilityFIFO}
}

// Len returns the number of items in the lane.
func (l *listLane) Len() int {
	return l.items.Len()
}

// ByteSize returns the total byte size of all items in the lane.
func (l *listLane) ByteSize() uint64 {
	return l.byteSize
}

// PeekHead returns the item at the front of the lane without removing it.
func (l *listLane) PeekHead() (types.LaneItem, error) {
	front := l.items.Front()
	if front == nil {
		return nil, framework.ErrLaneEmpty
	}
	return front.Value.(types.LaneItem), nil
}

// PeekTail returns the item at the back of the lane without removing it.
func (l *listLane) PeekTail() (types.LaneItem, error) {
	back := l.items.Back()
	if back == nil {
		return nil, framework.ErrLaneEmpty
	}
	return back.Value.(types.LaneItem), nil
}
