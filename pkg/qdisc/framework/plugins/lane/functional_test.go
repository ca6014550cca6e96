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

package lane_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/lane"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
	typesmocks "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types/mocks"
)

const conformanceCapacity = 8

// testLifecycleAndOrdering pushes `itemsInOrder`, then peeks and pops every item, verifying length, byte size and strict
// FIFO order at each step.
func testLifecycleAndOrdering(t *testing.T, l framework.Lane, itemsInOrder []*typesmocks.MockLaneItem) {
	t.Helper()

	// PeekHead/PeekTail/PopHead on empty lane
	peeked, err := l.PeekHead()
	assert.ErrorIs(t, err, framework.ErrLaneEmpty, "PeekHead on an empty lane should return ErrLaneEmpty")
	assert.Nil(t, peeked, "PeekHead on an empty lane should return a nil item")
	peeked, err = l.PeekTail()
	assert.ErrorIs(t, err, framework.ErrLaneEmpty, "PeekTail on an empty lane should return ErrLaneEmpty")
	assert.Nil(t, peeked, "PeekTail on an empty lane should return a nil item")
	popped, err := l.PopHead()
	assert.ErrorIs(t, err, framework.ErrLaneEmpty, "PopHead on an empty lane should return ErrLaneEmpty")
	assert.Nil(t, popped, "PopHead on an empty lane should return a nil item")

	var expectedByteSize uint64
	for i, item := range itemsInOrder {
		require.NoError(t, l.Push(item), "Push should not fail below capacity (item %d)", i)
		expectedByteSize += item.Packet().ByteSize()
		assert.Equal(t, i+1, l.Len(), "Len() must grow by one per Push (item %d)", i)
		assert.Equal(t, expectedByteSize, l.ByteSize(), "ByteSize() must grow by the item size (item %d)", i)

		tail, err := l.PeekTail()
		require.NoError(t, err, "PeekTail should not error on a non-empty lane")
		assert.Equal(t, item.Packet().ID(), tail.Packet().ID(), "PeekTail must return the most recently pushed item")
	}

	expectedLen := len(itemsInOrder)
	for i, expected := range itemsInOrder {
		head, err := l.PeekHead()
		require.NoError(t, err, "PeekHead should not error on a non-empty lane (iteration %d)", i)
		assert.Equal(t, expected.Packet().ID(), head.Packet().ID(), "PeekHead must return the oldest item (iteration %d)", i)
		assert.Equal(t, expectedLen, l.Len(), "Len() must be unchanged after PeekHead (iteration %d)", i)
		assert.Equal(t, expectedByteSize, l.ByteSize(), "ByteSize() must be unchanged after PeekHead (iteration %d)", i)

		removed, err := l.PopHead()
		require.NoError(t, err, "PopHead should not error on a non-empty lane (iteration %d)", i)
		assert.Equal(t, expected.Packet().ID(), removed.Packet().ID(), "PopHead must return the oldest item (iteration %d)", i)

		expectedLen--
		expectedByteSize -= removed.Packet().ByteSize()
		assert.Equal(t, expectedLen, l.Len(), "Len() must shrink by one per PopHead (iteration %d)", i)
		assert.Equal(t, expectedByteSize, l.ByteSize(), "ByteSize() must shrink by the item size (iteration %d)", i)
	}

	assert.Zero(t, l.Len(), "Lane length should be 0 after all items are popped")
	assert.Zero(t, l.ByteSize(), "Lane byte size should be 0 after all items are popped")
}

// TestLaneConformance is the main conformance test suite for `framework.Lane` implementations.
// It iterates over all lane implementations registered via `lane.MustRegisterLane` and runs a series of sub-tests to
// ensure they adhere to the `framework.Lane` contract.
func TestLaneConformance(t *testing.T) {
	t.Parallel()

	for laneName, constructor := range lane.RegisteredLanes {
		t.Run(string(laneName), func(t *testing.T) {
			t.Parallel()

			t.Run("Initialization", func(t *testing.T) {
				t.Parallel()
				l, err := constructor(conformanceCapacity)
				require.NoError(t, err, "Setup: creating lane for test should not fail")

				require.NotNil(t, l, "Constructor should return a non-nil lane instance")
				assert.Zero(t, l.Len(), "A new lane should have a length of 0")
				assert.Zero(t, l.ByteSize(), "A new lane should have a byte size of 0")
				assert.Equal(t, string(laneName), l.Name(), "Name() should return the registered name of the lane")
				assert.Contains(t, l.Capabilities(), framework.CapabilityFIFO, "Every in-tree lane must be FIFO")
			})

			t.Run("LifecycleAndOrdering", func(t *testing.T) {
				t.Parallel()
				l, err := constructor(conformanceCapacity)
				require.NoError(t, err, "Setup: creating lane for test should not fail")

				items := []*typesmocks.MockLaneItem{
					typesmocks.NewMockLaneItem("item1", 100),
					typesmocks.NewMockLaneItem("item2", 50),
					typesmocks.NewMockLaneItem("item3", 20),
				}
				testLifecycleAndOrdering(t, l, items)
			})

			t.Run("Wraparound", func(t *testing.T) {
				t.Parallel()
				l, err := constructor(conformanceCapacity)
				require.NoError(t, err, "Setup: creating lane for test should not fail")

				// Interleave pushes and pops so that index-based lanes wrap several times.
				next, expected := 0, 0
				for round := 0; round < 5; round++ {
					for range conformanceCapacity - 1 {
						require.NoError(t, l.Push(typesmocks.NewMockLaneItem(fmt.Sprintf("item-%d", next), 1)))
						next++
					}
					for range conformanceCapacity - 2 {
						item, err := l.PopHead()
						require.NoError(t, err)
						assert.Equal(t, fmt.Sprintf("item-%d", expected), item.Packet().ID(), "FIFO order must survive wraparound")
						expected++
					}
					for l.Len() > 0 {
						item, err := l.PopHead()
						require.NoError(t, err)
						assert.Equal(t, fmt.Sprintf("item-%d", expected), item.Packet().ID(), "FIFO order must survive wraparound")
						expected++
					}
				}
				assert.Equal(t, next, expected, "Every pushed item must be popped exactly once")
			})

			t.Run("Drain", func(t *testing.T) {
				t.Parallel()
				l, err := constructor(conformanceCapacity)
				require.NoError(t, err, "Setup: creating lane for test should not fail")

				var ids []string
				for i := range 4 {
					item := typesmocks.NewMockLaneItem(fmt.Sprintf("drain-%d", i), uint64(10*(i+1)))
					require.NoError(t, l.Push(item))
					ids = append(ids, item.Packet().ID())
				}

				drained := l.Drain()
				require.Len(t, drained, 4, "Drain must return every resident item")
				for i, item := range drained {
					assert.Equal(t, ids[i], item.Packet().ID(), "Drain must return items in head-to-tail order")
				}
				assert.Zero(t, l.Len(), "Lane must be empty after Drain")
				assert.Zero(t, l.ByteSize(), "Lane byte size must be zero after Drain")

				drainedAgain := l.Drain()
				assert.NotNil(t, drainedAgain, "Drain on an empty lane should return an empty, non-nil slice")
				assert.Empty(t, drainedAgain, "Drain on an empty lane should return no items")

				// The lane must remain usable after a drain.
				require.NoError(t, l.Push(typesmocks.NewMockLaneItem("after-drain", 7)))
				head, err := l.PeekHead()
				require.NoError(t, err)
				assert.Equal(t, "after-drain", head.Packet().ID())
				assert.Equal(t, uint64(7), l.ByteSize())
			})

			t.Run("FillToCapacity", func(t *testing.T) {
				t.Parallel()
				l, err := constructor(conformanceCapacity)
				require.NoError(t, err, "Setup: creating lane for test should not fail")

				items := make([]*typesmocks.MockLaneItem, 0, conformanceCapacity)
				for i := range conformanceCapacity {
					items = append(items, typesmocks.NewMockLaneItem(fmt.Sprintf("fill-%d", i), uint64(i+1)))
				}
				testLifecycleAndOrdering(t, l, items)
			})
		})
	}
}

func TestNewLaneFromName(t *testing.T) {
	t.Parallel()

	t.Run("Registered", func(t *testing.T) {
		t.Parallel()
		l, err := lane.NewLaneFromName(lane.ListLaneName, 4)
		require.NoError(t, err)
		assert.Equal(t, string(lane.ListLaneName), l.Name())
		assert.True(t, lane.IsRegistered(lane.RingLaneName))
	})

	t.Run("Unknown", func(t *testing.T) {
		t.Parallel()
		l, err := lane.NewLaneFromName("NoSuchLane", 4)
		assert.Error(t, err, "An unregistered lane name must be rejected")
		assert.Nil(t, l)
		assert.False(t, lane.IsRegistered("NoSuchLane"))
	})

	t.Run("DuplicateRegistrationPanics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			lane.MustRegisterLane(lane.ListLaneName, func(int) (framework.Lane, error) { return nil, nil })
		}, "Registering a name twice must panic")
	})
}

// Ensure the mocks satisfy the item contract used above.
var _ types.LaneItem = &typesmocks.MockLaneItem{}
