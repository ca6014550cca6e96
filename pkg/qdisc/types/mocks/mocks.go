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

// Package mocks provides simple, configurable mock implementations of the core queue discipline types, intended for use
// in unit and integration tests.
package mocks

import (
	"time"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// MockPacket provides a mock implementation of the types.Packet interface.
type MockPacket struct {
	IDV       string
	ByteSizeV uint64
}

// NewMockPacket creates a new MockPacket with the given identifier and length.
func NewMockPacket(id string, byteSize uint64) *MockPacket {
	return &MockPacket{IDV: id, ByteSizeV: byteSize}
}

func (m *MockPacket) ID() string       { return m.IDV }
func (m *MockPacket) ByteSize() uint64 { return m.ByteSizeV }

var _ types.Packet = &MockPacket{}

// MockLaneItem provides a mock implementation of the `types.LaneItem` interface.
type MockLaneItem struct {
	PacketV      types.Packet
	EnqueueTimeV time.Time
}

// NewMockLaneItem is a constructor for `MockLaneItem` that wraps a fresh `MockPacket` stamped with the current time.
func NewMockLaneItem(id string, byteSize uint64) *MockLaneItem {
	return &MockLaneItem{
		PacketV:      NewMockPacket(id, byteSize),
		EnqueueTimeV: time.Now(),
	}
}

func (m *MockLaneItem) EnqueueTime() time.Time { return m.EnqueueTimeV }

func (m *MockLaneItem) Packet() types.Packet {
	if m.PacketV == nil {
		return &MockPacket{}
	}
	return m.PacketV
}

var _ types.LaneItem = &MockLaneItem{}
