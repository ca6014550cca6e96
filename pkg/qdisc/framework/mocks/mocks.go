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

// Package mocks provides mock implementations of the framework plugin interfaces for use in tests.
package mocks

import (
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// MockLaneAccessor is a mock implementation of the `framework.LaneAccessor` interface.
type MockLaneAccessor struct {
	NameV         string
	CapabilitiesV []framework.LaneCapability
	LenV          int
	ByteSizeV     uint64
	PeekHeadV     types.LaneItem
	PeekHeadErrV  error
	PeekTailV     types.LaneItem
	PeekTailErrV  error
}

func (m *MockLaneAccessor) Name() string                             { return m.NameV }
func (m *MockLaneAccessor) Capabilities() []framework.LaneCapability { return m.CapabilitiesV }
func (m *MockLaneAccessor) Len() int                                 { return m.LenV }
func (m *MockLaneAccessor) ByteSize() uint64                         { return m.ByteSizeV }
func (m *MockLaneAccessor) PeekHead() (types.LaneItem, error)        { return m.PeekHeadV, m.PeekHeadErrV }
func (m *MockLaneAccessor) PeekTail() (types.LaneItem, error)        { return m.PeekTailV, m.PeekTailErrV }

var _ framework.LaneAccessor = &MockLaneAccessor{}

// MockLane is a mock implementation of the `framework.Lane` interface. The mutating methods return their `XxxV` fields
// and leave the embedded accessor values untouched.
type MockLane struct {
	MockLaneAccessor
	PushErrV    error
	PopHeadV    types.LaneItem
	PopHeadErrV error
	DrainV      []types.LaneItem
}

func (m *MockLane) Push(types.LaneItem) error        { return m.PushErrV }
func (m *MockLane) PopHead() (types.LaneItem, error) { return m.PopHeadV, m.PopHeadErrV }
func (m *MockLane) Drain() []types.LaneItem          { return m.DrainV }

var _ framework.Lane = &MockLane{}

// MockAdmissionPolicy is a mock implementation of the `framework.AdmissionPolicy` interface.
// If AdmitFunc is nil, every item is admitted.
type MockAdmissionPolicy struct {
	NameV     string
	AdmitFunc func(lane framework.LaneAccessor, item types.LaneItem, capacity int) error
}

func (m *MockAdmissionPolicy) Name() string { return m.NameV }

func (m *MockAdmissionPolicy) Admit(lane framework.LaneAccessor, item types.LaneItem, capacity int) error {
	if m.AdmitFunc != nil {
		return m.AdmitFunc(lane, item, capacity)
	}
	return nil
}

var _ framework.AdmissionPolicy = &MockAdmissionPolicy{}
