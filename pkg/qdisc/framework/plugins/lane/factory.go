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

// Package lane defines the registry of `framework.Lane` implementations and the in-tree lanes used by the queue
// discipline.
package lane

import (
	"fmt"
	"sync"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
)

type RegisteredLaneName string

// LaneConstructor defines the function signature for creating a `framework.Lane`. The capacity is the maximum number of
// items the owning discipline will ever store; lanes may use it to size their storage.
type LaneConstructor func(capacity int) (framework.Lane, error)

var (
	// mu guards the registration map.
	mu sync.RWMutex
	// RegisteredLanes stores the constructors for all registered lanes.
	RegisteredLanes = make(map[RegisteredLaneName]LaneConstructor)
)

// MustRegisterLane registers a lane constructor, and panics if the name is already registered.
// This is intended to be called from init() functions.
func MustRegisterLane(name RegisteredLaneName, constructor LaneConstructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := RegisteredLanes[name]; ok {
		panic(fmt.Sprintf("framework.Lane already registered with name %q", name))
	}
	RegisteredLanes[name] = constructor
}

// IsRegistered reports whether a lane constructor exists for the given name.
func IsRegistered(name RegisteredLaneName) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := RegisteredLanes[name]
	return ok
}

// NewLaneFromName creates a new Lane given its registered name and the capacity of the owning discipline.
func NewLaneFromName(name RegisteredLaneName, capacity int) (framework.Lane, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, ok := RegisteredLanes[name]
	if !ok {
		return nil, fmt.Errorf("no framework.Lane registered with name %q", name)
	}
	return constructor(capacity)
}
