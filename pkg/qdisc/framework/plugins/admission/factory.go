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

// Package admission provides the registry of `framework.AdmissionPolicy` implementations and the in-tree drop-tail
// policy.
package admission

import (
	"fmt"
	"sync"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
)

// RegisteredPolicyName is the unique name under which a policy is registered.
type RegisteredPolicyName string

// PolicyConstructor defines the function signature for creating a `framework.AdmissionPolicy`.
type PolicyConstructor func() (framework.AdmissionPolicy, error)

var (
	// mu guards the registration map.
	mu sync.RWMutex
	// RegisteredPolicies stores the constructors for all registered policies.
	RegisteredPolicies = make(map[RegisteredPolicyName]PolicyConstructor)
)

// MustRegisterPolicy registers a policy constructor, and panics if the name is already registered.
// This is intended to be called from init() functions.
func MustRegisterPolicy(name RegisteredPolicyName, constructor PolicyConstructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := RegisteredPolicies[name]; ok {
		panic(fmt.Sprintf("AdmissionPolicy already registered with name %q", name))
	}
	RegisteredPolicies[name] = constructor
}

// IsRegistered reports whether a policy constructor exists for the given name.
func IsRegistered(name RegisteredPolicyName) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := RegisteredPolicies[name]
	return ok
}

// NewPolicyFromName creates a new AdmissionPolicy given its registered name.
func NewPolicyFromName(name RegisteredPolicyName) (framework.AdmissionPolicy, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, ok := RegisteredPolicies[name]
	if !ok {
		return nil, fmt.Errorf("no AdmissionPolicy registered with name %q", name)
	}
	return constructor()
}
