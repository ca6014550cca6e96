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

package host

import (
	"fmt"
	"slices"
	"sync"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/discipline"
)

// Registry maps discipline identifiers to the factories that create them. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]contracts.Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]contracts.Factory)}
}

// RegisterDefaults registers every in-tree discipline.
func RegisterDefaults(r *Registry) error {
	return r.Register(discipline.DisciplineName, discipline.NewQdisc)
}

// Register adds a factory under id. It fails with `ErrDuplicateDiscipline` if id is taken.
func (r *Registry) Register(id string, factory contracts.Factory) error {
	if id == "" || factory == nil {
		return fmt.Errorf("discipline registration requires a non-empty id and a non-nil factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateDiscipline, id)
	}
	r.factories[id] = factory
	return nil
}

// Unregister removes the factory for id. Instances already created are unaffected.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDiscipline, id)
	}
	delete(r.factories, id)
	return nil
}

// Lookup returns the factory for id.
func (r *Registry) Lookup(id string) (contracts.Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDiscipline, id)
	}
	return factory, nil
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
