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

package discipline

import (
	"fmt"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/admission"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/lane"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

const (
	// DefaultCapacity is the maximum number of resident packets when no capacity is configured.
	DefaultCapacity = 100
	// defaultLane is the lane implementation used when none is configured.
	defaultLane = lane.ListLaneName
	// defaultAdmissionPolicy is the admission policy used when none is configured.
	defaultAdmissionPolicy = admission.DropTailPolicyName
)

// Config holds the configuration for a `Discipline`.
type Config struct {
	// Capacity is the maximum number of packets the discipline buffers at once. It is fixed for the lifetime of an
	// instance.
	// Optional: Defaults to `DefaultCapacity` (100). Must be positive.
	Capacity int

	// Lane is the registered name of the lane implementation that holds resident packets.
	// Optional: Defaults to `lane.ListLaneName`.
	Lane lane.RegisteredLaneName

	// AdmissionPolicy is the registered name of the policy that gates arrivals.
	// Optional: Defaults to `admission.DropTailPolicyName`.
	AdmissionPolicy admission.RegisteredPolicyName
}

// ConfigOption is a functional option for configuring a Discipline.
type ConfigOption func(*Config)

// NewConfig creates a new Config with the given options, applying defaults and validation.
// Validation failures wrap `types.ErrInvalidParameter`.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	c := &Config{
		Capacity:        DefaultCapacity,
		Lane:            defaultLane,
		AdmissionPolicy: defaultAdmissionPolicy,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidParameter, err)
	}
	return c, nil
}

// WithCapacity sets the maximum number of resident packets.
func WithCapacity(capacity int) ConfigOption {
	return func(c *Config) {
		c.Capacity = capacity
	}
}

// WithLane sets the lane implementation.
func WithLane(name lane.RegisteredLaneName) ConfigOption {
	return func(c *Config) {
		c.Lane = name
	}
}

// WithAdmissionPolicy sets the admission policy.
func WithAdmissionPolicy(name admission.RegisteredPolicyName) ConfigOption {
	return func(c *Config) {
		c.AdmissionPolicy = name
	}
}

// validate checks the configuration for validity.
func (c *Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("Capacity must be positive, but got %d", c.Capacity)
	}
	if !lane.IsRegistered(c.Lane) {
		return fmt.Errorf("no lane registered with name %q", c.Lane)
	}
	if !admission.IsRegistered(c.AdmissionPolicy) {
		return fmt.Errorf("no admission policy registered with name %q", c.AdmissionPolicy)
	}
	return nil
}
