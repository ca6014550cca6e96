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

package types

import (
	"errors"
)

// --- Admission Outcome Errors ---

var (
	// ErrRejected is a sentinel error indicating a packet was refused at admission and never entered a lane.
	// Errors returned by `Admit` that signify a refusal wrap this error alongside the specific cause.
	//
	// A rejection is an expected outcome under saturation, not a system failure. Callers should use
	// `errors.Is(err, ErrRejected)` to distinguish it from lifecycle errors.
	ErrRejected = errors.New("packet rejected")

	// ErrQueueFull indicates that a packet could not be admitted because the lane had reached its capacity.
	ErrQueueFull = errors.New("queue full")
)

// --- Lifecycle and Configuration Errors ---

var (
	// ErrResourceExhausted indicates that the discipline could not allocate its lane during creation. It is fatal to the
	// instance being created.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidParameter indicates that a configuration value or reconfiguration option is not supported. The state of
	// an existing discipline is left unchanged.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotActive indicates that an operation was attempted on a discipline that has not been created or has already
	// been destroyed.
	ErrNotActive = errors.New("queue discipline is not active")
)
