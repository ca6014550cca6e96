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

package framework

import (
	"errors"
)

// `Lane` Errors
//
// These errors relate to operations directly on a `Lane` implementation. They are returned by `Lane` methods and are
// translated by the discipline into its own outcomes; they never reach the host unwrapped.
var (
	// ErrLaneEmpty indicates an attempt to peek at or pop from an empty lane.
	ErrLaneEmpty = errors.New("lane is empty")

	// ErrLaneFull indicates that a preallocated lane has no free slot for a pushed item.
	ErrLaneFull = errors.New("lane is full")
)
