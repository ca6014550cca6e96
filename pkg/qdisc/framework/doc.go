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

// Package framework defines the plugin interfaces for extending the queue discipline.
//
// It establishes the contracts that storage and admission logic must adhere to. By building on these interfaces, the
// discipline can grow from a single drop-tail lane into a multi-lane, delay-aware design without changing the call
// surface it exposes to the host.
//
// The primary contracts are:
//   - `Lane`: An ordered, single-owner store of resident packets with O(1) length and backlog accounting.
//   - `AdmissionPolicy`: Decides whether an arriving packet may enter a lane. The baseline policy is drop-tail; a
//     sojourn-time (CoDel-style) check would be another implementation of the same interface.
//
// Lanes declare `LaneCapability` values; the discipline refuses at construction any lane that is not FIFO.
package framework
