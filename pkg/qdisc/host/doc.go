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

// Package host is a minimal user-space stand-in for the scheduling framework that drives queue disciplines.
//
// It provides the three collaborators a discipline expects from its environment:
//
//   - `Registry`: the table of discipline identifiers and their factories. Nothing is registered implicitly; callers
//     add the disciplines they want (see `RegisterDefaults`).
//   - `Device`: one egress path with at most one attached discipline. The device owns the lock that serializes every
//     call into the discipline, which performs no locking of its own.
//   - `Transmitter`: the loop that periodically releases packets from a device and hands them to a sink, standing in
//     for the link draining the queue.
//
// `Host` ties them together for the simulator and exports live per-device stats to the metrics collector.
package host
