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
// Package discipline implements the "fqcodel+" queue discipline: a bounded, drop-tail FIFO that buffers outbound
// packets for a single device.
//
// # Architecture
//
// A `Discipline` composes two pluggable pieces from the framework layer:
//
//   - A `framework.Lane` that holds resident packets in arrival order (see `plugins/lane`).
//   - A `framework.AdmissionPolicy` that decides whether an arriving packet may join the lane (see
//     `plugins/admission`). The default is drop-tail: refuse the newcomer once the lane holds `Capacity` packets.
//
// The discipline owns the counters that the host reports (qlen, backlog bytes, drops) and keeps them consistent with
// the lane after every operation. Packets leave the discipline either through `Release` (handed back for
// transmission) or through the configured `types.DisposeFunc` (dropped at admission, or purged by `Reset` and
// `Destroy`). Every packet takes exactly one of those exits.
//
// # Lifecycle
//
// An instance moves through three states: uninitialized, active and destroyed. `New` returns an active instance. A
// zero-value `Discipline` is uninitialized and refuses every packet operation with `types.ErrNotActive`.
//
// # Concurrency
//
// A `Discipline` is single-owner and performs no locking. The host MUST serialize all calls on one instance (see
// `host.Device`).
package discipline
