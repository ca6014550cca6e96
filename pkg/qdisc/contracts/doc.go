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

// Package contracts defines the service interfaces that decouple the queue discipline from the host that drives it.
//
// The host scheduling framework (registration table, per-device serialization, transmit loop) programs against
// `Qdisc`, never against a concrete discipline, and the discipline reports what it does through an `Observer` it does
// not own. Keeping these seams here lets `host` and `metrics` depend on the contract without importing each other.
package contracts
