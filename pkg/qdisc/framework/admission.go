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

import "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"

// AdmissionPolicy decides whether an arriving packet may enter a lane.
//
// In simple terms, this policy answers the question: "Is there room for this packet right now?"
//
// The policy is consulted before the item is pushed, and it only ever sees the lane through a read-only
// `LaneAccessor`. It never evicts resident items itself. Keeping the decision behind this interface lets a delay-based
// check (comparing the head item's sojourn time against a target) slot in without touching the discipline's external
// contract.
//
// Conformance: Implementations MUST be non-blocking and MUST NOT retain the item.
type AdmissionPolicy interface {
	// Name returns a string identifier for the concrete policy implementation type (e.g., "DropTail").
	Name() string

	// Admit inspects the lane and the arriving item against the configured capacity.
	//
	// Returns:
	//   - nil: The item may be pushed.
	//   - err: The cause of the rejection. Returning an error wrapping `types.ErrQueueFull` signals a capacity refusal;
	//     any other error is treated as a policy-specific refusal. Either way the packet is dropped.
	Admit(lane LaneAccessor, item types.LaneItem, capacity int) error
}
