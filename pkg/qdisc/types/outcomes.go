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

import "strconv"

// AdmitOutcome represents the result of offering a packet to a queue discipline.
//
// It is returned by `Admit()` along with a corresponding error. The enum is a low-cardinality label suitable for
// metrics, while the error carries the detailed cause for non-accepted outcomes.
type AdmitOutcome int

const (
	// AdmitOutcomeAccepted indicates the packet was appended to the tail of the lane.
	// The associated error will be nil.
	AdmitOutcomeAccepted AdmitOutcome = iota

	// AdmitOutcomeRejectedQueueFull indicates the packet was refused because the lane was at capacity. The packet was
	// handed to the disposal path and the drop counter was incremented.
	// The associated error will wrap `ErrQueueFull` (and `ErrRejected`).
	AdmitOutcomeRejectedQueueFull

	// AdmitOutcomeRejectedOther indicates the packet was refused for a reason unrelated to capacity, such as a nil
	// packet or a discipline that is not active. No counters are touched.
	AdmitOutcomeRejectedOther
)

// String returns a human-readable string representation of the AdmitOutcome.
func (o AdmitOutcome) String() string {
	switch o {
	case AdmitOutcomeAccepted:
		return "Accepted"
	case AdmitOutcomeRejectedQueueFull:
		return "RejectedQueueFull"
	case AdmitOutcomeRejectedOther:
		return "RejectedOther"
	default:
		// Return the integer value for unknown outcomes to aid in debugging.
		return "UnknownOutcome(" + strconv.Itoa(int(o)) + ")"
	}
}
