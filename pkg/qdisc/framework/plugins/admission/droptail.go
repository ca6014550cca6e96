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

package admission

import (
	"fmt"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// DropTailPolicyName is the name of the drop-tail admission policy.
//
// Drop-tail refuses a newly arriving packet whenever the lane already holds `capacity` items. Resident packets are
// never preempted. The decision looks only at occupancy; it ignores byte size and sojourn time.
const DropTailPolicyName RegisteredPolicyName = "DropTail"

func init() {
	MustRegisterPolicy(DropTailPolicyName,
		func() (framework.AdmissionPolicy, error) {
			return newDropTail(), nil
		})
}

// dropTail implements the `framework.AdmissionPolicy` interface. It is stateless.
type dropTail struct{}

var _ framework.AdmissionPolicy = &dropTail{}

func newDropTail() *dropTail {
	return &dropTail{}
}

// Name returns the name of the policy.
func (p *dropTail) Name() string {
	return string(DropTailPolicyName)
}

// Admit returns an error wrapping `types.ErrQueueFull` if the lane is at or above capacity.
func (p *dropTail) Admit(lane framework.LaneAccessor, _ types.LaneItem, capacity int) error {
	if qlen := lane.Len(); qlen >= capacity {
		return fmt.Errorf("%w: qlen %d reached limit %d", types.ErrQueueFull, qlen, capacity)
	}
	return nil
}
