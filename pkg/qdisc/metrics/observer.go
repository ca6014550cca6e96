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

package metrics

import (
	"time"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// deviceObserver feeds a discipline's admit and release records into the package metrics, labelled by device.
type deviceObserver struct {
	device string
}

var _ contracts.Observer = &deviceObserver{}

// NewObserver returns a `contracts.Observer` that records into the package metrics under the given device label.
func NewObserver(device string) contracts.Observer {
	return &deviceObserver{device: device}
}

func (o *deviceObserver) AdmitObserved(outcome types.AdmitOutcome, _ int) {
	RecordAdmit(o.device, outcome)
}

func (o *deviceObserver) ReleaseObserved(pkt types.Packet, sojourn time.Duration, _ int) {
	RecordRelease(o.device, pkt.ByteSize(), sojourn)
}
