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

package discipline

import (
	"time"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// packetItem is the discipline's internal representation of a resident packet. It implements `types.LaneItem`, which
// is the view lanes and admission policies receive. All fields are set at creation and never modified.
type packetItem struct {
	// pkt is the packet handed in by the host.
	pkt types.Packet
	// enqueueTime is the timestamp at which the discipline admitted the packet.
	enqueueTime time.Time
}

var _ types.LaneItem = &packetItem{}

func newPacketItem(pkt types.Packet, enqueueTime time.Time) *packetItem {
	return &packetItem{pkt: pkt, enqueueTime: enqueueTime}
}

// Packet returns the wrapped packet.
func (pi *packetItem) Packet() types.Packet { return pi.pkt }

// EnqueueTime returns the time the packet was admitted.
func (pi *packetItem) EnqueueTime() time.Time { return pi.enqueueTime }
