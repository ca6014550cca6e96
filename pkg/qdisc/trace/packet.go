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

// Package trace turns captured or synthesized frames into packets a queue discipline can buffer, and records packets
// back to pcap files.
package trace

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// Packet is a captured frame. It implements `types.Packet`; the queue discipline sees only its ID and wire length.
type Packet struct {
	id       string
	data     []byte
	ci       gopacket.CaptureInfo
	linkType layers.LinkType
}

var _ types.Packet = &Packet{}

// NewPacket wraps raw frame bytes. When ci.Length is zero the frame is treated as uncut.
func NewPacket(id string, data []byte, ci gopacket.CaptureInfo, linkType layers.LinkType) *Packet {
	if ci.CaptureLength == 0 {
		ci.CaptureLength = len(data)
	}
	if ci.Length < ci.CaptureLength {
		ci.Length = ci.CaptureLength
	}
	return &Packet{id: id, data: data, ci: ci, linkType: linkType}
}

// ID returns the packet identifier.
func (p *Packet) ID() string { return p.id }

// ByteSize returns the original wire length, which may exceed the captured bytes when the capture was truncated.
func (p *Packet) ByteSize() uint64 { return uint64(p.ci.Length) }

// Data returns the captured bytes.
func (p *Packet) Data() []byte { return p.data }

// CaptureInfo returns the capture metadata.
func (p *Packet) CaptureInfo() gopacket.CaptureInfo { return p.ci }

// LinkType returns the link layer type of the frame.
func (p *Packet) LinkType() layers.LinkType { return p.linkType }

// Flow decodes the frame and returns its network-layer flow (e.g., "10.0.0.1->10.0.0.2"), or "" when the frame has no
// decodable network layer.
func (p *Packet) Flow() string {
	decoded := gopacket.NewPacket(p.data, p.linkType, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	if nl := decoded.NetworkLayer(); nl != nil {
		return nl.NetworkFlow().String()
	}
	return ""
}
