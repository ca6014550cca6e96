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

package trace

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// DefaultSnapLen is the snapshot length written into recorder file headers.
const DefaultSnapLen = 65536

// Recorder writes packets to a pcap stream. It is safe for concurrent use, so one recorder can serve as the disposer
// of several devices.
type Recorder struct {
	mu       sync.Mutex
	writer   *pcapgo.Writer
	written  uint64
	skipped  uint64
	byReason map[types.DisposeReason]uint64
	err      error
}

// NewRecorder writes a pcap file header for linkType to w and returns a recorder appending to it.
func NewRecorder(w io.Writer, linkType layers.LinkType) (*Recorder, error) {
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(DefaultSnapLen, linkType); err != nil {
		return nil, fmt.Errorf("failed to write pcap file header: %w", err)
	}
	return &Recorder{writer: writer, byReason: make(map[types.DisposeReason]uint64)}, nil
}

// Record appends pkt to the stream. Packets that did not come from this package carry no frame bytes and are counted as
// skipped.
func (r *Recorder) Record(pkt types.Packet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recordLocked(pkt)
}

// Dispose is a `types.DisposeFunc` that records every disposed packet and tallies it by reason. A write failure is
// kept and reported by `Err`, since a disposer cannot return one.
func (r *Recorder) Dispose(pkt types.Packet, reason types.DisposeReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byReason[reason]++
	if err := r.recordLocked(pkt); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Recorder) recordLocked(pkt types.Packet) error {
	p, ok := pkt.(*Packet)
	if !ok {
		r.skipped++
		return nil
	}
	if err := r.writer.WritePacket(p.ci, p.data); err != nil {
		return fmt.Errorf("failed to record packet %s: %w", p.id, err)
	}
	r.written++
	return nil
}

// Written returns the number of packets written to the stream.
func (r *Recorder) Written() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Skipped returns the number of packets that had no frame to write.
func (r *Recorder) Skipped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// Disposed returns how many packets passed through `Dispose` for the given reason.
func (r *Recorder) Disposed(reason types.DisposeReason) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byReason[reason]
}

// Err returns the first write error seen by `Dispose`.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
