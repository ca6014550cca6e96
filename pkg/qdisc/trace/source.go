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
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"strconv"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/google/uuid"
	"k8s.io/utils/clock"
)

// Source yields packets one at a time. Next returns io.EOF once the source is exhausted.
type Source interface {
	Next(ctx context.Context) (*Packet, error)
}

// --- Pcap replay ---

// PcapSource replays the frames of a pcap stream in file order.
type PcapSource struct {
	reader *pcapgo.Reader
	source *gopacket.PacketSource
	seq    uint64
}

var _ Source = &PcapSource{}

// NewPcapSource reads the pcap file header from r and prepares to replay its frames.
func NewPcapSource(r io.Reader) (*PcapSource, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}
	source := gopacket.NewPacketSource(reader, reader.LinkType())
	source.DecodeOptions = gopacket.DecodeOptions{Lazy: true, NoCopy: true}
	return &PcapSource{reader: reader, source: source}, nil
}

// LinkType returns the link layer type declared in the pcap header.
func (s *PcapSource) LinkType() layers.LinkType { return s.reader.LinkType() }

// Next returns the next frame. IDs are the 1-based frame number within the file.
func (s *PcapSource) Next(ctx context.Context) (*Packet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.source.NextPacket()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read pcap frame %d: %w", s.seq+1, err)
	}
	s.seq++
	return NewPacket(strconv.FormatUint(s.seq, 10), p.Data(), p.Metadata().CaptureInfo, s.reader.LinkType()), nil
}

// --- Synthetic traffic ---

// MaxSyntheticPayload is the largest UDP payload that fits in one IPv4 datagram: 65535 less the 20-byte IPv4 and
// 8-byte UDP headers.
const MaxSyntheticPayload = 65535 - 20 - 8

// SyntheticConfig shapes the traffic a `SyntheticSource` produces.
type SyntheticConfig struct {
	// Count is the number of packets to produce. Zero means unbounded.
	Count int
	// Flows is the number of distinct UDP source ports to spread packets over.
	Flows int
	// MinPayload and MaxPayload bound the UDP payload size in bytes, inclusive.
	MinPayload int
	MaxPayload int
	// Seed makes payload sizes reproducible.
	Seed uint64
}

// SyntheticSource builds Ethernet/IPv4/UDP frames with random payload sizes. Each packet gets a UUID.
type SyntheticSource struct {
	config   SyntheticConfig
	rng      *rand.Rand
	clock    clock.PassiveClock
	produced int

	srcMAC, dstMAC net.HardwareAddr
	srcIP, dstIP   net.IP
}

var _ Source = &SyntheticSource{}

// NewSyntheticSource validates cfg and returns a source. A nil clock uses the real clock for capture timestamps.
func NewSyntheticSource(cfg SyntheticConfig, clk clock.PassiveClock) (*SyntheticSource, error) {
	if cfg.Count < 0 {
		return nil, fmt.Errorf("synthetic packet count cannot be negative, but got %d", cfg.Count)
	}
	if cfg.Flows <= 0 {
		return nil, fmt.Errorf("synthetic flow count must be positive, but got %d", cfg.Flows)
	}
	if cfg.MinPayload < 0 || cfg.MaxPayload < cfg.MinPayload || cfg.MaxPayload > MaxSyntheticPayload {
		return nil, fmt.Errorf("invalid synthetic payload range [%d, %d]: must lie within [0, %d]",
			cfg.MinPayload, cfg.MaxPayload, MaxSyntheticPayload)
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &SyntheticSource{
		config: cfg,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		clock:  clk,
		srcMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		dstMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02},
		srcIP:  net.IPv4(10, 0, 0, 1).To4(),
		dstIP:  net.IPv4(10, 0, 0, 2).To4(),
	}, nil
}

// Next builds and returns the next frame.
func (s *SyntheticSource) Next(ctx context.Context) (*Packet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.config.Count > 0 && s.produced >= s.config.Count {
		return nil, io.EOF
	}

	size := s.config.MinPayload
	if span := s.config.MaxPayload - s.config.MinPayload; span > 0 {
		size += s.rng.IntN(span + 1)
	}
	data, err := s.buildFrame(layers.UDPPort(40000+s.produced%s.config.Flows), make([]byte, size))
	if err != nil {
		return nil, err
	}
	s.produced++
	ci := gopacket.CaptureInfo{
		Timestamp:     s.clock.Now(),
		CaptureLength: len(data),
		Length:        len(data),
	}
	return NewPacket(uuid.NewString(), data, ci, layers.LinkTypeEthernet), nil
}

func (s *SyntheticSource) buildFrame(srcPort layers.UDPPort, payload []byte) ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       s.srcMAC,
		DstMAC:       s.dstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    s.srcIP,
		DstIP:    s.dstIP,
	}
	udp := &layers.UDP{SrcPort: srcPort, DstPort: 5001}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		return nil, fmt.Errorf("failed to bind UDP checksum to IPv4 layer: %w", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("failed to serialize synthetic frame: %w", err)
	}
	return buf.Bytes(), nil
}

// --- Pacing ---

// Paced wraps a source so that Next yields at most one packet per interval, measured on clk. It blocks until the next
// slot or until ctx is cancelled.
type Paced struct {
	source   Source
	interval time.Duration
	clock    clock.WithTicker
	ticker   clock.Ticker
}

var _ Source = &Paced{}

// NewPaced returns a paced view of source. A nil clock uses the real clock.
func NewPaced(source Source, interval time.Duration, clk clock.WithTicker) (*Paced, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("pacing interval must be positive, but got %v", interval)
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Paced{source: source, interval: interval, clock: clk}, nil
}

// Next waits for the next pacing slot and returns the underlying source's next packet.
func (p *Paced) Next(ctx context.Context) (*Packet, error) {
	if p.ticker == nil {
		p.ticker = p.clock.NewTicker(p.interval)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ticker.C():
	}
	return p.source.Next(ctx)
}

// Stop releases the pacing ticker.
func (p *Paced) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
