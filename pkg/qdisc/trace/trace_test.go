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
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
	typesmocks "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types/mocks"
)

const (
	ethIPv4UDPHeaderLen = 14 + 20 + 8
)

func TestNewSyntheticSource_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  SyntheticConfig
	}{
		{name: "NegativeCount", cfg: SyntheticConfig{Count: -1, Flows: 1}},
		{name: "ZeroFlows", cfg: SyntheticConfig{Count: 1, Flows: 0}},
		{name: "NegativePayload", cfg: SyntheticConfig{Flows: 1, MinPayload: -1, MaxPayload: 10}},
		{name: "InvertedPayloadRange", cfg: SyntheticConfig{Flows: 1, MinPayload: 100, MaxPayload: 10}},
		{name: "PayloadExceedsDatagram", cfg: SyntheticConfig{Flows: 1, MaxPayload: MaxSyntheticPayload + 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSyntheticSource(tc.cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestSyntheticSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := testclock.NewFakeClock(time.Unix(1700000000, 0))
	src, err := NewSyntheticSource(SyntheticConfig{Count: 4, Flows: 2, MinPayload: 100, MaxPayload: 200, Seed: 7}, clk)
	require.NoError(t, err)

	var flows []string
	for range 4 {
		pkt, err := src.Next(ctx)
		require.NoError(t, err)
		_, err = uuid.Parse(pkt.ID())
		assert.NoError(t, err, "synthetic packet IDs are UUIDs")
		size := int(pkt.ByteSize())
		assert.GreaterOrEqual(t, size, ethIPv4UDPHeaderLen+100)
		assert.LessOrEqual(t, size, ethIPv4UDPHeaderLen+200)
		assert.Len(t, pkt.Data(), size, "synthetic frames are never truncated")
		assert.Equal(t, clk.Now(), pkt.CaptureInfo().Timestamp, "capture time comes from the injected clock")
		assert.Equal(t, layers.LinkTypeEthernet, pkt.LinkType())
		flows = append(flows, pkt.Flow())
	}
	for _, flow := range flows {
		assert.Equal(t, "10.0.0.1->10.0.0.2", flow, "frames decode as IPv4 between the fixed endpoints")
	}

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF, "the source is exhausted after Count packets")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.Next(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorderAndPcapSource_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src, err := NewSyntheticSource(SyntheticConfig{Count: 3, Flows: 3, MinPayload: 10, MaxPayload: 1400, Seed: 1}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, layers.LinkTypeEthernet)
	require.NoError(t, err)

	var want [][]byte
	for {
		pkt, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, rec.Record(pkt))
		want = append(want, pkt.Data())
	}
	assert.Equal(t, uint64(3), rec.Written())

	replay, err := NewPcapSource(&buf)
	require.NoError(t, err)
	assert.Equal(t, layers.LinkTypeEthernet, replay.LinkType())

	for i, data := range want {
		pkt, err := replay.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, data, pkt.Data(), "frame %d must round-trip unchanged", i)
		assert.Equal(t, uint64(len(data)), pkt.ByteSize())
		assert.Equal(t, []string{"1", "2", "3"}[i], pkt.ID(), "replayed IDs are frame numbers")
	}
	_, err = replay.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewPcapSource_RejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := NewPcapSource(bytes.NewReader([]byte("not a pcap file at all")))
	assert.Error(t, err)
}

func TestRecorder_Dispose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, layers.LinkTypeEthernet)
	require.NoError(t, err)

	frame := NewPacket("f", []byte{1, 2, 3, 4}, gopacket.CaptureInfo{Timestamp: time.Unix(1, 0)}, layers.LinkTypeEthernet)
	rec.Dispose(frame, types.DisposeReasonQueueFull)
	rec.Dispose(frame, types.DisposeReasonQueueFull)
	rec.Dispose(frame, types.DisposeReasonReset)
	rec.Dispose(typesmocks.NewMockPacket("opaque", 10), types.DisposeReasonDestroy)

	assert.Equal(t, uint64(2), rec.Disposed(types.DisposeReasonQueueFull))
	assert.Equal(t, uint64(1), rec.Disposed(types.DisposeReasonReset))
	assert.Equal(t, uint64(1), rec.Disposed(types.DisposeReasonDestroy))
	assert.Equal(t, uint64(3), rec.Written(), "frames are written")
	assert.Equal(t, uint64(1), rec.Skipped(), "packets without frame bytes are skipped")
	assert.NoError(t, rec.Err())
}

func TestPaced(t *testing.T) {
	t.Parallel()
	clk := testclock.NewFakeClock(time.Now())
	src, err := NewSyntheticSource(SyntheticConfig{Count: 2, Flows: 1, MinPayload: 1, MaxPayload: 1}, clk)
	require.NoError(t, err)
	paced, err := NewPaced(src, time.Millisecond, clk)
	require.NoError(t, err)
	defer paced.Stop()

	got := make(chan *Packet, 1)
	go func() {
		pkt, _ := paced.Next(context.Background())
		got <- pkt
	}()

	require.Eventually(t, clk.HasWaiters, time.Second, time.Millisecond, "Next should wait on the pacing ticker")
	select {
	case <-got:
		t.Fatal("Next returned before the pacing slot")
	default:
	}
	clk.Step(time.Millisecond)
	select {
	case pkt := <-got:
		assert.NotNil(t, pkt)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after the pacing slot")
	}

	_, err = NewPaced(src, 0, clk)
	assert.Error(t, err, "a non-positive interval must be rejected")
}
