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

package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/trace"
)

func countPcap(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "opening %s must succeed", path)
	defer f.Close()
	src, err := trace.NewPcapSource(f)
	require.NoError(t, err, "reading the header of %s must succeed", path)
	var n int
	for {
		_, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return n
		}
		require.NoError(t, err)
		n++
	}
}

func TestRunner_Run(t *testing.T) {
	t.Run("ShouldConserveEveryOfferedPacket", func(t *testing.T) {
		dir := t.TempDir()
		dropPath := filepath.Join(dir, "drops.pcap")
		txPath := filepath.Join(dir, "tx.pcap")
		const offered = 40

		r := NewRunner().WithExecutableName("qdiscsim-test")
		r.args = []string{
			"--capacity=2",
			"--packets=40",
			"--arrival-interval=50us",
			"--tx-interval=10ms",
			"--tx-burst=1",
			"--metrics-port=0",
			"--drop-pcap=" + dropPath,
			"--tx-pcap=" + txPath,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		require.NoError(t, r.Run(ctx), "a synthetic run must complete cleanly")

		drops := countPcap(t, dropPath)
		sent := countPcap(t, txPath)
		assert.Equal(t, offered, drops+sent, "every offered packet must be either transmitted or dropped")
		assert.Positive(t, drops, "a 2-packet queue in front of a slow link must overflow")
		assert.Positive(t, sent, "the transmitter must release some packets")
	})

	t.Run("ShouldStopWhenContextIsCancelled", func(t *testing.T) {
		r := NewRunner()
		r.args = []string{
			"--packets=100000",
			"--arrival-interval=1ms",
			"--metrics-port=0",
		}

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)
		assert.NoError(t, r.Run(ctx), "cancellation must be a clean stop")
	})

	t.Run("ShouldRejectInvalidOptions", func(t *testing.T) {
		r := NewRunner()
		r.args = []string{"--capacity=0"}
		assert.Error(t, r.Run(context.Background()), "a zero capacity must be rejected before the simulation starts")
	})

	t.Run("ShouldFailOnMissingPcapFile", func(t *testing.T) {
		r := NewRunner()
		r.args = []string{
			"--pcap-file=" + filepath.Join(t.TempDir(), "missing.pcap"),
			"--metrics-port=0",
		}
		assert.Error(t, r.Run(context.Background()), "an unreadable trace must fail setup")
	})
}
