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

package host

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/discipline"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
	typesmocks "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types/mocks"
)

// failingQdisc wraps a real discipline and fails on Destroy.
type failingQdisc struct {
	contracts.Qdisc
	err error
}

func (f *failingQdisc) Destroy() error { return f.err }

func newTestHost(t *testing.T) *Host {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, RegisterDefaults(r), "Test setup: registering defaults should not fail")
	return New(r, logutil.NewTestLogger())
}

func TestHost_Devices(t *testing.T) {
	t.Parallel()
	h := newTestHost(t)

	dev, err := h.AddDevice("eth0")
	require.NoError(t, err)
	_, err = h.AddDevice("eth0")
	assert.ErrorIs(t, err, ErrDeviceExists)

	got, err := h.Device("eth0")
	require.NoError(t, err)
	assert.Same(t, dev, got)
	_, err = h.Device("eth9")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestHost_Attach(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		device      string
		id          string
		capacity    int
		params      map[string]string
		expectErrIs error
	}{
		{name: "ShouldAttach", device: "eth0", id: discipline.DisciplineName, capacity: 10},
		{name: "ShouldFail_OnUnknownDevice", device: "eth9", id: discipline.DisciplineName, capacity: 10,
			expectErrIs: ErrUnknownDevice},
		{name: "ShouldFail_OnUnknownDiscipline", device: "eth0", id: "pfifo", capacity: 10,
			expectErrIs: ErrUnknownDiscipline},
		{name: "ShouldFail_OnInvalidCapacity", device: "eth0", id: discipline.DisciplineName, capacity: 0,
			expectErrIs: types.ErrInvalidParameter},
		{name: "ShouldFail_OnParams", device: "eth0", id: discipline.DisciplineName, capacity: 10,
			params: map[string]string{"target": "5ms"}, expectErrIs: types.ErrInvalidParameter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHost(t)
			_, err := h.AddDevice("eth0")
			require.NoError(t, err)

			err = h.Attach(tc.device, tc.id, tc.capacity, AttachOptions{Params: tc.params})
			if tc.expectErrIs != nil {
				assert.ErrorIs(t, err, tc.expectErrIs)
				return
			}
			require.NoError(t, err)
			dev, err := h.Device(tc.device)
			require.NoError(t, err)
			dump, err := dev.Dump()
			require.NoError(t, err)
			assert.Equal(t, tc.id, dump.Discipline)
		})
	}
}

func TestHost_Snapshots(t *testing.T) {
	t.Parallel()
	h := newTestHost(t)
	for _, name := range []string{"eth1", "eth0", "idle"} {
		_, err := h.AddDevice(name)
		require.NoError(t, err)
	}
	require.NoError(t, h.Attach("eth0", discipline.DisciplineName, 1, AttachOptions{}))
	require.NoError(t, h.Attach("eth1", discipline.DisciplineName, 1, AttachOptions{}))

	dev, err := h.Device("eth0")
	require.NoError(t, err)
	_, _ = dev.Enqueue(typesmocks.NewMockPacket("a", 10))
	_, _ = dev.Enqueue(typesmocks.NewMockPacket("b", 10))

	snaps := h.Snapshots()
	require.Len(t, snaps, 2, "devices without a discipline are not reported")
	assert.Equal(t, "eth0", snaps[0].Device, "snapshots are ordered by device name")
	assert.Equal(t, types.Stats{QLen: 1, BacklogBytes: 10, Drops: 1, Admitted: 1}, snaps[0].Stats)
	assert.Equal(t, "eth1", snaps[1].Device)
}

func TestHost_Shutdown(t *testing.T) {
	t.Parallel()
	h := newTestHost(t)
	for _, name := range []string{"a", "b", "c", "idle"} {
		_, err := h.AddDevice(name)
		require.NoError(t, err)
	}
	require.NoError(t, h.Attach("a", discipline.DisciplineName, 4, AttachOptions{}))

	errB := errors.New("b failed")
	errC := errors.New("c failed")
	for name, err := range map[string]error{"b": errB, "c": errC} {
		q, qerr := discipline.NewQdisc(4, nil, logr.Discard(), nil, nil)
		require.NoError(t, qerr)
		dev, derr := h.Device(name)
		require.NoError(t, derr)
		require.NoError(t, dev.Attach(&failingQdisc{Qdisc: q, err: err}))
	}

	err := h.Shutdown()
	require.Error(t, err, "shutdown should report destroy failures")
	assert.Len(t, multierr.Errors(err), 2, "one error per failing device")
	assert.ErrorIs(t, err, errB)
	assert.ErrorIs(t, err, errC)
	assert.Empty(t, h.Snapshots(), "every discipline must be detached after shutdown")
}
