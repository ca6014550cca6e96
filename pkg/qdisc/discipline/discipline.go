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
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	logutil "github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/common/observability/logging"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/admission"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/framework/plugins/lane"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

// DisciplineName is the identifier under which this discipline is known to hosts.
const DisciplineName = "fqcodel+"

// lifecycleState is the position of a `Discipline` in its create/destroy lifecycle.
type lifecycleState int

const (
	// stateUninitialized is the zero value: no lane exists and packet operations are refused.
	stateUninitialized lifecycleState = iota
	stateActive
	stateDestroyed
)

func (s lifecycleState) String() string {
	switch s {
	case stateUninitialized:
		return "Uninitialized"
	case stateActive:
		return "Active"
	case stateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("UnknownState(%d)", int(s))
	}
}

// Option configures the collaborators of a `Discipline` that are not part of its `Config`.
type Option func(*Discipline)

// WithDisposer sets the function that receives dropped and purged packets. Without one, such packets are released to
// the garbage collector.
func WithDisposer(dispose types.DisposeFunc) Option {
	return func(d *Discipline) {
		d.dispose = dispose
	}
}

// WithObserver sets the observer that receives one record per admit and per release.
func WithObserver(observer contracts.Observer) Option {
	return func(d *Discipline) {
		d.observer = observer
	}
}

// WithClock sets the clock used to timestamp admissions and measure sojourn time.
func WithClock(clk clock.PassiveClock) Option {
	return func(d *Discipline) {
		d.clock = clk
	}
}

// withAdmissionPolicy overrides the policy named in the config with a concrete instance, for testing.
// test-only
func withAdmissionPolicy(policy framework.AdmissionPolicy) Option {
	return func(d *Discipline) {
		d.policy = policy
	}
}

// withLane replaces the lane built from the config with a concrete instance, for testing.
// test-only
func withLane(l framework.Lane) Option {
	return func(d *Discipline) {
		d.lane = l
	}
}

// Discipline is a bounded, drop-tail FIFO queue discipline for one device. It implements `contracts.Qdisc`.
//
// # Invariants
//
// After every operation returns:
//   - `stats.QLen` equals the lane length and never exceeds `config.Capacity`.
//   - `stats.BacklogBytes` equals the sum of the byte sizes of the resident packets.
//   - `stats.Drops` never decreases.
//
// # Concurrency
//
// None. All methods assume the caller holds the host's per-device lock.
type Discipline struct {
	config Config
	state  lifecycleState

	lane   framework.Lane
	policy framework.AdmissionPolicy
	stats  types.Stats

	logger   logr.Logger
	clock    clock.PassiveClock
	dispose  types.DisposeFunc
	observer contracts.Observer
}

var _ contracts.Qdisc = &Discipline{}

// New creates an active `Discipline` from the given configuration.
//
// A nil config selects all defaults. Lane allocation failures wrap `types.ErrResourceExhausted`; in that case no
// instance is returned and nothing needs to be torn down. A lane that does not declare `framework.CapabilityFIFO` is
// refused with `types.ErrInvalidParameter`, since release order is strictly arrival order.
func New(config *Config, logger logr.Logger, opts ...Option) (*Discipline, error) {
	if config == nil {
		var err error
		if config, err = NewConfig(); err != nil {
			return nil, err
		}
	} else if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidParameter, err)
	}

	d := &Discipline{
		config: *config,
		logger: logger.WithName("qdisc").WithValues(
			"discipline", DisciplineName,
			"lane", config.Lane,
			"capacity", config.Capacity,
		),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = clock.RealClock{}
	}

	if d.policy == nil {
		policy, err := admission.NewPolicyFromName(config.AdmissionPolicy)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to instantiate admission policy %q: %w",
				types.ErrInvalidParameter, config.AdmissionPolicy, err)
		}
		d.policy = policy
	}
	if d.lane == nil {
		l, err := lane.NewLaneFromName(config.Lane, config.Capacity)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to allocate lane %q for capacity %d: %w",
				types.ErrResourceExhausted, config.Lane, config.Capacity, err)
		}
		d.lane = l
	}
	if !slices.Contains(d.lane.Capabilities(), framework.CapabilityFIFO) {
		return nil, fmt.Errorf("%w: lane %q does not provide the %s capability",
			types.ErrInvalidParameter, d.lane.Name(), framework.CapabilityFIFO)
	}

	d.state = stateActive
	d.logger.V(logutil.DEFAULT).Info("Queue discipline created", "admissionPolicy", d.policy.Name())
	return d, nil
}

// Name returns `DisciplineName`.
func (d *Discipline) Name() string { return DisciplineName }

// Capacity returns the maximum number of resident packets.
func (d *Discipline) Capacity() int { return d.config.Capacity }

// Stats returns a snapshot of the discipline's counters.
func (d *Discipline) Stats() types.Stats { return d.stats }

// Admit offers a packet for buffering.
//
// On acceptance the packet is appended at the tail and the outcome is `types.AdmitOutcomeAccepted`. When the
// admission policy refuses the packet, it is handed to the disposer, `Drops` is incremented and the returned error
// wraps `types.ErrRejected` together with the policy's cause. A capacity refusal reports
// `types.AdmitOutcomeRejectedQueueFull`. Admitting a nil packet, or admitting to an instance that is not active,
// reports `types.AdmitOutcomeRejectedOther` and changes no counter.
func (d *Discipline) Admit(pkt types.Packet) (types.AdmitOutcome, error) {
	if d.state != stateActive {
		return types.AdmitOutcomeRejectedOther, fmt.Errorf("%w: %w: discipline is %s",
			types.ErrRejected, types.ErrNotActive, d.state)
	}
	if pkt == nil {
		d.logger.V(logutil.DEBUG).Info("Packet refused", "reason", "nil packet", "qlen", d.stats.QLen)
		d.observeAdmit(types.AdmitOutcomeRejectedOther)
		return types.AdmitOutcomeRejectedOther, fmt.Errorf("%w: %w: packet cannot be nil",
			types.ErrRejected, types.ErrInvalidParameter)
	}

	item := newPacketItem(pkt, d.clock.Now())
	if cause := d.policy.Admit(d.lane, item, d.config.Capacity); cause != nil {
		return d.drop(item, cause)
	}
	if err := d.lane.Push(item); err != nil {
		// The policy admitted a packet the lane cannot hold; treat it as a capacity refusal.
		return d.drop(item, fmt.Errorf("%w: %w", types.ErrQueueFull, err))
	}

	d.stats.QLen++
	d.stats.BacklogBytes += pkt.ByteSize()
	d.stats.Admitted++
	d.logger.V(logutil.TRACE).Info("Packet admitted",
		"packetID", pkt.ID(), "byteSize", pkt.ByteSize(), "qlen", d.stats.QLen)
	d.observeAdmit(types.AdmitOutcomeAccepted)
	return types.AdmitOutcomeAccepted, nil
}

// drop hands a refused packet to the disposer and accounts for it.
func (d *Discipline) drop(item *packetItem, cause error) (types.AdmitOutcome, error) {
	outcome := types.AdmitOutcomeRejectedOther
	reason := types.DisposeReasonPolicy
	if errors.Is(cause, types.ErrQueueFull) {
		outcome = types.AdmitOutcomeRejectedQueueFull
		reason = types.DisposeReasonQueueFull
	}

	d.stats.Drops++
	d.logger.V(logutil.DEBUG).Info("Packet dropped",
		"packetID", item.pkt.ID(), "reason", reason, "cause", cause.Error(), "qlen", d.stats.QLen,
		"drops", d.stats.Drops)
	d.disposeOf(item.pkt, reason)
	d.observeAdmit(outcome)
	return outcome, fmt.Errorf("%w: %w", types.ErrRejected, cause)
}

// Release removes and returns the packet at the head of the queue.
// It returns (nil, nil) when the queue is empty.
func (d *Discipline) Release() (types.Packet, error) {
	if d.state != stateActive {
		return nil, fmt.Errorf("%w: cannot release from a discipline that is %s", types.ErrNotActive, d.state)
	}

	item, err := d.lane.PopHead()
	if err != nil {
		if errors.Is(err, framework.ErrLaneEmpty) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop head of lane %q: %w", d.lane.Name(), err)
	}

	pkt := item.Packet()
	d.stats.QLen--
	d.stats.BacklogBytes -= pkt.ByteSize()
	d.stats.Released++
	d.stats.ReleasedBytes += pkt.ByteSize()

	sojourn := d.clock.Since(item.EnqueueTime())
	d.logger.V(logutil.TRACE).Info("Packet released",
		"packetID", pkt.ID(), "sojourn", sojourn, "qlen", d.stats.QLen)
	if d.observer != nil {
		d.observer.ReleaseObserved(pkt, sojourn, d.stats.QLen)
	}
	return pkt, nil
}

// Peek returns the packet at the head of the queue without removing it.
// It returns (nil, nil) when the queue is empty.
func (d *Discipline) Peek() (types.Packet, error) {
	if d.state != stateActive {
		return nil, fmt.Errorf("%w: cannot peek a discipline that is %s", types.ErrNotActive, d.state)
	}

	item, err := d.lane.PeekHead()
	if err != nil {
		if errors.Is(err, framework.ErrLaneEmpty) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to peek head of lane %q: %w", d.lane.Name(), err)
	}
	return item.Packet(), nil
}

// Reset disposes of every resident packet and zeroes qlen and backlog. Cumulative counters, including `Drops`, are
// preserved. The instance stays active.
func (d *Discipline) Reset() error {
	if d.state != stateActive {
		return fmt.Errorf("%w: cannot reset a discipline that is %s", types.ErrNotActive, d.state)
	}
	purged := d.purge(types.DisposeReasonReset)
	d.logger.V(logutil.DEFAULT).Info("Queue discipline reset", "purged", purged, "drops", d.stats.Drops)
	return nil
}

// Destroy disposes of every resident packet and retires the instance. Destroying an uninitialized instance is
// permitted and simply retires it; destroying twice is an error.
func (d *Discipline) Destroy() error {
	switch d.state {
	case stateDestroyed:
		return fmt.Errorf("%w: discipline is already destroyed", types.ErrNotActive)
	case stateUninitialized:
		d.state = stateDestroyed
		return nil
	}

	purged := d.purge(types.DisposeReasonDestroy)
	d.state = stateDestroyed
	d.lane = nil
	d.logger.V(logutil.DEFAULT).Info("Queue discipline destroyed", "purged", purged, "drops", d.stats.Drops,
		"admitted", d.stats.Admitted, "released", d.stats.Released)
	return nil
}

// purge empties the lane into the disposer and returns how many packets were disposed of.
func (d *Discipline) purge(reason types.DisposeReason) int {
	items := d.lane.Drain()
	for _, item := range items {
		d.disposeOf(item.Packet(), reason)
	}
	d.stats.QLen = 0
	d.stats.BacklogBytes = 0
	return len(items)
}

// Reconfigure applies new parameters. This discipline exposes no tunables: empty params succeed without effect and
// any key is refused with `types.ErrInvalidParameter`, leaving the instance unchanged. Capacity is fixed at creation.
func (d *Discipline) Reconfigure(params map[string]string) error {
	if d.state == stateDestroyed {
		return fmt.Errorf("%w: cannot reconfigure a discipline that is %s", types.ErrNotActive, d.state)
	}
	if len(params) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(params))
	d.logger.V(logutil.VERBOSE).Info("Rejected reconfiguration", "keys", keys)
	return fmt.Errorf("%w: unsupported option %q", types.ErrInvalidParameter, keys[0])
}

// Describe returns the discipline's reportable parameters. There are none, so the result is always an empty,
// non-nil map.
func (d *Discipline) Describe() map[string]string {
	return map[string]string{}
}

func (d *Discipline) disposeOf(pkt types.Packet, reason types.DisposeReason) {
	if d.dispose != nil {
		d.dispose(pkt, reason)
	}
}

func (d *Discipline) observeAdmit(outcome types.AdmitOutcome) {
	if d.observer != nil {
		d.observer.AdmitObserved(outcome, d.stats.QLen)
	}
}
