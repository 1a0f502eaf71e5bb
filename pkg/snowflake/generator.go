package snowflake

import (
	"strconv"
	"sync"
)

// DefaultEpochMs is Jan 1 2024 00:00:00 UTC, used when deployments do not
// configure their own epoch.
const DefaultEpochMs int64 = 1704067200000

// sentinel for "no ID issued yet".
const neverIssued int64 = -1

// Generator issues unique, time-ordered 64-bit IDs. It is safe for
// concurrent use; every call is serialized under one mutex because the
// reset-vs-increment decision on the sequence depends atomically on the
// comparison against the last issued millisecond.
type Generator struct {
	machineID    int64
	datacenterID int64
	epochMs      int64
	clock        Clock

	mu       sync.Mutex
	sequence int64
	lastMs   int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock substitutes the wall-clock source. Intended for tests.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// Validate checks the identity/timing parameters against the bit layout and
// the current wall clock. It is pure apart from the clock read.
func Validate(machineID, datacenterID, epochMs int64) error {
	return validate(machineID, datacenterID, epochMs, SystemClock{})
}

func validate(machineID, datacenterID, epochMs int64, clock Clock) error {
	if machineID < 0 || machineID > MaxMachineID {
		return ErrInvalidMachineID
	}
	if datacenterID < 0 || datacenterID > MaxDatacenterID {
		return ErrInvalidDatacenterID
	}
	// An epoch in the future would make every timestamp delta negative,
	// which the layout cannot represent.
	if epochMs > clock.NowMs() {
		return ErrInvalidEpoch
	}
	return nil
}

// New constructs a Generator for the given identity. The configuration is
// validated first; on failure no generator is returned.
func New(machineID, datacenterID, epochMs int64, opts ...Option) (*Generator, error) {
	g := &Generator{
		machineID:    machineID,
		datacenterID: datacenterID,
		epochMs:      epochMs,
		clock:        SystemClock{},
		lastMs:       neverIssued,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := validate(machineID, datacenterID, epochMs, g.clock); err != nil {
		return nil, err
	}
	return g, nil
}

// MachineID returns the configured machine id.
func (g *Generator) MachineID() int64 { return g.machineID }

// DatacenterID returns the configured datacenter id.
func (g *Generator) DatacenterID() int64 { return g.datacenterID }

// EpochMs returns the configured epoch in milliseconds.
func (g *Generator) EpochMs() int64 { return g.epochMs }

// NextID issues the next ID. It fails with *ClockBackwardsError if the wall
// clock reads earlier than the previously issued millisecond, and spins for
// up to ~1ms when the per-millisecond sequence space is exhausted.
func (g *Generator) NextID() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.NowMs()
	if now < g.lastMs {
		return 0, &ClockBackwardsError{
			LastMs:      g.lastMs,
			NowMs:       now,
			BackwardsMs: g.lastMs - now,
		}
	}

	if now == g.lastMs {
		g.sequence = (g.sequence + 1) & MaxSequence
		if g.sequence == 0 {
			// 4096 IDs already issued this millisecond; spin until the
			// clock advances rather than wrap silently.
			for now <= g.lastMs {
				now = g.clock.NowMs()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastMs = now
	return Encode(now-g.epochMs, g.datacenterID, g.machineID, g.sequence), nil
}

// NextIDString returns the next ID as its base-10 decimal string.
func (g *Generator) NextIDString() (string, error) {
	id, err := g.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// Timestamp returns the absolute wall-clock millisecond at which id was
// issued, re-adding the generator's epoch to the encoded delta.
func (g *Generator) Timestamp(id int64) int64 {
	return DecodeTimestampDelta(id) + g.epochMs
}

// DatacenterIDOf extracts the datacenter id from id.
func (g *Generator) DatacenterIDOf(id int64) int64 { return DecodeDatacenterID(id) }

// MachineIDOf extracts the machine id from id.
func (g *Generator) MachineIDOf(id int64) int64 { return DecodeMachineID(id) }

// SequenceOf extracts the per-millisecond sequence from id.
func (g *Generator) SequenceOf(id int64) int64 { return DecodeSequence(id) }
