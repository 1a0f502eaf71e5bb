package snowflake

import (
	"errors"
	"fmt"
)

// Construction-time configuration errors. A generator is never constructed
// from an invalid configuration; callers should treat these as fatal to
// process startup.
var (
	ErrInvalidMachineID    = errors.New("snowflake: machine id out of range [0, 1023]")
	ErrInvalidDatacenterID = errors.New("snowflake: datacenter id out of range [0, 31]")
	ErrInvalidEpoch        = errors.New("snowflake: epoch must not be in the future")
)

// ClockBackwardsError reports that the wall clock read by NextID was earlier
// than the millisecond of the previously issued ID. The generator never
// self-corrects; regression means an environment fault (NTP step, VM
// migration) that the caller must handle.
type ClockBackwardsError struct {
	// LastMs is the millisecond at which the previous ID was issued.
	LastMs int64
	// NowMs is the regressed clock reading.
	NowMs int64
	// BackwardsMs is LastMs - NowMs, always > 0.
	BackwardsMs int64
}

func (e *ClockBackwardsError) Error() string {
	return fmt.Sprintf("snowflake: clock moved backwards %dms (last=%d now=%d)",
		e.BackwardsMs, e.LastMs, e.NowMs)
}
