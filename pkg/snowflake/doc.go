// Package snowflake provides a 64-bit, time-ordered unique ID generator.
//
// # Format
//
// Each ID is a positive signed 64-bit integer, most significant bit first:
//
//	1 bit  sign, always 0
//	37 bits timestamp delta, milliseconds since the configured epoch
//	5 bits  datacenter id  [0, 31]
//	10 bits machine id     [0, 1023]
//	12 bits sequence       [0, 4095]
//
// Because the timestamp occupies the high bits, integer comparison of two
// IDs from the same generator preserves issuance order.
//
// # Monotonicity
//
// The Generator serializes every call under one mutex:
//   - If the system clock regresses below the last issued millisecond,
//     NextID fails with a ClockBackwardsError. It never stalls to let the
//     clock catch up; the caller decides whether to retry, alert, or fence.
//   - If the 4096-wide sequence space is exhausted within one millisecond,
//     NextID spins on the clock until the next millisecond before issuing.
//
// # Capacity
//
// The 37-bit timestamp field holds ~4.35 years of milliseconds from the
// configured epoch. Overflow is not guarded on the issue path; deployers
// must rotate the epoch before exhaustion.
//
// Usage
//
//	g, err := snowflake.New(7, 3, snowflake.DefaultEpochMs)
//	if err != nil { ... }
//	id, err := g.NextID()
//	s, _ := g.NextIDString()
//	ms := g.Timestamp(id) // absolute wall-clock milliseconds
package snowflake
