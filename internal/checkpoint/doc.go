// Package checkpoint persists the highest millisecond at which an ID was
// issued, and fences startup against a regressed clock.
//
// The generator itself detects clock regression within one process lifetime;
// across a restart that knowledge is lost. The checkpoint closes the gap: the
// runtime records the issuance high-water mark on an interval, and a process
// whose wall clock is behind the persisted mark refuses to start rather than
// risk re-issuing timestamps.
//
// The checkpoint is advisory fencing only. It is never consulted on the ID
// issue path.
package checkpoint
