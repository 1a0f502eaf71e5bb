package snowflake

import "time"

// Clock supplies wall-clock milliseconds to a Generator. The production
// implementation reads time.Now; tests substitute a controllable clock.
type Clock interface {
	NowMs() int64
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) NowMs() int64 { return time.Now().UnixMilli() }
