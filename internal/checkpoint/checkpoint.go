package checkpoint

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	logpkg "github.com/rzbill/flake/pkg/log"
)

var lastMsKey = []byte("ckpt/last_ms")

// ClockBehindCheckpointError reports that the current wall clock is earlier
// than the persisted issuance high-water mark, typically after a restart on
// a host whose clock was stepped backwards.
type ClockBehindCheckpointError struct {
	CheckpointMs int64
	NowMs        int64
}

func (e *ClockBehindCheckpointError) Error() string {
	return fmt.Sprintf("checkpoint: wall clock %dms behind last issued checkpoint (checkpoint=%d now=%d)",
		e.CheckpointMs-e.NowMs, e.CheckpointMs, e.NowMs)
}

// Store records the issuance high-water millisecond in Pebble on an
// interval, and flushes the final value on Close.
type Store struct {
	db       *pebblestore.DB
	logger   logpkg.Logger
	interval time.Duration

	mu      sync.Mutex
	highMs  int64
	flushed int64

	stop chan struct{}
	done chan struct{}
}

// Open loads the persisted checkpoint, verifies the wall clock is not behind
// it, and starts the periodic flusher.
func Open(db *pebblestore.DB, logger logpkg.Logger, interval time.Duration) (*Store, error) {
	last, ok, err := read(db)
	if err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	if ok && now < last {
		return nil, &ClockBehindCheckpointError{CheckpointMs: last, NowMs: now}
	}

	s := &Store{
		db:       db,
		logger:   logger.WithComponent("checkpoint"),
		interval: interval,
		highMs:   last,
		flushed:  last,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func read(db *pebblestore.DB) (int64, bool, error) {
	v, ok, err := db.Get(lastMsKey)
	if err != nil {
		return 0, false, err
	}
	if !ok || len(v) != 8 {
		return 0, false, nil
	}
	return int64(binary.BigEndian.Uint64(v)), true, nil
}

// Record notes that an ID was issued at ms. Cheap; the write happens on the
// flush interval.
func (s *Store) Record(ms int64) {
	s.mu.Lock()
	if ms > s.highMs {
		s.highMs = ms
	}
	s.mu.Unlock()
}

// HighWaterMs returns the current in-memory high-water millisecond.
func (s *Store) HighWaterMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highMs
}

func (s *Store) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.flush(); err != nil {
				s.logger.Warn("checkpoint flush failed", logpkg.Err(err))
			}
		case <-s.stop:
			return
		}
	}
}

func (s *Store) flush() error {
	s.mu.Lock()
	high := s.highMs
	dirty := high > s.flushed
	s.mu.Unlock()
	if !dirty {
		return nil
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(high))
	if err := s.db.Set(lastMsKey, buf[:]); err != nil {
		return err
	}

	s.mu.Lock()
	if high > s.flushed {
		s.flushed = high
	}
	s.mu.Unlock()
	return nil
}

// Close stops the flusher and persists the final high-water mark.
func (s *Store) Close() error {
	close(s.stop)
	<-s.done
	return s.flush()
}
