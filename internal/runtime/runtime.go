package runtime

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rzbill/flake/internal/checkpoint"
	cfgpkg "github.com/rzbill/flake/internal/config"
	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	logpkg "github.com/rzbill/flake/pkg/log"
	"github.com/rzbill/flake/pkg/snowflake"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Fsync   pebblestore.FsyncMode
	Config  cfgpkg.Config
	Logger  logpkg.Logger
}

// Runtime wires the validated generator and checkpoint store for a
// single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	gen    *snowflake.Generator
	ckpt   *checkpoint.Store
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open validates the configuration, constructs the generator, opens the
// checkpoint store (which fences against a regressed clock), and returns a
// Runtime. Any failure aborts startup; an ID service must never run with an
// invalid identity.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel))
	}

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := snowflake.New(cfg.MachineID, cfg.DatacenterID, cfg.EpochMs)
	if err != nil {
		return nil, err
	}

	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync})
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.CheckpointIntervalMs) * time.Millisecond
	ckpt, err := checkpoint.Open(db, logger, interval)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rt := &Runtime{
		db:     db,
		gen:    gen,
		ckpt:   ckpt,
		config: cfg,
		logger: logger.WithComponent("runtime"),
	}

	// The 37-bit timestamp field exhausts ~4.35 years after the epoch.
	// Surface the horizon so deployers can schedule epoch rotation.
	exhaustion := time.UnixMilli(cfg.EpochMs + snowflake.MaxTimestampDelta)
	rt.logger.Info("id generator ready",
		logpkg.Int64("machine_id", cfg.MachineID),
		logpkg.Int64("datacenter_id", cfg.DatacenterID),
		logpkg.Int64("epoch_ms", cfg.EpochMs),
		logpkg.Str("timestamp_exhaustion", exhaustion.UTC().Format(time.RFC3339)),
	)
	if remaining := time.Until(exhaustion); remaining < 180*24*time.Hour {
		rt.logger.Warn("timestamp field nearing exhaustion; rotate the epoch",
			logpkg.Dur("remaining", remaining))
	}
	return rt, nil
}

// Close flushes the checkpoint and closes underlying resources.
func (r *Runtime) Close() error {
	var firstErr error
	if r.ckpt != nil {
		if err := r.ckpt.Close(); err != nil {
			firstErr = err
		}
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CheckHealth reports whether the instance can issue IDs: storage is open
// and the wall clock has not fallen behind the issuance high-water mark.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if now := time.Now().UnixMilli(); now < r.ckpt.HighWaterMs() {
		return &snowflake.ClockBackwardsError{
			LastMs:      r.ckpt.HighWaterMs(),
			NowMs:       now,
			BackwardsMs: r.ckpt.HighWaterMs() - now,
		}
	}
	return nil
}

// NextID issues one ID and records its millisecond in the checkpoint.
func (r *Runtime) NextID() (int64, error) {
	id, err := r.gen.NextID()
	if err != nil {
		return 0, err
	}
	r.ckpt.Record(r.gen.Timestamp(id))
	return id, nil
}

// NextIDString issues one ID in decimal string form.
func (r *Runtime) NextIDString() (string, error) {
	id, err := r.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// NextIDs issues count IDs. count must be positive and is capped by the
// configured MaxBatchSize.
func (r *Runtime) NextIDs(count int) ([]int64, error) {
	if count <= 0 {
		return nil, errors.New("runtime: count must be positive")
	}
	if count > r.config.MaxBatchSize {
		count = r.config.MaxBatchSize
	}
	out := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		id, err := r.NextID()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Generator exposes the underlying generator for decomposition queries.
func (r *Runtime) Generator() *snowflake.Generator { return r.gen }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
