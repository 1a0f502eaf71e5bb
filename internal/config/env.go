package config

import (
	"os"
	"strconv"
)

// FromEnv overlays FLAKE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("FLAKE_MACHINE_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MachineID = n
		}
	}
	if v := os.Getenv("FLAKE_DATACENTER_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.DatacenterID = n
		}
	}
	if v := os.Getenv("FLAKE_EPOCH_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.EpochMs = n
		}
	}
	if v := os.Getenv("FLAKE_MAX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBatchSize = n
		}
	}
	if v := os.Getenv("FLAKE_CHECKPOINT_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CheckpointIntervalMs = n
		}
	}
}
