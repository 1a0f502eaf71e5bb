package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rzbill/flake/pkg/snowflake"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// MachineID identifies this generator instance, [0, 1023]. Externally
	// assigned; there is no allocator.
	MachineID int64 `json:"machineId"`
	// DatacenterID identifies the hosting datacenter, [0, 31].
	DatacenterID int64 `json:"datacenterId"`
	// EpochMs is the zero point for ID timestamps, milliseconds since the
	// Unix epoch. Must not be in the future.
	EpochMs int64 `json:"epochMs"`
	// MaxBatchSize caps the count accepted by the batch endpoint.
	MaxBatchSize int `json:"maxBatchSize"`
	// CheckpointIntervalMs controls how often the issuance high-water
	// millisecond is persisted for the restart clock fence.
	CheckpointIntervalMs int `json:"checkpointIntervalMs"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		MachineID:            0,
		DatacenterID:         0,
		EpochMs:              snowflake.DefaultEpochMs,
		MaxBatchSize:         1024,
		CheckpointIntervalMs: 100,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the identity parameters against the ID layout and clamps
// nonsensical tunables back to defaults.
func (c *Config) Validate() error {
	if err := snowflake.Validate(c.MachineID, c.DatacenterID, c.EpochMs); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = Default().MaxBatchSize
	}
	if c.CheckpointIntervalMs <= 0 {
		c.CheckpointIntervalMs = Default().CheckpointIntervalMs
	}
	return nil
}
