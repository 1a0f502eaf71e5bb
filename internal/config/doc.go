// Package config provides loading and environment overlay for Flake runtime
// configuration. It exposes a Default() baseline, JSON file loading, and a
// FLAKE_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/flake.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil {
//	    // abort startup: an ID service must never run with a bad identity
//	}
package config
