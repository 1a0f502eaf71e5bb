package serverrun

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/flake/internal/config"
	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	"github.com/rzbill/flake/pkg/snowflake"
)

func TestGetenvDefault(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{name: "set", key: "FLAKE_TEST_VAR", def: "default", envValue: "env_value", expected: "env_value"},
		{name: "unset", key: "FLAKE_TEST_VAR_UNSET", def: "default", envValue: "", expected: "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				_ = os.Setenv(tt.key, tt.envValue)
			} else {
				_ = os.Unsetenv(tt.key)
			}
			t.Cleanup(func() { _ = os.Unsetenv(tt.key) })

			if got := getenvDefault(tt.key, tt.def); got != tt.expected {
				t.Errorf("getenvDefault(%s, %s) = %s, expected %s", tt.key, tt.def, got, tt.expected)
			}
		})
	}
}

func TestOptionsDataDirFallback(t *testing.T) {
	opts := Options{DataDir: ""}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.DataDir == "" {
		t.Error("expected DataDir to be set after fallback")
	}

	opts = Options{DataDir: "/custom/data"}
	if opts.DataDir != "/custom/data" {
		t.Errorf("expected provided DataDir preserved, got %s", opts.DataDir)
	}
}

func TestDataDirStoreSubdirectory(t *testing.T) {
	baseDir := "/tmp/flake"
	storeDir := filepath.Join(baseDir, "store")
	if storeDir != "/tmp/flake/store" {
		t.Errorf("store dir: %s", storeDir)
	}
}

func TestRunRejectsInvalidIdentity(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.DatacenterID = 32

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := Run(ctx, Options{
		DataDir:  t.TempDir(),
		HTTPAddr: ":0",
		Fsync:    pebblestore.FsyncModeNever,
		Config:   cfg,
	})
	if !errors.Is(err, snowflake.ErrInvalidDatacenterID) {
		t.Fatalf("expected invalid datacenter id, got %v", err)
	}
}

// TestRunIntegration verifies Run starts and shuts down cleanly. Minimal by
// design since it binds a real listener.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Run(ctx, Options{
		DataDir:  t.TempDir(),
		HTTPAddr: ":0",
		Fsync:    pebblestore.FsyncModeNever,
		Config:   cfgpkg.Default(),
	})
	if err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
