package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clientcmd "github.com/rzbill/flake/internal/cmd/client"
	serverrun "github.com/rzbill/flake/internal/cmd/server"
	cfgpkg "github.com/rzbill/flake/internal/config"
	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flake",
		Short: "Flake ID service CLI",
		Long:  "Flake mints unique, time-ordered 64-bit IDs. This CLI manages the server and basic client operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start flake server (HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			machineID, _ := cmd.Flags().GetInt64("machine-id")
			datacenterID, _ := cmd.Flags().GetInt64("datacenter-id")
			epochMs, _ := cmd.Flags().GetInt64("epoch-ms")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|never")
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			// Flags win over file and env.
			if cmd.Flags().Changed("machine-id") {
				cfg.MachineID = machineID
			}
			if cmd.Flags().Changed("datacenter-id") {
				cfg.DatacenterID = datacenterID
			}
			if cmd.Flags().Changed("epoch-ms") {
				cfg.EpochMs = epochMs
			}

			if logLevel != "" {
				_ = os.Setenv("FLAKE_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("FLAKE_LOG_FORMAT", logFormat)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:  dataDir,
				HTTPAddr: httpAddr,
				Fsync:    mode,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("config", os.Getenv("FLAKE_CONFIG"), "Path to JSON config file")
	serverStartCmd.Flags().Int64("machine-id", 0, "Machine id [0, 1023]")
	serverStartCmd.Flags().Int64("datacenter-id", 0, "Datacenter id [0, 31]")
	serverStartCmd.Flags().Int64("epoch-ms", 0, "Epoch in ms since Unix epoch (must not be in the future)")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode for checkpoint writes: always|never")
	serverStartCmd.Flags().String("log-level", os.Getenv("FLAKE_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("FLAKE_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// id client commands
	rootCmd.AddCommand(clientcmd.NewIDCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("FLAKE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
