// Package serverrun starts the Flake server processes: it opens the runtime,
// builds the process-wide logger, serves HTTP, and handles graceful
// shutdown on SIGINT/SIGTERM.
package serverrun
