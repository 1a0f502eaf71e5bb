// Package runtime wires storage, config, and the ID generator into a
// single-node Flake instance. It exposes Open/Close, basic health checks,
// and the issuance operations consumed by the servers and CLI.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg, Logger: logger})
//	defer rt.Close()
//	id, _ := rt.NextID()
//	ids, _ := rt.NextIDs(100)
package runtime
