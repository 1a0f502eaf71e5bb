// Package httpserver provides the REST gateway for Flake: health, ID
// issuance (single and batch), and ID decomposition, as JSON endpoints.
//
// IDs travel as base-10 decimal strings. A 64-bit ID does not survive a
// round-trip through a JSON number in most runtimes.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: config.Default()})
//	s := httpserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
