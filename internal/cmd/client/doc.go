// Package client implements the Flake CLI client subcommands. They talk to
// a running server over its HTTP API.
package client
