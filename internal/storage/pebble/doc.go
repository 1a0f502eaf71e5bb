// Package pebblestore wraps a Pebble database with the small key/value
// surface Flake needs: durable point writes and reads for checkpoint state.
//
// Example:
//
//	db, _ := pebblestore.Open(pebblestore.Options{DataDir: "./data/store", Fsync: pebblestore.FsyncModeAlways})
//	defer db.Close()
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, ok, _ := db.Get([]byte("k"))
package pebblestore
