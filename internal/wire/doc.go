// Package wire drives the attachment handshake against a remote database
// server: it advertises the candidate protocol versions, resolves the
// server's accept reply through the descriptor collection, runs the
// authentication plugin rounds, performs the optional transport encryption
// switch, and finally attaches to a database or service manager.
//
// A Connection owns its transport and stream state exclusively and is not
// safe for concurrent use; independent connections share nothing but the
// process-wide plugin and descriptor registries, which are read-only after
// startup.
package wire
