// Package cli provides the interactive YuuSell command-line client.
//
// It wires configuration, the local session database, the HTTP client, the
// API modules and the state store, then exposes them two ways: a cobra
// command tree for one-shot use (quote, track, shipments, ...) and an
// interactive REPL started when no subcommand is given.
//
// Key features:
//   - Login / Register / email verification / Google and Facebook sign-in
//   - Quote a route, pick an option and book it as a shipment
//   - Pay through a hosted checkout link
//   - List and track shipments and warehouse packages
//   - Buy-and-ship requests and agent quote approval
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See NewRootCommand, App and runREPL for details.
package cli
