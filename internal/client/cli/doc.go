// Package cli provides the interactive voting client.
//
// It wires configuration, the local secure store, the election API client
// and the voting services behind a small REPL. Typical flow: log in with a
// student id (or the device PIN), walk the ballot one position at a time,
// review the summary and finish, which logs out.
//
// In demo mode the bundled election service runs in-process behind the same
// HTTP client and nothing is written to disk.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
