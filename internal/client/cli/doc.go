// Package cli provides the interactive cpguide command-line client.
//
// It wires configuration, the local session database, the API client and the
// services, then runs a REPL. Typical flow: restore the session from disk,
// log in or sign up, then inspect or refresh topic progress.
//
// Key features:
//   - Login / Signup / Logout
//   - Status with token subject and expiry
//   - Progress table, solved problems per topic, topic completion
//   - Manual progress refresh
//   - Light / dark color mode
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
