// Package cli provides the interactive notely command-line client.
//
// It wires configuration, the HTTP API client and the session services into a
// read-eval-print loop. On start it tries to resume the session saved in the
// token file; otherwise the user registers or logs in.
//
// Key features:
//   - Register / Login / Logout
//   - List, search, show, add, edit and delete notes
//   - Show and edit the profile, upload a profile picture
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
