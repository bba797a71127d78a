// Package cli provides the interactive listing client.
//
// It mirrors the server's catalog into a local catalog.Store through the
// REST collection API, lets visitors browse and filter it, and builds
// WhatsApp contact links. After logging in as admin the same REPL adds,
// edits, toggles and deletes listings through a catalog.Gateway, which
// reloads the local store after every change.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
