// Package cli provides the interactive command-line client for the auth server.
//
// It wires configuration, the HTTP API client and an interactive REPL. The
// password typed at the prompt is read without echo, encrypted with the
// shared cipher key and sent as the credential payload; the server keeps the
// refresh token in a cookie and the CLI keeps the access token in memory.
//
// Commands: signup, login, refresh, verify, logout, help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
