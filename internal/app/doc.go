// Package app is the composition root for roster.
//
// # Overview
//
// Run wires configuration, logging, the users client, the record store and
// the TUI together:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read ~/.config/roster/config.toml
//	       ├─────> setupLogging()    Route log output to log_file (or discard)
//	       ├─────> users.NewClient() HTTP client for the users resource
//	       ├─────> store.New()       In-memory cache over the client
//	       ├─────> prefs.Load()      Theme and row density
//	       └─────> ui.Run()          Start TUI (blocks)
//
// List and Logs reuse the same wiring for the non-interactive subcommands.
//
// # Configuration
//
// Options fields override the config file when non-zero:
//
//   - ConfigPath: path to config.toml (default: ~/.config/roster/config.toml)
//   - BaseURL: service root (default: https://jsonplaceholder.typicode.com)
//   - LogFile: where the standard logger writes while the TUI runs
//   - Timeout: per-request timeout (default: none)
//
// # Logging
//
// The terminal belongs to the TUI, so the standard logger is pointed at the
// log file through tea.LogToFile, or discarded when no file is configured.
package app
