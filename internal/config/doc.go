// Package config loads roster's TOML configuration.
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/roster/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Example file:
//
//	base_url = "https://jsonplaceholder.typicode.com"
//	timeout_seconds = 0
//	log_file = "~/.local/state/roster/roster.log"
//
// A zero timeout means requests never time out, so a call that never settles
// leaves the UI on its busy screen. Command-line flags override these values
// in package app.
package config
