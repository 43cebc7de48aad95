// Package config loads the vogue client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vogue/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_url = "http://localhost:5000"
//	data_dir = "~/.local/share/vogue"
//	session_backend = "bolt"   # bolt | file | memory
//	log_file = "~/.local/share/vogue/vogue.log"
//	log_level = "info"
//	log_mode = "development"   # development | production
//	request_timeout = "10s"
//	catalog_refresh = "5m"     # unset or "0s" disables
//	theme = "Nightfox"         # Nightfox | Kanagawa | Slate
//
// Every field is optional. Tilde expansion is performed on data_dir and
// log_file. log_file defaults to vogue.log inside data_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and unparsable durations.
// Missing config files are not an error.
package config
