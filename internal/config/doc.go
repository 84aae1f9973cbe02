// Package config loads beerdex's TOML configuration.
//
// # Discovery
//
// Load reads the given path, or ~/.config/beerdex/config.toml when the path
// is blank. A missing file is not an error: Default is returned instead. A
// file that exists but fails to parse is an error mentioning "parse config".
//
// # Fields
//
//	base_url = "http://127.0.0.1:8000"   # where the catalog is published
//	request_timeout = 5                  # seconds, per HTTP request
//	log_file = "~/.local/state/beerdex/beerdex.log"
//	log_level = "info"                   # debug, info, warn, error
//	data_dir = "./data"                  # tree served by `beerdex serve`
//	listen = "127.0.0.1:8000"            # address for `beerdex serve`
//
// Every field is optional and blank values fall back to the defaults above.
// Paths get tilde expansion and are made absolute. Command-line flags
// override whatever Load returns; that merge happens in cmd/beerdex.
package config
