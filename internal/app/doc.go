// Package app provides the orchestration layer for the vogue storefront.
//
// # Overview
//
// This package wires configuration, logging, the backend client, session
// storage, the state store and the UI together. It is the composition root:
// every dependency is built here and handed to the packages that use it.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/vogue/config.toml
//	       ├─────> logging.New()        zap logger writing a rotated file
//	       ├─────> api.NewClient()      HTTP client for the storefront API
//	       ├─────> session.Open()       bolt, file or memory session storage
//	       ├─────> state.New()          Store seeded with the stored session
//	       ├─────> StartRefresher()     Optional background catalog reloads
//	       └─────> ui.Run()             Start TUI (blocks; loads the catalog)
//
// # Catalog Refresh
//
// When catalog_refresh is set, a goroutine calls LoadProducts on that
// cadence. A failed reload doubles the wait, up to ten minutes, and the next
// success restores the configured interval. Reloads are skipped while the
// admin panel is open, since a reload discards any product creation still in
// flight.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file or log level
//   - Unusable API URL
//   - Session storage that cannot be opened
//
// Recoverable errors (logged, the UI keeps running):
//   - Catalog load and refresh failures
//   - Session storage read or write failures after startup
//
// The backend is not contacted before the UI starts, so vogue opens even when
// the API is down and reports the failed load in the command bar.
package app
