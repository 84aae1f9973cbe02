// Package app is the composition root for beerdex.
//
// # Overview
//
// Setup resolves configuration and builds an Env: the logrus logger writing
// to the log file, the shared state.Store, and the catalog source. The
// source is a catalog.Client over HTTP unless a data directory was given,
// in which case files are read from disk.
//
// # Entry points
//
//   - Run: the interactive TUI (blocks until quit)
//   - Env.List and Env.Show: one-shot catalog and detail loads for the
//     non-interactive commands
//   - Env.Serve: the static data server
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()      config.toml plus flag overrides
//	       ├─────> logging.Open()     append to the log file
//	       └─────> newFetcher()       Client or DirSource
//
//	Run()   ─> prefs.Load() ─> ui.Run()
//	List()  ─> FetchCatalog ─> store.SetCatalog ─> view.DeriveView
//	Show()  ─> store.Select ─> FetchDetail ─> store.SetDetail
//	Serve() ─> .env / PORT ─> server.New ─> ListenAndServe
//
// # Error Handling
//
// Configuration and logging failures are returned from Setup. Fetch
// failures are logged; Run leaves them to the UI, which never surfaces them,
// while List and Show return them so the command exits non-zero.
package app
