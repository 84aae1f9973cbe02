// Package state holds the catalog store shared by the UI and the
// one-shot commands.
//
// # Overview
//
// Store keeps the in-memory beer catalog plus the selected beer and its
// detail record. Writers call SetCatalog, Select and SetDetail; readers call
// Snapshot and receive a deep enough copy that they can't alias the store.
//
// # Failure semantics
//
// A failed catalog load leaves the catalog empty and records the error. It
// never keeps a partial result. A failed detail fetch leaves Detail nil.
// Neither is retried here.
//
// Detail results are keyed by beer id: SetDetail ignores results for a beer
// that is no longer selected, so a slow fetch can't overwrite the detail of
// a newer selection.
//
// # Concurrency
//
// All methods are safe for concurrent use. In the TUI, writes happen on the
// Bubble Tea update loop after the task that produced the result has been
// confirmed current.
package state
