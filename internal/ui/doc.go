// Package ui is the Bubble Tea terminal interface of beerdex.
//
// # Views
//
// The model shows one of three routes. /beers lists the catalog with a
// search box, sort controls and the "Number of beers in list" count.
// /beer/:id shows one beer's detail in a scrollable viewport. Any other
// path, reachable through the ":" route prompt, shows "Route not found".
//
// # State flow
//
// List state lives in a view.ListState. Key handlers apply its reducers and
// then call view.DeriveView, so the rendered rows and count always come from
// the same derivation. The catalog and the selected beer's detail are kept
// in a state.Store.
//
// # Fetches
//
// Fetches run as tea.Cmd goroutines started through a task.Group. A new
// fetch of the same kind cancels the previous one. Leaving the detail view
// cancels its fetch; quitting closes the group. Results carry their
// task handle and are dropped unless that task is still current, so the
// latest request wins even when an older response arrives last.
//
// Failures never surface as an error state. They are logged, the list stays
// empty and the detail view shows "No beer data".
package ui
