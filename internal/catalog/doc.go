// Package catalog loads beer records from the static JSON resources that
// back the beer catalog.
//
// # Resources
//
//   - /data/beers/beers.json: JSON array of Beer, in display order
//   - /data/beers/details/{id}.json: one Beer with every field populated
//
// Image fields (img, label) are resource paths relative to /data. They are
// never fetched; ImagePath and LabelPath return the absolute paths for
// display.
//
// # Sources
//
// Two Fetcher implementations share the same layout:
//
//   - Client: HTTP, rooted at a base URL (scheme optional, defaults to
//     http://127.0.0.1:8000). Each request carries a User-Agent of
//     beerdex/<version> and a fresh X-Request-ID.
//   - DirSource: reads the layout from an fs.FS, typically the data
//     directory that `beerdex serve` publishes.
//
// # Errors
//
// Failures are classified with sentinel errors, matched with errors.Is:
//
//   - ErrTransport: the resource could not be fetched
//   - ErrParse: the body was not valid JSON for the target type
//   - ErrNotFound: no resource exists for the id (also matches ErrTransport)
//
// Neither source retries. Callers decide whether to surface or swallow the
// failure; the TUI logs it and keeps showing empty or stale data.
package catalog
