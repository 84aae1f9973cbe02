package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/beerdex/internal/catalog"
)

// Snapshot is a point-in-time copy of the catalog store.
type Snapshot struct {
	Beers       []catalog.Beer
	Loaded      bool
	LastUpdated time.Time
	LastError   error

	// SelectedID is the beer the detail route points at; empty on the list.
	SelectedID string
	// Detail is the loaded record for SelectedID, nil until it arrives or
	// when the fetch failed.
	Detail      *catalog.Beer
	DetailError error
}

// HasDetail reports whether the detail record for the selection is loaded.
func (s Snapshot) HasDetail() bool {
	return s.Detail != nil && s.SelectedID != ""
}

// Store holds the catalog and the selected beer's detail.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetCatalog replaces the catalog. When err is non-nil the catalog is left
// empty and the error recorded; there is no partial result.
func (s *Store) SetCatalog(beers []catalog.Beer, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loaded = true
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Beers = nil
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Beers = catalog.CloneBeers(beers)
	s.snapshot.LastError = nil
}

// Select points the detail at id and drops any previous detail record.
// An empty id clears the selection.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.SelectedID == id {
		return
	}
	s.snapshot.SelectedID = id
	s.snapshot.Detail = nil
	s.snapshot.DetailError = nil
}

// SetDetail records the outcome of a detail fetch for id. It reports
// whether the result was applied; results for a beer that is no longer
// selected are ignored.
func (s *Store) SetDetail(id string, beer catalog.Beer, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || id != s.snapshot.SelectedID {
		return false
	}
	if err != nil {
		s.snapshot.Detail = nil
		s.snapshot.DetailError = err
		return true
	}
	b := beer
	s.snapshot.Detail = &b
	s.snapshot.DetailError = nil
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Beers = catalog.CloneBeers(s.snapshot.Beers)
	if s.snapshot.Detail != nil {
		d := *s.snapshot.Detail
		snap.Detail = &d
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.DetailError != nil {
		snap.DetailError = fmt.Errorf("%w", s.snapshot.DetailError)
	}
	return snap
}
