package view

import (
	"github.com/five82/beerdex/internal/catalog"
)

// Query is the user-controlled part of the list: filter text, sort field
// and direction.
type Query struct {
	Text       string
	SortField  SortField
	Descending bool
}

// DefaultQuery matches everything, sorted by name ascending.
func DefaultQuery() Query {
	return Query{SortField: SortName}
}

// ListState is everything the list view derives from. Reducers return an
// updated copy and never mutate the receiver's catalog.
type ListState struct {
	Catalog []catalog.Beer
	Query   Query
}

// NewListState returns an empty catalog with the default query.
func NewListState() ListState {
	return ListState{Query: DefaultQuery()}
}

// SetCatalog replaces the catalog.
func (s ListState) SetCatalog(beers []catalog.Beer) ListState {
	s.Catalog = catalog.CloneBeers(beers)
	return s
}

// SetQuery replaces the filter text.
func (s ListState) SetQuery(text string) ListState {
	s.Query.Text = text
	return s
}

// SetSortField selects the sort field.
func (s ListState) SetSortField(field SortField) ListState {
	s.Query.SortField = field
	return s
}

// CycleSortField advances to the next entry of SortFields.
func (s ListState) CycleSortField() ListState {
	for i, f := range SortFields {
		if f == s.Query.SortField {
			s.Query.SortField = SortFields[(i+1)%len(SortFields)]
			return s
		}
	}
	s.Query.SortField = SortFields[0]
	return s
}

// SetDescending sets the sort direction.
func (s ListState) SetDescending(descending bool) ListState {
	s.Query.Descending = descending
	return s
}

// ToggleDescending flips the sort direction.
func (s ListState) ToggleDescending() ListState {
	s.Query.Descending = !s.Query.Descending
	return s
}

// ViewModel is what the list view renders.
type ViewModel struct {
	Beers []catalog.Beer
	// Count is the number of beers matching the query ("current count").
	Count int
	Total int
	Query Query
}

// Empty reports whether nothing matched.
func (vm ViewModel) Empty() bool {
	return vm.Count == 0
}

// DeriveView filters then sorts the catalog. Call it after every state
// change.
func DeriveView(s ListState) ViewModel {
	filtered := Filter(s.Catalog, s.Query.Text)
	return ViewModel{
		Beers: Sort(filtered, s.Query.SortField, s.Query.Descending),
		Count: len(filtered),
		Total: len(s.Catalog),
		Query: s.Query,
	}
}
