package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/beerdex/internal/catalog"
)

// SortField names the beer field the list is ordered by.
type SortField string

const (
	SortName    SortField = "name"
	SortAlcohol SortField = "alcohol"
)

// SortFields lists the selectable fields in menu order.
var SortFields = []SortField{SortName, SortAlcohol}

// Label is the menu label for the field.
func (f SortField) Label() string {
	switch f {
	case SortAlcohol:
		return "Alcohol content"
	default:
		return "Alphabetical"
	}
}

// ParseSortField accepts a field name, case-insensitively.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortName, "":
		return SortName, nil
	case SortAlcohol:
		return SortAlcohol, nil
	}
	return "", fmt.Errorf("unknown sort field %q (want name or alcohol)", s)
}

// Compare is the three-way comparison of a and b on field: 0 when equal,
// -1 when a sorts first, +1 when b does. descending inverts the result.
// Names compare byte-wise, alcohol numerically. Unknown fields compare by
// name.
func Compare(a, b catalog.Beer, field SortField, descending bool) int {
	var c int
	switch field {
	case SortAlcohol:
		c = cmp.Compare(a.Alcohol, b.Alcohol)
	default:
		c = strings.Compare(a.Name, b.Name)
	}
	if descending {
		return -c
	}
	return c
}

// Sort returns a sorted copy of beers. Ties keep their input order.
func Sort(beers []catalog.Beer, field SortField, descending bool) []catalog.Beer {
	out := slices.Clone(beers)
	slices.SortStableFunc(out, func(a, b catalog.Beer) int {
		return Compare(a, b, field, descending)
	})
	return out
}
