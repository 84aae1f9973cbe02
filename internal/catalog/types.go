package catalog

import (
	"fmt"
	"strconv"
)

// Beer mirrors the records published under /data/beers.
type Beer struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	Alcohol      float64 `json:"alcohol" yaml:"alcohol"`
	Img          string  `json:"img" yaml:"img"`
	Label        string  `json:"label,omitempty" yaml:"label,omitempty"`
	Brewery      string  `json:"brewery,omitempty" yaml:"brewery,omitempty"`
	Availability string  `json:"availability,omitempty" yaml:"availability,omitempty"`
	Style        string  `json:"style,omitempty" yaml:"style,omitempty"`
	Serving      string  `json:"serving,omitempty" yaml:"serving,omitempty"`
}

// AlcoholLabel formats the alcohol content the way the detail view shows it.
func (b Beer) AlcoholLabel() string {
	return strconv.FormatFloat(b.Alcohol, 'f', -1, 64) + "%"
}

// ImagePath returns the resource path of the bottle image.
func (b Beer) ImagePath() string {
	return resourcePath(b.Img)
}

// LabelPath returns the resource path of the label image.
func (b Beer) LabelPath() string {
	return resourcePath(b.Label)
}

// String is used by log fields and the plain list output.
func (b Beer) String() string {
	return fmt.Sprintf("%s (%s)", b.Name, b.AlcoholLabel())
}

// CloneBeers returns a copy of the slice so callers can't alias the store.
func CloneBeers(beers []Beer) []Beer {
	if len(beers) == 0 {
		return nil
	}
	dup := make([]Beer, len(beers))
	copy(dup, beers)
	return dup
}

func resourcePath(rel string) string {
	if rel == "" {
		return ""
	}
	return dataPrefix + "/" + rel
}
