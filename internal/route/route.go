// Package route maps navigation paths onto the views of the catalog:
// "/beers" shows the list, "/beer/:id" shows one beer, and anything else
// is not found. An empty path is the list.
package route

import (
	"net/url"
	"strings"
)

// View is the screen a route selects.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewNotFound
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "not-found"
	}
}

const (
	listPath     = "/beers"
	detailPrefix = "/beer/"
)

// Route is a resolved navigation target.
type Route struct {
	View View
	// BeerID is set for ViewDetail.
	BeerID string
	// Raw is the path as given, kept for the not-found message.
	Raw string
}

// List is the /beers route.
func List() Route {
	return Route{View: ViewList, Raw: listPath}
}

// Detail is the /beer/:id route.
func Detail(id string) Route {
	return Route{View: ViewDetail, BeerID: id, Raw: detailPrefix + url.PathEscape(id)}
}

// Parse resolves a path. A leading "#" (hash routing) is ignored, as are
// query strings and a trailing slash.
func Parse(path string) Route {
	raw := strings.TrimSpace(path)
	p := strings.TrimPrefix(raw, "#")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		return List()
	}
	if p == listPath {
		return Route{View: ViewList, Raw: raw}
	}
	if rest, ok := strings.CutPrefix(p, detailPrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		id, err := url.PathUnescape(rest)
		if err == nil && id != "" {
			return Route{View: ViewDetail, BeerID: id, Raw: raw}
		}
	}
	return Route{View: ViewNotFound, Raw: raw}
}

// Path is the canonical path for the route.
func (r Route) Path() string {
	switch r.View {
	case ViewList:
		return listPath
	case ViewDetail:
		return detailPrefix + url.PathEscape(r.BeerID)
	default:
		return r.Raw
	}
}
