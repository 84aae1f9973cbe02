package catalog

import "errors"

// Failure classes for catalog and detail fetches. A missing detail resource
// matches both ErrNotFound and ErrTransport.
var (
	ErrTransport = errors.New("transport failure")
	ErrParse     = errors.New("parse failure")
	ErrNotFound  = errors.New("not found")
)
