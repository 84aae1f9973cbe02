package ui

// Layout thresholds and sizes.
const (
	// LayoutCompactWidth hides the description column below this width.
	LayoutCompactWidth = 100

	// chromeHeight is the header plus the command bar.
	chromeHeight = 2

	// listHeaderLines is search, sort and count lines plus a blank line.
	listHeaderLines = 4

	// strongAlcohol is the percentage from which alcohol is highlighted.
	strongAlcohol = 8.0
)

// Task kinds.
const (
	kindCatalog = "catalog"
	kindDetail  = "detail"
)
