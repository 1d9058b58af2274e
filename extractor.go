package odin

// Extractor turns the HTML of the device table into a catalog.
type Extractor interface {
	// Extract parses html and returns the catalog found in it.
	//
	// A nil catalog with a nil error means the document holds no qualifying
	// rows, including the case where it cannot be parsed as markup at all.
	// An anchor without an href is a markup contract breach and fails the
	// whole run with EINVALID.
	Extract(html string) (*Catalog, error)
}
