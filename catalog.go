package odin

import "strings"

// Version is a firmware release paired with the page describing it.
// Link is always absolute when non-empty.
//
// Example: Version{Label: "19.07.2", Link: "https://openwrt.org/releases/19.07.2"}
type Version struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

// IsZero reports whether the version carries neither a label nor a link.
func (v Version) IsZero() bool {
	return v.Label == "" && v.Link == ""
}

// Model is one hardware model of a brand.
//
// HardwareVersions keeps the revision markers (e.g. "V1", "Rev 05") in source
// order. It is empty, never nil, when the source cell was empty.
type Model struct {
	Name             string   `json:"name"`
	HardwareVersions []string `json:"hardwareVersions"`
	FirmwareVersion  Version  `json:"firmwareVersion"`
	ReferencePage    string   `json:"referencePage"`
}

// NewModel returns a model, normalizing a nil hardware version list to an
// empty one.
func NewModel(name string, hardwareVersions []string, firmware Version, referencePage string) *Model {
	if hardwareVersions == nil {
		hardwareVersions = []string{}
	}
	return &Model{
		Name:             name,
		HardwareVersions: hardwareVersions,
		FirmwareVersion:  firmware,
		ReferencePage:    referencePage,
	}
}

// Brand is a manufacturer together with all its known models, in the order
// they were first seen in the device table.
type Brand struct {
	Name   string   `json:"name"`
	Models []*Model `json:"models"`
}

// ModelCount returns the number of models of the brand.
func (b *Brand) ModelCount() int {
	if b == nil {
		return 0
	}
	return len(b.Models)
}

// Catalog is the result of one extraction run. Brands are ordered by first
// appearance in the device table.
//
// A nil *Catalog means "no data": the document had no qualifying rows.
type Catalog struct {
	Brands []*Brand `json:"brands"`
}

// BrandCount returns the number of brands. Safe to call on a nil catalog.
func (c *Catalog) BrandCount() int {
	if c == nil {
		return 0
	}
	return len(c.Brands)
}

// ModelCount returns the number of models across all brands.
func (c *Catalog) ModelCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, b := range c.Brands {
		n += b.ModelCount()
	}
	return n
}

// FindBrand returns the first brand whose name matches case-insensitively,
// or nil if there is none.
func (c *Catalog) FindBrand(name string) *Brand {
	if c == nil {
		return nil
	}
	for _, b := range c.Brands {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

// Aggregator groups extracted models by brand name. It is scoped to a single
// extraction run and must not be shared between runs.
//
// Grouping is by exact, case-sensitive brand name. Brands and models keep
// first-seen order; models are never merged or deduplicated.
type Aggregator struct {
	index  map[string]int
	brands []*Brand
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// Add appends model to the bucket of the named brand, creating the bucket
// the first time the name is seen.
func (a *Aggregator) Add(brand string, model *Model) {
	i, ok := a.index[brand]
	if !ok {
		i = len(a.brands)
		a.index[brand] = i
		a.brands = append(a.brands, &Brand{Name: brand, Models: []*Model{}})
	}
	a.brands[i].Models = append(a.brands[i].Models, model)
}

// Catalog materializes the aggregated brands. It returns nil when no row was
// added so callers can tell "nothing found" apart from a catalog.
func (a *Aggregator) Catalog() *Catalog {
	if len(a.brands) == 0 {
		return nil
	}
	brands := make([]*Brand, len(a.brands))
	copy(brands, a.brands)
	return &Catalog{Brands: brands}
}
