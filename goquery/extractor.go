// Package goquery implements extraction of the device catalog from the
// OpenWrt table of hardware using goquery and CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/odin"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	// RowSelector matches the rows of the device table.
	RowSelector = ".table.dataaggregation tr"

	// HeaderRows is the number of leading header and filter rows.
	HeaderRows = 2

	// DefaultConcurrency is the number of rows extracted in parallel.
	DefaultConcurrency = 4
)

// Positions of the data fields after the row-number cell is dropped.
const (
	brandField = iota
	modelField
	hardwareField
	firmwareField
	referenceField
	fieldCount
)

// Ensure Extractor implements odin.Extractor at compile time.
var _ odin.Extractor = (*Extractor)(nil)

// Extractor extracts the device catalog from the HTML of the table of hardware.
type Extractor struct {
	rootURL     string
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRootURL sets the origin prefixed to relative links.
// Defaults to odin.RootURL.
func WithRootURL(rootURL string) Option {
	return func(e *Extractor) {
		e.rootURL = rootURL
	}
}

// WithConcurrency sets how many rows are extracted in parallel.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		e.concurrency = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		rootURL:     odin.RootURL,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	return e
}

// row is the extraction result of one table row.
type row struct {
	ok    bool
	brand string
	model *odin.Model
	err   error
}

// Extract parses htmlContent and returns the catalog of the device table.
// Rows are extracted in parallel but aggregated in document order.
func (e *Extractor) Extract(htmlContent string) (*odin.Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// Unparsable markup holds no rows.
		return nil, nil
	}

	trs := doc.Find(RowSelector)
	if trs.Length() <= HeaderRows {
		return nil, nil
	}
	trs = trs.Slice(HeaderRows, goquery.ToEnd)

	rows := make([]row, trs.Length())
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	trs.Each(func(i int, tr *goquery.Selection) {
		g.Go(func() error {
			rows[i] = e.extractRow(i+HeaderRows, tr)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := odin.NewAggregator()
	for _, r := range rows {
		if r.err != nil {
			return nil, r.err
		}
		if r.ok {
			agg.Add(r.brand, r.model)
		}
	}
	return agg.Catalog(), nil
}

// extractRow converts one table row. Rows without any data cell are skipped.
// Cells beyond the ones present keep their empty defaults.
func (e *Extractor) extractRow(index int, tr *goquery.Selection) row {
	cells := tr.Find("td")
	if cells.Length() < 2 {
		return row{}
	}
	// Drop the row-number cell and the trailing edit-link cell.
	end := cells.Length()
	if end > fieldCount+1 {
		end = fieldCount + 1
	}
	cells = cells.Slice(1, end)

	field := func(i int) *goquery.Selection {
		if i >= cells.Length() {
			return nil
		}
		return cells.Eq(i)
	}

	var (
		name      string
		hardware  = []string{}
		firmware  odin.Version
		reference string
	)

	brand := firstText(field(brandField))

	if cell := field(modelField); cell != nil {
		name = firstText(cell)
	}

	if cell := field(hardwareField); cell != nil {
		hardware = splitVersions(firstText(cell))
	}

	if cell := field(firmwareField); cell != nil {
		label, link, err := e.anchor(cell)
		if err != nil {
			return row{err: odin.Errorf(odin.EINVALID, "row %d: firmware %s", index, odin.ErrorMessage(err))}
		}
		firmware = odin.Version{Label: label, Link: link}
	}

	if cell := field(referenceField); cell != nil {
		_, link, err := e.anchor(cell)
		if err != nil {
			return row{err: odin.Errorf(odin.EINVALID, "row %d: reference page %s", index, odin.ErrorMessage(err))}
		}
		reference = link
	}

	return row{
		ok:    true,
		brand: brand,
		model: odin.NewModel(name, hardware, firmware, reference),
	}
}

// anchor returns the text and absolute link of the first anchor in cell.
// A cell without an anchor yields empty values; an anchor without an href
// is an error.
func (e *Extractor) anchor(cell *goquery.Selection) (label, link string, err error) {
	a := cell.Find("a").First()
	if a.Length() == 0 {
		return "", "", nil
	}
	href, ok := a.Attr("href")
	if !ok {
		return "", "", odin.Errorf(odin.EINVALID, "anchor has no href")
	}
	return firstText(a), e.rootURL + href, nil
}

// firstText returns the first text node below the selection verbatim,
// whitespace included. It returns "" for a nil selection or one without text.
func firstText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	for _, n := range sel.Nodes {
		if s, ok := walkText(n); ok {
			return s
		}
	}
	return ""
}

func walkText(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data, true
		}
		if s, ok := walkText(c); ok {
			return s, true
		}
	}
	return "", false
}

// splitVersions splits a comma-separated revision list, trimming each entry.
// A blank cell yields an empty list.
func splitVersions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	versions := make([]string, 0, len(parts))
	for _, p := range parts {
		versions = append(versions, strings.TrimSpace(p))
	}
	return versions
}
