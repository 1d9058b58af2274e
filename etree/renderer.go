// Package etree renders catalogs as XML and reads them back using
// github.com/beevik/etree.
package etree

import (
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/odin"
)

// Ensure types implement their interfaces at compile time.
var (
	_ odin.Renderer  = (*Renderer)(nil)
	_ odin.Extractor = (*Extractor)(nil)
)

// Renderer writes catalog reports as XML documents.
type Renderer struct {
	indent int
}

// NewRenderer creates a new Renderer indenting with two spaces.
func NewRenderer() *Renderer {
	return &Renderer{indent: 2}
}

// RenderBrands writes a <catalog> of <brand> elements carrying their model
// counts but no models.
func (r *Renderer) RenderBrands(w io.Writer, catalog *odin.Catalog) error {
	doc, root := newDocument(catalog.BrandCount())
	if catalog != nil {
		for _, b := range catalog.Brands {
			el := root.CreateElement("brand")
			el.CreateAttr("name", b.Name)
			el.CreateAttr("models", strconv.Itoa(b.ModelCount()))
		}
	}
	return r.write(w, doc)
}

// RenderModels writes a <catalog> holding the full model listing of brands.
func (r *Renderer) RenderModels(w io.Writer, brands []*odin.Brand) error {
	doc, root := newDocument(len(brands))
	for _, b := range brands {
		writeBrand(root, b)
	}
	return r.write(w, doc)
}

// WriteCatalog writes the complete catalog. ReadCatalog reverses it.
func (r *Renderer) WriteCatalog(w io.Writer, catalog *odin.Catalog) error {
	if catalog == nil {
		return r.RenderModels(w, nil)
	}
	return r.RenderModels(w, catalog.Brands)
}

func (r *Renderer) write(w io.Writer, doc *etree.Document) error {
	doc.Indent(r.indent)
	_, err := doc.WriteTo(w)
	return err
}

func newDocument(brands int) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("catalog")
	root.CreateAttr("brands", strconv.Itoa(brands))
	return doc, root
}

func writeBrand(parent *etree.Element, b *odin.Brand) {
	el := parent.CreateElement("brand")
	el.CreateAttr("name", b.Name)
	for _, m := range b.Models {
		model := el.CreateElement("model")
		model.CreateAttr("name", m.Name)

		hw := model.CreateElement("hardware")
		for _, v := range m.HardwareVersions {
			hw.CreateElement("version").SetText(v)
		}

		fw := model.CreateElement("firmware")
		fw.CreateAttr("label", m.FirmwareVersion.Label)
		fw.CreateAttr("link", m.FirmwareVersion.Link)

		model.CreateElement("reference").SetText(m.ReferencePage)
	}
}

// ReadCatalog parses a document written by WriteCatalog. A document without
// brands yields a nil catalog.
func ReadCatalog(r io.Reader) (*odin.Catalog, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, odin.Errorf(odin.EINVALID, "failed to parse XML: %v", err)
	}

	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, odin.Errorf(odin.EINVALID, "missing catalog element")
	}

	agg := odin.NewAggregator()
	for _, b := range root.SelectElements("brand") {
		name := b.SelectAttrValue("name", "")
		models := b.SelectElements("model")
		if len(models) == 0 {
			continue
		}
		for _, m := range models {
			versions := []string{}
			if hw := m.SelectElement("hardware"); hw != nil {
				for _, v := range hw.SelectElements("version") {
					versions = append(versions, v.Text())
				}
			}

			var firmware odin.Version
			if fw := m.SelectElement("firmware"); fw != nil {
				firmware.Label = fw.SelectAttrValue("label", "")
				firmware.Link = fw.SelectAttrValue("link", "")
			}

			var reference string
			if ref := m.SelectElement("reference"); ref != nil {
				reference = ref.Text()
			}

			agg.Add(name, odin.NewModel(m.SelectAttrValue("name", ""), versions, firmware, reference))
		}
	}

	return agg.Catalog(), nil
}

// Extractor reads a catalog exported by WriteCatalog in place of the device
// table.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses content as an exported catalog.
func (e *Extractor) Extract(content string) (*odin.Catalog, error) {
	return ReadCatalog(strings.NewReader(content))
}
