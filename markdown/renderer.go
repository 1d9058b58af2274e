// Package markdown renders catalog reports as GitHub-flavored Markdown using
// github.com/nao1215/markdown.
package markdown

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/odin"
	md "github.com/nao1215/markdown"
)

// Ensure Renderer implements odin.Renderer at compile time.
var _ odin.Renderer = (*Renderer)(nil)

// Renderer writes catalog reports in Markdown.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBrands writes a table of brands with their model counts.
func (r *Renderer) RenderBrands(w io.Writer, catalog *odin.Catalog) error {
	doc := md.NewMarkdown(w)
	doc.H1("OpenWrt Supported Devices")
	doc.PlainText(odin.FormatBrandCount(catalog.BrandCount()))

	if catalog.BrandCount() > 0 {
		rows := make([][]string, 0, catalog.BrandCount())
		for i, b := range catalog.Brands {
			rows = append(rows, []string{strconv.Itoa(i + 1), cell(brandName(b)), strconv.Itoa(b.ModelCount())})
		}
		doc.PlainText("")
		doc.Table(md.TableSet{
			Header: []string{"#", "Brand", "Models"},
			Rows:   rows,
		})
	}

	return doc.Build()
}

// RenderModels writes one section per brand with a table of its models.
func (r *Renderer) RenderModels(w io.Writer, brands []*odin.Brand) error {
	doc := md.NewMarkdown(w)

	if len(brands) == 0 {
		doc.PlainText(odin.FormatBrandCount(0))
		return doc.Build()
	}

	for _, b := range brands {
		doc.H2(brandName(b))
		doc.PlainText(fmt.Sprintf("Found %d model(s)!", b.ModelCount()))
		doc.PlainText("")

		rows := make([][]string, 0, b.ModelCount())
		for i, m := range b.Models {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				cell(m.Name),
				cell(strings.Join(m.HardwareVersions, ", ")),
				link(m.FirmwareVersion.Label, m.FirmwareVersion.Link),
				link(m.ReferencePage, m.ReferencePage),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"#", "Model", "Hardware", "Firmware", "Reference Page"},
			Rows:   rows,
		})
		doc.PlainText("")
	}

	return doc.Build()
}

func brandName(b *odin.Brand) string {
	if b.Name == "" {
		return "(unnamed)"
	}
	return b.Name
}

// cell escapes pipes and substitutes empty values.
func cell(s string) string {
	if s == "" {
		return odin.NotAvailable
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func link(text, url string) string {
	if url == "" {
		return cell(text)
	}
	if text == "" {
		text = url
	}
	return md.Link(cell(text), url)
}
