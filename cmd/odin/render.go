package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/odin"
	"github.com/fwojciec/odin/etree"
	"github.com/fwojciec/odin/markdown"
)

// newRenderer returns the renderer for an output format.
func newRenderer(format string) (odin.Renderer, error) {
	switch format {
	case "", "text":
		return textRenderer{}, nil
	case "markdown":
		return markdown.NewRenderer(), nil
	case "json":
		return jsonRenderer{}, nil
	case "xml":
		return etree.NewRenderer(), nil
	default:
		return nil, odin.Errorf(odin.EINVALID, "unknown format %q", format)
	}
}

// textRenderer writes the fixed-width terminal layout.
type textRenderer struct{}

func (textRenderer) RenderBrands(w io.Writer, catalog *odin.Catalog) error {
	_, err := io.WriteString(w, odin.FormatBrands(catalog))
	return err
}

func (textRenderer) RenderModels(w io.Writer, brands []*odin.Brand) error {
	if len(brands) == 0 {
		_, err := io.WriteString(w, odin.FormatBrandCount(0)+"\n")
		return err
	}
	for _, b := range brands {
		if _, err := io.WriteString(w, odin.FormatBrand(b)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// jsonRenderer writes indented JSON.
type jsonRenderer struct{}

type brandSummary struct {
	Name   string `json:"name"`
	Models int    `json:"models"`
}

func (jsonRenderer) RenderBrands(w io.Writer, catalog *odin.Catalog) error {
	summaries := make([]brandSummary, 0, catalog.BrandCount())
	if catalog != nil {
		for _, b := range catalog.Brands {
			summaries = append(summaries, brandSummary{Name: b.Name, Models: b.ModelCount()})
		}
	}
	return encodeJSON(w, summaries)
}

func (jsonRenderer) RenderModels(w io.Writer, brands []*odin.Brand) error {
	if brands == nil {
		brands = []*odin.Brand{}
	}
	return encodeJSON(w, brands)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
