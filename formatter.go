package odin

import (
	"fmt"
	"io"
	"strings"
)

// Column widths of the model table. Values longer than their column push the
// rest of the line right; the layout never fails.
const (
	indexWidth     = 5
	modelWidth     = 15
	hardwareWidth  = 15
	firmwareWidth  = 35
	referenceWidth = 30
	ruleWidth      = indexWidth + modelWidth + hardwareWidth + firmwareWidth + referenceWidth
)

// NotAvailable is printed in place of empty model fields.
const NotAvailable = "N/A"

// Renderer writes catalog reports.
type Renderer interface {
	// RenderBrands writes the brand overview of the catalog.
	RenderBrands(w io.Writer, catalog *Catalog) error

	// RenderModels writes the model listing of each brand.
	RenderModels(w io.Writer, brands []*Brand) error
}

// FormatBrandCount returns the "Found N brand(s)!" summary line.
func FormatBrandCount(n int) string {
	return fmt.Sprintf("Found %d brand(s)!", n)
}

// FormatBrands formats the numbered brand overview, framed by the brand count.
// A nil catalog yields the zero-count line only.
func FormatBrands(c *Catalog) string {
	if c.BrandCount() == 0 {
		return FormatBrandCount(0) + "\n"
	}

	var b strings.Builder
	b.WriteString(FormatBrandCount(c.BrandCount()))
	b.WriteString("\n\n")
	for i, brand := range c.Brands {
		fmt.Fprintf(&b, "%d. %s - %d model(s)\n", i+1, brand.Name, brand.ModelCount())
	}
	b.WriteString("\n")
	b.WriteString(FormatBrandCount(c.BrandCount()))
	b.WriteString("\n")
	return b.String()
}

// FormatBrand formats one brand as a fixed-width model table.
func FormatBrand(brand *Brand) string {
	var b strings.Builder
	count := fmt.Sprintf("Found %d model(s)!", brand.ModelCount())

	b.WriteString("Brand: " + brand.Name + "\n")
	b.WriteString(count + "\n\n")
	writeRow(&b, "", "Model", "Hardware", "Firmware", "Reference Page")
	writeRow(&b, "", "-----", "--------", "--------", "--------------")
	b.WriteString("\n")

	for i, m := range brand.Models {
		writeRow(&b,
			fmt.Sprintf("%d.", i+1),
			m.Name,
			orNotAvailable(strings.Join(m.HardwareVersions, ", ")),
			orNotAvailable(m.FirmwareVersion.Link),
			orNotAvailable(m.ReferencePage),
		)
	}

	b.WriteString("\n" + count + "\n\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	return b.String()
}

func writeRow(b *strings.Builder, index, model, hardware, firmware, reference string) {
	b.WriteString(pad(index, indexWidth))
	b.WriteString(pad(model, modelWidth))
	b.WriteString(pad(hardware, hardwareWidth))
	b.WriteString(pad(firmware, firmwareWidth))
	b.WriteString(strings.TrimRight(reference, " "))
	b.WriteString("\n")
}

// pad left-aligns s in a column of width w, keeping at least one space
// between columns.
func pad(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s + " "
	}
	return s + strings.Repeat(" ", w-n)
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
