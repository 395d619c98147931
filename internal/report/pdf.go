package report

import (
	"fmt"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/kherring/matterlab/internal/matter"
)

// WritePDF renders a one-page datasheet for the object to path.
func WritePDF(name string, n matter.Node, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Material datasheet: %s", name))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Mass: %.3f kg", n.Mass()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Density: %.1f kg/m3", n.Density()))
	pdf.Ln(6)
	if t, ok := n.Temperature(); ok {
		pdf.Cell(0, 6, fmt.Sprintf("Temperature: %.1f K", t))
	} else {
		pdf.Cell(0, 6, "Temperature: ambient")
	}
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Envelope volume: %.4f m3", n.Shape().Volume()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Layers (core to surface)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writePDFLayers(pdf, n, 0)
	pdf.Ln(4)

	shares := sortedConstituents(n)
	if len(shares) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Composition")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, share := range shares {
			pdf.Cell(60, 5, share.Substance.Name)
			pdf.Cell(0, 5, fmt.Sprintf("%.1f%%", share.Proportion*100))
			pdf.Ln(5)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pdf.Output(f)
}

func writePDFLayers(pdf *gofpdf.Fpdf, n matter.Node, depth int) {
	indent := float64(depth * 6)
	c, ok := n.(*matter.Composite)
	if !ok {
		pdf.Cell(indent, 5, "")
		pdf.Cell(0, 5, describeLeaf(n))
		pdf.Ln(5)
		return
	}
	if depth > 0 {
		pdf.Cell(indent, 5, "")
		pdf.Cell(0, 5, fmt.Sprintf("composite (%d layers, %.3f kg)", c.Len(), c.Mass()))
		pdf.Ln(5)
	}
	for _, child := range c.Components() {
		writePDFLayers(pdf, child, depth+1)
	}
}
