package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/kherring/matterlab/internal/matter"
	"github.com/kherring/matterlab/internal/substance"
)

// constituentShare is one row of a composition breakdown, heaviest first.
type constituentShare struct {
	Substance  *substance.Substance
	Proportion float64
}

func sortedConstituents(n matter.Node) []constituentShare {
	cs := n.Constituents()
	out := make([]constituentShare, 0, len(cs))
	for s, p := range cs {
		out = append(out, constituentShare{Substance: s, Proportion: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Proportion != out[j].Proportion {
			return out[i].Proportion > out[j].Proportion
		}
		return out[i].Substance.ID < out[j].Substance.ID
	})
	return out
}

// Render returns a styled terminal summary of an object: aggregate
// properties, the layer tree core to surface, and the composition.
func Render(name string, n matter.Node) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(name) + "\n\n")
	b.WriteString(summaryLine("mass", fmt.Sprintf("%.3f kg", n.Mass())))
	b.WriteString(summaryLine("density", fmt.Sprintf("%.1f kg/m3", n.Density())))
	if t, ok := n.Temperature(); ok {
		b.WriteString(summaryLine("temperature", fmt.Sprintf("%.1f K", t)))
	} else {
		b.WriteString(summaryLine("temperature", "ambient"))
	}
	b.WriteString(summaryLine("volume", fmt.Sprintf("%.4f m3", n.Shape().Volume())))

	b.WriteString("\n" + labelStyle.Render("layers (core to surface)") + "\n")
	writeLayers(&b, n, 0)

	shares := sortedConstituents(n)
	if len(shares) > 0 {
		b.WriteString("\n" + labelStyle.Render("composition") + "\n")
		for _, share := range shares {
			bar := barStyle.Render(strings.Repeat("█", barWidth(share.Proportion)))
			b.WriteString(fmt.Sprintf("  %-12s %6.1f%% %s\n",
				share.Substance.Name, share.Proportion*100, bar))
		}
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func summaryLine(label, value string) string {
	return fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label)), valueStyle.Render(value))
}

func barWidth(proportion float64) int {
	w := int(proportion * 30)
	if w < 1 && proportion > 0 {
		w = 1
	}
	return w
}

func writeLayers(b *strings.Builder, n matter.Node, depth int) {
	indent := strings.Repeat("  ", depth+1)
	c, ok := n.(*matter.Composite)
	if !ok {
		b.WriteString(indent + layerStyle.Render(describeLeaf(n)) + "\n")
		return
	}
	if depth > 0 {
		b.WriteString(indent + nestedStyle.Render(fmt.Sprintf("composite (%d layers, %.3f kg)", c.Len(), c.Mass())) + "\n")
	}
	for _, child := range c.Components() {
		writeLayers(b, child, depth+1)
	}
}

func describeLeaf(n matter.Node) string {
	shares := sortedConstituents(n)
	label := "mixture"
	if len(shares) > 0 {
		label = shares[0].Substance.Name
		if len(shares) > 1 {
			label += fmt.Sprintf(" +%d", len(shares)-1)
		}
	}
	desc := fmt.Sprintf("%s  %.3f kg  %.0f kg/m3", label, n.Mass(), n.Density())
	if t, ok := n.Temperature(); ok {
		desc += fmt.Sprintf("  %.0f K", t)
	}
	return desc
}

// LayerMasses flattens the object into its leaf layers, core first, and
// returns their masses.
func LayerMasses(n matter.Node) []float64 {
	var out []float64
	var walk func(matter.Node)
	walk = func(x matter.Node) {
		if c, ok := x.(*matter.Composite); ok {
			for _, child := range c.Components() {
				walk(child)
			}
			return
		}
		out = append(out, x.Mass())
	}
	walk(n)
	return out
}

// MassProfile plots the mass of each leaf layer, core first.
func MassProfile(n matter.Node) string {
	masses := LayerMasses(n)
	if len(masses) < 2 {
		return ""
	}
	return asciigraph.Plot(masses,
		asciigraph.Height(10),
		asciigraph.Caption("layer mass, core to surface (kg)"))
}
