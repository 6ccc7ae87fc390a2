package audiogram

import (
	"fmt"
	"sort"
	"strings"
)

// RenderPane renders one ear/conduction pane of an audiogram as an SVG
// document. The output is a pure function of its arguments: grid, optional
// connecting line, one symbol per point plus an enlarged invisible hit region,
// all on the fixed 600x400 logical surface. The readonly flag only changes the
// pointer affordance; it never changes the plotted geometry.
func RenderPane(ear Ear, conduction Conduction, points []Point, readonly bool) string {
	var b strings.Builder

	cursor := ""
	if !readonly {
		cursor = ` style="cursor:crosshair"`
	}
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g"%s>`+"\n",
		SurfaceWidth, SurfaceHeight, cursor)

	writeGrid(&b)
	writePoints(&b, ear, conduction, points)

	b.WriteString("</svg>\n")
	return b.String()
}

// writeGrid draws the horizontal dB lines (0 dB emphasized, since it is the
// clinical reference line), the dashed frequency columns, and both axis label
// sets.
func writeGrid(b *strings.Builder) {
	for _, db := range GridLevels {
		y := IntensityToY(db)
		strokeWidth := 1
		fontWeight := "normal"
		if db == 0 {
			strokeWidth = 2
			fontWeight = "bold"
		}
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#e2e8f0" stroke-width="%d"/>`+"\n",
			PaddingLeft, y, SurfaceWidth-PaddingRight, y, strokeWidth)
		fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="end" font-size="12" font-weight="%s" fill="#64748b">%d</text>`+"\n",
			PaddingLeft-10, y+4, fontWeight, db)
	}

	for _, freq := range Frequencies {
		x := FrequencyToX(freq)
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#e2e8f0" stroke-dasharray="4 4"/>`+"\n",
			x, PaddingTop, x, SurfaceHeight-PaddingBottom)
		fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="middle" font-size="12" font-weight="bold" fill="#64748b">%s</text>`+"\n",
			x, PaddingTop-15, frequencyLabel(freq))
	}
}

// writePoints draws the connecting line (air conduction only, ascending
// frequency order regardless of entry order) and the per-point symbols.
func writePoints(b *strings.Builder, ear Ear, conduction Conduction, points []Point) {
	style := StyleFor(ear, conduction)

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Frequency < sorted[j].Frequency })

	if style.ConnectLine && len(sorted) > 0 {
		var path strings.Builder
		for i, p := range sorted {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s %g %g ", cmd, FrequencyToX(p.Frequency), IntensityToY(p.Intensity))
		}
		fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round"/>`+"\n",
			strings.TrimSpace(path.String()), style.Color)
	}

	for _, p := range sorted {
		writeSymbol(b, style, FrequencyToX(p.Frequency), IntensityToY(p.Intensity))
	}
}

func writeSymbol(b *strings.Builder, style PaneStyle, cx, cy float64) {
	switch style.Symbol {
	case SymbolCircle:
		fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="5" stroke="%s" stroke-width="2.5" fill="white"/>`+"\n",
			cx, cy, style.Color)
	case SymbolCross:
		fmt.Fprintf(b, `<g stroke="%s" stroke-width="2.5">`+"\n", style.Color)
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g"/>`+"\n", cx-4, cy-4, cx+4, cy+4)
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g"/>`+"\n", cx+4, cy-4, cx-4, cy+4)
		b.WriteString("</g>\n")
	case SymbolLeftBracket:
		fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="middle" fill="%s" font-size="20" font-weight="bold" font-family="Arial">&lt;</text>`+"\n",
			cx, cy+5, style.Color)
	case SymbolRightBracket:
		fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="middle" fill="%s" font-size="20" font-weight="bold" font-family="Arial">&gt;</text>`+"\n",
			cx, cy+5, style.Color)
	}

	// Oversized invisible hit region, concentric with the symbol. Kept as an
	// affordance for hover/removal interaction.
	fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="15" fill="transparent"/>`+"\n", cx, cy)
}

func frequencyLabel(freq int) string {
	if freq < 1000 {
		return fmt.Sprintf("%d", freq)
	}
	return fmt.Sprintf("%gk", float64(freq)/1000)
}
