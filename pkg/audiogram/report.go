package audiogram

import (
	"fmt"
	"strings"
)

// Report layout: two panes side by side, one per ear, air and bone overlaid.
const (
	reportGap    = 40.0
	reportWidth  = SurfaceWidth*2 + reportGap*3
	reportHeight = SurfaceHeight + 110
	reportHeader = 70.0
)

// RenderReport renders the printable exam report as a single SVG document:
// the right-ear pane on the left, the left-ear pane on the right, each with
// its air- and bone-conduction points overlaid and its pure-tone average
// printed underneath (or a placeholder when undefined). Report panes are
// always read only.
func RenderReport(store *Store) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" font-family="Arial">`+"\n",
		reportWidth, reportHeight)
	fmt.Fprintf(&b, `<rect width="%g" height="%g" fill="white"/>`+"\n", reportWidth, reportHeight)
	fmt.Fprintf(&b, `<text x="%g" y="40" text-anchor="middle" font-size="22" font-weight="bold" fill="#1e293b">Audiometria Tonal</text>`+"\n",
		reportWidth/2)

	writeReportPane(&b, store, EarRight, reportGap, "Orelha Direita (OD)")
	writeReportPane(&b, store, EarLeft, reportGap*2+SurfaceWidth, "Orelha Esquerda (OE)")

	b.WriteString("</svg>\n")
	return b.String()
}

func writeReportPane(b *strings.Builder, store *Store, ear Ear, offsetX float64, title string) {
	color := StyleFor(ear, ConductionAir).Color

	fmt.Fprintf(b, `<g transform="translate(%g %g)">`+"\n", offsetX, reportHeader)
	fmt.Fprintf(b, `<text x="%g" y="-10" text-anchor="middle" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
		SurfaceWidth/2, color, title)

	writeGrid(b)
	writePoints(b, ear, ConductionAir, store.Points(ear, ConductionAir))
	writePoints(b, ear, ConductionBone, store.Points(ear, ConductionBone))

	fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="middle" font-size="13" fill="#475569">Média Tritonal: %s</text>`+"\n",
		SurfaceWidth/2, SurfaceHeight+20, ptaLabel(store.Map(ear, ConductionAir)))
	b.WriteString("</g>\n")
}

// ptaLabel formats a pure-tone average for display. An undefined average
// renders as a dash, never as zero.
func ptaLabel(air *ThresholdMap) string {
	avg, ok := PureToneAverage(air)
	if !ok {
		return "- dB"
	}
	return fmt.Sprintf("%d dB", avg)
}
