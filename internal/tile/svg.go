package tile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURIPrefix marks an inline base64 SVG image.
const DataURIPrefix = "data:image/svg+xml;base64,"

const blank = "      \n"

// SVG serialises the layout as a standalone SVG document.
func (l Layout) SVG() []byte {
	var b bytes.Buffer
	h := l.Hash

	b.WriteString("\n")
	fmt.Fprintf(&b, `    <svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMidYMid slice">`+"\n", Width, Height)
	b.WriteString("      <defs>\n")
	fmt.Fprintf(&b, `        <linearGradient id="grad-%d" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+"\n", h)
	fmt.Fprintf(&b, `          <stop offset="0%%" style="stop-color:%s" />`+"\n", l.Palette.Start)
	fmt.Fprintf(&b, `          <stop offset="100%%" style="stop-color:%s" />`+"\n", l.Palette.End)
	b.WriteString("        </linearGradient>\n")
	fmt.Fprintf(&b, `        <pattern id="grid-%d" width="%d" height="%d" patternUnits="userSpaceOnUse">`+"\n", h, GridSpacing, GridSpacing)
	fmt.Fprintf(&b, `          <path d="M %d 0 L 0 0 0 %d" fill="none" stroke="%s" stroke-width="1"/>`+"\n", GridSpacing, GridSpacing, GridColor)
	b.WriteString("        </pattern>\n")
	b.WriteString("      </defs>\n")
	b.WriteString(blank)

	b.WriteString("      <!-- Background -->\n")
	fmt.Fprintf(&b, `      <rect width="%d" height="%d" fill="url(#grad-%d)" />`+"\n", Width, Height, h)
	b.WriteString(blank)

	b.WriteString("      <!-- Grid Overlay -->\n")
	fmt.Fprintf(&b, `      <rect width="%d" height="%d" fill="url(#grid-%d)" />`+"\n", Width, Height, h)
	b.WriteString(blank)

	b.WriteString("      <!-- Generative Shapes -->\n")
	b.WriteString("      <g>\n")
	b.WriteString("        ")
	l.writeShapes(&b)
	b.WriteString("\n      </g>\n")
	b.WriteString(blank)

	b.WriteString("      <!-- Vignette -->\n")
	fmt.Fprintf(&b, `      <radialGradient id="vig-%d" cx="50%%" cy="50%%" r="70%%" fx="50%%" fy="50%%">`+"\n", h)
	b.WriteString(`        <stop offset="0%" stop-color="transparent" stop-opacity="0" />` + "\n")
	fmt.Fprintf(&b, `        <stop offset="100%%" stop-color="black" stop-opacity="%s" />`+"\n", formatNumber(VignetteAlpha))
	b.WriteString("      </radialGradient>\n")
	fmt.Fprintf(&b, `      <rect width="%d" height="%d" fill="url(#vig-%d)" />`+"\n", Width, Height, h)
	b.WriteString("    </svg>\n  ")

	return b.Bytes()
}

func (l Layout) writeShapes(b *bytes.Buffer) {
	n := formatNumber
	for _, s := range l.Segments {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`,
			n(s.From.X), n(s.From.Y), n(s.To.X), n(s.To.Y), ShapeColor, n(s.Width))
		fmt.Fprintf(b, "\n              "+`<circle cx="%s" cy="%s" r="2" fill="%s" />`, n(s.From.X), n(s.From.Y), ShapeColor)
		fmt.Fprintf(b, "\n              "+`<circle cx="%s" cy="%s" r="2" fill="%s" />`, n(s.To.X), n(s.To.Y), ShapeColor)
	}
	for _, d := range l.Dots {
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s" />`,
			n(d.Center.X), n(d.Center.Y), n(d.Radius), ShapeColor)
	}
	for _, w := range l.Waves {
		pts := make([]string, len(w.Points))
		for i, p := range w.Points {
			pts[i] = n(p.X) + "," + n(p.Y)
		}
		fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2" />`,
			strings.Join(pts, " "), ShapeColor)
	}
}

// DataURI returns the layout as an inline image reference.
func (l Layout) DataURI() string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(l.SVG())
}
