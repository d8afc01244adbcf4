package export

import (
	"fmt"
	"strings"
)

const (
	responseColor = "#00d7ff"
	bgpColor      = "#808080"
	shockColor    = "#ff5f5f"
)

// ResponseToSVG draws a response and its balanced growth path on one set
// of axes, with a dashed marker at t = 0. bgp may be nil.
func ResponseToSVG(times, values, bgp []float64, width, height int) string {
	if len(times) < 2 || len(values) != len(times) {
		return ""
	}
	if bgp != nil && len(bgp) != len(times) {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := values[0], values[0]
	for _, series := range [][]float64{values, bgp} {
		for _, v := range series {
			minY, maxY = min(minY, v), max(maxY, v)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(t float64) float64 { return (t - minX) / rangeX * float64(width) }
	py := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if minX <= 0 && maxX >= 0 {
		x := px(0)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="4 4"/>
`, x, x, height, shockColor)
	}

	if bgp != nil {
		writePath(&sb, times, bgp, px, py, bgpColor, ` stroke-dasharray="6 3"`)
	}
	writePath(&sb, times, values, px, py, responseColor, "")

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, times, values []float64, px, py func(float64) float64, color, extra string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5"%s d="`, color, extra)
	for i := range times {
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", px(times[i]), py(values[i]))
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", px(times[i]), py(values[i]))
		}
	}
	sb.WriteString("\"/>\n")
}
