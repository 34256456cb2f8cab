package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/spinsim/internal/ensemble"
)

// TraceSVG renders the three detected components as overlaid polylines,
// Sx green, Sy cyan, Sz orange.
func TraceSVG(path string, r *ensemble.Result, width, height int) error {
	if r.Points() < 2 {
		return fmt.Errorf("export: trace too short for SVG")
	}
	return os.WriteFile(path, []byte(traceSVG(r, width, height)), 0644)
}

func traceSVG(r *ensemble.Result, width, height int) string {
	lo, hi := -0.55, 0.55
	for _, series := range [][]float64{r.Sx, r.Sy, r.Sz} {
		for _, v := range series {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Zero line for orientation.
	zeroY := float64(height) * (1 - (0-lo)/span)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333"/>
`, zeroY, width, zeroY))

	tMax := r.Time[len(r.Time)-1]
	tMin := r.Time[0]
	tSpan := tMax - tMin
	if tSpan == 0 {
		tSpan = 1
	}

	for _, series := range []struct {
		data  []float64
		color string
	}{
		{r.Sx, "#00ff00"},
		{r.Sy, "#00cccc"},
		{r.Sz, "#ff8800"},
	} {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, series.color))
		for k, v := range series.data {
			x := (r.Time[k] - tMin) / tSpan * float64(width)
			y := float64(height) * (1 - (v-lo)/span)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
