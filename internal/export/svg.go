// Package export renders recorded trajectories as standalone SVG files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

// TrajectorySVG draws the run's path in its dominant orbital plane, with the
// planet disc to scale.
func TrajectorySVG(samples []sim.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	useXZ := dominantPlaneXZ(samples)
	points := make([][2]float64, len(samples))
	for i, s := range samples {
		if useXZ {
			points[i] = [2]float64{s.Position.X, s.Position.Z}
		} else {
			points[i] = [2]float64{s.Position.X, s.Position.Y}
		}
	}

	// Bounds always include the planet so descents don't zoom into a sliver.
	minX, maxX := -lander.MarsRadius, lander.MarsRadius
	minY, maxY := -lander.MarsRadius, lander.MarsRadius
	for _, p := range points {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	toPx := func(p [2]float64) (float64, float64) {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	cx, cy := toPx([2]float64{0, 0})
	rx := lander.MarsRadius / rangeX * float64(width)
	ry := lander.MarsRadius / rangeY * float64(height)
	sb.WriteString(fmt.Sprintf(`<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="#331a0d"/>
`, cx, cy, rx, ry))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range points {
		x, y := toPx(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// dominantPlaneXZ reports whether the trajectory lives mostly in the x-z
// plane rather than x-y.
func dominantPlaneXZ(samples []sim.Sample) bool {
	var spanY, spanZ float64
	for _, s := range samples {
		spanY = math.Max(spanY, math.Abs(s.Position.Y))
		spanZ = math.Max(spanZ, math.Abs(s.Position.Z))
	}
	return spanZ > spanY
}
