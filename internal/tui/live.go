// Package tui renders a run live on a plain ANSI canvas. It is the
// fallback watcher for terminals where the full-screen dashboard is
// unwanted; see the viz package for the richer view.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws each tick onto a rune canvas and reprints the frame at
// the configured rate. It implements sim.Observer.
type LiveRenderer struct {
	mode      string // "descent" or "orbit"
	scenario  string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
	maxAlt    float64
}

func NewLiveRenderer(mode, scenario string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		mode:      mode,
		scenario:  scenario,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, 60),
	}
}

func (r *LiveRenderer) OnTick(s sim.Sample) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	if r.mode == "orbit" {
		r.drawOrbit(s)
	} else {
		r.drawDescent(s)
	}
	r.render(s)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// drawDescent shows altitude against the surface, with a throttle bar on the
// right edge.
func (r *LiveRenderer) drawDescent(s sim.Sample) {
	gy := height - 2
	for i := 0; i < width; i++ {
		r.set(i, gy+1, '=')
	}

	if s.Altitude > r.maxAlt {
		r.maxAlt = s.Altitude
	}
	if r.maxAlt <= 0 {
		return
	}

	// Log scale keeps both the exosphere and the last hundred metres visible.
	frac := math.Log1p(s.Altitude) / math.Log1p(r.maxAlt)
	ly := gy - int(frac*float64(gy-1))

	lx := width / 3
	r.set(lx, ly, 'V')
	if s.Parachute == lander.Deployed {
		r.set(lx-1, ly-1, '(')
		r.set(lx, ly-1, '^')
		r.set(lx+1, ly-1, ')')
	}
	if s.Throttle > 0 {
		r.set(lx, ly+1, '!')
	}

	bars := int(s.Throttle * float64(gy-1))
	for i := 0; i < bars; i++ {
		r.set(width-3, gy-i, '#')
	}
	r.set(width-3, gy-(gy-1), '-')
}

// drawOrbit shows the trajectory in the plane of motion, planet to scale.
func (r *LiveRenderer) drawOrbit(s sim.Sample) {
	cx, cy := width/2, height/2
	scale := 2.2 * lander.MarsRadius

	// Planet disc. The canvas cell aspect ratio is roughly 2:1.
	pr := int(float64(height) / 2 * lander.MarsRadius / scale * 2)
	for dy := -pr; dy <= pr; dy++ {
		for dx := -2 * pr; dx <= 2*pr; dx++ {
			if dx*dx/4+dy*dy <= pr*pr {
				r.set(cx+dx, cy+dy, '.')
			}
		}
	}

	// Project onto the dominant plane of the trajectory.
	px, py := planeCoords(s.Position)
	x := cx + int(px/scale*float64(width)/2)
	y := cy - int(py/scale*float64(height)/2)

	r.trail = append(r.trail, struct{ x, y int }{x, y})
	if len(r.trail) > 60 {
		r.trail = r.trail[1:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, 'o')
	}
	r.set(x, y, '@')
}

// planeCoords picks the two position components with the largest spread so
// equatorial and polar orbits both render edge-on.
func planeCoords(p r3.Vec) (float64, float64) {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	if az >= ax && az >= ay {
		return p.X, p.Z
	}
	return p.X, p.Y
}

func (r *LiveRenderer) render(s sim.Sample) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.1fs\n", r.scenario, s.Time))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  alt=%.0fm  vr=%+.1fm/s  speed=%.1fm/s  throttle=%.2f  fuel=%.0f%%  chute=%s\n",
		s.Altitude, s.RadialVelocity, r3.Norm(s.Velocity), s.Throttle, s.Fuel*100, s.Parachute))

	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
