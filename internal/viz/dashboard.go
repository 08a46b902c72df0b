// Package viz is the full-screen live dashboard: a bubbletea program that
// drives a simulator tick by tick and renders altitude history, throttle and
// fuel gauges, and chute/autopilot status.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

// Model is the bubbletea model for one live run.
type Model struct {
	sim      *sim.Simulator
	scenario string
	duration float64
	fps      int
	speed    int // simulation ticks per frame

	last    sim.Sample
	altHist []float64
	done    bool
	outcome sim.Outcome
	err     error
	paused  bool
	width   int
}

func NewModel(s *sim.Simulator, scenario string, duration float64, fps, speed int) Model {
	if fps <= 0 {
		fps = 30
	}
	if speed <= 0 {
		speed = 1
	}
	return Model{
		sim:      s,
		scenario: scenario,
		duration: duration,
		fps:      fps,
		speed:    speed,
		altHist:  make([]float64, 0, 256),
		width:    80,
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+":
			m.speed *= 2
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.speed; i++ {
		smp, err := m.sim.Step()
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		m.last = smp

		if m.sim.TouchedDown() {
			m.outcome = m.sim.Outcome()
			m.done = true
			break
		}
		if smp.Time >= m.duration {
			m.outcome = sim.Flying
			m.done = true
			break
		}
	}

	m.altHist = append(m.altHist, m.last.Altitude)
	if max := m.graphWidth(); len(m.altHist) > max {
		m.altHist = m.altHist[len(m.altHist)-max:]
	}
}

func (m Model) graphWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf(" landersim  %s", m.scenario)))
	b.WriteString(dim.Render(fmt.Sprintf("  t=%.1fs  speed=%dx", m.last.Time, m.speed)))
	if m.paused {
		b.WriteString(yellow.Render("  [paused]"))
	}
	b.WriteString("\n\n")

	if len(m.altHist) >= 2 {
		graph := asciigraph.Plot(m.altHist,
			asciigraph.Height(10),
			asciigraph.Width(m.graphWidth()),
			asciigraph.Caption("altitude (m)"),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf(" altitude  %12.0f m\n", m.last.Altitude))
	b.WriteString(fmt.Sprintf(" v radial  %+12.1f m/s\n", m.last.RadialVelocity))
	b.WriteString(fmt.Sprintf(" speed     %12.1f m/s\n", r3.Norm(m.last.Velocity)))
	b.WriteString(fmt.Sprintf(" throttle  %s %.2f\n", gauge(m.last.Throttle, 20), m.last.Throttle))
	b.WriteString(fmt.Sprintf(" fuel      %s %.0f%%\n", gauge(m.last.Fuel, 20), m.last.Fuel*100))

	chute := dim.Render("stowed")
	if m.last.Parachute == lander.Deployed {
		chute = green.Render("deployed")
	}
	pilot := dim.Render("idle")
	if m.last.Engaged {
		pilot = green.Render("engaged")
	}
	b.WriteString(fmt.Sprintf(" chute     %s    autopilot %s\n", chute, pilot))

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(red.Render(fmt.Sprintf(" error: %v", m.err)))
	case m.done && m.outcome == sim.Landed:
		b.WriteString(green.Render(" touchdown: landed safely"))
	case m.done && m.outcome == sim.Crashed:
		b.WriteString(red.Render(fmt.Sprintf(" touchdown: crashed at %.1f m/s", r3.Norm(m.last.Velocity))))
	case m.done:
		b.WriteString(dim.Render(" duration elapsed, still flying"))
	}
	b.WriteString(dim.Render("\n\n space pause  +/- speed  q quit\n"))

	return b.String()
}

func gauge(frac float64, cells int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	full := int(frac * float64(cells))
	return "[" + strings.Repeat("#", full) + strings.Repeat(".", cells-full) + "]"
}

// Run launches the dashboard and blocks until it exits.
func Run(s *sim.Simulator, scenario string, duration float64, fps, speed int) error {
	p := tea.NewProgram(NewModel(s, scenario, duration, fps, speed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
