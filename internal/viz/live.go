// Package viz renders live simulation state in the terminal. It is a
// read-only collaborator: each frame it takes a post-step snapshot,
// and all mutations (injection, removal, reset) go through the
// simulation's queued-edit API.
package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/geom"
	"github.com/san-kum/gravbox/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 600
	stepsPerFrame   = 4
)

type TickMsg time.Time

type Model struct {
	sim    *sim.Simulation
	snap   sim.Snapshot
	canvas *Canvas

	keHistory []float64
	paused    bool
	stepErr   error
	rng       *rand.Rand
}

func NewModel(s *sim.Simulation) Model {
	return Model{
		sim:       s,
		snap:      s.Snapshot(),
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		keHistory: make([]float64, 0, historyCapacity),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sim.Reset()
			m.snap = m.sim.Snapshot()
			m.keHistory = m.keHistory[:0]
			m.stepErr = nil
		case "a":
			m.queueRandomParticle()
		case "d":
			m.queueRemoveLast()
		}
	case TickMsg:
		if !m.paused && m.stepErr == nil {
			for i := 0; i < stepsPerFrame; i++ {
				if err := m.sim.Step(); err != nil {
					m.stepErr = err
					break
				}
			}
			m.snap = m.sim.Snapshot()

			ke := m.snap.Record().KineticEnergy
			m.keHistory = append(m.keHistory, ke)
			if len(m.keHistory) > historyCapacity {
				m.keHistory = m.keHistory[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) queueRandomParticle() {
	bounds := m.sim.Params().Bounds
	radius := 0.3
	p := body.Particle{
		Pos: geom.Vec2{
			X: bounds.Min.X + radius + m.rng.Float64()*(bounds.W()-2*radius),
			Y: bounds.Min.Y + radius + m.rng.Float64()*(bounds.H()-2*radius),
		},
		Mass:   1.0,
		Radius: radius,
	}
	m.sim.QueueAdd(p) // in-bounds by construction
}

func (m *Model) queueRemoveLast() {
	if len(m.snap.Particles) == 0 {
		return
	}
	last := m.snap.Particles[len(m.snap.Particles)-1]
	m.sim.QueueRemove(last.ID)
}

// draw projects world coordinates onto the sub-pixel grid.
func (m *Model) draw() {
	m.canvas.Clear()

	bounds := m.sim.Params().Bounds
	sw := float64(canvasWidth * 2)
	sh := float64(canvasHeight * 4)

	project := func(p geom.Vec2) (int, int) {
		x := (p.X - bounds.Min.X) / bounds.W() * sw
		// Screen Y grows downward.
		y := (1 - (p.Y-bounds.Min.Y)/bounds.H()) * sh
		return int(x), int(y)
	}

	var maxKE float64
	for i := range m.snap.Particles {
		if ke := m.snap.Particles[i].KineticEnergy(); ke > maxKE {
			maxKE = ke
		}
	}

	for i := range m.snap.Particles {
		p := &m.snap.Particles[i]
		x, y := project(p.Pos)

		// Velocity glyph first so the disc color wins the cell.
		if speed := p.Speed(); speed > 0 {
			dir := p.Vel.Norm()
			glyphLen := 3 + math.Min(speed, 8.0)
			tipX := x + int(dir.X*glyphLen)
			tipY := y - int(dir.Y*glyphLen)
			m.canvas.DrawLine(x, y, tipX, tipY)
		}

		r := int(p.Radius / bounds.W() * sw)
		if r < 1 {
			r = 1
		}
		m.canvas.FillCircle(x, y, r, EnergyColor(p.KineticEnergy(), maxKE))
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	rec := m.snap.Record()

	var s strings.Builder
	s.WriteString(headerStyle.Render("GRAVBOX") + "\n")

	status := "RUNNING"
	if m.stepErr != nil {
		status = errorStyle.Render("UNSTABLE")
	} else if m.paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.keHistory) > 1 {
		chart := asciigraph.Plot(m.keHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.snap.Time)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.snap.Step)) + "\n")
	s.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.2e", m.snap.Dt)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", rec.Count)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", rec.KineticEnergy)) + "\n")
	s.WriteString(labelStyle.Render("|Momentum|") + valueStyle.Render(
		fmt.Sprintf("%.4f", math.Hypot(rec.MomentumX, rec.MomentumY))) + "\n")

	params := m.sim.Params()
	s.WriteString("\nPARAMETERS\n")
	s.WriteString(labelStyle.Render("theta") + valueStyle.Render(fmt.Sprintf("%.2f", params.Theta)) + "\n")
	s.WriteString(labelStyle.Render("G") + valueStyle.Render(fmt.Sprintf("%.2f", params.G)) + "\n")
	s.WriteString(labelStyle.Render("restitution") + valueStyle.Render(fmt.Sprintf("%.2f", params.Restitution)) + "\n")

	if m.stepErr != nil {
		s.WriteString("\n" + errorStyle.Render(m.stepErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nA:Add particle D:Remove"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the live view and blocks until quit.
func Run(s *sim.Simulation) error {
	p := tea.NewProgram(NewModel(s))
	_, err := p.Run()
	return err
}
