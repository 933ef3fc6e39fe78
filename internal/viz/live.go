package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the terminal view of a running field: a braille canvas on
// the left, live stats with a link-count sparkline on the right.
type Model struct {
	field   *field.Field
	dt      float64
	t       float64
	canvas  *Canvas
	surface *CanvasSurface
	running bool

	linkHistory []float64
}

func NewModel(f *field.Field, dt float64) Model {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	return Model{
		field:       f,
		dt:          dt,
		canvas:      canvas,
		surface:     NewCanvasSurface(canvas, f.Bounds),
		running:     true,
		linkHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.field.Step(m.dt)
	m.t += m.dt

	m.linkHistory = append(m.linkHistory, float64(m.field.Links()))
	if len(m.linkHistory) > historyCapacity {
		m.linkHistory = m.linkHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.field.Populate()
	m.linkHistory = m.linkHistory[:0]
}

func (m Model) View() string {
	m.canvas.Clear()
	render.Draw(m.field, m.surface)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PLEXUS") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.linkHistory) > 1 {
		chart := asciigraph.Plot(m.linkHistory, asciigraph.Height(4), asciigraph.Width(26), asciigraph.Caption("Links"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.0f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.field.Particles))) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", m.field.Links())) + "\n")
	s.WriteString(labelStyle.Render("Escaped") + valueStyle.Render(fmt.Sprintf("%d", m.field.Escaped())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
