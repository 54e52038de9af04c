// Package tui hosts the interactive terminal demo: a yaw/pitch/zoom
// composite controller driven by a real tick loop with measured frame
// deltas, the same way a render loop would drive it.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/viewmotion/internal/motion"
)

const (
	historyCapacity = 240
	graphHeight     = 8
	graphWidth      = 64
	// A stalled terminal can report huge deltas; cap them so the
	// controller never teleports after a suspend.
	maxFrameMs = 100.0
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	modeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a composite controller from bubbletea's event loop.
type Model struct {
	ctrl     *motion.Composite
	names    []string
	history  map[string][]float64
	rolling  map[string]int // -1 down, 0 off, 1 up
	selected int
	last     time.Time
	paused   bool
	frames   int
	changes  int
}

func NewModel(ctrl *motion.Composite) Model {
	names := ctrl.Names()
	history := make(map[string][]float64, len(names))
	rolling := make(map[string]int, len(names))
	for _, name := range names {
		history[name] = make([]float64, 0, historyCapacity)
		rolling[name] = 0
	}
	return Model{
		ctrl:    ctrl,
		names:   names,
		history: history,
		rolling: rolling,
		last:    time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			m.last = time.Now()
		case "tab":
			m.selected = (m.selected + 1) % len(m.names)
		case "right", "l":
			m.toggleRoll(1)
		case "left", "h":
			m.toggleRoll(-1)
		case "up", "k":
			m.nudge(5)
		case "down", "j":
			m.nudge(-5)
		case "g":
			m.ctrl.Goto(m.homeTargets(), 1)
			m.clearRolling()
		case "0":
			m.ctrl.SetCurrent(m.homeTargets())
			m.clearRolling()
		case "x":
			m.ctrl.Stop()
			m.clearRolling()
		}
	case TickMsg:
		if !m.paused {
			elapsed := float64(time.Since(m.last).Milliseconds())
			if elapsed > maxFrameMs {
				elapsed = maxFrameMs
			}
			if m.ctrl.Update(elapsed) {
				m.changes++
			}
			m.frames++
			m.record()
		}
		m.last = time.Now()
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// toggleRoll starts rolling the selected axis in dir, or stops it when it
// is already rolling that way.
func (m *Model) toggleRoll(dir int) {
	name := m.names[m.selected]
	if m.rolling[name] == dir {
		m.ctrl.Axis(name).Stop()
		m.rolling[name] = 0
		return
	}
	m.ctrl.Axis(name).Roll(dir < 0, 1)
	m.rolling[name] = dir
}

func (m *Model) nudge(delta float64) {
	name := m.names[m.selected]
	m.ctrl.Axis(name).Step(delta, 1)
	m.rolling[name] = 0
}

func (m *Model) clearRolling() {
	for name := range m.rolling {
		m.rolling[name] = 0
	}
}

func (m *Model) homeTargets() map[string]float64 {
	home := make(map[string]float64, len(m.names))
	for _, name := range m.names {
		home[name] = 0
	}
	if _, ok := home["zoom"]; ok {
		home["zoom"] = 1
	}
	return home
}

func (m *Model) record() {
	for _, name := range m.names {
		h := append(m.history[name], m.ctrl.Axis(name).Current())
		if len(h) > historyCapacity {
			h = h[1:]
		}
		m.history[name] = h
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("viewmotion live demo"))
	sb.WriteString("\n")

	for i, name := range m.names {
		a := m.ctrl.Axis(name)
		label := labelStyle.Render(name)
		if i == m.selected {
			label = selectStyle.Render("> " + name)
		}
		line := fmt.Sprintf("%s %s  %s",
			label,
			valueStyle.Render(fmt.Sprintf("%9.3f  speed %7.3f", a.Current(), a.Speed())),
			modeStyle.Render(a.Mode().String()),
		)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(graphStyle.Render(m.graph()))
	sb.WriteString("\n")

	status := "running"
	if m.paused {
		status = "paused"
	}
	sb.WriteString(helpStyle.Render(fmt.Sprintf(
		"%s  frames %d  changed %d\ntab select axis · ←/→ roll · ↑/↓ nudge ±5 · g goto home · 0 snap home · x stop · space pause · q quit",
		status, m.frames, m.changes)))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) graph() string {
	name := m.names[m.selected]
	data := m.history[name]
	if len(data) < 2 {
		return "collecting samples..."
	}
	return asciigraph.Plot(data,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(name),
	)
}

// Run starts the live demo and blocks until the user quits.
func Run(ctrl *motion.Composite) error {
	p := tea.NewProgram(NewModel(ctrl))
	_, err := p.Run()
	return err
}
