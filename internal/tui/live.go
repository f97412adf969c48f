// Package tui is the interactive session: a bubbletea frame loop driving
// the runtime host, a braille viewport for the scene, and a side panel for
// scenario controls and diagnostics.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Syd25-legend/physigenai/internal/host"
	"github.com/Syd25-legend/physigenai/internal/scenario"
	"github.com/Syd25-legend/physigenai/internal/viz"
)

const (
	viewportWidth  = 80
	viewportHeight = 24
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

type TickMsg time.Time

// scenarioMsg delivers the result of an asynchronous provider call back
// into the update loop.
type scenarioMsg struct {
	unit *scenario.SourceUnit
	err  error
}

// Model owns the frame loop and input routing. All host access happens on
// bubbletea's single goroutine except scenario generation, which runs as a
// command and reports back through scenarioMsg.
type Model struct {
	host      *host.Host
	generator scenario.Generator
	camera    *viz.Camera
	canvas    *viz.Canvas

	frameRate int
	selected  int
	libIndex  int
	prompting bool
	prompt    string
	pending   string
	generr    string
	spinFrame int
	showHelp  bool
}

func NewModel(h *host.Host, gen scenario.Generator, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		host:      h,
		generator: gen,
		camera:    viz.NewCamera(),
		canvas:    viz.NewCanvas(viewportWidth, viewportHeight),
		frameRate: frameRate,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the mounted scenario.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.host.TogglePause()
		case "r":
			if err := m.host.ResetToLastKnownGood(); err != nil {
				m.generr = err.Error()
			} else {
				m.generr = ""
			}
		case "l":
			entries := scenario.Entries()
			m.libIndex = (m.libIndex + 1) % len(entries)
			m.installLocal(entries[m.libIndex])
		case "/":
			m.prompting = true
			m.prompt = ""
		case "tab":
			if n := len(m.host.Controls().Sliders()); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "up", "k":
			m.adjustSlider(1.05)
		case "down", "j":
			m.adjustSlider(0.95)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.host.Tick(1.0 / float64(m.frameRate))
		m.spinFrame++
		return m, m.tick()
	case scenarioMsg:
		m.pending = ""
		if msg.err != nil {
			m.generr = msg.err.Error()
			return m, nil
		}
		m.installLocal(msg.unit)
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.prompt = ""
	case "enter":
		topic := strings.TrimSpace(m.prompt)
		m.prompting = false
		m.prompt = ""
		if topic == "" {
			return m, nil
		}
		// The built-in library answers instantly; only unknown topics go
		// out to the generator.
		if unit, ok := scenario.Lookup(topic); ok {
			m.installLocal(unit)
			return m, nil
		}
		if m.generator == nil {
			m.generr = "no generator configured; try a library topic (press l)"
			return m, nil
		}
		m.pending = topic
		m.generr = ""
		return m, generateCmd(m.generator, topic)
	case "backspace":
		if len(m.prompt) > 0 {
			m.prompt = m.prompt[:len(m.prompt)-1]
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.prompt += string(msg.Runes)
		case tea.KeySpace:
			m.prompt += " "
		}
	}
	return *m, nil
}

func generateCmd(gen scenario.Generator, topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		unit, err := gen.Generate(ctx, topic)
		return scenarioMsg{unit: unit, err: err}
	}
}

func (m *Model) installLocal(unit *scenario.SourceUnit) {
	m.selected = 0
	if err := m.host.Install(unit); err != nil {
		m.generr = err.Error()
	} else {
		m.generr = ""
	}
}

func (m *Model) adjustSlider(factor float64) {
	sliders := m.host.Controls().Sliders()
	if len(sliders) == 0 {
		return
	}
	if m.selected >= len(sliders) {
		m.selected = 0
	}
	sliders[m.selected].Adjust(factor)
}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View renders the viewport and the side panel.
func (m Model) View() string {
	m.canvas.Clear()
	m.camera.Render(m.canvas, m.host.Graph().Edges())
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	title := "PHYSIGEN"
	if cur := m.host.Current(); cur != nil {
		title = strings.ToUpper(cur.Title)
	}
	s.WriteString(headerStyle.Render(title) + "\n")

	phase := m.host.Phase()
	status := strings.ToUpper(phase.String())
	if m.host.Paused() {
		status = "PAUSED"
	}
	if m.pending != "" {
		status = pendingStyle.Render(spinner[m.spinFrame%len(spinner)] + " GENERATING " + m.pending)
	}
	s.WriteString(status + "\n\n")

	if phase == host.PhaseError {
		s.WriteString(errorStyle.Render(wrap(m.host.LastError(), 40)) + "\n\n")
	} else if m.generr != "" {
		s.WriteString(errorStyle.Render(wrap(m.generr, 40)) + "\n\n")
	}

	if series := m.host.Controls().FirstSeries(); series != nil {
		samples := series.Samples()
		if len(samples) > 1 {
			chart := asciigraph.Plot(samples, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(series.Name))
			s.WriteString(graphStyle.Render(chart) + "\n\n")
		}
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.host.Clock())) + "\n")

	s.WriteString("\nPARAMETERS\n")
	sliders := m.host.Controls().Sliders()
	if len(sliders) > 0 {
		for i, sl := range sliders {
			ratio := 0.0
			if sl.Max > sl.Min {
				ratio = (sl.Value - sl.Min) / (sl.Max - sl.Min)
			}
			filled := int(ratio * 10)
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", 10-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.2f", sl.Name, bar, sl.Value)
			if i == m.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	if m.prompting {
		s.WriteString("\n" + promptStyle.Render("topic> "+m.prompt+"█") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restore Q:Quit\n/:Ask L:Library ?:Help\nTab ↑↓:Tune xyz +-:Camera"))
	panelView := panelStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  /        - Ask for a scenario       ║
║  L        - Cycle built-in library   ║
║  Space    - Pause/Resume             ║
║  R        - Restore last good        ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  X/Y/Z    - Rotate camera            ║
║  +/-      - Zoom                     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func wrap(text string, width int) string {
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line+len(w)+1 > width && line > 0 {
			b.WriteByte('\n')
			line = 0
		} else if i > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
