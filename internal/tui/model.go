// Package tui hosts a scene in the terminal. Mouse cells are mapped to
// pixels with a fixed cell size, so the scene sees the same pointer
// stream a browser would send.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/scene"
	"github.com/msalah0e/devdeck/internal/ui"
)

// headerRows is the number of lines above the canvas.
const headerRows = 1

// Options configures a Model.
type Options struct {
	CellWidth  int
	CellHeight int
	// Templates are appended in turn by the Append key. Only workflow
	// views use them.
	Templates []registry.Template
	Workflow  bool
	// NoIcons drops the kind glyphs from node headers and the title.
	NoIcons bool
	Logger  *slog.Logger
}

// Model is the bubbletea model for one scene.
type Model struct {
	scene *scene.Scene
	keys  KeyMap

	cellW, cellH  int
	width, height int

	templates []registry.Template
	next      int
	workflow  bool
	icons     bool

	notice string
	logger *slog.Logger
}

// New returns a model hosting s. The caller keeps ownership of s and
// should Close it after the program exits.
func New(s *scene.Scene, opts Options) Model {
	m := Model{
		scene:     s,
		keys:      DefaultKeyMap,
		cellW:     opts.CellWidth,
		cellH:     opts.CellHeight,
		width:     80,
		height:    24,
		templates: opts.Templates,
		workflow:  opts.Workflow,
		icons:     !opts.NoIcons,
		logger:    opts.Logger,
	}
	if m.cellW < 1 {
		m.cellW = 10
	}
	if m.cellH < 1 {
		m.cellH = 20
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.scene.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.ZoomIn):
			m.scene.ZoomIn()
		case key.Matches(msg, m.keys.ZoomOut):
			m.scene.ZoomOut()
		case key.Matches(msg, m.keys.Reset):
			m.scene.Reset()
		case key.Matches(msg, m.keys.Deselect):
			m.scene.Select("")
		case key.Matches(msg, m.keys.Append):
			m.appendTemplate()
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// pixel maps a terminal cell to the pixel at its center.
func (m Model) pixel(x, y int) graph.Point {
	return graph.Pt(x*m.cellW+m.cellW/2, (y-headerRows)*m.cellH+m.cellH/2)
}

// handleMouse forwards the left button and the wheel to the scene.
// Motion and release are forwarded regardless of button, so a session
// ends wherever the pointer is released.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.pixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.scene.PointerMove(p)
		return
	case tea.MouseActionRelease:
		m.scene.PointerUp(p)
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Wheel(-1)
	case tea.MouseButtonWheelDown:
		m.scene.Wheel(1)
	case tea.MouseButtonLeft:
		if msg.Y < headerRows {
			return
		}
		m.scene.PointerDown(p)
	}
}

func (m *Model) appendTemplate() {
	if !m.workflow || len(m.templates) == 0 {
		return
	}
	t := m.templates[m.next%len(m.templates)]
	added, err := m.scene.AppendTemplate(t)
	switch {
	case errors.Is(err, graph.ErrFrozen):
		m.notice = "view is read-only"
		return
	case err != nil:
		m.notice = err.Error()
		return
	}
	m.next++
	m.notice = fmt.Sprintf("added %s at %s", added.Label, added.Position)
	m.logger.Info("agent appended", "template", t.Name, "node", added.ID)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22d3ee"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
)

// View implements tea.Model.
func (m Model) View() string {
	f := m.scene.Snapshot()

	heading := f.Title
	if m.icons {
		heading = ui.Deck + " " + heading
	}
	title := titleStyle.Render(heading) +
		statusStyle.Render(fmt.Sprintf("  [%s]", f.Mode))

	rows := max(m.height-headerRows-1, 1)
	body := draw(f, m.width, rows, m.cellW, m.cellH, m.icons).String()

	return title + "\n" + body + "\n" + m.status(f.View.Zoom, f.Selected, f.Phase)
}

func (m Model) status(zoom int, selected, phase string) string {
	parts := []string{fmt.Sprintf("%d%%", zoom)}
	if selected != "" {
		parts = append(parts, "selected "+selected)
	}
	if phase != "idle" {
		parts = append(parts, phase)
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	var hints []string
	for _, b := range m.keys.hints(m.workflow) {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return statusStyle.Render(strings.Join(parts, " · ") + "   " + strings.Join(hints, "  "))
}
