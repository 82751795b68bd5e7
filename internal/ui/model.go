// Package ui is the Bubble Tea grid around a picker.Controller.
//
// Hosts embedding the grid drive it with messages: PreselectionReplacedMsg when
// their preselection input changes and ItemsMsg when they replace the item list.
// The imagepicker command only sends PreselectionReplacedMsg; its item list is
// fixed by the scan that runs before the grid starts.
package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"imagepicker/internal/domain"
	"imagepicker/internal/picker"
	"imagepicker/internal/thumbnail"
)

// Options configures the grid model
type Options struct {
	Title string
	// WarmThumbnails pre-decodes all image thumbnails when the program starts
	WarmThumbnails bool
}

// Result is the outcome of a picker session
type Result struct {
	Confirmed bool
	Multiple  bool
	Picks     []domain.Pick
}

// Model is the Bubble Tea model for the thumbnail grid. All selection state
// lives in the picker controller; the model only tracks focus and scrolling.
type Model struct {
	ctrl      *picker.Controller
	renderers *thumbnail.Set
	opts      Options

	keys    keyMap
	help    help.Model
	styles  *Styles
	helpOps *HelpOps

	width  int
	height int
	focus  int
	offset int // first visible row
	status string

	confirmed bool
	quitting  bool
	paused    bool

	ctx     context.Context
	program *tea.Program
}

// NewModel creates a grid model around ctrl
func NewModel(ctrl *picker.Controller, renderers *thumbnail.Set, opts Options) *Model {
	if opts.Title == "" {
		opts.Title = "imagepicker"
	}
	h := help.New()
	h.Width = 80
	return &Model{
		ctrl:      ctrl,
		renderers: renderers,
		opts:      opts,
		keys:      defaultKeyMap(),
		help:      h,
		styles:    NewStyles(),
		width:     80,
		height:    24,
		ctx:       context.Background(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetContext bounds background work such as thumbnail warm-up
func (m *Model) SetContext(ctx context.Context) {
	m.ctx = ctx
}

// Result reports whether the user confirmed and what was picked
func (m *Model) Result() Result {
	return Result{
		Confirmed: m.confirmed,
		Multiple:  m.ctrl.Multiple(),
		Picks:     m.ctrl.Picked().Picks(),
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if !m.opts.WarmThumbnails {
		return nil
	}
	return m.warmThumbnails()
}

func (m *Model) warmThumbnails() tea.Cmd {
	var sources []string
	for _, item := range m.ctrl.Items() {
		if item.Kind != domain.KindVideo {
			sources = append(sources, item.Source)
		}
	}
	if len(sources) == 0 {
		return nil
	}
	ctx := m.ctx
	img := m.renderers.Image
	return func() tea.Msg {
		return thumbsWarmedMsg{err: img.Warm(ctx, sources)}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.offset = m.layout().scrollTo(m.focus, m.layout().clampOffset(m.offset, m.count()))

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case PreselectionReplacedMsg:
		if m.ctrl.ReplacePreselection(msg.Preselection) {
			m.status = fmt.Sprintf("preselection replaced (%d picked)", m.ctrl.Picked().Len())
		}

	case ItemsMsg:
		m.ctrl.SetItems(msg.Items)
		m.focus = min(m.focus, max(0, m.count()-1))
		g := m.layout()
		m.offset = g.scrollTo(m.focus, g.clampOffset(m.offset, m.count()))

	case thumbsWarmedMsg:
		if msg.err != nil {
			log.Printf("Thumbnail warm-up stopped: %v", msg.err)
		}

	case pauseRenderingMsg:
		m.paused = true

	case resumeRenderingMsg:
		m.paused = false

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.count()
	g := m.layout()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.confirmed = true
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.helpOps == nil {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, m.showHelpPager()

	case key.Matches(msg, m.keys.Toggle):
		if n > 0 {
			m.ctrl.RenderItem(m.ctrl.Items()[m.focus], m.focus).OnClick()
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Up):
		if m.focus-g.cols >= 0 {
			m.moveFocus(m.focus - g.cols)
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus+g.cols < n {
			m.moveFocus(m.focus + g.cols)
		} else if g.row(m.focus) < g.row(n-1) {
			m.moveFocus(n - 1)
		}
	case key.Matches(msg, m.keys.PageUp):
		m.moveFocus(max(0, m.focus-g.cols*g.rows))
	case key.Matches(msg, m.keys.PageDown):
		m.moveFocus(min(n-1, m.focus+g.cols*g.rows))
	case key.Matches(msg, m.keys.Home):
		m.moveFocus(0)
	case key.Matches(msg, m.keys.End):
		m.moveFocus(n - 1)
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	g := m.layout()
	n := m.count()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.offset = g.clampOffset(m.offset-1, n)
	case msg.Button == tea.MouseButtonWheelDown:
		m.offset = g.clampOffset(m.offset+1, n)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		i, ok := g.hit(msg.X, msg.Y, m.offset, n)
		if !ok {
			return
		}
		m.focus = i
		m.ctrl.RenderItem(m.ctrl.Items()[i], i).OnClick()
		m.status = ""
	}
}

// moveFocus focuses tile i when it exists and scrolls it into view
func (m *Model) moveFocus(i int) {
	if i < 0 || i >= m.count() {
		return
	}
	m.focus = i
	m.offset = m.layout().scrollTo(i, m.offset)
}

// showHelpPager returns a command that shows help using ov pager
func (m *Model) showHelpPager() tea.Cmd {
	content := NewHelpRenderer(m.styles, m.keys).RenderHelpContent()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) count() int {
	return len(m.ctrl.Items())
}

func (m *Model) layout() grid {
	opts := m.renderers.Options()
	return newGrid(m.width, m.height, opts.TileWidth(), opts.TileHeight(),
		lipgloss.Height(m.header()), lipgloss.Height(m.footer()))
}

func (m *Model) header() string {
	mode := "multi-select"
	if !m.ctrl.Multiple() {
		mode = "single-select"
	}
	parts := []string{
		m.styles.Title.Render(m.opts.Title),
		m.styles.Dim.Render(mode),
		m.styles.Count.Render(fmt.Sprintf("%d selected", m.ctrl.Picked().Len())),
		m.styles.Dim.Render(fmt.Sprintf("%d items", m.count())),
	}
	if m.count() > 0 {
		parts = append(parts, m.styles.Desc.Render(m.ctrl.Items()[m.focus].Label()))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) footer() string {
	return m.help.View(m.keys)
}

// View renders the header, the visible tile rows and the key help
func (m *Model) View() string {
	if m.paused || m.quitting {
		return ""
	}

	var body string
	if m.count() == 0 {
		body = m.styles.Empty.Render("No media to pick from.")
	} else {
		body = m.renderGrid()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
}

func (m *Model) renderGrid() string {
	g := m.layout()
	tiles := m.ctrl.Render()

	var rows []string
	for r := m.offset; r < m.offset+g.rows; r++ {
		start := r * g.cols
		if start >= len(tiles) {
			break
		}
		end := min(start+g.cols, len(tiles))

		cells := make([]string, 0, end-start)
		for _, tile := range tiles[start:end] {
			renderer := m.renderers.ForKind(tile.Item.Kind)
			cells = append(cells, renderer.Render(tile.Item.Source, tile.Selected, tile.Key == m.focus))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
