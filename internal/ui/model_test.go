package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagepicker/internal/domain"
	"imagepicker/internal/picker"
	"imagepicker/internal/thumbnail"
)

func videoItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			Source:        fmt.Sprintf("/m/clip%02d.mp4", i),
			PositionIndex: i,
			Kind:          domain.KindVideo,
		}
	}
	return items
}

type harness struct {
	m       *Model
	changes []picker.SelectionChange
}

func newHarness(t *testing.T, n int, multiple bool) *harness {
	t.Helper()
	h := &harness{}
	ctrl := picker.New(picker.Props{
		Items:              videoItems(n),
		Multiple:           multiple,
		OnSelectionChanged: func(c picker.SelectionChange) { h.changes = append(h.changes, c) },
	})
	set, err := thumbnail.NewSet(afero.NewMemMapFs(), thumbnail.DefaultOptions())
	require.NoError(t, err)

	h.m = NewModel(ctrl, set, Options{})
	h.send(tea.WindowSizeMsg{Width: 80, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *harness) keys(keys ...string) {
	for _, k := range keys {
		switch k {
		case " ":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "end":
			h.send(tea.KeyMsg{Type: tea.KeyEnd})
		case "home":
			h.send(tea.KeyMsg{Type: tea.KeyHome})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) sources() []string {
	var out []string
	for _, p := range h.m.Result().Picks {
		out = append(out, p.Source)
	}
	return out
}

func TestKeyboardPick(t *testing.T) {
	h := newHarness(t, 6, true)

	h.keys("l", " ", "l", "l", " ")

	assert.Equal(t, []string{"/m/clip01.mp4", "/m/clip03.mp4"}, h.sources())
	require.Len(t, h.changes, 2)
	assert.Len(t, h.changes[1].Picks, 2)
	assert.Contains(t, h.m.View(), "2 selected")
	assert.Contains(t, h.m.View(), "✓")
}

func TestKeyboardUnpick(t *testing.T) {
	h := newHarness(t, 3, true)
	h.keys(" ", " ")

	assert.Empty(t, h.sources())
	require.Len(t, h.changes, 2)
	assert.True(t, h.changes[1].Removed)
}

func TestSingleSelectKeepsOnePick(t *testing.T) {
	h := newHarness(t, 4, false)
	h.keys(" ", "l", " ")

	assert.Equal(t, []string{"/m/clip01.mp4"}, h.sources())
	last := h.changes[len(h.changes)-1]
	require.NotNil(t, last.Single)
	assert.Equal(t, 1, last.Single.PositionIndex)
	assert.Contains(t, h.m.View(), "single-select")
}

func TestMouseClickPicksTile(t *testing.T) {
	h := newHarness(t, 10, true)
	g := h.m.layout()
	require.Equal(t, 4, g.cols)

	// third tile of the second row
	h.click(g.tileW*2+3, g.top+g.tileH+2)

	assert.Equal(t, []string{"/m/clip06.mp4"}, h.sources())
	assert.Equal(t, 6, h.m.focus)

	// header and gaps are not tiles
	h.click(1, 0)
	h.click(g.tileW*g.cols+1, g.top)
	assert.Len(t, h.sources(), 1)
}

func TestScrollFollowsFocus(t *testing.T) {
	h := newHarness(t, 20, true)
	g := h.m.layout()
	require.Equal(t, 3, g.rows)

	h.keys("end")
	assert.Equal(t, 19, h.m.focus)
	assert.Equal(t, 2, h.m.offset)

	h.keys("home")
	assert.Equal(t, 0, h.m.offset)

	h.keys("j", "j", "j")
	assert.Equal(t, 12, h.m.focus)
	assert.Equal(t, 1, h.m.offset)
}

func TestDownOntoPartialRow(t *testing.T) {
	h := newHarness(t, 6, true)
	h.keys("l", "l", "j")
	assert.Equal(t, 5, h.m.focus, "moving down into a short row lands on its last tile")
}

func TestConfirmAndQuit(t *testing.T) {
	h := newHarness(t, 2, true)
	h.keys(" ")

	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	res := h.m.Result()
	assert.True(t, res.Confirmed)
	assert.True(t, res.Multiple)
	assert.Equal(t, []domain.Pick{{Source: "/m/clip00.mp4", PositionIndex: 0}}, res.Picks)

	h = newHarness(t, 2, true)
	cmd = h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, h.m.Result().Confirmed)
}

func TestPreselectionReplaced(t *testing.T) {
	h := newHarness(t, 3, true)
	h.keys(" ")

	h.send(PreselectionReplacedMsg{Preselection: picker.PreselectSources("/m/clip02.mp4")})

	assert.Equal(t, []domain.Pick{{Source: "/m/clip02.mp4", PositionIndex: picker.UnknownIndex}}, h.m.Result().Picks)
	assert.Contains(t, h.m.View(), "preselection replaced")
	assert.Len(t, h.changes, 1, "replacement does not call back")
}

func TestItemsReplacedClampsFocus(t *testing.T) {
	h := newHarness(t, 8, true)
	h.keys("end")

	h.send(ItemsMsg{Items: videoItems(2)})
	assert.Equal(t, 1, h.m.focus)
	assert.Equal(t, 0, h.m.offset)

	h.keys(" ")
	assert.Equal(t, []string{"/m/clip01.mp4"}, h.sources())
}

func TestEmptyGrid(t *testing.T) {
	h := newHarness(t, 0, true)
	h.keys(" ", "l", "end")
	h.click(3, 3)

	assert.Empty(t, h.changes)
	assert.Contains(t, h.m.View(), "No media")
}

func TestHelpTogglesWithoutProgram(t *testing.T) {
	h := newHarness(t, 2, true)
	before := h.m.View()
	h.keys("?")
	after := h.m.View()

	assert.NotContains(t, before, "page up")
	assert.Contains(t, after, "page up")
}

func TestHelpContent(t *testing.T) {
	content := NewHelpRenderer(NewStyles(), defaultKeyMap()).RenderHelpContent()
	for _, want := range []string{"Navigation", "Selection", "Mouse", "confirm"} {
		assert.True(t, strings.Contains(content, want), "help should mention %q", want)
	}
}

func TestPausedViewIsEmpty(t *testing.T) {
	h := newHarness(t, 2, true)
	h.send(pauseRenderingMsg{})
	assert.Empty(t, h.m.View())
	h.send(resumeRenderingMsg{})
	assert.NotEmpty(t, h.m.View())
}

func TestHeaderShowsFocusedLabel(t *testing.T) {
	h := newHarness(t, 3, true)
	items := videoItems(3)
	items[1].Name = "Harbour at dusk"
	h.send(ItemsMsg{Items: items})

	assert.Contains(t, h.m.header(), "/m/clip00.mp4")
	h.keys("l")
	assert.Contains(t, h.m.header(), "Harbour at dusk")
}
