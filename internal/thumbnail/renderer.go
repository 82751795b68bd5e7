// Package thumbnail draws fixed-size media tiles for the picker grid.
//
// Renderers are pure with respect to their inputs: the same source, selection
// and focus always produce the same string. Rendered bodies are cached, which
// changes how fast a tile renders but never what it looks like.
package thumbnail

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"

	"imagepicker/internal/domain"
)

// Renderer draws one tile
type Renderer interface {
	Render(src string, selected, focused bool) string
}

// Options controls tile geometry
type Options struct {
	Width      int // body width in cells
	Height     int // body height in cells; images get two pixel rows per cell
	ShowLabels bool
	CacheSize  int
}

// DefaultOptions returns the default tile geometry
func DefaultOptions() Options {
	return Options{Width: 16, Height: 8, ShowLabels: true, CacheSize: 256}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Width < 4 {
		o.Width = def.Width
	}
	if o.Height < 2 {
		o.Height = def.Height
	}
	if o.CacheSize <= 0 {
		o.CacheSize = def.CacheSize
	}
	return o
}

// TileWidth is the outer width of a framed tile
func (o Options) TileWidth() int {
	return o.Width + 2
}

// TileHeight is the outer height of a framed tile
func (o Options) TileHeight() int {
	h := o.Height + 2
	if o.ShowLabels {
		h++
	}
	return h
}

// Set holds one renderer per media kind
type Set struct {
	Image *ImageRenderer
	Video *VideoRenderer
	opts  Options
}

// NewSet creates the renderers for both media kinds, reading images from fs
func NewSet(fs afero.Fs, opts Options) (*Set, error) {
	opts = opts.normalized()
	img, err := NewImageRenderer(fs, opts)
	if err != nil {
		return nil, err
	}
	return &Set{
		Image: img,
		Video: NewVideoRenderer(opts),
		opts:  opts,
	}, nil
}

// ForKind returns the renderer for kind; unknown kinds are drawn as images
func (s *Set) ForKind(kind domain.MediaKind) Renderer {
	if kind == domain.KindVideo {
		return s.Video
	}
	return s.Image
}

// Options returns the normalized geometry shared by the renderers
func (s *Set) Options() Options {
	return s.opts
}

var (
	borderIdle     = lipgloss.Color("241")
	borderSelected = lipgloss.Color("78")  // green
	borderFocused  = lipgloss.Color("226") // yellow
	checkStyle     = lipgloss.NewStyle().Foreground(borderSelected).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Frame wraps a tile body with the selection marking: a green border and a
// check mark when selected, a thick border when focused
func Frame(body, src string, opts Options, selected, focused bool) string {
	content := body
	if opts.ShowLabels {
		content = body + "\n" + label(src, opts.Width, selected)
	}

	border := lipgloss.RoundedBorder()
	if focused {
		border = lipgloss.ThickBorder()
	}
	color := borderIdle
	switch {
	case selected:
		color = borderSelected
	case focused:
		color = borderFocused
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Render(content)
}

func label(src string, width int, selected bool) string {
	prefix := "  "
	if selected {
		prefix = checkStyle.Render("✓") + " "
	}
	name := runewidth.Truncate(filepath.Base(src), width-2, "…")
	return prefix + labelStyle.Render(runewidth.FillRight(name, width-2))
}

// placeholder draws a flat tile with a glyph in the middle
func placeholder(opts Options, glyph string, bg lipgloss.Color) string {
	box := lipgloss.NewStyle().
		Width(opts.Width).
		Height(opts.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Background(bg).
		Foreground(lipgloss.Color("252")).
		Render(glyph)
	return strings.TrimRight(box, "\n")
}
