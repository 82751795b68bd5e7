package thumbnail

import "github.com/charmbracelet/lipgloss"

// VideoRenderer draws a fixed placeholder with a play glyph. Frames are not
// decoded.
type VideoRenderer struct {
	opts Options
	body string
}

// NewVideoRenderer creates a video renderer
func NewVideoRenderer(opts Options) *VideoRenderer {
	opts = opts.normalized()
	return &VideoRenderer{
		opts: opts,
		body: placeholder(opts, "▶", lipgloss.Color("53")),
	}
}

// Render draws the framed tile for src
func (r *VideoRenderer) Render(src string, selected, focused bool) string {
	return Frame(r.body, src, r.opts, selected, focused)
}
