package ui

// grid is the tile layout for one terminal size
type grid struct {
	cols  int
	rows  int // visible rows
	tileW int
	tileH int
	top   int // lines above the first tile row
}

func newGrid(width, height, tileW, tileH, top, bottom int) grid {
	g := grid{tileW: tileW, tileH: tileH, top: top}
	g.cols = max(1, width/max(1, tileW))
	g.rows = max(1, (height-top-bottom)/max(1, tileH))
	return g
}

// row returns the grid row holding tile i
func (g grid) row(i int) int {
	return i / g.cols
}

// totalRows is the number of rows n tiles occupy
func (g grid) totalRows(n int) int {
	return (n + g.cols - 1) / g.cols
}

// scrollTo returns the row offset that keeps tile i visible, moving offset as
// little as possible
func (g grid) scrollTo(i, offset int) int {
	r := g.row(i)
	if r < offset {
		return r
	}
	if r >= offset+g.rows {
		return r - g.rows + 1
	}
	return offset
}

// clampOffset keeps offset inside the scrollable range for n tiles
func (g grid) clampOffset(offset, n int) int {
	maxOffset := max(0, g.totalRows(n)-g.rows)
	return min(max(0, offset), maxOffset)
}

// hit maps a screen cell to a tile index
func (g grid) hit(x, y, offset, n int) (int, bool) {
	if x < 0 || y < g.top {
		return 0, false
	}
	col := x / g.tileW
	r := (y - g.top) / g.tileH
	if col >= g.cols || r >= g.rows {
		return 0, false
	}
	i := (offset+r)*g.cols + col
	if i >= n {
		return 0, false
	}
	return i, true
}
