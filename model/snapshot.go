package model

// Snapshot is a read-only copy of a grid's cell states, taken at a single
// generation. Renderers iterate a snapshot once per frame; it never aliases
// the engine's live buffers, so a later Advance cannot change it.
type Snapshot struct {
	rows, cols int
	cells      []bool // row-major
}

// Snapshot copies the current generation into a read-only view.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]bool, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		copy(cells[r*g.cols:(r+1)*g.cols], g.cur[r])
	}
	return Snapshot{rows: g.rows, cols: g.cols, cells: cells}
}

// Rows returns the number of rows in the snapshot.
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the number of columns in the snapshot.
func (s Snapshot) Cols() int { return s.cols }

// Dimensions returns the (rows, cols) of the snapshot.
func (s Snapshot) Dimensions() (rows, cols int) { return s.rows, s.cols }

// IsLive reports whether cell (r, c) was live when the snapshot was taken.
// Coordinates outside the grid are dead.
func (s Snapshot) IsLive(r, c int) bool {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return false
	}
	return s.cells[r*s.cols+c]
}

// Population returns the number of living cells in the snapshot.
func (s Snapshot) Population() (count int) {
	for _, alive := range s.cells {
		if alive {
			count++
		}
	}
	return
}
