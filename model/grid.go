package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lifesim/go-conway/rules"
)

// Topology selects how neighbor coordinates behave at the grid border.
type Topology int

const (
	// Bounded treats coordinates outside the grid as permanently dead, so
	// border cells have fewer than 8 neighbors.
	Bounded Topology = iota

	// Toroidal wraps neighbor coordinates around the opposite edge.
	Toroidal
)

// Grid is the game board: a fixed rows x cols field of live/dead cells.
//
// The grid owns two same-shaped buffers, "cur" and "next". A generation is
// computed by reading every cell's neighbors from cur and writing the
// resulting states into next, then swapping the two, so no cell ever
// observes an already-updated neighbor from its own generation.
//
// A Grid has a single logical owner: callers must not invoke Advance or the
// mutators concurrently from multiple goroutines.
type Grid struct {
	rows, cols int
	topology   Topology
	parallel   bool

	cur  [][]bool
	next [][]bool

	generation uint64
	history    []string // recent state hashes for cycle detection
}

// NewGrid creates an all-dead grid with the given fixed dimensions and
// bounded topology.
func NewGrid(rows, cols int) (*Grid, error) {
	return NewGridWithTopology(rows, cols, Bounded)
}

// NewGridWithTopology creates an all-dead grid with an explicit border
// topology. Toroidal wrapping is opt-in only; Bounded is the default
// everywhere else in the package.
func NewGridWithTopology(rows, cols int, topology Topology) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", rows, cols)
	}
	return &Grid{
		rows:     rows,
		cols:     cols,
		topology: topology,
		parallel: true,
		cur:      makeCells(rows, cols),
		next:     makeCells(rows, cols),
	}, nil
}

func makeCells(rows, cols int) [][]bool {
	cells := make([][]bool, rows)
	for r := range cells {
		cells[r] = make([]bool, cols)
	}
	return cells
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int { return g.cols }

// Dimensions returns the fixed (rows, cols) of the grid.
func (g *Grid) Dimensions() (rows, cols int) { return g.rows, g.cols }

// Topology returns the configured border topology.
func (g *Grid) Topology() Topology { return g.topology }

// Generation returns how many generations have been computed so far.
func (g *Grid) Generation() uint64 { return g.generation }

// SetParallel toggles the row-banded parallel generation step. Both paths
// produce identical results; the serial path avoids goroutine overhead on
// small grids.
func (g *Grid) SetParallel(enabled bool) { g.parallel = enabled }

// SetLive sets a single cell's state.
func (g *Grid) SetLive(r, c int, alive bool) error {
	if !g.inBounds(r, c) {
		return errors.Wrapf(ErrOutOfBounds, "[SetLive] (%d,%d) on %dx%d grid", r, c, g.rows, g.cols)
	}
	g.cur[r][c] = alive
	return nil
}

// IsLive reads a single cell's state.
func (g *Grid) IsLive(r, c int) (bool, error) {
	if !g.inBounds(r, c) {
		return false, errors.Wrapf(ErrOutOfBounds, "[IsLive] (%d,%d) on %dx%d grid", r, c, g.rows, g.cols)
	}
	return g.cur[r][c], nil
}

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Advance computes n successive generations. Advance(0) is a no-op. It is a
// pure blocking computation: no I/O, no cancellation point, always
// terminates.
func (g *Grid) Advance(n uint) {
	for i := uint(0); i < n; i++ {
		g.step()
	}
}

// step computes one generation from cur into next, then swaps the buffers.
func (g *Grid) step() {
	if g.parallel {
		g.stepParallel()
	} else {
		g.stepRange(0, g.rows)
	}
	g.cur, g.next = g.next, g.cur
	g.generation++
}

// stepParallel divides the rows into ceiling-divided bands, one per CPU.
// Bands write disjoint rows of next and only read cur, so no
// synchronization beyond the errgroup join is needed.
func (g *Grid) stepParallel() {
	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			g.stepRange(startRow, endRow)
			return nil
		})
	}

	// Workers never return errors; Wait is only the join point.
	_ = eg.Wait()
}

// stepRange evaluates rows [startRow, endRow) of the next generation.
// Every cell is assigned, so next needs no clearing between generations.
func (g *Grid) stepRange(startRow, endRow int) {
	for r := startRow; r < endRow; r++ {
		for c := 0; c < g.cols; c++ {
			g.next[r][c] = rules.ApplyConwayRules(g.countNeighbors(r, c), g.cur[r][c])
		}
	}
}

// countNeighbors counts live cells among the 8 neighbors of (r, c) in the
// current generation.
func (g *Grid) countNeighbors(r, c int) int {
	if g.topology == Toroidal {
		return g.countNeighborsWrapped(r, c)
	}

	// Clamp the 3x3 window at the border; cells outside are dead.
	var (
		count = 0
		minR  = max(0, r-1)
		maxR  = min(g.rows-1, r+1)
		minC  = max(0, c-1)
		maxC  = min(g.cols-1, c+1)
	)
	for nr := minR; nr <= maxR; nr++ {
		for nc := minC; nc <= maxC; nc++ {
			if nr == r && nc == c {
				continue
			}
			if g.cur[nr][nc] {
				count++
			}
		}
	}
	return count
}

func (g *Grid) countNeighborsWrapped(r, c int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr := (r + dr + g.rows) % g.rows
			nc := (c + dc + g.cols) % g.cols
			if g.cur[nr][nc] {
				count++
			}
		}
	}
	return count
}

// Population returns the total number of living cells.
func (g *Grid) Population() (count int) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cur[r][c] {
				count++
			}
		}
	}
	return
}

// Randomize fills the grid with random living cells at the given density.
// A nil rng falls back to the shared math/rand source; reproducibility is
// the caller's concern via a seeded rng.
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	roll := rand.Float64
	if rng != nil {
		roll = rng.Float64
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			g.cur[r][c] = roll() < density
		}
	}
}

// InjectRandomLife sets count random cells live to break stagnation.
func (g *Grid) InjectRandomLife(count int) {
	for i := 0; i < count; i++ {
		g.cur[rand.Intn(g.rows)][rand.Intn(g.cols)] = true
	}
}

// Hash returns an MD5 digest of the current cell states.
func (g *Grid) Hash() string {
	h := md5.New()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cur[r][c] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory records the current state hash, keeping only the last 5
// states for cycle detection. History lives in memory only.
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > 5 {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the grid is stuck in a static state or a short
// cycle, based on the recorded history.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.Hash()
	for back := 1; back <= 3; back++ {
		if g.history[len(g.history)-back] == currentHash {
			return true
		}
	}
	return false
}
