package model

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

func setLive(t *testing.T, g *Grid, cells [][2]int) {
	t.Helper()
	for _, cell := range cells {
		if err := g.SetLive(cell[0], cell[1], true); err != nil {
			t.Fatalf("SetLive(%d, %d): %v", cell[0], cell[1], err)
		}
	}
}

// assertExactlyLive checks that the grid's live set is exactly the given
// cells.
func assertExactlyLive(t *testing.T, g *Grid, cells [][2]int) {
	t.Helper()
	want := make(map[[2]int]bool, len(cells))
	for _, cell := range cells {
		want[cell] = true
	}

	rows, cols := g.Dimensions()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			alive, err := g.IsLive(r, c)
			if err != nil {
				t.Fatalf("IsLive(%d, %d): %v", r, c, err)
			}
			if alive != want[[2]int{r, c}] {
				t.Errorf("cell (%d,%d) alive=%v, want %v", r, c, alive, want[[2]int{r, c}])
			}
		}
	}
}

func TestNewGridInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {0, 0}, {-1, 5}, {5, -3}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewGrid(%d, %d): got %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestNewGridStartsDead(t *testing.T) {
	g := mustGrid(t, 4, 7)
	if rows, cols := g.Dimensions(); rows != 4 || cols != 7 {
		t.Fatalf("Dimensions() = (%d, %d), want (4, 7)", rows, cols)
	}
	if pop := g.Population(); pop != 0 {
		t.Fatalf("new grid population = %d, want 0", pop)
	}
}

func TestAccessOutOfBounds(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for _, cell := range [][2]int{{3, 0}, {0, 3}, {-1, 0}, {0, -1}, {10, 10}} {
		if err := g.SetLive(cell[0], cell[1], true); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetLive(%d, %d): got %v, want ErrOutOfBounds", cell[0], cell[1], err)
		}
		if _, err := g.IsLive(cell[0], cell[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("IsLive(%d, %d): got %v, want ErrOutOfBounds", cell[0], cell[1], err)
		}
	}
}

func TestAdvanceZeroIsIdentity(t *testing.T) {
	g := mustGrid(t, 6, 6)
	setLive(t, g, [][2]int{{1, 1}, {2, 3}, {4, 4}, {0, 5}})

	before := g.Hash()
	g.Advance(0)
	if g.Hash() != before {
		t.Error("Advance(0) changed grid state")
	}
	if g.Generation() != 0 {
		t.Errorf("Advance(0) bumped generation to %d", g.Generation())
	}
}

func TestAdvanceComposes(t *testing.T) {
	const rows, cols = 16, 16
	cases := [][2]uint{{1, 1}, {2, 3}, {0, 4}, {5, 0}, {3, 3}}

	for _, tc := range cases {
		a, b := tc[0], tc[1]

		split := mustGrid(t, rows, cols)
		whole := mustGrid(t, rows, cols)
		split.Randomize(0.3, rand.New(rand.NewSource(42)))
		whole.Randomize(0.3, rand.New(rand.NewSource(42)))

		split.Advance(a)
		split.Advance(b)
		whole.Advance(a + b)

		if split.Hash() != whole.Hash() {
			t.Errorf("Advance(%d); Advance(%d) differs from Advance(%d)", a, b, a+b)
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}

	g := mustGrid(t, 5, 5)
	setLive(t, g, block)

	for i := 0; i < 10; i++ {
		g.Advance(1)
		assertExactlyLive(t, g, block)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}

	g := mustGrid(t, 5, 5)
	setLive(t, g, horizontal)

	g.Advance(1)
	assertExactlyLive(t, g, vertical)

	g.Advance(1)
	assertExactlyLive(t, g, horizontal)
}

func TestGliderTranslates(t *testing.T) {
	glider := [][2]int{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}

	g := mustGrid(t, 12, 12)
	setLive(t, g, glider)

	g.Advance(4)

	translated := make([][2]int, len(glider))
	for i, cell := range glider {
		translated[i] = [2]int{cell[0] + 1, cell[1] + 1}
	}
	assertExactlyLive(t, g, translated)
}

func TestParallelMatchesSerial(t *testing.T) {
	parallel := mustGrid(t, 64, 48)
	serial := mustGrid(t, 64, 48)
	serial.SetParallel(false)

	parallel.Randomize(0.25, rand.New(rand.NewSource(7)))
	serial.Randomize(0.25, rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		parallel.Advance(1)
		serial.Advance(1)
		if parallel.Hash() != serial.Hash() {
			t.Fatalf("parallel and serial steps diverged at generation %d", i+1)
		}
	}
}

func TestBoundedTopologyClampsEdges(t *testing.T) {
	// Vertical triple split across the top and bottom edges. Without
	// wrapping the three cells never see each other as one line, so the
	// whole population starves.
	g := mustGrid(t, 5, 5)
	setLive(t, g, [][2]int{{4, 2}, {0, 2}, {1, 2}})

	g.Advance(1)
	if pop := g.Population(); pop != 0 {
		t.Errorf("bounded edge population = %d, want 0", pop)
	}
}

func TestToroidalTopologyWraps(t *testing.T) {
	// The same split triple is a blinker across the seam when edges wrap.
	g, err := NewGridWithTopology(5, 5, Toroidal)
	if err != nil {
		t.Fatalf("NewGridWithTopology: %v", err)
	}
	setLive(t, g, [][2]int{{4, 2}, {0, 2}, {1, 2}})

	g.Advance(1)
	assertExactlyLive(t, g, [][2]int{{0, 1}, {0, 2}, {0, 3}})

	g.Advance(1)
	assertExactlyLive(t, g, [][2]int{{4, 2}, {0, 2}, {1, 2}})
}

func TestSnapshotIsDetached(t *testing.T) {
	g := mustGrid(t, 5, 5)
	setLive(t, g, [][2]int{{2, 1}, {2, 2}, {2, 3}})

	snap := g.Snapshot()
	g.Advance(1)

	// The snapshot still shows the pre-advance horizontal blinker.
	for _, cell := range [][2]int{{2, 1}, {2, 2}, {2, 3}} {
		if !snap.IsLive(cell[0], cell[1]) {
			t.Errorf("snapshot lost live cell (%d,%d) after Advance", cell[0], cell[1])
		}
	}
	if snap.IsLive(1, 2) {
		t.Error("snapshot picked up post-advance state")
	}
	if snap.Population() != 3 {
		t.Errorf("snapshot population = %d, want 3", snap.Population())
	}
	if snap.IsLive(-1, 0) || snap.IsLive(0, 9) {
		t.Error("out-of-bounds snapshot reads should be dead")
	}
}

func TestRandomizeIsSeedDeterministic(t *testing.T) {
	a := mustGrid(t, 20, 20)
	b := mustGrid(t, 20, 20)
	a.Randomize(0.4, rand.New(rand.NewSource(99)))
	b.Randomize(0.4, rand.New(rand.NewSource(99)))

	if a.Hash() != b.Hash() {
		t.Error("same seed produced different grids")
	}

	c := mustGrid(t, 20, 20)
	c.Randomize(0.0, rand.New(rand.NewSource(99)))
	if c.Population() != 0 {
		t.Error("density 0 produced live cells")
	}
}

func TestStagnationDetection(t *testing.T) {
	g := mustGrid(t, 5, 5)
	setLive(t, g, [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}})

	// A still life looks stagnant once enough history has accumulated.
	for i := 0; i < 4; i++ {
		g.UpdateHistory()
		g.Advance(1)
	}
	if !g.IsStagnant() {
		t.Error("block still life not detected as stagnant")
	}
}
