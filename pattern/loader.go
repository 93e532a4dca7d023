package pattern

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lifesim/go-conway/model"
)

// Format discriminates the two pattern file grammars.
type Format int

const (
	// FormatChars is a dense character grid with declared dead/live symbols.
	FormatChars Format = iota

	// FormatCoords is a list of row,col pairs of live cells.
	FormatCoords
)

// String returns the format's header token.
func (f Format) String() string {
	if f == FormatCoords {
		return "coords"
	}
	return "chars"
}

// Cell is a live-cell coordinate in a pattern.
type Cell struct {
	R, C int
}

// Descriptor is the intermediate representation produced by parsing a
// pattern: the source format, the live-cell set, and (for chars patterns)
// the declared symbols. It is validated against the target dimensions it was
// parsed for and materialized into a Grid separately.
type Descriptor struct {
	Format   Format
	DeadChar byte
	LiveChar byte
	Live     []Cell

	rows, cols int
}

var charSpecRE = regexp.MustCompile(`^\{(.)(.)\}$`)

// Parse reads pattern text in either grammar, dispatching on the first
// significant line. The target grid dimensions are supplied by the caller,
// never inferred from the pattern body; anything that does not fit them is
// an error, not a resize.
func Parse(content []byte, rows, cols int) (*Descriptor, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "[Parse] target grid %dx%d", rows, cols)
	}

	lines := strings.Split(string(content), "\n")

	i := 0
	for ; i < len(lines); i++ {
		if strings.TrimSpace(trimCR(lines[i])) != "" {
			break
		}
	}
	if i == len(lines) {
		return nil, errors.Wrap(ErrUnknownFormat, "[Parse] empty input")
	}

	header := strings.TrimSpace(trimCR(lines[i]))
	switch header {
	case "chars":
		return parseChars(lines[i+1:], i+2, rows, cols)
	case "coords":
		return parseCoords(lines[i+1:], i+2, rows, cols)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "[Parse] line %d: %q", i+1, header)
	}
}

// parseChars parses the body of a chars pattern. firstLineNo is the 1-based
// file line number of lines[0], for diagnostics.
func parseChars(lines []string, firstLineNo, rows, cols int) (*Descriptor, error) {
	d := &Descriptor{Format: FormatChars, rows: rows, cols: cols}

	var (
		haveSpec = false
		row      = 0
	)
	for i, raw := range lines {
		lineNo := firstLineNo + i
		line := trimCR(raw)

		if !haveSpec {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, "{") {
				return nil, errors.Wrapf(ErrMissingCharSpec, "[parseChars] line %d: pattern row before {<dead><live>} spec", lineNo)
			}

			m := charSpecRE.FindStringSubmatch(trimmed)
			if m == nil || len(m[1]) != 1 || len(m[2]) != 1 || m[1] == m[2] {
				return nil, errors.Wrapf(ErrInvalidCharSpec, "[parseChars] line %d: %q", lineNo, trimmed)
			}
			d.DeadChar, d.LiveChar = m[1][0], m[2][0]
			haveSpec = true
			continue
		}

		// Once the spec declares its symbols, only strictly empty lines are
		// blank; a declared dead char may itself be a space.
		if line == "" {
			continue
		}

		if row >= rows {
			return nil, errors.Wrapf(ErrTooManyRows, "[parseChars] line %d: grid has %d rows", lineNo, rows)
		}
		if len(line) > cols {
			return nil, errors.Wrapf(ErrRowTooLong, "[parseChars] line %d: %d cells, grid has %d columns", lineNo, len(line), cols)
		}

		for col := 0; col < len(line); col++ {
			switch line[col] {
			case d.DeadChar:
			case d.LiveChar:
				d.Live = append(d.Live, Cell{R: row, C: col})
			default:
				return nil, errors.Wrapf(ErrInvalidCellChar,
					"[parseChars] line %d: row %d, col %d: %q", lineNo, row, col, line[col])
			}
		}
		row++
	}

	if !haveSpec {
		return nil, errors.Wrap(ErrMissingCharSpec, "[parseChars] no {<dead><live>} spec before end of input")
	}
	return d, nil
}

// parseCoords parses the body of a coords pattern.
func parseCoords(lines []string, firstLineNo, rows, cols int) (*Descriptor, error) {
	d := &Descriptor{Format: FormatCoords, rows: rows, cols: cols}

	for i, raw := range lines {
		lineNo := firstLineNo + i
		line := strings.TrimSpace(trimCR(raw))
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, errors.Wrapf(ErrInvalidCoordinate, "[parseCoords] line %d: %q: want <row>,<col>", lineNo, line)
		}

		r, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || r < 0 {
			return nil, errors.Wrapf(ErrInvalidCoordinate, "[parseCoords] line %d: bad row %q", lineNo, fields[0])
		}
		c, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || c < 0 {
			return nil, errors.Wrapf(ErrInvalidCoordinate, "[parseCoords] line %d: bad column %q", lineNo, fields[1])
		}

		if r >= rows || c >= cols {
			return nil, errors.Wrapf(model.ErrOutOfBounds, "[parseCoords] line %d: (%d,%d) on %dx%d grid", lineNo, r, c, rows, cols)
		}

		// Duplicate coordinates are idempotent.
		d.Live = append(d.Live, Cell{R: r, C: c})
	}

	return d, nil
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}

// Center shifts the live set so the pattern's bounding box sits in the
// middle of the target grid. The shift never moves a validated cell out of
// bounds.
func (d *Descriptor) Center() {
	if len(d.Live) == 0 {
		return
	}

	maxR, maxC := 0, 0
	for _, cell := range d.Live {
		maxR = max(maxR, cell.R)
		maxC = max(maxC, cell.C)
	}

	rShift := (d.rows - maxR) / 2
	cShift := (d.cols - maxC) / 2
	for i := range d.Live {
		d.Live[i].R += rShift
		d.Live[i].C += cShift
	}
}

// Materialize builds a bounded-topology grid from the descriptor.
func (d *Descriptor) Materialize() (*model.Grid, error) {
	return d.MaterializeWithTopology(model.Bounded)
}

// MaterializeWithTopology builds a grid with an explicit topology from the
// descriptor. The loader hands the grid over and retains no reference to it.
func (d *Descriptor) MaterializeWithTopology(topology model.Topology) (*model.Grid, error) {
	g, err := model.NewGridWithTopology(d.rows, d.cols, topology)
	if err != nil {
		return nil, err
	}
	for _, cell := range d.Live {
		if err := g.SetLive(cell.R, cell.C, true); err != nil {
			return nil, errors.Wrapf(err, "[Materialize] cell (%d,%d)", cell.R, cell.C)
		}
	}
	return g, nil
}

// Load parses pattern text and materializes it into a grid of the given
// dimensions.
func Load(content []byte, rows, cols int) (*model.Grid, error) {
	d, err := Parse(content, rows, cols)
	if err != nil {
		return nil, err
	}
	return d.Materialize()
}

// LoadFile reads a pattern file and materializes it into a grid of the
// given dimensions.
func LoadFile(path string, rows, cols int) (*model.Grid, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFile] failed to read file: %+v", path)
	}
	return Load(content, rows, cols)
}
