package pattern

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/lifesim/go-conway/model"
)

// RenderChars encodes a snapshot in the chars pattern format, so a grid can
// be written out and reparsed into an identical live/dead map.
func RenderChars(snap model.Snapshot, dead, live byte) (string, error) {
	if dead == live {
		return "", errors.Wrapf(ErrInvalidCharSpec, "[RenderChars] dead and live char are both %q", dead)
	}
	if dead == '\n' || live == '\n' || dead == '{' || live == '{' {
		return "", errors.Wrapf(ErrInvalidCharSpec, "[RenderChars] unencodable chars {%q%q}", dead, live)
	}

	rows, cols := snap.Dimensions()

	var b strings.Builder
	b.WriteString("chars\n\n")
	fmt.Fprintf(&b, "{%c%c}\n\n", dead, live)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if snap.IsLive(r, c) {
				b.WriteByte(live)
			} else {
				b.WriteByte(dead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// RenderCoords encodes a snapshot's live cells in the coords pattern format.
func RenderCoords(snap model.Snapshot) string {
	rows, cols := snap.Dimensions()

	var b strings.Builder
	b.WriteString("coords\n\n")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if snap.IsLive(r, c) {
				fmt.Fprintf(&b, "%d,%d\n", r, c)
			}
		}
	}
	return b.String()
}
