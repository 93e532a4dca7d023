package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/lifesim/go-conway/model"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// TerminalRenderer draws grid snapshots as text, one frame per call.
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

// Display renders the snapshot to the terminal
func (r *TerminalRenderer) Display(snap model.Snapshot) {
	w := r.out()
	rows, cols := snap.Dimensions()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if snap.IsLive(row, col) {
				fmt.Fprint(w, gridPosBlock)
			} else {
				fmt.Fprint(w, gridPosEmpty)
			}
		}
		fmt.Fprintln(w)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
