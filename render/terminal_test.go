package render

import (
	"strings"
	"testing"

	"github.com/lifesim/go-conway/model"
)

func TestTerminalRendererDisplay(t *testing.T) {
	g, err := model.NewGrid(2, 3)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if err := g.SetLive(0, 1, true); err != nil {
		t.Fatalf("SetLive: %v", err)
	}
	if err := g.SetLive(1, 2, true); err != nil {
		t.Fatalf("SetLive: %v", err)
	}

	var out strings.Builder
	renderer := &TerminalRenderer{Out: &out}
	renderer.Display(g.Snapshot())

	want := "" +
		gridPosEmpty + gridPosBlock + gridPosEmpty + "\n" +
		gridPosEmpty + gridPosEmpty + gridPosBlock + "\n"
	if out.String() != want {
		t.Errorf("Display output:\n%q\nwant:\n%q", out.String(), want)
	}
}
