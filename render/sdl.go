package render

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/lifesim/go-conway/model"
	"github.com/lifesim/go-conway/utils"
)

const windowTitle = "GoL"

// SDLLoop owns the interactive display loop: an SDL window showing the grid,
// keyboard controls for play/pause/step/speed, and frame pacing.
//
// Controls: SPACE toggles play/pause, N single-steps while paused, UP/DOWN
// adjust the framerate, RIGHT/LEFT adjust generations per frame, and Q, ESC,
// or closing the window quits.
type SDLLoop struct {
	grid     *model.Grid
	window   *sdl.Window
	renderer *sdl.Renderer
	cellSize int32

	playing       bool
	framerate     int // MaxFramerate+1 means unthrottled
	minFrameTime  time.Duration
	stepsPerFrame int
	stepCount     uint64
}

// NewSDLLoop initializes SDL and opens a window sized to the grid.
func NewSDLLoop(grid *model.Grid, config utils.Config) (*SDLLoop, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "[NewSDLLoop] failed to init SDL")
	}

	rows, cols := grid.Dimensions()
	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cols*config.CellSize), int32(rows*config.CellSize),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "[NewSDLLoop] failed to create window")
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, errors.Wrap(err, "[NewSDLLoop] failed to create renderer")
	}

	return &SDLLoop{
		grid:          grid,
		window:        window,
		renderer:      renderer,
		cellSize:      int32(config.CellSize),
		framerate:     config.Framerate,
		minFrameTime:  time.Second / time.Duration(config.Framerate),
		stepsPerFrame: config.StepsPerFrame,
	}, nil
}

// Run drives the event/render loop until the user quits.
func (l *SDLLoop) Run() error {
	defer l.destroy()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_q, sdl.K_ESCAPE:
					return nil
				case sdl.K_SPACE:
					l.playing = !l.playing
				case sdl.K_n:
					if !l.playing {
						l.Step(1)
					}
				case sdl.K_UP:
					l.incFramerate()
				case sdl.K_DOWN:
					l.decFramerate()
				case sdl.K_RIGHT:
					l.incStepsPerFrame()
				case sdl.K_LEFT:
					l.decStepsPerFrame()
				}
			}
		}

		if err := l.renderFrame(); err != nil {
			return err
		}
	}
}

// Step advances the game independent of play state.
func (l *SDLLoop) Step(n uint) {
	l.grid.Advance(n)
	l.stepCount += uint64(n)
}

// Playing reports whether rendered frames advance the game state.
func (l *SDLLoop) Playing() bool { return l.playing }

// renderFrame draws the current generation, advances the game if playing,
// refreshes the window title, and sleeps off the remaining frame budget.
func (l *SDLLoop) renderFrame() error {
	frameStart := time.Now()

	if err := l.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return errors.Wrap(err, "[renderFrame] failed to set clear color")
	}
	if err := l.renderer.Clear(); err != nil {
		return errors.Wrap(err, "[renderFrame] failed to clear canvas")
	}
	if err := l.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return errors.Wrap(err, "[renderFrame] failed to set draw color")
	}

	snap := l.grid.Snapshot()
	rows, cols := snap.Dimensions()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !snap.IsLive(r, c) {
				continue
			}
			cell := sdl.Rect{
				X: int32(c) * l.cellSize,
				Y: int32(r) * l.cellSize,
				W: l.cellSize,
				H: l.cellSize,
			}
			if err := l.renderer.FillRect(&cell); err != nil {
				return errors.Wrapf(err, "[renderFrame] failed to draw cell (%d,%d)", r, c)
			}
		}
	}
	l.renderer.Present()

	if l.playing {
		l.Step(uint(l.stepsPerFrame))
	}

	l.window.SetTitle(fmt.Sprintf(
		"%s | %d | FPS: %s | Evolutions Per Frame: %d",
		windowTitle, l.stepCount, l.framerateLabel(), l.stepsPerFrame,
	))

	// Block to achieve the desired framerate.
	if elapsed := time.Since(frameStart); l.playing && elapsed < l.minFrameTime {
		time.Sleep(l.minFrameTime - elapsed)
	}
	return nil
}

func (l *SDLLoop) framerateLabel() string {
	if l.framerate > utils.MaxFramerate {
		return "max"
	}
	return fmt.Sprintf("%d", l.framerate)
}

// incFramerate raises the framerate by 1 FPS; one notch past the max removes
// the throttle entirely.
func (l *SDLLoop) incFramerate() {
	switch {
	case l.framerate < utils.MaxFramerate:
		l.framerate++
		l.minFrameTime = time.Second / time.Duration(l.framerate)
	case l.framerate == utils.MaxFramerate:
		l.framerate++
		l.minFrameTime = 0
	}
}

// decFramerate lowers the framerate by 1 FPS, down to a minimum of 1.
func (l *SDLLoop) decFramerate() {
	if l.framerate > 1 {
		l.framerate--
		l.minFrameTime = time.Second / time.Duration(min(l.framerate, utils.MaxFramerate))
	}
}

func (l *SDLLoop) incStepsPerFrame() {
	if l.stepsPerFrame < utils.MaxStepsPerFrame {
		l.stepsPerFrame++
	}
}

func (l *SDLLoop) decStepsPerFrame() {
	if l.stepsPerFrame > 1 {
		l.stepsPerFrame--
	}
}

func (l *SDLLoop) destroy() {
	_ = l.renderer.Destroy()
	_ = l.window.Destroy()
	sdl.Quit()
}
