package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/lifesim/go-conway/render"
	"github.com/lifesim/go-conway/utils"
)

var dimensionsRE = regexp.MustCompile(`^(\d+)x(\d+)$`)

func main() {
	var (
		configPath = flag.String("config", "config.json", "path to JSON configuration file")
		file       = flag.String("file", "", "pattern file to start the game with; omit to use a random pattern")
		dimensions = flag.String("dimensions", "", "grid dimensions in cells, as {rows}x{cols}")
		cellSize   = flag.Int("cell", 0, "display size of each cell in pixels")
		seed       = flag.Int64("seed", 0, "seed for random pattern generation; 0 uses the clock")
		headless   = flag.Bool("headless", false, "run the terminal loop instead of the SDL window")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("Using default configuration (config file not found)")
		config = utils.DefaultConfig()
	}
	if err = config.ApplyEnv(); err != nil {
		fatal(err)
	}

	// CLI flags take precedence over the file and the environment.
	if *file != "" {
		config.PatternFile = *file
	}
	if *dimensions != "" {
		m := dimensionsRE.FindStringSubmatch(*dimensions)
		if m == nil {
			fatal(errors.Errorf("[main] dimensions %q: want {rows}x{cols}", *dimensions))
		}
		config.Rows, _ = strconv.Atoi(m[1])
		config.Cols, _ = strconv.Atoi(m[2])
	}
	if *cellSize > 0 {
		config.CellSize = *cellSize
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *headless {
		config.Renderer = utils.RendererTerminal
	}

	if err = config.Validate(); err != nil {
		fatal(err)
	}

	grid, err := buildGrid(config)
	if err != nil {
		fatal(err)
	}

	switch config.Renderer {
	case utils.RendererTerminal:
		runTerminal(config, grid)
	default:
		loop, err := render.NewSDLLoop(grid, config)
		if err != nil {
			fatal(err)
		}
		if err = loop.Run(); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "gol: %v\n", err)
	os.Exit(1)
}
