package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifesim/go-conway/model"
	"github.com/lifesim/go-conway/pattern"
	"github.com/lifesim/go-conway/render"
	"github.com/lifesim/go-conway/utils"
)

// topologyOf maps the config knob onto the engine's border topology.
func topologyOf(config utils.Config) model.Topology {
	if config.Topology == utils.TopologyToroidal {
		return model.Toroidal
	}
	return model.Bounded
}

// rngOf returns a seeded rng when the config carries a seed, otherwise one
// seeded from the clock.
func rngOf(config utils.Config) *rand.Rand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// buildGrid produces the initial grid: the configured pattern file when one
// is set, random fill otherwise. A malformed pattern file is a terminal
// condition for the load, never a silent fallback to random.
func buildGrid(config utils.Config) (*model.Grid, error) {
	topology := topologyOf(config)

	var (
		grid *model.Grid
		err  error
	)
	if config.PatternFile != "" {
		var content []byte
		if content, err = os.ReadFile(config.PatternFile); err != nil {
			return nil, err
		}

		var d *pattern.Descriptor
		if d, err = pattern.Parse(content, config.Rows, config.Cols); err != nil {
			return nil, err
		}
		if config.CenterPattern {
			d.Center()
		}
		grid, err = d.MaterializeWithTopology(topology)
	} else {
		grid, err = pattern.RandomWithTopology(config.Rows, config.Cols, config.RandomDensity, rngOf(config), topology)
	}
	if err != nil {
		return nil, err
	}

	grid.SetParallel(config.UseParallel)
	return grid, nil
}

// runTerminal drives the headless terminal loop: draw, advance, detect
// stagnation, restart when the board dies out.
func runTerminal(config utils.Config, grid *model.Grid) {
	renderer := &render.TerminalRenderer{}
	stats := utils.NewStats()
	frameDelay := time.Second / time.Duration(config.Framerate)

	displayGameInfo(config, grid)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var (
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	for {
		select {
		case <-sigChan:
			fmt.Println("\nShutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n",
				generation, time.Since(stats.StartTime).Seconds())
			fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
				stats.GenerationsPerSecond, stats.AveragePopulation)
			return
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		renderer.Clear()

		// Update game state
		livingCells, density, status, isStagnant := updateGameState(grid, generation, lastFrameTime, stats)
		lastFrameTime = frameStart

		// Update stagnation counter
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		// Display current status
		displayGameStatus(generation, livingCells, density, status, stats, lastRestartGen)
		renderer.Display(grid.Snapshot())

		// Check for max generations limit
		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\nReached maximum generations limit (%d)\n", config.MaxGenerations)
			return
		}

		// Check restart conditions
		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, generation, config)

		if shouldRestart && config.AutoRestart {
			fmt.Printf("Restarting due to %s...\n", restartReason)

			newGrid, err := restartGame(config)
			if err != nil {
				fmt.Printf("Restart failed: %v\n", err)
				return
			}
			grid = newGrid
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			grid.InjectRandomLife(config.InjectionCount)
		}

		// Calculate the next generation(s)
		grid.Advance(uint(config.StepsPerFrame))
		generation += config.StepsPerFrame

		// Wait before next frame
		time.Sleep(frameDelay)
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	fmt.Printf("Topology: %s | Parallel: %v\n", config.Topology, config.UseParallel)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		grid.Rows(), grid.Cols(), grid.Population())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// updateGameState updates the game state and returns status information
func updateGameState(
	grid *model.Grid,
	generation int,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := grid.Population()
	density := float64(livingCells) / float64(grid.Rows()*grid.Cols()) * 100

	// Update performance stats
	frameDuration := time.Since(lastFrameTime)
	stats.Update(generation, livingCells, frameDuration)

	// Update history for stagnation detection
	grid.UpdateHistory()

	// Check for stagnation
	isStagnant := grid.IsStagnant()

	// Display status
	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
	lastRestartGen int,
) {
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())

	// Show time since last restart
	if generation > lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Println()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the board with a fresh random pattern
func restartGame(config utils.Config) (*model.Grid, error) {
	fmt.Println("\nRestarting...")
	time.Sleep(1 * time.Second)

	// Restarts always draw from the shared source so a configured seed does
	// not reproduce the board that just stagnated.
	grid, err := pattern.RandomWithTopology(
		config.Rows, config.Cols, config.RandomDensity, nil, topologyOf(config))
	if err != nil {
		return nil, err
	}
	grid.SetParallel(config.UseParallel)

	fmt.Printf("New pattern loaded! Living cells: %d\n", grid.Population())
	time.Sleep(2 * time.Second)

	return grid, nil
}
