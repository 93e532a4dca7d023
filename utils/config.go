package utils

import (
	"encoding/json"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	// TopologyBounded treats cells beyond the border as permanently dead.
	TopologyBounded = "bounded"
	// TopologyToroidal wraps the border around the opposite edge.
	TopologyToroidal = "toroidal"

	// RendererSDL opens an interactive SDL window.
	RendererSDL = "sdl"
	// RendererTerminal runs the headless terminal loop.
	RendererTerminal = "terminal"

	// DefaultFramerate and MaxFramerate bound the display frame pacing, in
	// frames per second. One notch past MaxFramerate means unthrottled.
	DefaultFramerate = 24
	MaxFramerate     = 120

	// DefaultStepsPerFrame and MaxStepsPerFrame bound how many generations
	// are computed per rendered frame.
	DefaultStepsPerFrame = 1
	MaxStepsPerFrame     = 50

	// DefaultCellSize is the display size of each cell in pixels.
	DefaultCellSize = 5
)

// Config holds the configuration for the simulation and its runners.
type Config struct {
	Rows          int     `json:"rows" env:"GOL_ROWS"`
	Cols          int     `json:"cols" env:"GOL_COLS"`
	PatternFile   string  `json:"pattern_file" env:"GOL_PATTERN_FILE"`
	CenterPattern bool    `json:"center_pattern" env:"GOL_CENTER_PATTERN"`
	RandomDensity float64 `json:"random_density" env:"GOL_RANDOM_DENSITY"`
	Seed          int64   `json:"seed" env:"GOL_SEED"`
	Topology      string  `json:"topology" env:"GOL_TOPOLOGY"`
	Renderer      string  `json:"renderer" env:"GOL_RENDERER"`
	CellSize      int     `json:"cell_size" env:"GOL_CELL_SIZE"`
	Framerate     int     `json:"framerate" env:"GOL_FRAMERATE"`
	StepsPerFrame int     `json:"steps_per_frame" env:"GOL_STEPS_PER_FRAME"`
	UseParallel   bool    `json:"use_parallel" env:"GOL_USE_PARALLEL"`

	// Headless terminal runner knobs.
	AutoRestart         bool `json:"auto_restart" env:"GOL_AUTO_RESTART"`
	StagnationThreshold int  `json:"stagnation_threshold" env:"GOL_STAGNATION_THRESHOLD"`
	MaxGenerations      int  `json:"max_generations" env:"GOL_MAX_GENERATIONS"`
	InjectionCount      int  `json:"injection_count" env:"GOL_INJECTION_COUNT"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:                40,
		Cols:                60,
		RandomDensity:       0.1,
		Topology:            TopologyBounded,
		Renderer:            RendererSDL,
		CellSize:            DefaultCellSize,
		Framerate:           DefaultFramerate,
		StepsPerFrame:       DefaultStepsPerFrame,
		UseParallel:         true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		InjectionCount:      3,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overrides configuration fields from GOL_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Validate rejects out-of-range knobs before the simulation starts.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return errors.Errorf("[Validate] grid dimensions %dx%d: both must be positive", c.Rows, c.Cols)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random density %v outside [0, 1]", c.RandomDensity)
	}
	if c.Topology != TopologyBounded && c.Topology != TopologyToroidal {
		return errors.Errorf("[Validate] unknown topology %q", c.Topology)
	}
	if c.Renderer != RendererSDL && c.Renderer != RendererTerminal {
		return errors.Errorf("[Validate] unknown renderer %q", c.Renderer)
	}
	if c.CellSize < 1 {
		return errors.Errorf("[Validate] cell size %d: must be positive", c.CellSize)
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		return errors.Errorf("[Validate] framerate %d outside [1, %d]", c.Framerate, MaxFramerate)
	}
	if c.StepsPerFrame < 1 || c.StepsPerFrame > MaxStepsPerFrame {
		return errors.Errorf("[Validate] steps per frame %d outside [1, %d]", c.StepsPerFrame, MaxStepsPerFrame)
	}
	return nil
}
