package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"homeworlds/experiments/metrics"
	"homeworlds/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultOpening is a symmetric start with both homeworlds built.
const DefaultOpening = `2 2 1
Home1 (1, g3y1) 1g3
Home2 (2, b2y3) 2g3
`

type Config struct {
	Log        Log        `yaml:"log"`
	Search     Search     `yaml:"search"`
	Experiment Experiment `yaml:"experiment"`
}

type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type Search struct {
	Depth      int    `yaml:"depth"`
	Evaluation string `yaml:"evaluation"`
}

type Experiment struct {
	Name      string                `yaml:"name"`
	OutputDir string                `yaml:"output_dir"`
	Games     int                   `yaml:"games"` // Per matchup
	MaxTurns  int                   `yaml:"max_turns"`
	Opening   string                `yaml:"opening"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	// Pairs of agent ids. Empty means every pair of agents.
	Matchups [][2]int `yaml:"matchups"`
	Replay   bool     `yaml:"replay"`
	Index    bool     `yaml:"index"`
}

func Default() Config {
	return Config{
		Log: Log{Level: "info", Console: true},
		Search: Search{
			Depth:      2,
			Evaluation: "material",
		},
		Experiment: Experiment{
			Name:      "depth",
			OutputDir: "experiments",
			Games:     10,
			MaxTurns:  200,
			Opening:   DefaultOpening,
			Agents: []metrics.AgentConfig{
				{ID: 1, Depth: 1, Evaluation: "material"},
				{ID: 2, Depth: 2, Evaluation: "material"},
				{ID: 3, Depth: 2, Evaluation: "positional"},
				{ID: 4, Random: true, Seed: 1},
			},
			Replay: true,
			Index:  true,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path gives the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Search.Depth < 0 {
		return fmt.Errorf("search depth must not be negative, got %d", c.Search.Depth)
	}
	if _, err := game.EvaluatorByName(c.Search.Evaluation); err != nil {
		return err
	}

	e := c.Experiment
	if e.Games < 1 {
		return fmt.Errorf("experiment needs at least one game per matchup, got %d", e.Games)
	}
	ids := map[int]bool{}
	for _, a := range e.Agents {
		if ids[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		ids[a.ID] = true
		if a.Random {
			continue
		}
		if a.Depth < 1 {
			return fmt.Errorf("agent %d: depth must be positive, got %d", a.ID, a.Depth)
		}
		if a.Evaluation == "" {
			continue
		}
		if _, err := game.EvaluatorByName(a.Evaluation); err != nil {
			return fmt.Errorf("agent %d: %w", a.ID, err)
		}
	}
	for _, m := range e.Matchups {
		if !ids[m[0]] || !ids[m[1]] {
			return fmt.Errorf("matchup %v names an unknown agent", m)
		}
	}
	return nil
}

// SetupLogging configures the global zerolog logger.
func SetupLogging(c Log, out io.Writer) error {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if c.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
