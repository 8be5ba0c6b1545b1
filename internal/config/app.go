package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Sandbox configures the sandbox game server.
type Sandbox struct {
	Addr     string `env:"APP_ADDR" envDefault:":1066"`
	BasePath string `env:"APP_BASE_PATH" envDefault:"/server"`
	// Persist keeps games in postgres instead of memory.
	Persist bool `env:"SANDBOX_PERSIST"`
}

func NewSandbox() (*Sandbox, error) {
	var cfg Sandbox
	if err := parseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Solver configures a batch of solver games.
type Solver struct {
	ServerURL  string  `env:"MINES_SERVER_URL" envDefault:"http://localhost:1066/server"`
	ClientName string  `env:"MINES_CLIENT_NAME" envDefault:"mines-solver"`
	Dims       []int   `env:"MINES_DIMS" envSeparator:"," envDefault:"16,16"`
	Mines      int     `env:"MINES_COUNT" envDefault:"40"`
	Seed       *uint64 `env:"MINES_SEED"`
	Games      int     `env:"MINES_GAMES" envDefault:"1"`
	Parallel   int     `env:"MINES_PARALLEL" envDefault:"1"`
	Autoclear  bool    `env:"MINES_AUTOCLEAR"`
	First      []int   `env:"MINES_FIRST" envSeparator:","`
	ResultsDB  string  `env:"MINES_RESULTS_DB"`

	// Local plays against an in-process sandbox instead of ServerURL.
	Local bool `env:"MINES_LOCAL"`
}

func NewSolver() (*Solver, error) {
	var cfg Solver
	if err := parseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Games < 1 {
		return nil, fmt.Errorf("MINES_GAMES must be positive, got %d", cfg.Games)
	}
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("MINES_PARALLEL must be positive, got %d", cfg.Parallel)
	}
	if cfg.First != nil && len(cfg.First) != len(cfg.Dims) {
		return nil, fmt.Errorf(
			"MINES_FIRST %v does not match MINES_DIMS %v", cfg.First, cfg.Dims,
		)
	}
	return &cfg, nil
}
