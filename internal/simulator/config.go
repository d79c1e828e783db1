package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileConfig is the on-disk simulation configuration
type FileConfig struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
}

// SimulationSettings contains simulation-level configuration
type SimulationSettings struct {
	Rounds   int    `hcl:"rounds,optional"`
	Players  int    `hcl:"players,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// DefaultFileConfig returns the default simulation configuration
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		Simulation: SimulationSettings{
			Rounds:   1000,
			Players:  1,
			Workers:  1,
			LogLevel: "info",
		},
	}
}

// LoadFileConfig loads simulation configuration from an HCL file. A
// missing file yields the defaults.
func LoadFileConfig(filename string) (*FileConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultFileConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Simulation.Rounds == 0 {
		config.Simulation.Rounds = 1000
	}
	if config.Simulation.Players == 0 {
		config.Simulation.Players = 1
	}
	if config.Simulation.Workers == 0 {
		config.Simulation.Workers = 1
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the simulation configuration
func (c *FileConfig) Validate() error {
	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.Players < 1 {
		return fmt.Errorf("players must be positive, got %d", c.Simulation.Players)
	}
	// A player can hold at most 12 number cards before the 13th value
	// repeats; past 6 players a 94-card deck cannot cover worst-case
	// rounds, so cap conservatively.
	if c.Simulation.Players > 6 {
		return fmt.Errorf("players must be between 1 and 6, got %d", c.Simulation.Players)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}
