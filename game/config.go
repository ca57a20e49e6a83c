package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"catan/board"
)

const (
	minPlayers = 2
	maxPlayers = 4

	// minTargetVP is the lowest meaningful victory target: below it a game
	// could end during setup.
	minTargetVP = 3
)

// Config describes one new game. Zero values fall back to the standard game:
// radius-2 board, shuffled layout, 10 victory points, time-based seed.
type Config struct {
	Players  []string     `yaml:"players"`
	Board    board.Config `yaml:"board"`
	TargetVP int          `yaml:"target_vp"`
	Seed     uint64       `yaml:"seed"`
}

// LoadConfig reads a YAML game config from disk.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Players) < minPlayers || len(c.Players) > maxPlayers {
		return fmt.Errorf("%w: need %d-%d players, got %d", ErrConfig, minPlayers, maxPlayers, len(c.Players))
	}
	for i, name := range c.Players {
		if name == "" {
			return fmt.Errorf("%w: player %d has an empty name", ErrConfig, i)
		}
	}
	// Snapshots enforce the same floor; anything NewGame accepts must
	// round-trip through FromSnapshot.
	if c.TargetVP != 0 && c.TargetVP < minTargetVP {
		return fmt.Errorf("%w: target victory points must be at least %d", ErrConfig, minTargetVP)
	}
	return nil
}
