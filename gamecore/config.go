package gamecore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fallencrown/gamecore/gamecore/database"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log   LogConfig         `toml:"log"`
	DB    database.DBConfig `toml:"db"`
	Quest QuestConfig       `toml:"quest"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type QuestConfig struct {
	NodeCacheSize int `toml:"node_cache_size"`
}
