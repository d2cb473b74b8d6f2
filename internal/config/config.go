package config

import (
	"fmt"
	"os"

	"github.com/krellek/perltidyd/internal/perltidy"
	"gopkg.in/yaml.v3"
)

// Config holds the file-level defaults. LSP initializationOptions and
// workspace/didChangeConfiguration override the formatter settings later.
type Config struct {
	Executable  string `yaml:"executable"`
	Profile     string `yaml:"profile"`
	AutoDisable bool   `yaml:"autoDisable"`
	Log         Log    `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML config file and overlays it onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Settings() perltidy.Settings {
	return perltidy.Settings{
		Executable:  c.Executable,
		Profile:     c.Profile,
		AutoDisable: c.AutoDisable,
	}
}
