package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures every knob shared across the exthostd CLI, TUI, and server
// entry points.
type Config struct {
	Workspace      string `yaml:"workspace"`
	ListenAddr     string `yaml:"listen_addr"`
	SymbolDBPath   string `yaml:"symbol_db_path"`
	LogPath        string `yaml:"log_path"`
	ContainerLabel string `yaml:"container_label"`
}

// DefaultConfig infers sensible defaults from the current working directory.
func DefaultConfig() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Workspace:    cwd,
		ListenAddr:   ":7310",
		SymbolDBPath: filepath.Join(cwd, ".exthostd", "symbols.db"),
		LogPath:      filepath.Join(cwd, ".exthostd", "exthostd.log"),
	}
}

// LoadConfig reads the yaml config at path over the defaults. A missing file
// is not an error; the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Normalize makes every filesystem path absolute so later initialization
// never has to re-check the same invariants.
func (c *Config) Normalize() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace path required")
	}
	abs, err := filepath.Abs(c.Workspace)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}
	c.Workspace = abs
	if c.SymbolDBPath == "" {
		c.SymbolDBPath = filepath.Join(c.Workspace, ".exthostd", "symbols.db")
	}
	if !filepath.IsAbs(c.SymbolDBPath) {
		c.SymbolDBPath = filepath.Join(c.Workspace, c.SymbolDBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(c.Workspace, c.LogPath)
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":7310"
	}
	return nil
}
