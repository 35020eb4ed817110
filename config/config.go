package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloeys/nbatch/shaders"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown config format. Supported extensions are '.toml', '.yaml' and '.yml'")
)

type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Shaders   ShadersConfig   `toml:"shaders" yaml:"shaders"`
	Terrain   TerrainConfig   `toml:"terrain" yaml:"terrain"`
	Instances InstancesConfig `toml:"instances" yaml:"instances"`
	Particles ParticlesConfig `toml:"particles" yaml:"particles"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error or fatal
	Level string `toml:"level" yaml:"level"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int32  `toml:"width" yaml:"width"`
	Height int32  `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
	MSAA   bool   `toml:"msaa" yaml:"msaa"`
}

type ShadersConfig struct {
	// Combined shader files. Empty uses the shaders built into the demo
	Instanced string `toml:"instanced" yaml:"instanced"`
	Particles string `toml:"particles" yaml:"particles"`
	Terrain   string `toml:"terrain" yaml:"terrain"`

	// Locations overrides the GLSL names of shader locations, keyed by location (e.g. matrix_mvp = "uMVP")
	Locations map[string]string `toml:"locations" yaml:"locations"`
}

// LocNames returns the default shader location names with the configured overrides applied
func (s *ShadersConfig) LocNames() (shaders.LocNames, error) {
	return shaders.DefaultLocNames.WithOverrides(s.Locations)
}

type TerrainConfig struct {
	// HeightField is an image whose luminance is used as the height. Empty generates a procedural field of Edge*Edge heights
	HeightField string     `toml:"height_field" yaml:"height_field"`
	Edge        int        `toml:"edge" yaml:"edge"`
	Size        [3]float32 `toml:"size" yaml:"size"`
	MaxHeight   float32    `toml:"max_height" yaml:"max_height"`
}

type InstancesConfig struct {
	// Model is loaded with assimp and drawn instead of a cube when set
	Model   string  `toml:"model" yaml:"model"`
	Count   int     `toml:"count" yaml:"count"`
	Spacing float32 `toml:"spacing" yaml:"spacing"`
}

type ParticlesConfig struct {
	Count  int     `toml:"count" yaml:"count"`
	Radius float32 `toml:"radius" yaml:"radius"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Title:  "nBatch",
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   true,
		},
		Terrain: TerrainConfig{
			Edge:      64,
			Size:      [3]float32{64, 4, 64},
			MaxHeight: 1,
		},
		Instances: InstancesConfig{
			Count:   1000,
			Spacing: 2.5,
		},
		Particles: ParticlesConfig{
			Count:  5000,
			Radius: 30,
		},
	}
}

func (c *Config) Validate() error {

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", c.Log.Level, err)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive but got %dx%d", c.Window.Width, c.Window.Height)
	}

	if _, err := c.Shaders.LocNames(); err != nil {
		return err
	}

	if c.Terrain.Edge < 0 {
		return fmt.Errorf("terrain edge can't be negative but got %d", c.Terrain.Edge)
	}

	if c.Instances.Count < 0 || c.Particles.Count < 0 {
		return fmt.Errorf("instance and particle counts can't be negative but got %d and %d", c.Instances.Count, c.Particles.Count)
	}

	return nil
}

// Load reads a TOML or YAML config, chosen by the file extension. Values missing
// from the file keep their Default value.
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data, filepath.Ext(path))
}

// Parse is like Load but reads the config from data. ext is the file extension (e.g. '.toml') that decides the format
func Parse(data []byte, ext string) (Config, error) {

	cfg := Default()

	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w. Got '%s'", ErrUnknownFormat, ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to decode %s config: %w", ext, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
