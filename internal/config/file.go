package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFormURL is the public diagnostics form the collected data is sent to.
const DefaultFormURL = "https://docs.google.com/forms/d/e/1FAIpQLScvTbSDYBzSQ8S4XoF-rfgwNj97C-Pn4Px3GIixJxf0C1YJJA/formResponse"

// File is the on-disk configuration. Every field is optional.
type File struct {
	Port           string         `yaml:"port"`
	Debug          DebugConfig    `yaml:"debug"`
	StrictChecksum bool           `yaml:"strict_checksum"`
	StoreDir       string         `yaml:"store_dir"`
	RegistersFile  string         `yaml:"registers_file"`
	Redis          RedisConfig    `yaml:"redis"`
	Form           FormConfig     `yaml:"form"`
	Simulate       SimulateConfig `yaml:"simulate"`
}

// DebugConfig turns on TX/RX byte dumps.
type DebugConfig struct {
	TX bool `yaml:"tx"`
	RX bool `yaml:"rx"`
}

// RedisConfig locates the Redis server health reports are published to.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Key prefix; the battery serial is appended.
	Key string `yaml:"key"`
}

type FormConfig struct {
	URL string `yaml:"url"`
}

type SimulateConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() File {
	return File{
		Redis: RedisConfig{
			Address: "localhost:6379",
			Key:     "m18",
		},
		Form: FormConfig{URL: DefaultFormURL},
		Simulate: SimulateConfig{
			Duration: 10 * time.Minute,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/m18/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "m18", "config.yaml"), nil
}

// Load reads the config at path on top of Defaults. A missing file is not
// an error.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config from r on top of Defaults and validates it.
func Parse(r io.Reader) (File, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}
