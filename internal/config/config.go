package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the optional per-plugin config file read from the plugin root.
const FileName = ".doctor.toml"

// Environment variables overriding the config file.
const (
	EnvPluginDir = "DOCTOR_PLUGIN_DIR"
	EnvHostRoot  = "DOCTOR_HOST_ROOT"
	EnvVerbose   = "DOCTOR_VERBOSE"
)

// ValidThemeNames lists the accepted values for theme.name
var ValidThemeNames = []string{"default", "none"}

// ThemeConfig holds output styling options
type ThemeConfig struct {
	Name         string `toml:"name"`          // "default" or "none"
	ASCIISymbols bool   `toml:"ascii_symbols"` // replace emoji prefixes with ASCII
}

// Config holds the doctor configuration
type Config struct {
	HostRoot     string      `toml:"host_root"`     // relative to the plugin root unless absolute
	HostName     string      `toml:"host_name"`     // expected "name" in the host package.json
	EnvFile      string      `toml:"env_file"`      // relative to the host root unless absolute
	LibDir       string      `toml:"lib_dir"`       // relative to the plugin root
	DistDir      string      `toml:"dist_dir"`      // relative to the plugin root
	BundleSuffix string      `toml:"bundle_suffix"` // appended to the lowercased plugin name
	CopyID       bool        `toml:"copy_id"`       // copy the plugin id to the clipboard
	Verbose      bool        `toml:"verbose"`
	Theme        ThemeConfig `toml:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		HostRoot:     filepath.Join("..", "..", ".."),
		HostName:     "spacialist",
		EnvFile:      ".env",
		LibDir:       "lib",
		DistDir:      "dist",
		BundleSuffix: ".umd.js",
		Theme:        ThemeConfig{Name: "default"},
	}
}

// PluginDir returns the plugin root: DOCTOR_PLUGIN_DIR if set, otherwise
// the working directory.
func PluginDir() (string, error) {
	if dir := os.Getenv(EnvPluginDir); dir != "" {
		return filepath.Abs(dir)
	}
	return os.Getwd()
}

// Load reads <pluginDir>/.doctor.toml and applies environment overrides.
// Returns Default() (plus overrides) if the file doesn't exist.
// Returns an error only if the file exists but is invalid.
func Load(pluginDir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(pluginDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if root := os.Getenv(EnvHostRoot); root != "" {
		cfg.HostRoot = root
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		cfg.Verbose = verbose
	}
	return nil
}

// Validate checks field values that cannot be defaulted.
func (c *Config) Validate() error {
	for field, v := range map[string]string{
		"host_root": c.HostRoot,
		"host_name": c.HostName,
		"env_file":  c.EnvFile,
		"lib_dir":   c.LibDir,
		"dist_dir":  c.DistDir,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}

	if !strings.HasSuffix(c.BundleSuffix, ".js") {
		return fmt.Errorf("invalid bundle_suffix %q: must end in \".js\"", c.BundleSuffix)
	}

	if c.Theme.Name != "" && !isValidThemeName(c.Theme.Name) {
		return fmt.Errorf("invalid theme.name %q (available: %s)", c.Theme.Name, strings.Join(ValidThemeNames, ", "))
	}

	return nil
}

func isValidThemeName(name string) bool {
	for _, n := range ValidThemeNames {
		if n == name {
			return true
		}
	}
	return false
}

// resolve joins path onto base unless it is already absolute.
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
