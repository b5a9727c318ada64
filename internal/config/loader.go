package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathEnv names a config file that wins over every other location. Unlike
// the searched locations it must exist.
const PathEnv = "CUTOUT_CONFIG"

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // Build version, "dev" also searches the working directory
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns the defaults
// when there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		if env := os.Getenv(PathEnv); env != "" {
			return nil, fmt.Errorf("%s=%s: %w", PathEnv, env, os.ErrNotExist)
		}
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the first existing file of SearchPaths, or "".
// A CUTOUT_CONFIG naming a missing file stops the search.
func (l *Loader) GetConfigPath() string {
	if env := os.Getenv(PathEnv); env != "" {
		if exists(env) {
			return env
		}
		return ""
	}
	for _, p := range l.SearchPaths() {
		if exists(p) {
			return p
		}
	}
	return ""
}

// SearchPaths lists the candidate files in priority order: the build
// override, ./.cutoutrc in dev builds, then config.rc and cutout.rc under
// ~/.config/cutout.
func (l *Loader) SearchPaths() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".cutoutrc"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "cutout")
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "cutout.rc"))
	}
	return paths
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
