package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source resolves game configs and caches the decoded result per game.
// Search order: <dir>/<game>.yaml -> ~/.arcade/configs/<game>.yaml ->
// ./configs/<game>.yaml -> embedded default. The file found first is decoded
// over the embedded default, so partial files only override what they name.
type Source struct {
	dir string

	mu    sync.Mutex
	cache map[string]any
}

// NewSource creates a config source. dir may be empty.
func NewSource(dir string) *Source {
	return &Source{dir: dir, cache: make(map[string]any)}
}

// Dir returns the custom config directory, or "".
func (s *Source) Dir() string {
	return s.dir
}

// Dirs returns every directory the source reads from, in search order.
func (s *Source) Dirs() []string {
	var dirs []string
	if s.dir != "" {
		dirs = append(dirs, s.dir)
	}
	if home := userConfigDir(); home != "" {
		dirs = append(dirs, home)
	}
	return append(dirs, "configs")
}

// Invalidate drops the cached config for a game.
func (s *Source) Invalidate(game string) {
	s.mu.Lock()
	delete(s.cache, game)
	s.mu.Unlock()
}

// Load returns the config for game, decoding it on first use. A nil source
// returns the embedded defaults.
func Load[T any](s *Source, game string) (T, error) {
	if s == nil {
		return Default[T](game)
	}
	s.mu.Lock()
	if v, ok := s.cache[game]; ok {
		if cfg, ok := v.(T); ok {
			s.mu.Unlock()
			return cfg, nil
		}
	}
	s.mu.Unlock()

	cfg, err := Default[T](game)
	if err != nil {
		return cfg, err
	}

	path, data, err := s.find(game)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
		}
	}

	s.mu.Lock()
	s.cache[game] = cfg
	s.mu.Unlock()
	return cfg, nil
}

// Default decodes the embedded default config for game.
func Default[T any](game string) (T, error) {
	var cfg T
	data := DefaultYAML(game)
	if data == nil {
		return cfg, fmt.Errorf("config: no defaults for %q", game)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse defaults for %q: %w", game, err)
	}
	return cfg, nil
}

// find returns the first override file for game. A missing custom file is not
// an error; an unreadable one is.
func (s *Source) find(game string) (string, []byte, error) {
	name := game + ".yaml"
	for _, dir := range s.Dirs() {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if dir == s.dir && !errors.Is(err, fs.ErrNotExist) {
			return path, nil, fmt.Errorf("config: cannot read %s: %w", path, err)
		}
	}
	return "", nil, nil
}

// userConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}
