package config

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(game string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", game+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultGames lists the games that ship embedded defaults.
func DefaultGames() []string {
	entries, _ := defaultsFS.ReadDir("defaults")
	games := make([]string, 0, len(entries))
	for _, e := range entries {
		games = append(games, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(games)
	return games
}
