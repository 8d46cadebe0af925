// Package community loads the local directory of known communities.
package community

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// Community directory (TOML-based)
// ---------------------------------------------------------------------------

// Community describes one currency community on the platform.
type Community struct {
	Symbol      string `toml:"symbol"`
	Name        string `toml:"name"`
	Subdomain   string `toml:"subdomain"`
	Description string `toml:"description"`
}

// directoryFile is the top-level TOML structure.
type directoryFile struct {
	Community []Community `toml:"community"`
}

const defaultDirectoryTOML = `# Kindling community directory
# Add new [[community]] blocks for communities you belong to.

[[community]]
symbol = "EMB"
name = "Ember Commons"
subdomain = "ember"
description = "Neighbourhood mutual-credit network"
`

// directoryPath returns the full path to the communities.toml file.
// An explicit path (from config) wins over the XDG default.
func directoryPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "kindling", "communities.toml"), nil
}

// Load reads the community directory. If the file doesn't exist at the
// default location, it is created with a starter entry; an explicit path
// that is missing is an error.
func Load(explicit string) ([]Community, error) {
	path, err := directoryPath(explicit)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if explicit != "" {
			return nil, fmt.Errorf("communities file not found: %s", path)
		}
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultDirectoryTOML), 0o644); wErr != nil {
			return nil, fmt.Errorf("write default directory: %w", wErr)
		}
	}

	var df directoryFile
	if _, err := toml.DecodeFile(path, &df); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, c := range df.Community {
		if strings.TrimSpace(c.Symbol) == "" {
			return nil, fmt.Errorf("community %d in %s has no symbol", i+1, path)
		}
	}
	return df.Community, nil
}

// Find returns the community with the given symbol, case-insensitive.
func Find(list []Community, symbol string) (Community, bool) {
	for _, c := range list {
		if strings.EqualFold(c.Symbol, symbol) {
			return c, true
		}
	}
	return Community{}, false
}

// Label renders a display label for a symbol, falling back to the bare
// symbol when the directory doesn't know it.
func Label(list []Community, symbol string) string {
	if c, ok := Find(list, symbol); ok {
		return fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
	}
	return symbol
}
