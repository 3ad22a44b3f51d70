// Package vault reads Obsidian's vault registry and the notes stored in
// each vault.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"

	"github.com/adrg/xdg"

	"github.com/yaklabco/basalt/internal/logging"
)

// ConfigFile is the name of Obsidian's vault registry.
const ConfigFile = "obsidian.json"

var (
	// ErrVaultNotFound is returned when no vault has the requested name.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrNoConfigDir is returned when no Obsidian configuration directory
	// can be located.
	ErrNoConfigDir = errors.New("obsidian config directory not found")
)

// Config is the set of vaults registered with Obsidian, keyed by name.
type Config struct {
	vaults map[string]Vault
}

// NewConfig builds a Config from vaults. A later vault with the same name
// replaces an earlier one.
func NewConfig(vaults ...Vault) *Config {
	c := &Config{vaults: make(map[string]Vault, len(vaults))}
	for _, v := range vaults {
		c.vaults[v.Name] = v
	}
	return c
}

// ConfigDir returns the directory holding obsidian.json. Obsidian uses a
// lowercase directory on macOS and a capitalised one elsewhere; the other
// spelling is tried when the preferred one is missing.
func ConfigDir() (string, error) {
	names := []string{"Obsidian", "obsidian"}
	if runtime.GOOS == "darwin" {
		names = []string{"obsidian", "Obsidian"}
	}

	for _, name := range names {
		dir := filepath.Join(xdg.ConfigHome, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w under %s", ErrNoConfigDir, xdg.ConfigHome)
}

// registry mirrors obsidian.json.
type registry struct {
	Vaults map[string]struct {
		Path string `json:"path"`
		TS   int64  `json:"ts"`
		Open bool   `json:"open"`
	} `json:"vaults"`
}

// Load reads obsidian.json from dir. Vaults are named after the last
// element of their path. When two paths share that element, the vault
// whose id sorts first keeps the name and the other becomes "name-id".
func Load(ctx context.Context, dir string) (*Config, error) {
	logger := logging.FromContext(ctx)
	path := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vault registry: %w", err)
	}

	var reg registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := NewConfig()
	for _, id := range slices.Sorted(maps.Keys(reg.Vaults)) {
		entry := reg.Vaults[id]
		name := filepath.Base(filepath.Clean(entry.Path))
		if entry.Path == "" || name == "." || name == string(filepath.Separator) {
			logger.Warn("skipping vault without a usable path", "id", id)
			continue
		}
		if taken, ok := cfg.vaults[name]; ok {
			renamed := name + "-" + id
			logger.Warn("vault name already taken, using its id",
				"name", name, "taken_by", taken.Path, "renamed", renamed, logging.FieldPath, entry.Path)
			name = renamed
		}
		cfg.vaults[name] = Vault{
			ID:     id,
			Name:   name,
			Path:   entry.Path,
			Open:   entry.Open,
			Opened: entry.TS,
		}
	}

	logger.Debug("loaded vault registry", logging.FieldPath, path, "vaults", len(cfg.vaults))
	return cfg, nil
}

// LoadDefault locates the configuration directory and loads it.
func LoadDefault(ctx context.Context) (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return Load(ctx, dir)
}

// Vaults returns every vault sorted by name.
func (c *Config) Vaults() []Vault {
	out := make([]Vault, 0, len(c.vaults))
	for _, v := range c.vaults {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Vault returns the vault called name.
func (c *Config) Vault(name string) (Vault, error) {
	v, ok := c.vaults[name]
	if !ok {
		return Vault{}, fmt.Errorf("%w: %q", ErrVaultNotFound, name)
	}
	return v, nil
}

// OpenVault returns the vault Obsidian last had open. When several are
// marked open the most recently opened wins.
func (c *Config) OpenVault() (Vault, bool) {
	var (
		best  Vault
		found bool
	)
	for _, v := range c.Vaults() {
		if v.Open && (!found || v.Opened > best.Opened) {
			best, found = v, true
		}
	}
	return best, found
}
