package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appName names the user configuration directory.
const appName = "basalt"

// ConfigPaths holds the configuration files that were found. Missing files
// are empty strings.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/basalt/config.yaml.
	User string `json:"user" yaml:"user"`

	// Project is the nearest .basalt.yml above the working directory.
	Project string `json:"project" yaml:"project"`

	// Explicit comes from --config.
	Explicit string `json:"explicit" yaml:"explicit"`
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	projectConfigFiles = []string{".basalt.yml", ".basalt.yaml"}
	userConfigFiles    = []string{"config.yaml", "config.yml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		User:    findUserConfig(),
		Project: project,
	}, nil
}

func findUserConfig() string {
	dir := filepath.Join(xdg.ConfigHome, appName)
	for _, name := range userConfigFiles {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches startDir and its parents for a project file.
// The search stops at a VCS root, the home directory or the filesystem
// root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}

		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || dir == home {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
