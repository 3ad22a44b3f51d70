// Package configloader resolves the effective configuration from defaults,
// configuration files, the environment and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir starts the project config search; the process working
	// directory when empty.
	WorkingDir string

	// ExplicitPath is a file named with --config.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv replaces os.LookupEnv, mainly for tests.
	LookupEnv func(string) (string, bool)

	// CLIConfig holds flag values; it has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
}

// Load merges, lowest precedence first: defaults, the user file, the
// project file, the explicit file, BASALT_* variables and CLI flags. The
// result is validated.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	files := []struct {
		path string
		skip bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, f := range files {
		if f.path == "" || f.skip {
			continue
		}
		fileCfg, err := loadConfigFile(f.path)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, f.path)
		logger.Debug("loaded config", logging.FieldPath, f.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, opts.LookupEnv); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}
