package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/basalt/pkg/config"
)

// envVarPrefix prefixes every environment override.
const envVarPrefix = "BASALT_"

// envSetter applies one environment value to cfg.
type envSetter func(cfg *config.Config, value string) error

//nolint:gochecknoglobals // read-only lookup table
var envMappings = map[string]envSetter{
	"VAULT":     func(c *config.Config, v string) error { c.Vault = v; return nil },
	"LOG_LEVEL": func(c *config.Config, v string) error { c.LogLevel = v; return nil },
	"FLAVOR":    func(c *config.Config, v string) error { c.Parser.Flavor = config.Flavor(v); return nil },
	"CALLOUTS": func(c *config.Config, v string) error {
		return setBool(&c.Parser.Callouts, v)
	},
	"FRONT_MATTER": func(c *config.Config, v string) error {
		return setBool(&c.Parser.FrontMatter, v)
	},
	"WIDTH": func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		c.Render.Width = n
		return nil
	},
	"COLOR":  func(c *config.Config, v string) error { c.Render.Color = config.ColorMode(v); return nil },
	"FORMAT": func(c *config.Config, v string) error { c.Output.Format = config.OutputFormat(v); return nil },
}

func setBool(dst **bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected true or false, got %q", value)
	}
	*dst = config.Bool(b)
	return nil
}

// LoadFromEnv applies BASALT_* overrides to cfg. lookup is os.LookupEnv
// when nil.
func LoadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for suffix, set := range envMappings {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars describes every supported environment variable.
func ListEnvVars() map[string]string {
	return map[string]string{
		"BASALT_VAULT":        "Default Obsidian vault name",
		"BASALT_LOG_LEVEL":    "Log level: debug, info, warn or error",
		"BASALT_FLAVOR":       "Markdown flavor: commonmark or gfm",
		"BASALT_CALLOUTS":     "Recognise [!NOTE] style callouts: true or false",
		"BASALT_FRONT_MATTER": "Recognise YAML front matter: true or false",
		"BASALT_WIDTH":        "Render width in columns (0 = terminal width)",
		"BASALT_COLOR":        "Color mode: auto, always or never",
		"BASALT_FORMAT":       "Structured output format: text, json or yaml",
	}
}
