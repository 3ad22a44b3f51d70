package configloader

import "github.com/yaklabco/basalt/pkg/config"

// merge overlays override on base. Empty strings, zero numbers and nil
// pointers in override leave base untouched.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Vault != "" {
		result.Vault = override.Vault
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	if override.Parser.Flavor != "" {
		result.Parser.Flavor = override.Parser.Flavor
	}
	if override.Parser.Callouts != nil {
		result.Parser.Callouts = config.Bool(*override.Parser.Callouts)
	}
	if override.Parser.FrontMatter != nil {
		result.Parser.FrontMatter = config.Bool(*override.Parser.FrontMatter)
	}

	if override.Render.Width != 0 {
		result.Render.Width = override.Render.Width
	}
	if override.Render.Color != "" {
		result.Render.Color = override.Render.Color
	}

	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}

	return result
}

// MergeAll merges configs in order; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
