// Package config defines the configuration data for basalt. The types are
// plain data; loading and merging live in internal/configloader.
package config

// Flavor is the Markdown flavor used by the lexer.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputFormat is the encoding used for structured command output.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParserConfig configures the Markdown lexer. Pointer fields distinguish
// "unset" from false when configs are merged.
type ParserConfig struct {
	Flavor      Flavor `mapstructure:"flavor" json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Callouts    *bool  `mapstructure:"callouts" json:"callouts,omitempty" yaml:"callouts,omitempty"`
	FrontMatter *bool  `mapstructure:"front_matter" json:"front_matter,omitempty" yaml:"front_matter,omitempty"`
}

// RenderConfig configures terminal rendering.
type RenderConfig struct {
	// Width is the wrap width; 0 means the terminal width.
	Width int       `mapstructure:"width" json:"width,omitempty" yaml:"width,omitempty"`
	Color ColorMode `mapstructure:"color" json:"color,omitempty" yaml:"color,omitempty"`
}

// OutputConfig configures structured output.
type OutputConfig struct {
	Format OutputFormat `mapstructure:"format" json:"format,omitempty" yaml:"format,omitempty"`
}

// Config is the root configuration.
type Config struct {
	// Vault is the default Obsidian vault name for vault commands.
	Vault string `mapstructure:"vault" json:"vault,omitempty" yaml:"vault,omitempty"`

	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty" yaml:"log_level,omitempty"`

	Parser ParserConfig `mapstructure:"parser" json:"parser,omitempty" yaml:"parser,omitempty"`
	Render RenderConfig `mapstructure:"render" json:"render,omitempty" yaml:"render,omitempty"`
	Output OutputConfig `mapstructure:"output" json:"output,omitempty" yaml:"output,omitempty"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Parser: ParserConfig{
			Flavor:      FlavorGFM,
			Callouts:    Bool(true),
			FrontMatter: Bool(true),
		},
		Render: RenderConfig{
			Color: ColorAuto,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences b, treating nil as def.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
