package configloader

import (
	"errors"
	"fmt"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/config"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError is a problem with one configuration field.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate reports every invalid field of cfg, joined into one error.
func Validate(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	add := func(field string, value any, msg string) {
		errs = append(errs, &FieldError{Field: field, Value: value, Message: msg})
	}

	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			add("log_level", cfg.LogLevel, "must be one of: debug, info, warn, error")
		}
	}

	switch cfg.Parser.Flavor {
	case "", config.FlavorCommonMark, config.FlavorGFM:
	default:
		add("parser.flavor", cfg.Parser.Flavor, "must be one of: commonmark, gfm")
	}

	if cfg.Render.Width < 0 {
		add("render.width", cfg.Render.Width, "must be >= 0 (0 means the terminal width)")
	}

	switch cfg.Render.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		add("render.color", cfg.Render.Color, "must be one of: auto, always, never")
	}

	switch cfg.Output.Format {
	case "", config.FormatText, config.FormatJSON, config.FormatYAML:
	default:
		add("output.format", cfg.Output.Format, "must be one of: text, json, yaml")
	}

	return errors.Join(errs...)
}
