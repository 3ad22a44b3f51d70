// Package reporter writes command results as styled text, JSON or YAML,
// optionally filtered through a jq query.
package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/basalt/internal/ui/pretty"
)

const yamlIndent = 2

// TextFunc writes the human-readable form of a result.
type TextFunc func(w io.Writer, s *pretty.Styles) error

// Printer writes results in one configured format.
type Printer struct {
	w      io.Writer
	format Format
	query  *gojq.Code
	styles *pretty.Styles
}

// New validates opts and creates a Printer. An invalid format or query is
// reported here, before any output is produced.
func New(opts Options) (*Printer, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Format == "" {
		opts.Format = defaults.Format
	}
	if !opts.Format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	p := &Printer{
		w:      opts.Writer,
		format: opts.Format,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}

	if opts.Query != "" {
		code, err := compileQuery(opts.Query)
		if err != nil {
			return nil, err
		}
		p.query = code
		if p.format == FormatText {
			p.format = FormatJSON
		}
	}

	return p, nil
}

// Format returns the effective output format.
func (p *Printer) Format() Format {
	return p.format
}

// Styles returns the text styles of the printer.
func (p *Printer) Styles() *pretty.Styles {
	return p.styles
}

// Print writes data. Text output is produced by text; structured output
// encodes data itself.
func (p *Printer) Print(ctx context.Context, data any, text TextFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("print cancelled: %w", err)
	}

	bw := bufio.NewWriterSize(p.w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	switch p.format {
	case FormatJSON:
		return p.printJSON(bw, data)
	case FormatYAML:
		return p.printYAML(bw, data)
	default:
		if text == nil {
			return p.printJSON(bw, data)
		}
		return text(bw, p.styles)
	}
}

func (p *Printer) printJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if p.query == nil {
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	results, err := runQuery(p.query, data)
	if err != nil {
		return err
	}
	for _, v := range results {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

func (p *Printer) printYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	values := []any{data}
	if p.query != nil {
		results, err := runQuery(p.query, data)
		if err != nil {
			return err
		}
		values = results
	}

	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
