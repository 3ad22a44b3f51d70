package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/basalt/internal/ui/pretty"
)

// helpTemplate lays out help and usage for every command. Section
// headings and names go through the style functions so color follows
// --color and the terminal.
const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{ heading "Usage" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} COMMAND{{end}}
{{- if .HasExample}}

{{ heading "Examples" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands" }}
{{- range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global flags" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ dim (print "Run '" .CommandPath " COMMAND --help' for details on a command.") }}{{end}}
`

// helpRenderer renders cobra help pages with the CLI styles.
type helpRenderer struct {
	styles *pretty.Styles
	tmpl   *template.Template
}

func newHelpRenderer(colorMode string, w io.Writer) *helpRenderer {
	h := &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))}
	h.tmpl = template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":                 func(s string) string { return h.styles.Title.Render(s + ":") },
		"command":                 h.styles.Bold.Render,
		"subcommand":              h.styles.Kind.Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}).Parse(helpTemplate))
	return h
}

// install makes cmd and its descendants print help through the renderer.
func (h *helpRenderer) install(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := h.tmpl.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages styles the flag names in pflag's usage block and leaves the
// aligned descriptions alone.
func (h *helpRenderer) flagUsages(set *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *helpRenderer) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	split := strings.Index(body, "   ")
	if split < 0 {
		return line
	}
	names, rest := body[:split], body[split:]

	tokens := strings.Fields(names)
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			name, comma := strings.CutSuffix(tok, ",")
			tokens[i] = h.styles.Value.Render(name)
			if comma {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.Dim.Render(tok)
	}
	return indent + strings.Join(tokens, " ") + rest
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
