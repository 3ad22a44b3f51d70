package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/configloader"
	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/config"
	"github.com/yaklabco/basalt/pkg/fsutil"
)

// projectConfigName is the file written by "config init".
const projectConfigName = ".basalt.yml"

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration",
		Long: `Configuration is merged from, lowest precedence first: built-in defaults,
$XDG_CONFIG_HOME/basalt/config.yaml, the nearest .basalt.yml above the
working directory, the file named by --config, BASALT_* environment
variables and command-line flags.`,
		Args: usageArgs(cobra.NoArgs),
	}

	cmd.AddCommand(
		newConfigShowCommand(a),
		newConfigPathsCommand(a),
		newConfigEnvCommand(a),
		newConfigInitCommand(a),
	)
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, &flags, a.cfg, func(w io.Writer, _ *pretty.Styles) error {
				out, err := a.cfg.ToYAMLWithHeader(sourcesHeader(a.loaded.LoadedFrom))
				if err != nil {
					return err
				}
				_, err = w.Write(out)
				return err
			})
		},
	}

	addOutputFlags(cmd, &flags)
	return cmd
}

// sourcesHeader is a YAML comment naming the files a config came from.
func sourcesHeader(files []string) string {
	if len(files) == 0 {
		return "# basalt configuration (defaults only)"
	}
	var sb strings.Builder
	sb.WriteString("# basalt configuration merged from:")
	for _, f := range files {
		sb.WriteString("\n#   ")
		sb.WriteString(f)
	}
	return sb.String()
}

func newConfigPathsCommand(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show which configuration files are in use",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := a.loaded.Paths
			return a.print(cmd, &flags, paths, func(w io.Writer, s *pretty.Styles) error {
				table := &pretty.Table{Headers: []string{"SOURCE", "PATH"}}
				table.AddRow("user", orNone(s, paths.User))
				table.AddRow("project", orNone(s, paths.Project))
				table.AddRow("explicit", orNone(s, paths.Explicit))
				_, err := io.WriteString(w, table.Render(s))
				return err
			})
		},
	}

	addOutputFlags(cmd, &flags)
	return cmd
}

func orNone(s *pretty.Styles, path string) string {
	if path == "" {
		return s.Dim.Render("(none)")
	}
	return s.Path.Render(path)
}

// envVar describes one BASALT_* variable and its current value.
type envVar struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
}

func envVars(lookup func(string) (string, bool)) []envVar {
	known := configloader.ListEnvVars()

	vars := make([]envVar, 0, len(known))
	for name, desc := range known {
		v := envVar{Name: name, Description: desc}
		v.Value, _ = lookup(name)
		vars = append(vars, v)
	}
	slices.SortFunc(vars, func(x, y envVar) int { return strings.Compare(x.Name, y.Name) })
	return vars
}

func newConfigEnvCommand(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := envVars(os.LookupEnv)
			return a.print(cmd, &flags, vars, func(w io.Writer, s *pretty.Styles) error {
				table := &pretty.Table{Headers: []string{"VARIABLE", "DESCRIPTION"}}
				for _, v := range vars {
					desc := v.Description
					if v.Value != "" {
						desc += s.Value.Render(fmt.Sprintf(" (set: %s)", v.Value))
					}
					table.AddRow(v.Name, desc)
				}
				_, err := io.WriteString(w, table.Render(s))
				return err
			})
		},
	}

	addOutputFlags(cmd, &flags)
	return cmd
}

func newConfigInitCommand(_ *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a project configuration file with the defaults",
		Example: `  basalt config init
  basalt config init notes/.basalt.yml --force`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectConfigName
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite): %w", path, fsutil.ErrConflict)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			out, err := config.NewConfig().ToYAMLWithHeader("# basalt project configuration")
			if err != nil {
				return err
			}
			if err := fsutil.WriteAtomic(cmd.Context(), path, out, fsutil.DefaultFileMode); err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Info("configuration written", logging.FieldPath, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
