package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/internal/ui/pretty"
)

func newVersionCommand(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of basalt.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, &flags, a.info, func(w io.Writer, _ *pretty.Styles) error {
				logger := log.NewWithOptions(w, log.Options{
					ReportTimestamp: false,
					ReportCaller:    false,
				})
				logger.SetLevel(log.InfoLevel)

				logger.Info("basalt",
					logging.FieldVersion, a.info.Version,
					logging.FieldCommit, a.info.Commit,
					logging.FieldBuilt, a.info.Date,
				)
				return nil
			})
		},
	}

	addOutputFlags(cmd, &flags)
	return cmd
}
