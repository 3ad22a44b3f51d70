package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/vault"
)

// loadVaults reads the Obsidian vault registry from dir, or from the
// default Obsidian configuration directory when dir is empty.
func loadVaults(cmd *cobra.Command, dir string) (*vault.Config, error) {
	if dir != "" {
		return vault.Load(cmd.Context(), dir)
	}
	return vault.LoadDefault(cmd.Context())
}

func addObsidianDirFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVar(dir, "obsidian-dir", "", "directory holding obsidian.json (default: Obsidian's config directory)")
}

func newVaultsCommand(a *app) *cobra.Command {
	flags := &outputFlags{}
	var dir string

	cmd := &cobra.Command{
		Use:   "vaults",
		Short: "List the Obsidian vaults",
		Long: `List the vaults registered with Obsidian, read from its obsidian.json.
The vault Obsidian has open is marked.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadVaults(cmd, dir)
			if err != nil {
				return err
			}

			vaults := cfg.Vaults()
			return a.print(cmd, flags, vaults, func(w io.Writer, s *pretty.Styles) error {
				return writeVaults(w, s, vaults)
			})
		},
	}

	addObsidianDirFlag(cmd, &dir)
	addOutputFlags(cmd, flags)
	return cmd
}

func writeVaults(w io.Writer, s *pretty.Styles, vaults []vault.Vault) error {
	if len(vaults) == 0 {
		_, err := fmt.Fprintln(w, s.Dim.Render("No vaults."))
		return err
	}

	table := pretty.Table{Headers: []string{"NAME", "PATH", "OPEN"}}
	for _, v := range vaults {
		open := ""
		if v.Open {
			open = s.Success.Render("yes")
		}
		table.AddRow(s.Bold.Render(v.Name), s.Path.Render(v.Path), open)
	}
	_, err := io.WriteString(w, table.Render(s))
	return err
}

type notesFlags struct {
	output outputFlags
	dir    string
	sort   string
	tree   bool
}

func newNotesCommand(a *app) *cobra.Command {
	flags := &notesFlags{}

	cmd := &cobra.Command{
		Use:   "notes [VAULT]",
		Short: "List the notes of an Obsidian vault",
		Long: `List the notes of a vault. Without VAULT the configured default vault
is used, then the vault Obsidian has open. --tree walks sub-folders too.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNotes(cmd, args, flags)
		},
	}

	addObsidianDirFlag(cmd, &flags.dir)
	cmd.Flags().StringVar(&flags.sort, "sort", "name", "sort order: name, modified")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "include notes in sub-folders")
	addOutputFlags(cmd, &flags.output)
	return cmd
}

func (a *app) runNotes(cmd *cobra.Command, args []string, flags *notesFlags) error {
	by, err := vault.ParseSortBy(flags.sort)
	if err != nil {
		return usageError{err}
	}

	cfg, err := loadVaults(cmd, flags.dir)
	if err != nil {
		return err
	}

	v, err := a.pickVault(cfg, args)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())

	if flags.tree {
		entries, err := v.Tree(cmd.Context())
		if err != nil {
			return err
		}
		logger.Debug("listed vault tree", logging.FieldVault, v.Name)
		return a.print(cmd, &flags.output, entries, func(w io.Writer, s *pretty.Styles) error {
			return writeEntries(w, s, entries, 0)
		})
	}

	notes, err := v.Notes(cmd.Context())
	if err != nil {
		return err
	}
	vault.SortNotes(notes, by)
	logger.Debug("listed notes", logging.FieldVault, v.Name, logging.FieldNotes, len(notes))

	return a.print(cmd, &flags.output, notes, func(w io.Writer, s *pretty.Styles) error {
		return writeNotes(w, s, notes)
	})
}

// pickVault resolves the vault argument, the configured vault, or the
// open vault, in that order.
func (a *app) pickVault(cfg *vault.Config, args []string) (vault.Vault, error) {
	name := a.cfg.Vault
	if len(args) > 0 {
		name = args[0]
	}
	if name != "" {
		v, err := cfg.Vault(name)
		if err != nil {
			return vault.Vault{}, usageError{err}
		}
		return v, nil
	}
	if v, ok := cfg.OpenVault(); ok {
		return v, nil
	}
	return vault.Vault{}, usageError{fmt.Errorf("%w: no vault given and none is open", vault.ErrVaultNotFound)}
}

func writeNotes(w io.Writer, s *pretty.Styles, notes []vault.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, s.Dim.Render("No notes."))
		return err
	}

	table := pretty.Table{Headers: []string{"NOTE", "MODIFIED"}}
	for _, n := range notes {
		table.AddRow(s.Bold.Render(n.Name), s.Dim.Render(n.Modified.Format("2006-01-02 15:04")))
	}
	_, err := io.WriteString(w, table.Render(s))
	return err
}

func writeEntries(w io.Writer, s *pretty.Styles, entries []vault.Entry, depth int) error {
	for _, e := range entries {
		name := e.Name
		if e.IsDir() {
			name = s.Path.Render(name + "/")
		}
		line := strings.Repeat("  ", depth) + name
		if e.IsDir() {
			line += " " + s.Dim.Render("("+strconv.Itoa(len(e.Entries))+")")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := writeEntries(w, s, e.Entries, depth+1); err != nil {
			return err
		}
	}
	return nil
}
