package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fml/internal/store"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	DB string // catalog database path
}

// CatalogEntry is one row in the catalog list payload.
type CatalogEntry struct {
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	IRVersion string `json:"ir_version"`
	CreatedAt string `json:"created_at"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the compiled manifest catalog",
		Long: `Inspect the catalog of compiled manifests.

The catalog is a SQLite database populated by compile --save. Entries are
content-addressed: the key is the hash of the canonical IR.`,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "catalog database path")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCatalogListCommand(opts))
	cmd.AddCommand(newCatalogShowCommand(opts))

	return cmd
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List compiled manifests in the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}
}

func newCatalogShowCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <hash>",
		Short:         "Print the canonical IR of a stored manifest",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		return outputCatalogError(formatter, ErrCodeCatalog, fmt.Sprintf("opening catalog: %v", err))
	}
	defer s.Close()

	manifests, err := s.ListManifests(cmd.Context())
	if err != nil {
		return outputCatalogError(formatter, ErrCodeCatalog, err.Error())
	}

	entries := make([]CatalogEntry, len(manifests))
	for i, m := range manifests {
		entries[i] = CatalogEntry{
			Name:      m.Name,
			Hash:      m.Hash,
			IRVersion: m.IRVersion,
			CreatedAt: m.CreatedAt,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "Catalog is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %s  (ir v%s, %s)\n", e.Hash, e.Name, e.IRVersion, e.CreatedAt)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, hash string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		return outputCatalogError(formatter, ErrCodeCatalog, fmt.Sprintf("opening catalog: %v", err))
	}
	defer s.Close()

	m, err := s.GetManifest(cmd.Context(), hash)
	if err != nil {
		code, message := ClassifyError(err)
		return outputCatalogError(formatter, code, message)
	}

	// The stored IR is already canonical JSON; print it verbatim in both
	// formats so the output hashes back to the catalog key.
	fmt.Fprintf(formatter.Writer, "%s\n", m.IR)
	return nil
}

func outputCatalogError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
