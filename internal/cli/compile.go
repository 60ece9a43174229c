package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fml/internal/ir"
	"github.com/roach88/fml/internal/manifest"
	"github.com/roach88/fml/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path for the canonical IR
	Save   string // catalog database path
	Name   string // catalog name (defaults to the manifest file stem)
}

// CompilationSummary is the success payload for the compile command.
type CompilationSummary struct {
	Manifest *ir.FeatureManifest `json:"manifest"`
	Hash     string              `json:"hash"`
	Channels []string            `json:"channels,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <manifest.yaml>",
		Short: "Compile a feature manifest to canonical IR",
		Long: `Compile a YAML feature manifest to canonical IR format.

The compiler parses the manifest, resolves every type expression against
the built-in constructors and the manifest's own enums and objects, and
outputs canonical JSON suitable for hashing and code generation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path for canonical IR")
	cmd.Flags().StringVar(&opts.Save, "save", "", "catalog database path to record the compiled manifest in")
	cmd.Flags().StringVar(&opts.Name, "name", "", "catalog name for the manifest (defaults to the file stem)")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Compiling %s", path)

	result, err := manifest.CompileFile(path)
	if err != nil {
		code, message := ClassifyError(err)
		_ = formatter.Error(code, message, nil)
		if code == ErrCodeIO {
			return WrapExitError(ExitCommandError, message, err)
		}
		return WrapExitError(ExitFailure, message, err)
	}

	m := result.Manifest
	hash := ir.MustManifestHash(m)

	formatter.VerboseLog("Compiled %d enum(s), %d object(s), %d feature(s)",
		len(m.EnumDefs), len(m.ObjDefs), len(m.FeatureDefs))

	if opts.Output != "" {
		canonical, err := m.CanonicalJSON()
		if err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("marshaling IR: %v", err))
		}
		if err := os.WriteFile(opts.Output, canonical, 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if opts.Save != "" {
		name := opts.Name
		if name == "" {
			name = manifestName(path)
		}
		if err := saveToCatalog(cmd, opts.Save, name, m); err != nil {
			return outputCompileError(formatter, ErrCodeCatalog, err.Error())
		}
		formatter.VerboseLog("Saved %s as %q in %s", hash, name, opts.Save)
	}

	summary := &CompilationSummary{
		Manifest: m,
		Hash:     hash,
		Channels: result.Channels,
	}
	return outputCompileSuccess(formatter, summary, opts.Output)
}

// manifestName derives a catalog name from the manifest path, e.g.
// "specs/homescreen.fml.yaml" becomes "homescreen".
func manifestName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".fml")
}

func saveToCatalog(cmd *cobra.Command, dbPath, name string, m *ir.FeatureManifest) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer s.Close()

	if _, err := s.SaveManifest(cmd.Context(), name, m); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, summary *CompilationSummary, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	m := summary.Manifest
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d enum(s), %d object(s), %d feature(s)\n\n",
		len(m.EnumDefs), len(m.ObjDefs), len(m.FeatureDefs))

	if len(m.EnumDefs) > 0 {
		fmt.Fprintln(formatter.Writer, "Enums:")
		for _, e := range m.EnumDefs {
			fmt.Fprintf(formatter.Writer, "  %s: %d variant(s)\n", e.Name, len(e.Variants))
		}
		fmt.Fprintln(formatter.Writer)
	}

	if len(m.ObjDefs) > 0 {
		fmt.Fprintln(formatter.Writer, "Objects:")
		for _, o := range m.ObjDefs {
			fmt.Fprintf(formatter.Writer, "  %s: %d field(s)\n", o.Name, len(o.Props))
		}
		fmt.Fprintln(formatter.Writer)
	}

	if len(m.FeatureDefs) > 0 {
		fmt.Fprintln(formatter.Writer, "Features:")
		for _, f := range m.FeatureDefs {
			fmt.Fprintf(formatter.Writer, "  %s: %d variable(s)\n", f.Name, len(f.Props))
		}
		fmt.Fprintln(formatter.Writer)
	}

	fmt.Fprintf(formatter.Writer, "Manifest hash: %s\n", summary.Hash)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote canonical IR to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single command-level compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
