package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fml/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool       `json:"valid"`
	Errors []CLIError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest.yaml>",
		Short: "Validate a feature manifest without writing output",
		Long: `Validate a YAML feature manifest without writing output.

Runs the full parse and type-resolution pipeline and reports whether the
manifest compiles. Faster feedback loop than compile for development.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Validating %s", path)

	result, err := manifest.CompileFile(path)
	if err != nil {
		code, message := ClassifyError(err)
		if code == ErrCodeIO {
			_ = formatter.Error(code, message, nil)
			return WrapExitError(ExitCommandError, message, err)
		}
		return outputValidationFailure(formatter, code, message)
	}

	m := result.Manifest
	formatter.VerboseLog("Resolved %d enum(s), %d object(s), %d feature(s)",
		len(m.EnumDefs), len(m.ObjDefs), len(m.FeatureDefs))

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ Manifest valid")
	return nil
}

func outputValidationFailure(formatter *OutputFormatter, code, message string) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: []CLIError{{Code: code, Message: message}},
		}
		response := CLIResponse{
			Status:  "error",
			Data:    result,
			Error:   &result.Errors[0],
			TraceID: NewTraceID(),
		}
		if err := json.NewEncoder(formatter.Writer).Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, message)
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
}
