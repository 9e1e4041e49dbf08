package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarikhrnjica/cstar/internal/compiler"
)

// ValidationResult holds the findings for a definitions directory.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// String renders the text form of the result.
func (r ValidationResult) String() string {
	if r.Valid {
		return "Definitions are valid."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation error(s):\n", len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s\n", e.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definitions-dir>",
		Short: "Validate CUE definitions without evaluating anything",
		Long: `Validate the observables and contexts declared in a definitions
directory: matrix shape, Hermitian structure, member references and
pairwise commutation. All findings are reported at once.

Exit codes:
  0 - definitions are valid
  1 - validation findings
  2 - command error (missing directory, unparseable CUE)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	value, err := compiler.LoadDir(dir)
	if err != nil {
		var loadErr *compiler.LoadError
		if errors.As(err, &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Message)
		}
		return WrapExitError(ExitCommandError, "loading definitions", err)
	}

	findings := compiler.Validate(value)
	result := ValidationResult{Valid: len(findings) == 0, Errors: findings}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(findings)))
	}
	return nil
}
