package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarikhrnjica/cstar/internal/algebra"
	"github.com/tarikhrnjica/cstar/internal/compiler"
	"github.com/tarikhrnjica/cstar/internal/session"
	"github.com/tarikhrnjica/cstar/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Context    string  // context to enter before asking, "" for context-free
	Observable string  // operator the proposition is about
	Eigenvalue float64 // queried eigenvalue
	DB         string  // evaluation log path, "" disables recording
	Scope      string  // fixed scope token, "" mints a fresh one
	Strict     bool    // exit 1 on an undefined verdict
}

// EvalResult is one answered proposition.
type EvalResult struct {
	Observable string `json:"observable"`
	Eigenvalue string `json:"eigenvalue"`
	Context    string `json:"context,omitempty"`
	Verdict    string `json:"verdict"`
	Size       string `json:"size,omitempty"`
	Seq        int64  `json:"seq"`
}

// String renders the text form of the result.
func (r EvalResult) String() string {
	where := "no context"
	if r.Context != "" {
		where = r.Context
	}
	if r.Verdict == string(algebra.VerdictUndefined) {
		return fmt.Sprintf("%s(%s) in %s: undefined", r.Observable, r.Eigenvalue, where)
	}
	return fmt.Sprintf("%s(%s) in %s: %s (size %s)", r.Observable, r.Eigenvalue, where, r.Verdict, r.Size)
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <definitions-dir>",
		Short: "Evaluate one proposition under a context",
		Long: `Evaluate the proposition "observable takes eigenvalue" under the named
context and print the resulting truth value.

With --db the evaluation is appended to a durable log; the logical clock
resumes from the highest recorded seq. With --strict an undefined verdict
exits 1, for use in scripts that treat category errors as failures.

Examples:
  cstar eval ./defs --context ZBasis --observable Z --eigenvalue 1
  cstar eval ./defs --observable Z --eigenvalue 1 --db trace.db
  cstar eval ./defs --context ZBasis --observable X --eigenvalue 1 --strict`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Context, "context", "", "context to enter before evaluating")
	cmd.Flags().StringVar(&opts.Observable, "observable", "", "observable the proposition is about (required)")
	cmd.Flags().Float64Var(&opts.Eigenvalue, "eigenvalue", 0, "queried eigenvalue (required)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "append the evaluation to this log")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "fixed scope token for deterministic traces")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 on an undefined verdict")
	cmd.MarkFlagRequired("observable")
	cmd.MarkFlagRequired("eigenvalue")

	return cmd
}

func runEval(opts *EvalOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	value, err := compiler.LoadDir(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading definitions", err)
	}
	defs, err := compiler.CompileDefinitions(value)
	if err != nil {
		return WrapExitError(ExitCommandError, "compiling definitions", err)
	}

	obs := defs.Observable(opts.Observable)
	if obs == nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown observable %q", opts.Observable))
	}

	var log *store.Store
	clock := store.NewClock()
	if opts.DB != "" {
		log, err = store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening evaluation log", err)
		}
		defer log.Close()

		maxSeq, err := log.MaxSeq(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "reading evaluation log", err)
		}
		clock = store.NewClockAt(maxSeq)
		formatter.VerboseLog("Resuming clock at seq %d", maxSeq)
	}

	scope := algebra.NewScope()
	if opts.Scope != "" {
		scope = algebra.NewScopeWithToken(opts.Scope)
	}
	sess := session.NewWithScope(scope, clock, log)

	if opts.Context != "" {
		cx := defs.Context(opts.Context)
		if cx == nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown context %q", opts.Context))
		}
		act := sess.Scope().Enter(cx)
		defer act.Exit()
	}

	sieve, err := sess.Evaluate(cmd.Context(), obs, opts.Eigenvalue)
	if err != nil {
		return WrapExitError(ExitCommandError, "recording evaluation", err)
	}

	result := EvalResult{
		Observable: opts.Observable,
		Eigenvalue: store.FormatValue(opts.Eigenvalue),
		Context:    opts.Context,
		Verdict:    string(sieve.Verdict()),
		Seq:        clock.Current(),
	}
	if sieve.Verdict() != algebra.VerdictUndefined {
		result.Size = store.FormatSize(sieve.Size())
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if opts.Strict && sieve.Verdict() == algebra.VerdictUndefined {
		return NewExitError(ExitFailure, fmt.Sprintf("%s(%s) is undefined in context %q", opts.Observable, result.Eigenvalue, opts.Context))
	}
	return nil
}
