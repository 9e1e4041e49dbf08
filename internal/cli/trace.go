package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarikhrnjica/cstar/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Scope      string
	Context    string
	Observable string
	Verdict    string
}

// TraceResult holds the filtered evaluation log.
type TraceResult struct {
	Records []store.Record `json:"records"`
	Count   int            `json:"count"`
}

// String renders the text form of the trace.
func (r TraceResult) String() string {
	if r.Count == 0 {
		return "No evaluations match."
	}
	var b strings.Builder
	for _, rec := range r.Records {
		ctx := rec.ContextName
		if ctx == "" {
			ctx = "-"
		}
		size := rec.Size
		if size == "" {
			size = "-"
		}
		fmt.Fprintf(&b, "%4d  %-12s %-10s %-8s %-10s size=%s\n",
			rec.Seq, ctx, rec.Observable, rec.Eigenvalue, rec.Verdict, size)
	}
	fmt.Fprintf(&b, "%d evaluation(s)", r.Count)
	return b.String()
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <db-path>",
		Short: "Inspect the recorded evaluation log",
		Long: `Read the evaluation log and print matching records in deterministic
order (seq, then record id). Filters are AND-combined.

Examples:
  cstar trace trace.db
  cstar trace trace.db --context ZBasis --verdict undefined
  cstar trace trace.db --observable Z --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scope, "scope", "", "filter by scope token")
	cmd.Flags().StringVar(&opts.Context, "context", "", "filter by context name")
	cmd.Flags().StringVar(&opts.Observable, "observable", "", "filter by observable name")
	cmd.Flags().StringVar(&opts.Verdict, "verdict", "", "filter by verdict (undefined|min|max|proper)")

	return cmd
}

func runTrace(opts *TraceOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("evaluation log not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening evaluation log", err)
	}
	defer st.Close()

	records, err := st.ReadEvaluations(cmd.Context(), store.Filter{
		ScopeToken:  opts.Scope,
		ContextName: opts.Context,
		Observable:  opts.Observable,
		Verdict:     opts.Verdict,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "reading evaluation log", err)
	}

	formatter.VerboseLog("Read %d record(s) from %s", len(records), dbPath)
	return formatter.Success(TraceResult{Records: records, Count: len(records)})
}
