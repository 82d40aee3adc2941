// Package scrape provides the scrape command: the full extract, reconcile
// and write pipeline.
package scrape

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/internal/cmd/application"
	"github.com/agentstation/eramap/internal/cmd/output"
	"github.com/agentstation/eramap/internal/cmd/table"
	"github.com/agentstation/eramap/internal/report"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/logging"
	"github.com/agentstation/eramap/pkg/reconciler"
)

// NewCommand creates the scrape command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "scrape",
		GroupID: "core",
		Short:   "Build the era year dataset",
		Args:    cobra.NoArgs,
		Long: `Scrape fetches the era list page, extracts every era row attributed to
a regime heading, reconciles the rows with the authoritative era list and
writes the merged records.

Entries resolve by direct match, then through the variant table, then
through the manual fallback table. Unresolved entries are logged as missing.
When the authoritative list cannot be loaded, the raw extracted records are
written instead.`,
		Example: `  eramap scrape                              # Fetch, reconcile, write era_years.json
  eramap scrape --input page.html            # Use a saved copy of the page
  eramap scrape --output - -q                # Write records to stdout
  eramap scrape --dry-run --report report.md # Preview and write a report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			return Execute(ctx, app, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// Execute runs the pipeline and prints its outcome.
func Execute(ctx context.Context, app application.Application, flags *Flags, stdout, stderr io.Writer) error {
	opts, err := BuildOptions(flags, stdout)
	if err != nil {
		return err
	}

	pipeline, err := app.Pipeline(opts...)
	if err != nil {
		return err
	}

	if flags.Events {
		pipeline.OnEvent(func(e reconciler.Event) {
			fmt.Fprintln(stderr, e.String())
		})
		pipeline.OnMissing(func(entry eras.Entry) {
			fmt.Fprintf(stderr, "%s missing\n", entry.Key())
		})
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if flags.Report != "" {
		if err := report.WriteFile(flags.Report, result); err != nil {
			return err
		}
	}

	// Records already went to stdout
	if flags.Output == "-" && !flags.DryRun {
		return nil
	}

	return printResult(stdout, output.DetectFormat(app.OutputFormat()), result)
}

// Summary is the machine-readable outcome of a run.
type Summary struct {
	Scraped        int                          `json:"scraped" yaml:"scraped"`
	Written        int                          `json:"written" yaml:"written"`
	DryRun         bool                         `json:"dry_run" yaml:"dry_run"`
	Degraded       bool                         `json:"degraded" yaml:"degraded"`
	DegradedReason string                       `json:"degraded_reason,omitempty" yaml:"degraded_reason,omitempty"`
	Reconciliation *reconciler.ResultStatistics `json:"reconciliation,omitempty" yaml:"reconciliation,omitempty"`
	Missing        []eras.Entry                 `json:"missing,omitempty" yaml:"missing,omitempty"`
	Extra          []eras.Key                   `json:"extra,omitempty" yaml:"extra,omitempty"`
	Records        []eras.Record                `json:"records,omitempty" yaml:"records,omitempty"`
}

// NewSummary condenses a result. Records are included only on a dry run.
func NewSummary(result *eramap.Result) Summary {
	s := Summary{
		Scraped:  len(result.Extraction.Records),
		DryRun:   result.DryRun,
		Degraded: result.Degraded,
	}
	if !result.DryRun {
		s.Written = len(result.Output)
	} else {
		s.Records = result.Output
	}
	if result.DegradedReason != nil {
		s.DegradedReason = result.DegradedReason.Error()
	}
	if rec := result.Reconciliation; rec != nil {
		stats := rec.Metadata.Stats
		s.Reconciliation = &stats
		s.Missing = rec.Missing
		s.Extra = rec.Extra
	}
	return s
}

func printResult(w io.Writer, format output.Format, result *eramap.Result) error {
	formatter := output.NewFormatter(format)
	if format != output.FormatTable {
		return formatter.Format(w, NewSummary(result))
	}

	if result.DryRun {
		if err := formatter.Format(w, table.RecordsToTableData(result.Output)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if err := formatter.Format(w, table.ResultToTableData(result)); err != nil {
		return err
	}

	if matches := table.MatchesToTableData(result.Reconciliation); len(matches.Rows) > 0 {
		fmt.Fprintln(w)
		if err := formatter.Format(w, matches); err != nil {
			return err
		}
	}

	if result.Degraded {
		fmt.Fprintln(w, "\nAuthoritative list unavailable; output holds the raw extracted records.")
	}
	return nil
}
