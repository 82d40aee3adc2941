// Package extract provides the extract command: fetch and walk the page
// and print the attributed records without reconciling.
package extract

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/internal/cmd/application"
	"github.com/agentstation/eramap/internal/cmd/output"
	"github.com/agentstation/eramap/internal/cmd/table"
	"github.com/agentstation/eramap/internal/matcher"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/logging"
)

// NewCommand creates the extract command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		regime string
		era    string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:     "extract",
		GroupID: "core",
		Short:   "Print the era records found on the page",
		Args:    cobra.NoArgs,
		Example: `  eramap extract                  # Table of every attributed era
  eramap extract --regime 北魏     # One regime only
  eramap extract --regime '*晉'   # Glob over regime names
  eramap extract --era '^建'      # Regex over era names
  eramap extract -o json --input page.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			regimes, err := matcher.New(matcher.Auto, regime)
			if err != nil {
				return errors.NewValidationError("regime", regime, err.Error())
			}
			names, err := matcher.New(matcher.Auto, era)
			if err != nil {
				return errors.NewValidationError("era", era, err.Error())
			}

			pipeline, err := app.Pipeline()
			if err != nil {
				return err
			}
			x, err := pipeline.Extract(ctx)
			if err != nil {
				return err
			}
			x = filter(x, regimes, names)
			return printExtraction(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), x, stats)
		},
	}

	cmd.Flags().StringVar(&regime, "regime", "", "only print regimes matching this glob or regex")
	cmd.Flags().StringVar(&era, "era", "", "only print eras matching this glob or regex")
	cmd.Flags().BoolVar(&stats, "stats", false, "print per-regime and skipped-row counts after the records (table format)")

	return cmd
}

// filter returns a copy of x holding only the matching records.
func filter(x *eramap.Extraction, regime, era *matcher.Matcher) *eramap.Extraction {
	out := *x
	out.Records = matcher.Filter(x.Records, regime, era)
	return &out
}

func printExtraction(w io.Writer, format output.Format, x *eramap.Extraction, stats bool) error {
	formatter := output.NewFormatter(format)
	if format != output.FormatTable {
		return formatter.Format(w, x.Records)
	}

	if err := formatter.Format(w, table.RecordsToTableData(x.Records)); err != nil {
		return err
	}
	if !stats {
		return nil
	}

	fmt.Fprintln(w)
	if err := formatter.Format(w, table.RegimesToTableData(x.Stats)); err != nil {
		return err
	}
	if skipped := table.SkippedToTableData(x.Stats); len(skipped.Rows) > 0 {
		fmt.Fprintln(w)
		return formatter.Format(w, skipped)
	}
	return nil
}
