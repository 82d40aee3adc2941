package scrape

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/pkg/overrides"
	"github.com/agentstation/eramap/pkg/save"
)

// Flags holds the scrape-specific flags. Empty values leave the
// configured setting in place.
type Flags struct {
	Reference string
	Overrides string
	Output    string
	Report    string
	DryRun    bool
	Events    bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVar(&flags.Reference, "reference", "", "authoritative era list (.rs style or .yaml)")
	cmd.Flags().StringVar(&flags.Overrides, "overrides", "", "YAML file replacing the built-in variant and fallback tables")
	cmd.Flags().StringVar(&flags.Output, "output", "", `artifact path ("-" for stdout; .yaml/.yml writes YAML)`)
	cmd.Flags().StringVar(&flags.Report, "report", "", "write a markdown report to this path")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "run everything but do not write the artifact")
	cmd.Flags().BoolVar(&flags.Events, "events", false, "print variant, fallback and missing resolutions to stderr")
	return flags
}

// BuildOptions creates pipeline options from the provided flags.
func BuildOptions(flags *Flags, stdout io.Writer) ([]eramap.Option, error) {
	var opts []eramap.Option

	if flags.Reference != "" {
		opts = append(opts, eramap.WithReferencePath(flags.Reference))
	}
	if flags.Overrides != "" {
		tables, err := overrides.Load(flags.Overrides)
		if err != nil {
			return nil, err
		}
		opts = append(opts, eramap.WithOverrides(tables))
	}
	switch flags.Output {
	case "":
	case "-":
		opts = append(opts, eramap.WithOutputWriter(stdout))
	default:
		opts = append(opts,
			eramap.WithOutputPath(flags.Output),
			eramap.WithOutputFormat(save.FormatForPath(flags.Output)),
		)
	}
	if flags.DryRun {
		opts = append(opts, eramap.WithDryRun(true))
	}

	return opts, nil
}
