package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/eramap/cmd/eramap/cmd/extract"
	"github.com/agentstation/eramap/cmd/eramap/cmd/scrape"
)

// CreateScrapeCommand creates the scrape command with app dependencies.
func (a *App) CreateScrapeCommand() *cobra.Command {
	return scrape.NewCommand(a)
}

// CreateExtractCommand creates the extract command with app dependencies.
func (a *App) CreateExtractCommand() *cobra.Command {
	return extract.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("eramap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
