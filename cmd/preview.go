package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yardops/idlereport/internal/adapters/render/preview"
	csvsource "github.com/yardops/idlereport/internal/adapters/source/csv"
	"github.com/yardops/idlereport/internal/application"
)

func newPreviewCmd(app *app) *cobra.Command {
	var date string
	var eventsPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Build the daily idle report and render it to the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.reportConfig(date)
			if err != nil {
				return err
			}

			pipeline := application.NewPipeline(
				csvsource.New(app.eventsPath(eventsPath)),
				app.roster,
				nil,
				nil,
				nil,
				cfg,
			)

			report, err := pipeline.BuildReport(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := preview.Render(report, preview.RenderOptions{Verbose: verbose})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Reporting day as YYYY-MM-DD (default: yesterday)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to the events CSV export (default: events.path from config)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show every data-quality counter")

	return cmd
}
