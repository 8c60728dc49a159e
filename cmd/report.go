package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yardops/idlereport/internal/adapters/render/message"
	csvsource "github.com/yardops/idlereport/internal/adapters/source/csv"
	"github.com/yardops/idlereport/internal/application"
)

func newReportCmd(app *app) *cobra.Command {
	var date string
	var eventsPath string
	var webhookURL string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the daily idle report and deliver it to the webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.reportConfig(date)
			if err != nil {
				return err
			}

			url := app.webhookURL(webhookURL)
			if url == "" && !dryRun {
				return errors.New("no webhook URL configured (set webhook.url, IDLEREPORT_WEBHOOK_URL, or --webhook)")
			}

			pipeline := application.NewPipeline(
				csvsource.New(app.eventsPath(eventsPath)),
				app.roster,
				app.newGateway(url),
				message.Render,
				nil,
				cfg,
			)

			report, err := pipeline.BuildReport(cmd.Context())
			if err != nil {
				return err
			}

			if dryRun {
				_, err := fmt.Fprint(cmd.OutOrStdout(), message.Render(report))
				return err
			}

			err = runDeliverySpinner(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context) error {
				return pipeline.Deliver(ctx, report)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Delivered idle report for %s (run %s)\n",
				report.ReportDate.Format("2006-01-02"), report.RunID)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Reporting day as YYYY-MM-DD (default: yesterday)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to the events CSV export (default: events.path from config)")
	cmd.Flags().StringVar(&webhookURL, "webhook", "", "Webhook URL (default: webhook.url from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the rendered report instead of delivering it")

	return cmd
}
