package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	csvsource "github.com/yardops/idlereport/internal/adapters/source/csv"
	"github.com/yardops/idlereport/internal/application"
)

func newCheckCmd(app *app) *cobra.Command {
	var date string
	var eventsPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a day's event export and print data-quality counts",
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

			out := cmd.OutOrStdout()
			q := report.Quality
			fmt.Fprintf(out, "date: %s\n", report.ReportDate.Format("2006-01-02"))
			fmt.Fprintf(out, "associates with idle time: %d (reported: %d)\n", report.SiteAssociates, report.AssociateCount())
			fmt.Fprintf(out, "dropped records: %d (missing_associate_id=%d bad_timestamp=%d unknown_event_type=%d out_of_window=%d)\n",
				q.DroppedRecords(), q.MissingAssociate, q.BadTimestamp, q.UnknownType, q.OutOfWindow)
			fmt.Fprintf(out, "anomalies: orphan_end=%d duplicate_start=%d truncated=%d unknown_manager=%d\n",
				q.OrphanEnds, q.DuplicateStarts, q.Truncated, q.UnknownManagers)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Reporting day as YYYY-MM-DD (default: yesterday)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to the events CSV export (default: events.path from config)")

	return cmd
}
