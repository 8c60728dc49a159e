package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yardops/idlereport/internal/logging"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "idlereport",
		Short:         "idlereport: daily associate idle-time reports",
		Long:          "idlereport turns a day's raw idle start/stop events into a per-manager idle-time summary and delivers it to the team channel.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(logging.ParseLevel(logLevel))
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newReportCmd(app),
		newPreviewCmd(app),
		newCheckCmd(app),
	)

	return rootCmd
}
