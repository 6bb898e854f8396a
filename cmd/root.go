package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simplu",
		Short:         "Simplu CLI: provision and manage businesses",
		Long:          "simplu signs you in, walks a new business through configuration, payment and launch, and manages existing businesses, billing and your profile from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().Bool(jsonFlag, false, "Render JSON output")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newBusinessCmd(app),
		newWizardCmd(app),
		newPaymentsCmd(app),
		newProfileCmd(app),
	)

	return rootCmd
}
