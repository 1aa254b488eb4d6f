package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRootCommand() (*cobra.Command, *commandContext) {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "auditor",
		Short:         "Audit and migrate Relocation Quest content between databases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newTablesCommand(ctx))
	rootCmd.AddCommand(newColumnsCommand(ctx))
	rootCmd.AddCommand(newVerifyCommand(ctx))
	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newDiscoverCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedDestinationsCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd, ctx
}

// execute runs the command tree and releases every database it opened,
// whether or not the command succeeded.
func execute(ctx context.Context, cmd *cobra.Command, cc *commandContext) error {
	defer cc.close()
	return cmd.ExecuteContext(ctx)
}
