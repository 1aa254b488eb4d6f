package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"relocation_quest/internal/scheduler"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run verify on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := ctx.sourceInstance()
			if err != nil {
				return err
			}
			target, err := ctx.targetInstance()
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = ctx.config.Migration.WatchInterval
			}
			logger := ctx.log()

			job := scheduler.JobFunc(func(runCtx context.Context) error {
				fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", time.Now().UTC().Format(time.RFC3339))
				parity, coverage := runVerify(runCtx, cmd.OutOrStdout(), ctx, source, target)
				if parity.Err != "" {
					return fmt.Errorf("parity check: %s", parity.Err)
				}
				logger.Info("watch run complete",
					"missing", len(parity.MissingInTarget),
					"extra", len(parity.ExtraInTarget),
					"coverage_gaps", len(coverage.Gaps()),
				)
				return nil
			})

			err = scheduler.NewScheduler(job, interval, logger).WithRunTimeout(timeout).Start(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Time between runs (defaults to config)")
	cmd.Flags().DurationVar(&timeout, "timeout", scheduler.DefaultRunTimeout, "Upper bound for a single run")
	return cmd
}
