package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"relocation_quest/internal/audit"
	"relocation_quest/internal/domain"
	"relocation_quest/internal/migration"
	"relocation_quest/internal/publisher"
	"relocation_quest/internal/storage/postgres"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var opts migration.Options
	var noPublish bool
	var articlesOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy V1 content into V2",
		Long: "Copy the site's articles, companies, jobs and skills from the V1 database into V2 " +
			"and create the V2 tables they need. Only keys missing from V2 are copied unless " +
			"--update-existing is set. Reruns never duplicate rows. Every step runs even when " +
			"an earlier one fails, and the run ends with a row count of every audited V2 table.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDB, err := ctx.sourceDB()
			if err != nil {
				return err
			}
			target, err := ctx.targetInstance()
			if err != nil {
				return err
			}
			targetDB, err := ctx.targetDB()
			if err != nil {
				return err
			}
			cfg := ctx.config
			logger := ctx.log()
			reporter := audit.NewReporter(cmd.OutOrStdout(), cfg.Migration.PreviewLimit)

			var pub migration.Publisher
			if cfg.RabbitMQ.URL != "" && !opts.DryRun && !noPublish {
				rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
					URL:        cfg.RabbitMQ.URL,
					Exchange:   cfg.RabbitMQ.Exchange,
					RoutingKey: cfg.RabbitMQ.RoutingKey,
				}, logger)
				if err != nil {
					return err
				}
				defer rabbitMQ.Close()
				pub = rabbitMQ
			}

			migrator := migration.NewMigrator(
				postgres.NewLegacyArticleStore(sourceDB),
				postgres.NewArticleStore(targetDB),
				pub,
				cfg.Partition(),
				logger,
			)
			stats, migrateErr := migrator.Migrate(cmd.Context(), opts)
			if stats != nil {
				reporter.Migration(*stats)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "\narticle migration failed: %v\n", migrateErr)
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			var steps []domain.CopyStats
			if !articlesOnly {
				copier := migration.NewReferenceCopier(
					postgres.NewLegacyReferenceStore(sourceDB),
					postgres.NewSchemaStore(targetDB),
					migration.ReferenceStores{
						Companies: postgres.NewCompanyStore(targetDB),
						Jobs:      postgres.NewJobStore(targetDB),
						Skills:    postgres.NewSkillStore(targetDB),
					},
					cfg.Partition(),
					logger,
				)
				steps = copier.Copy(cmd.Context(), opts)
				reporter.CopySteps(steps)
			}

			auditor := audit.NewAuditor(logger)
			reporter.TableAudit(auditor.AuditTables(cmd.Context(), target, cfg.Migration.AuditTables))

			return migrateOutcome(stats, migrateErr, steps)
		},
	}

	cmd.Flags().BoolVar(&opts.UpdateExisting, "update-existing", false, "Also refresh rows already in V2")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would be copied without writing")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "Do not announce migrated articles on RabbitMQ")
	cmd.Flags().BoolVar(&articlesOnly, "articles-only", false, "Skip companies, jobs and skills")
	return cmd
}

// migrateOutcome joins every failure of a run into the exit error.
func migrateOutcome(stats *domain.MigrationStats, migrateErr error, steps []domain.CopyStats) error {
	var errs []error
	if migrateErr != nil {
		errs = append(errs, fmt.Errorf("articles: %w", migrateErr))
	} else if stats != nil && stats.Errors > 0 {
		errs = append(errs, fmt.Errorf("articles: %d errors", stats.Errors))
	}
	for _, step := range steps {
		switch {
		case step.Err != "":
			errs = append(errs, fmt.Errorf("%s: %s", step.Step, step.Err))
		case step.Errors > 0:
			errs = append(errs, fmt.Errorf("%s: %d errors", step.Step, step.Errors))
		}
	}
	return errors.Join(errs...)
}

func newSeedDestinationsCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-destinations",
		Short: "Upsert destinations from a YAML file into V2",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			destinations, err := migration.LoadDestinations(file)
			if err != nil {
				return err
			}
			targetDB, err := ctx.targetDB()
			if err != nil {
				return err
			}

			seeder := migration.NewSeeder(
				postgres.NewDestinationStore(targetDB),
				postgres.NewTransactionManager(targetDB),
				ctx.log(),
			)
			stats, err := seeder.Seed(cmd.Context(), destinations)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "destinations: %d inserted, %d updated\n", stats.Inserted, stats.Updated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Destinations YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
