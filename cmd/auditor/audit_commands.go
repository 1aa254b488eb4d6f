package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"relocation_quest/internal/audit"
)

func newTablesCommand(ctx *commandContext) *cobra.Command {
	var instanceFlag string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := ctx.instances(instanceFlag)
			if err != nil {
				return err
			}
			auditor := audit.NewAuditor(ctx.log())
			reporter := audit.NewReporter(cmd.OutOrStdout(), ctx.config.Migration.PreviewLimit)
			for _, inst := range instances {
				reporter.TableAudit(auditor.AuditTables(cmd.Context(), inst, ctx.config.Migration.AuditTables))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instanceFlag, "instance", "both", "Instance to audit: v1, v2 or both")
	return cmd
}

func newColumnsCommand(ctx *commandContext) *cobra.Command {
	var instanceFlag string
	var tablesFlag []string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show column layouts of key tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := ctx.instances(instanceFlag)
			if err != nil {
				return err
			}
			tables := tablesFlag
			if len(tables) == 0 {
				tables = ctx.config.Migration.ColumnTables
			}
			auditor := audit.NewAuditor(ctx.log())
			reporter := audit.NewReporter(cmd.OutOrStdout(), ctx.config.Migration.PreviewLimit)
			for _, inst := range instances {
				reporter.ColumnAudit(auditor.AuditColumns(cmd.Context(), inst, tables))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instanceFlag, "instance", "v1", "Instance to inspect: v1, v2 or both")
	cmd.Flags().StringSliceVar(&tablesFlag, "table", nil, "Table to inspect (repeatable, defaults to config)")
	return cmd
}

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check article parity and destination coverage between V1 and V2",
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

			parity, coverage := runVerify(cmd.Context(), cmd.OutOrStdout(), ctx, source, target)

			if strict {
				return verifyOutcome(parity, coverage)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any discrepancy is found")
	return cmd
}

func runVerify(ctx context.Context, w io.Writer, cc *commandContext, source, target audit.Instance) (audit.ParityReport, audit.CoverageReport) {
	auditor := audit.NewAuditor(cc.log())
	reporter := audit.NewReporter(w, cc.config.Migration.PreviewLimit)

	parity := auditor.CheckParity(ctx, source, target)
	reporter.Parity(parity)

	coverage := auditor.CheckCoverage(ctx, target, cc.config.Migration.CoverageDestinations)
	reporter.Coverage(coverage)

	return parity, coverage
}

// verifyOutcome turns the reports into the strict exit status. A parity
// check that could not run is a failure of its own, not an empty diff.
func verifyOutcome(parity audit.ParityReport, coverage audit.CoverageReport) error {
	if parity.Err != "" {
		return fmt.Errorf("parity check failed: %s", parity.Err)
	}
	if !parity.InSync() || len(coverage.Gaps()) > 0 {
		return fmt.Errorf("verification found %d missing, %d extra, %d coverage gaps",
			len(parity.MissingInTarget), len(parity.ExtraInTarget), len(coverage.Gaps()))
	}
	return nil
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare article counts by mode and country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := ctx.instances("both")
			if err != nil {
				return err
			}
			auditor := audit.NewAuditor(ctx.log())
			reporter := audit.NewReporter(cmd.OutOrStdout(), ctx.config.Migration.PreviewLimit)
			for _, inst := range instances {
				reporter.Breakdown(auditor.Breakdown(cmd.Context(), inst))
			}
			return nil
		},
	}
}

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var keywords []string
	var output string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find V1 relocation articles missing from V2 by keyword",
		Long: "Search every V1 article, whatever its partition, for relocation keywords in the " +
			"title or a set country, and list those V2 does not have yet. The per-partition " +
			"counts show where the candidates live.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := ctx.sourceInstance()
			if err != nil {
				return err
			}
			target, err := ctx.targetInstance()
			if err != nil {
				return err
			}
			if len(keywords) == 0 {
				keywords = ctx.config.Migration.DiscoveryKeywords
			}

			report := audit.NewAuditor(ctx.log()).Discover(cmd.Context(), source, target, keywords)
			audit.NewReporter(cmd.OutOrStdout(), ctx.config.Migration.PreviewLimit).Discovery(report)

			if report.Err != "" {
				return fmt.Errorf("discovery failed: %s", report.Err)
			}
			if output != "" && len(report.Missing) > 0 {
				if err := writeJSON(output, report.Missing); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nsaved %d missing articles to %s\n", len(report.Missing), output)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "Title keyword (repeatable, defaults to config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the missing articles to this JSON file")
	return cmd
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
