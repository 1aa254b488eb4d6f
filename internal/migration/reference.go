package migration

import (
	"context"
	"fmt"
	"log/slog"

	"relocation_quest/internal/domain"
)

// DefaultReferenceLimit caps how many V1 jobs and skills one run reads.
const DefaultReferenceLimit = 500

const (
	StepCompanies          = "companies"
	StepJobs               = "jobs"
	StepContactSubmissions = "contact_submissions"
	StepSkills             = "skills"
)

type ReferenceStores struct {
	Companies CompanyStore
	Jobs      JobStore
	Skills    SkillStore
}

// ReferenceCopier brings the site's companies, jobs and skills over from
// V1 and creates the tables V2 needs for them. Every step runs even when an
// earlier one failed.
type ReferenceCopier struct {
	source    LegacyReferenceSource
	schema    SchemaManager
	stores    ReferenceStores
	partition domain.Partition
	limit     int
	logger    *slog.Logger
}

func NewReferenceCopier(
	source LegacyReferenceSource,
	schema SchemaManager,
	stores ReferenceStores,
	partition domain.Partition,
	logger *slog.Logger,
) *ReferenceCopier {
	return &ReferenceCopier{
		source:    source,
		schema:    schema,
		stores:    stores,
		partition: partition,
		limit:     DefaultReferenceLimit,
		logger:    logger.With("component", "reference_copy"),
	}
}

// Copy runs every step in order and returns one entry per step. Options
// apply as for articles. A dry run creates no tables.
func (c *ReferenceCopier) Copy(ctx context.Context, opts Options) []domain.CopyStats {
	steps := []struct {
		name string
		run  func(context.Context, Options, *domain.CopyStats) error
	}{
		{StepCompanies, c.copyCompanies},
		{StepJobs, c.copyJobs},
		{StepContactSubmissions, nil},
		{StepSkills, c.copySkills},
	}

	results := make([]domain.CopyStats, 0, len(steps))
	for _, step := range steps {
		stats := domain.CopyStats{Step: step.name}
		if err := c.runStep(ctx, step.name, step.run, opts, &stats); err != nil {
			c.logger.Error("reference step failed", "step", step.name, "error", err)
			stats.Err = err.Error()
		}
		results = append(results, stats)
	}
	return results
}

func (c *ReferenceCopier) runStep(
	ctx context.Context,
	table string,
	run func(context.Context, Options, *domain.CopyStats) error,
	opts Options,
	stats *domain.CopyStats,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !opts.DryRun {
		if err := c.schema.EnsureTable(ctx, table); err != nil {
			return err
		}
	}
	if run == nil {
		return nil
	}
	return run(ctx, opts, stats)
}

func (c *ReferenceCopier) copyCompanies(ctx context.Context, opts Options, stats *domain.CopyStats) error {
	companies, err := c.source.ListCompanies(ctx, c.partition)
	if err != nil {
		return err
	}
	return copyKeyed[domain.Company](ctx, companies, func(co *domain.Company) string { return co.Slug },
		c.stores.Companies, opts, stats, c.logger.With("step", StepCompanies))
}

func (c *ReferenceCopier) copyJobs(ctx context.Context, opts Options, stats *domain.CopyStats) error {
	jobs, err := c.source.ListJobs(ctx, c.limit)
	if err != nil {
		return err
	}
	return copyKeyed[domain.Job](ctx, jobs, func(j *domain.Job) string {
		if j.Slug == nil {
			return ""
		}
		return *j.Slug
	}, c.stores.Jobs, opts, stats, c.logger.With("step", StepJobs))
}

func (c *ReferenceCopier) copySkills(ctx context.Context, opts Options, stats *domain.CopyStats) error {
	skills, err := c.source.ListSkills(ctx, c.limit)
	if err != nil {
		return err
	}
	return copyKeyed[domain.Skill](ctx, skills, func(s *domain.Skill) string { return s.Name },
		c.stores.Skills, opts, stats, c.logger.With("step", StepSkills))
}

type keyedStore[T any] interface {
	ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
	Upsert(ctx context.Context, row *T) (domain.UpsertResult, error)
}

// copyKeyed writes rows into store the same way articles are copied: only
// missing keys unless UpdateExisting, one failing row never stops the rest.
// Rows without a key cannot be matched on rerun and are skipped.
func copyKeyed[T any](
	ctx context.Context,
	rows []T,
	key func(*T) string,
	store keyedStore[T],
	opts Options,
	stats *domain.CopyStats,
	logger *slog.Logger,
) error {
	stats.Fetched = len(rows)

	keys := make([]string, 0, len(rows))
	for i := range rows {
		if k := key(&rows[i]); k != "" {
			keys = append(keys, k)
		}
	}
	existing, err := store.ExistingKeys(ctx, keys)
	if err != nil {
		return fmt.Errorf("load existing keys: %w", err)
	}

	for i := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := &rows[i]
		k := key(row)
		if k == "" {
			logger.Warn("row has no key, skipped", "index", i)
			stats.Skipped++
			continue
		}

		_, exists := existing[k]
		if exists && !opts.UpdateExisting {
			stats.Skipped++
			continue
		}

		if opts.DryRun {
			if exists {
				stats.Updated++
			} else {
				stats.New++
			}
			continue
		}

		result, err := store.Upsert(ctx, row)
		if err != nil {
			logger.Error("failed to copy row", "key", k, "error", err)
			stats.Errors++
			continue
		}
		switch result {
		case domain.UpsertInserted:
			stats.New++
		case domain.UpsertUpdated:
			stats.Updated++
		default:
			stats.Unchanged++
		}
	}

	logger.Info("step completed",
		"fetched", stats.Fetched,
		"new", stats.New,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
	)
	return nil
}
