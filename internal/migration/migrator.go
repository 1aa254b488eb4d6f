// Package migration copies content from the V1 database into the current
// schema and seeds reference data.
package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"relocation_quest/internal/domain"
)

type Options struct {
	// UpdateExisting also rewrites articles already present in the target.
	// By default only missing slugs are copied.
	UpdateExisting bool
	// DryRun reports what would be written without touching the target.
	DryRun bool
}

type Migrator struct {
	source    LegacySource
	articles  ArticleStore
	publisher Publisher
	partition domain.Partition
	logger    *slog.Logger
}

// NewMigrator builds a Migrator. publisher may be nil.
func NewMigrator(
	source LegacySource,
	articles ArticleStore,
	publisher Publisher,
	partition domain.Partition,
	logger *slog.Logger,
) *Migrator {
	return &Migrator{
		source:    source,
		articles:  articles,
		publisher: publisher,
		partition: partition,
		logger:    logger.With("component", "migration"),
	}
}

// Migrate copies the partition's articles into the target. A failing row
// is counted in Errors and the run moves on to the next one.
func (m *Migrator) Migrate(ctx context.Context, opts Options) (*domain.MigrationStats, error) {
	startTime := time.Now()
	stats := &domain.MigrationStats{
		RunID:     uuid.NewString(),
		Partition: m.partition,
		DryRun:    opts.DryRun,
	}
	logger := m.logger.With("run_id", stats.RunID)

	logger.Info("starting migration",
		"partition_column", m.partition.Column,
		"partition_value", m.partition.Value,
		"update_existing", opts.UpdateExisting,
		"dry_run", opts.DryRun,
	)

	articles, err := m.source.ListPartition(ctx, m.partition)
	if err != nil {
		return nil, fmt.Errorf("fetch legacy articles: %w", err)
	}
	stats.Fetched = len(articles)

	slugs := make([]string, len(articles))
	for i, a := range articles {
		slugs[i] = a.Slug
	}
	existing, err := m.articles.ExistingSlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("load existing slugs: %w", err)
	}

	logger.Info("fetched legacy articles", "count", len(articles), "existing", len(existing))

	for i := range articles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		article := normalize(articles[i])
		_, exists := existing[article.Slug]

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
			logger.Debug("would migrate article", "slug", article.Slug, "exists", exists)
			continue
		}

		result, err := m.articles.Upsert(ctx, &article)
		if err != nil {
			logger.Error("failed to migrate article", "slug", article.Slug, "error", err)
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
			continue
		}

		if m.publisher != nil {
			if err := m.publisher.Publish(ctx, stats.RunID, &article, result); err != nil {
				logger.Warn("failed to publish article", "slug", article.Slug, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(startTime)

	logger.Info("migration completed",
		"fetched", stats.Fetched,
		"new", stats.New,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// normalize maps a legacy row onto what the target expects. The target
// assigns its own ids and treats a missing featured flag as false.
func normalize(a domain.Article) domain.Article {
	a.ID = ""
	if a.IsFeatured == nil {
		featured := false
		a.IsFeatured = &featured
	}
	return a
}
