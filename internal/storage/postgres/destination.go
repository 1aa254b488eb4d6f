package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"relocation_quest/internal/domain"
)

type DestinationStore struct {
	db *sqlx.DB
}

func NewDestinationStore(db *sqlx.DB) *DestinationStore {
	return &DestinationStore{db: db}
}

// ListEnabled returns visible destinations, highest priority first with
// country name as the tie-break.
func (s *DestinationStore) ListEnabled(ctx context.Context, featuredOnly bool, limit int) ([]domain.DestinationSummary, error) {
	filter := "enabled = true"
	if featuredOnly {
		filter += " AND featured = true"
	}

	query := `
		SELECT
			slug,
			country_name,
			flag,
			region,
			hero_title,
			hero_subtitle,
			hero_image_url,
			meta_description,
			cost_of_living
		FROM destinations
		WHERE ` + filter + `
		ORDER BY priority DESC, country_name ASC
		LIMIT $1`

	destinations := []domain.DestinationSummary{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &destinations, query, limit); err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return destinations, nil
}

// GetEnabledBySlug treats disabled destinations exactly like missing ones.
func (s *DestinationStore) GetEnabledBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	query := `
		SELECT
			id::text AS id,
			slug,
			country_name,
			flag,
			region,
			hero_title,
			hero_subtitle,
			hero_gradient,
			language,
			COALESCE(enabled, false) AS enabled,
			COALESCE(featured, false) AS featured,
			COALESCE(priority, 0) AS priority,
			quick_facts,
			highlights,
			visas,
			cost_of_living,
			job_market,
			faqs,
			meta_title,
			meta_description,
			hero_image_url,
			updated_at
		FROM destinations
		WHERE slug = $1 AND enabled = true`

	var destination domain.Destination
	err := GetExecutor(ctx, s.db).GetContext(ctx, &destination, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get destination %q: %w", slug, err)
	}
	return &destination, nil
}

func (s *DestinationStore) ListSitemapRefs(ctx context.Context) ([]domain.ContentRef, error) {
	query := `
		SELECT slug, updated_at
		FROM destinations
		WHERE enabled = true
		ORDER BY priority DESC, country_name ASC`

	var refs []domain.ContentRef
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list destination refs: %w", err)
	}
	return refs, nil
}

// Upsert writes a destination keyed on slug.
func (s *DestinationStore) Upsert(ctx context.Context, d *domain.Destination) (domain.UpsertResult, error) {
	query := `
		INSERT INTO destinations (
			slug, country_name, flag, region, language,
			hero_title, hero_subtitle, hero_gradient, hero_image_url,
			enabled, featured, priority,
			quick_facts, highlights, visas, cost_of_living, job_market, faqs,
			meta_title, meta_description
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13::jsonb, $14::jsonb, $15::jsonb, $16::jsonb, $17::jsonb, $18::jsonb, $19, $20
		)
		ON CONFLICT (slug) DO UPDATE SET
			country_name = EXCLUDED.country_name,
			flag = EXCLUDED.flag,
			region = EXCLUDED.region,
			language = EXCLUDED.language,
			hero_title = EXCLUDED.hero_title,
			hero_subtitle = EXCLUDED.hero_subtitle,
			hero_gradient = EXCLUDED.hero_gradient,
			hero_image_url = EXCLUDED.hero_image_url,
			enabled = EXCLUDED.enabled,
			featured = EXCLUDED.featured,
			priority = EXCLUDED.priority,
			quick_facts = EXCLUDED.quick_facts,
			highlights = EXCLUDED.highlights,
			visas = EXCLUDED.visas,
			cost_of_living = EXCLUDED.cost_of_living,
			job_market = EXCLUDED.job_market,
			faqs = EXCLUDED.faqs,
			meta_title = EXCLUDED.meta_title,
			meta_description = EXCLUDED.meta_description,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`

	var inserted bool
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		d.Slug,
		d.CountryName,
		d.Flag,
		d.Region,
		d.Language,
		d.HeroTitle,
		d.HeroSubtitle,
		d.HeroGradient,
		d.HeroImageURL,
		d.Enabled,
		d.Featured,
		d.Priority,
		jsonParam(d.QuickFacts),
		jsonParam(d.Highlights),
		jsonParam(d.Visas),
		jsonParam(d.CostOfLiving),
		jsonParam(d.JobMarket),
		jsonParam(d.FAQs),
		d.MetaTitle,
		d.MetaDescription,
	).Scan(&inserted)
	if err != nil {
		return domain.UpsertUnchanged, fmt.Errorf("upsert destination %q: %w", d.Slug, err)
	}
	if inserted {
		return domain.UpsertInserted, nil
	}
	return domain.UpsertUpdated, nil
}

// jsonParam sends JSON as text so the driver never treats it as bytea.
func jsonParam(j types.JSONText) interface{} {
	if len(j) == 0 {
		return nil
	}
	return string(j)
}
