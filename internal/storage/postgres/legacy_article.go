package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"relocation_quest/internal/domain"
)

// LegacyArticleStore reads articles from the V1 layout, where several sites
// share one table and rendered HTML lives beside the raw content.
type LegacyArticleStore struct {
	db *sqlx.DB
}

func NewLegacyArticleStore(db *sqlx.DB) *LegacyArticleStore {
	return &LegacyArticleStore{db: db}
}

// ListPartition returns every article in partition mapped onto the current
// layout, ordered by slug.
func (s *LegacyArticleStore) ListPartition(ctx context.Context, partition domain.Partition) ([]domain.Article, error) {
	where, args := partitionFilter(partition, 1)
	query := `
		SELECT
			COALESCE(id::text, '') AS id,
			slug,
			COALESCE(title, '') AS title,
			excerpt,
			COALESCE(content_html, content) AS content,
			hero_asset_url AS hero_image_url,
			country,
			article_mode,
			category,
			is_featured,
			published_at
		FROM articles
		WHERE slug IS NOT NULL` + where + `
		ORDER BY slug`

	articles := []domain.Article{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("list legacy articles: %w", err)
	}
	return articles, nil
}
