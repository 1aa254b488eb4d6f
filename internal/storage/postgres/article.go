package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"relocation_quest/internal/domain"
)

const articleSummaryColumns = `id::text AS id, title, slug, excerpt, hero_image_url`

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// List returns a page of articles ordered by title. A non-empty search
// matches title or content case-insensitively.
func (s *ArticleStore) List(ctx context.Context, search string, limit, offset int) ([]domain.Article, error) {
	exec := GetExecutor(ctx, s.db)
	articles := []domain.Article{}

	if search != "" {
		query := `
			SELECT ` + articleSummaryColumns + `
			FROM articles
			WHERE LOWER(title) LIKE $1
			   OR LOWER(content) LIKE $1
			ORDER BY title ASC
			LIMIT $2
			OFFSET $3`
		if err := exec.SelectContext(ctx, &articles, query, containsPattern(search), limit, offset); err != nil {
			return nil, fmt.Errorf("search articles: %w", err)
		}
		return articles, nil
	}

	query := `
		SELECT ` + articleSummaryColumns + `
		FROM articles
		ORDER BY title ASC
		LIMIT $1
		OFFSET $2`
	if err := exec.SelectContext(ctx, &articles, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Count returns the size of the whole table, independent of any search.
func (s *ArticleStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetExecutor(ctx, s.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM articles`); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}

func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `
		SELECT id::text AS id, title, content, slug, excerpt, hero_image_url
		FROM articles
		WHERE slug = $1
		LIMIT 1`

	var article domain.Article
	err := GetExecutor(ctx, s.db).GetContext(ctx, &article, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article %q: %w", slug, err)
	}
	return &article, nil
}

func (s *ArticleStore) ListSitemapRefs(ctx context.Context, limit int) ([]domain.ContentRef, error) {
	query := `
		SELECT slug, updated_at
		FROM articles
		WHERE slug IS NOT NULL
		ORDER BY is_featured DESC NULLS LAST, published_at DESC NULLS LAST
		LIMIT $1`

	var refs []domain.ContentRef
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &refs, query, limit); err != nil {
		return nil, fmt.Errorf("list article refs: %w", err)
	}
	return refs, nil
}

// ExistingSlugs reports which of slugs are already present.
func (s *ArticleStore) ExistingSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	return existingKeys(ctx, s.db, "articles", "slug", slugs)
}

// Upsert writes article keyed on slug. Rows whose content already matches
// are left untouched so reruns are no-ops.
func (s *ArticleStore) Upsert(ctx context.Context, article *domain.Article) (domain.UpsertResult, error) {
	query := `
		INSERT INTO articles (
			slug, title, excerpt, content, hero_image_url, country,
			article_mode, category, is_featured, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			hero_image_url = EXCLUDED.hero_image_url,
			country = EXCLUDED.country,
			article_mode = EXCLUDED.article_mode,
			category = EXCLUDED.category,
			is_featured = EXCLUDED.is_featured,
			published_at = EXCLUDED.published_at,
			updated_at = NOW()
		WHERE (articles.title, articles.excerpt, articles.content, articles.hero_image_url,
		       articles.country, articles.article_mode, articles.category,
		       articles.is_featured, articles.published_at)
		   IS DISTINCT FROM
		      (EXCLUDED.title, EXCLUDED.excerpt, EXCLUDED.content, EXCLUDED.hero_image_url,
		       EXCLUDED.country, EXCLUDED.article_mode, EXCLUDED.category,
		       EXCLUDED.is_featured, EXCLUDED.published_at)
		RETURNING (xmax = 0) AS inserted`

	featured := article.IsFeatured != nil && *article.IsFeatured

	result, err := upsertOutcome(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		article.Slug,
		article.Title,
		article.Excerpt,
		article.Content,
		article.HeroImageURL,
		article.Country,
		article.ArticleMode,
		article.Category,
		featured,
		article.PublishedAt,
	))
	if err != nil {
		return result, fmt.Errorf("upsert article %q: %w", article.Slug, err)
	}
	return result, nil
}
