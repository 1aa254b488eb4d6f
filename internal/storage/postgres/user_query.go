package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"relocation_quest/internal/domain"
)

// UserQueryStore reads the append-only user_queries log. Writes belong to
// the chat runtime.
type UserQueryStore struct {
	db *sqlx.DB
}

func NewUserQueryStore(db *sqlx.DB) *UserQueryStore {
	return &UserQueryStore{db: db}
}

// RecentTopics groups a user's questions case-insensitively and returns the
// most recently asked groups first. Each group carries the latest article
// it was answered with.
//
// Queries are trimmed before grouping and before the length check, so
// " Portugal visa" and "portugal visa" are one topic and a padded short
// query such as "  a " is ignored rather than counted on its raw length.
func (s *UserQueryStore) RecentTopics(ctx context.Context, userID string, limit int) ([]domain.TopicSummary, error) {
	query := `
		SELECT
			LOWER(TRIM(query)) AS topic,
			(ARRAY_AGG(article_title ORDER BY created_at DESC)
				FILTER (WHERE article_title IS NOT NULL))[1] AS article_title,
			(ARRAY_AGG(article_slug ORDER BY created_at DESC)
				FILTER (WHERE article_slug IS NOT NULL))[1] AS article_slug,
			MAX(created_at) AS last_asked,
			COUNT(*) AS times_asked
		FROM user_queries
		WHERE user_id = $1
		  AND query IS NOT NULL
		  AND LENGTH(TRIM(query)) > 2
		GROUP BY LOWER(TRIM(query))
		ORDER BY MAX(created_at) DESC
		LIMIT $2`

	topics := []domain.TopicSummary{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &topics, query, userID, limit); err != nil {
		return nil, fmt.Errorf("recent topics: %w", err)
	}
	return topics, nil
}

func (s *UserQueryStore) VisitStats(ctx context.Context, userID string) (*domain.VisitStats, error) {
	query := `
		SELECT
			COUNT(DISTINCT session_id) AS visit_count,
			MIN(created_at) AS first_visit,
			MAX(created_at) AS last_visit
		FROM user_queries
		WHERE user_id = $1`

	var stats domain.VisitStats
	if err := GetExecutor(ctx, s.db).GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("visit stats: %w", err)
	}
	return &stats, nil
}
