package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"relocation_quest/internal/domain"
)

const (
	DefaultSearchLimit = 5
	maxSearchLimit     = 50
)

// SearchService asks the chat runtime first and falls back to a plain
// substring search over the local articles.
type SearchService struct {
	agent    SearchAgent
	articles ArticleStore
	logger   *slog.Logger
}

// NewSearchService accepts a nil agent, in which case every search is
// served from the database.
func NewSearchService(agent SearchAgent, articles ArticleStore, logger *slog.Logger) *SearchService {
	return &SearchService{
		agent:    agent,
		articles: articles,
		logger:   logger.With("component", "search"),
	}
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.agent != nil {
		hits, err := s.agent.Search(ctx, query, limit)
		if err == nil {
			return &domain.SearchResult{Articles: hits, Query: query, Source: domain.SearchSourceAgent}, nil
		}
		s.logger.Warn("agent search failed, using database", "query", query, "error", err)
	}

	articles, err := s.articles.List(ctx, query, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("fallback search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(articles))
	for _, a := range articles {
		hits = append(hits, domain.SearchHit{
			ID:      a.ID,
			Title:   a.Title,
			Excerpt: a.Excerpt,
			Slug:    a.Slug,
		})
	}

	return &domain.SearchResult{Articles: hits, Query: query, Source: domain.SearchSourceDatabase}, nil
}
