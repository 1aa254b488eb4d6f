package service

import (
	"context"
	"fmt"
	"log/slog"

	"relocation_quest/internal/domain"
)

const (
	DefaultArticleLimit     = 50
	DefaultDestinationLimit = 20
	MaxPageSize             = 200
)

type ContentService struct {
	articles     ArticleStore
	destinations DestinationStore
	logger       *slog.Logger
}

func NewContentService(articles ArticleStore, destinations DestinationStore, logger *slog.Logger) *ContentService {
	return &ContentService{
		articles:     articles,
		destinations: destinations,
		logger:       logger.With("component", "content"),
	}
}

// ListArticles returns one page of articles. Total counts the whole table
// even when search narrows the page; clients rely on that number.
func (s *ContentService) ListArticles(ctx context.Context, search string, limit, offset int) (*domain.ArticlePage, error) {
	limit, err := pageSize(limit)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset %d: %w", offset, domain.ErrInvalidArgument)
	}

	articles, err := s.articles.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.articles.Count(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("listed articles",
		"search", search,
		"returned", len(articles),
		"total", total,
	)

	return &domain.ArticlePage{
		Articles: articles,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *ContentService) GetArticle(ctx context.Context, slug string) (*domain.Article, error) {
	return s.articles.GetBySlug(ctx, slug)
}

func (s *ContentService) ListDestinations(ctx context.Context, featuredOnly bool, limit int) (*domain.DestinationList, error) {
	limit, err := pageSize(limit)
	if err != nil {
		return nil, err
	}

	destinations, err := s.destinations.ListEnabled(ctx, featuredOnly, limit)
	if err != nil {
		return nil, err
	}

	return &domain.DestinationList{
		Destinations: destinations,
		Total:        len(destinations),
	}, nil
}

func (s *ContentService) GetDestination(ctx context.Context, slug string) (*domain.Destination, error) {
	return s.destinations.GetEnabledBySlug(ctx, slug)
}

func pageSize(limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("limit %d: %w", limit, domain.ErrInvalidArgument)
	}
	if limit > MaxPageSize {
		return MaxPageSize, nil
	}
	return limit, nil
}
