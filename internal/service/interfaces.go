package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"relocation_quest/internal/domain"
)

type ArticleStore interface {
	List(ctx context.Context, search string, limit, offset int) ([]domain.Article, error)
	Count(ctx context.Context) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListSitemapRefs(ctx context.Context, limit int) ([]domain.ContentRef, error)
}

type DestinationStore interface {
	ListEnabled(ctx context.Context, featuredOnly bool, limit int) ([]domain.DestinationSummary, error)
	GetEnabledBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	ListSitemapRefs(ctx context.Context) ([]domain.ContentRef, error)
}

type UserDataStore interface {
	EnsureTable(ctx context.Context) error
	GetOrCreate(ctx context.Context, userID string, email *string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, userID string, email *string, update domain.ProfileUpdate) (*domain.UserProfile, error)
}

type UserQueryStore interface {
	RecentTopics(ctx context.Context, userID string, limit int) ([]domain.TopicSummary, error)
	VisitStats(ctx context.Context, userID string) (*domain.VisitStats, error)
}

type SearchAgent interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
}
