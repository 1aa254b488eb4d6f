package api

import (
	"context"

	"relocation_quest/internal/domain"
)

type ContentService interface {
	ListArticles(ctx context.Context, search string, limit, offset int) (*domain.ArticlePage, error)
	GetArticle(ctx context.Context, slug string) (*domain.Article, error)
	ListDestinations(ctx context.Context, featuredOnly bool, limit int) (*domain.DestinationList, error)
	GetDestination(ctx context.Context, slug string) (*domain.Destination, error)
}

type UserService interface {
	GetProfile(ctx context.Context, user *domain.SessionUser) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, user *domain.SessionUser, update domain.ProfileUpdate) (*domain.UserProfile, error)
	RecentActivity(ctx context.Context, userID string) *domain.RecentActivity
}

type SitemapService interface {
	Entries(ctx context.Context) []domain.SitemapEntry
}

type SearchService interface {
	Search(ctx context.Context, query string, limit int) (*domain.SearchResult, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}
