package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"relocation_quest/internal/domain"
)

const sitemapArticleLimit = 100

type staticPage struct {
	path      string
	frequency domain.ChangeFrequency
	priority  float64
}

var staticPages = []staticPage{
	{"", domain.ChangeDaily, 1.0},
	{"/destinations", domain.ChangeWeekly, 0.9},
	{"/guides", domain.ChangeWeekly, 0.9},
	{"/guides/digital-nomad-visas", domain.ChangeWeekly, 0.9},
	{"/guides/cost-of-living", domain.ChangeWeekly, 0.9},
	{"/articles", domain.ChangeWeekly, 0.8},
	{"/contact", domain.ChangeMonthly, 0.5},
	{"/privacy", domain.ChangeYearly, 0.3},
	{"/terms", domain.ChangeYearly, 0.3},
}

type SitemapService struct {
	articles     ArticleStore
	destinations DestinationStore
	baseURL      string
	now          func() time.Time
	logger       *slog.Logger
}

func NewSitemapService(articles ArticleStore, destinations DestinationStore, baseURL string, logger *slog.Logger) *SitemapService {
	return &SitemapService{
		articles:     articles,
		destinations: destinations,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          time.Now,
		logger:       logger.With("component", "sitemap"),
	}
}

// Entries lists static pages, then enabled destinations, then the top
// articles. If either query fails only the static pages are returned.
func (s *SitemapService) Entries(ctx context.Context) []domain.SitemapEntry {
	now := s.now()

	entries := make([]domain.SitemapEntry, 0, len(staticPages))
	for _, page := range staticPages {
		entries = append(entries, domain.SitemapEntry{
			URL:             s.baseURL + page.path,
			LastModified:    now,
			ChangeFrequency: page.frequency,
			Priority:        page.priority,
		})
	}

	destinations, err := s.destinations.ListSitemapRefs(ctx)
	if err != nil {
		s.logger.Error("sitemap destinations unavailable", "error", err)
		return entries
	}

	articles, err := s.articles.ListSitemapRefs(ctx, sitemapArticleLimit)
	if err != nil {
		s.logger.Error("sitemap articles unavailable", "error", err)
		return entries
	}

	for _, ref := range destinations {
		entries = append(entries, s.contentEntry("/destinations/", ref, now, domain.ChangeWeekly, 0.8))
	}
	for _, ref := range articles {
		entries = append(entries, s.contentEntry("/article/", ref, now, domain.ChangeMonthly, 0.6))
	}

	return entries
}

func (s *SitemapService) contentEntry(prefix string, ref domain.ContentRef, now time.Time, freq domain.ChangeFrequency, priority float64) domain.SitemapEntry {
	lastModified := now
	if ref.UpdatedAt != nil {
		lastModified = *ref.UpdatedAt
	}
	return domain.SitemapEntry{
		URL:             s.baseURL + prefix + ref.Slug,
		LastModified:    lastModified,
		ChangeFrequency: freq,
		Priority:        priority,
	}
}
