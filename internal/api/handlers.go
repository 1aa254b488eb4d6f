package api

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"relocation_quest/internal/domain"
	"relocation_quest/internal/service"
)

type Handler struct {
	content ContentService
	users   UserService
	sitemap SitemapService
	search  SearchService
	db      Pinger
	logger  *slog.Logger
}

func NewHandler(content ContentService, users UserService, sitemap SitemapService, search SearchService, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		content: content,
		users:   users,
		sitemap: sitemap,
		search:  search,
		db:      db,
		logger:  logger,
	}
}

// intParam reads a non-negative integer query parameter, falling back to
// def when it is absent.
func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", name, domain.ErrInvalidArgument)
	}
	return v, nil
}

func (h *Handler) ListArticles(c echo.Context) error {
	limit, err := intParam(c, "limit", service.DefaultArticleLimit)
	if err != nil {
		return h.failure(c, err, "Failed to fetch articles")
	}
	offset, err := intParam(c, "offset", 0)
	if err != nil {
		return h.failure(c, err, "Failed to fetch articles")
	}

	page, err := h.content.ListArticles(c.Request().Context(), c.QueryParam("search"), limit, offset)
	if err != nil {
		return h.failure(c, err, "Failed to fetch articles")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetArticle(c echo.Context) error {
	article, err := h.content.GetArticle(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Article not found"})
	}
	if err != nil {
		return h.failure(c, err, "Failed to fetch article")
	}
	return c.JSON(http.StatusOK, map[string]*domain.Article{"article": article})
}

func (h *Handler) ListDestinations(c echo.Context) error {
	limit, err := intParam(c, "limit", service.DefaultDestinationLimit)
	if err != nil {
		return h.failure(c, err, "Failed to fetch destinations")
	}
	featuredOnly := c.QueryParam("featured") == "true"

	list, err := h.content.ListDestinations(c.Request().Context(), featuredOnly, limit)
	if err != nil {
		return h.failure(c, err, "Failed to fetch destinations")
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetDestination(c echo.Context) error {
	destination, err := h.content.GetDestination(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Destination not found"})
	}
	if err != nil {
		return h.failure(c, err, "Failed to fetch destination")
	}
	return c.JSON(http.StatusOK, destination)
}

type UpdateProfileRequest struct {
	PreferredName  *string  `json:"preferred_name" validate:"omitempty,max=100"`
	FavoriteTopics []string `json:"favorite_topics" validate:"omitempty,max=50,dive,max=100"`
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.users.GetProfile(c.Request().Context(), sessionUser(c))
	if err != nil {
		return h.failure(c, err, "Internal server error")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return h.failure(c, err, "Internal server error")
	}

	profile, err := h.users.UpdateProfile(c.Request().Context(), sessionUser(c), domain.ProfileUpdate{
		PreferredName:  req.PreferredName,
		FavoriteTopics: req.FavoriteTopics,
	})
	if err != nil {
		return h.failure(c, err, "Internal server error")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) RecentTopics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.users.RecentActivity(c.Request().Context(), c.QueryParam("userId")))
}

type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
	Limit int    `json:"limit" validate:"gte=0"`
}

func (h *Handler) Search(c echo.Context) error {
	req := SearchRequest{Limit: service.DefaultSearchLimit}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return h.failure(c, err, "Search failed")
	}

	result, err := h.search.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return h.failure(c, err, "Search failed")
	}
	return c.JSON(http.StatusOK, result)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (h *Handler) Sitemap(c echo.Context) error {
	entries := h.sitemap.Entries(c.Request().Context())

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}

	return c.XML(http.StatusOK, set)
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		h.logger.Warn("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
