//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"relocation_quest/internal/domain"
	"relocation_quest/internal/testutil"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	legacy    *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_articles.up.sql"),
			filepath.Join(migrationsPath, "002_create_destinations.up.sql"),
			filepath.Join(migrationsPath, "003_create_user_activity.up.sql"),
			filepath.Join("testdata", "legacy_schema.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Connect(s.ctx, connStr)
	s.Require().NoError(err)
	s.db = db

	legacy, err := Connect(s.ctx, connStr+"&search_path=legacy")
	s.Require().NoError(err)
	s.legacy = legacy

	schema := NewSchemaStore(db)
	for _, table := range []string{TableCompanies, TableJobs, TableSkills, TableContactSubmissions} {
		s.Require().NoError(schema.EnsureTable(s.ctx, table))
	}
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.legacy != nil {
		s.legacy.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM articles")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM destinations")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM user_data")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM user_queries")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM legacy.articles")
	for _, table := range []string{"companies", "jobs", "skills"} {
		_, _ = s.db.ExecContext(s.ctx, "DELETE FROM public."+table)
		_, _ = s.db.ExecContext(s.ctx, "DELETE FROM legacy."+table)
	}
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) insertArticle(slug, title string, content *string, featured bool, published time.Time) {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO articles (slug, title, content, is_featured, published_at, country)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, slug, title, content, featured, published, "Portugal")
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) insertDestination(slug, name string, enabled, featured bool, priority int) {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO destinations (slug, country_name, enabled, featured, priority, cost_of_living)
		VALUES ($1, $2, $3, $4, $5, '{"rent": 900}')
	`, slug, name, enabled, featured, priority)
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) insertQuery(userID, sessionID, query string, title *string, at time.Time) {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO user_queries (user_id, session_id, query, article_title, article_slug, created_at)
		VALUES ($1, $2, $3, $4, $4, $5)
	`, userID, sessionID, query, title, at)
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) TestArticleStore_List_OrdersByTitle() {
	store := NewArticleStore(s.db)
	now := time.Now()

	s.insertArticle("b", "Beta", nil, false, now)
	s.insertArticle("a", "Alpha", nil, false, now)
	s.insertArticle("c", "Gamma", nil, false, now)

	articles, err := store.List(s.ctx, "", 2, 1)
	s.NoError(err)
	s.Require().Len(articles, 2)
	s.Equal("Beta", articles[0].Title)
	s.Equal("Gamma", articles[1].Title)
	s.NotEmpty(articles[0].ID)
}

func (s *PostgresIntegrationSuite) TestArticleStore_List_SearchMatchesTitleOrContent() {
	store := NewArticleStore(s.db)
	now := time.Now()

	s.insertArticle("visa", "Portugal Visa Guide", nil, false, now)
	s.insertArticle("tax", "Tax Basics", testutil.Ptr("How the PORTUGAL NHR regime works"), false, now)
	s.insertArticle("spain", "Spain", testutil.Ptr("Sun"), false, now)

	articles, err := store.List(s.ctx, "portugal", 50, 0)
	s.NoError(err)
	s.Len(articles, 2)

	total, err := store.Count(s.ctx)
	s.NoError(err)
	s.Equal(int64(3), total)
}

func (s *PostgresIntegrationSuite) TestArticleStore_List_WildcardsAreLiteral() {
	store := NewArticleStore(s.db)
	now := time.Now()

	s.insertArticle("pct", "100% remote", nil, false, now)
	s.insertArticle("other", "1000 remote jobs", nil, false, now)

	articles, err := store.List(s.ctx, "0%", 50, 0)
	s.NoError(err)
	s.Require().Len(articles, 1)
	s.Equal("pct", articles[0].Slug)
}

func (s *PostgresIntegrationSuite) TestArticleStore_GetBySlug() {
	store := NewArticleStore(s.db)
	s.insertArticle("cyprus-guide", "Cyprus", testutil.Ptr("<p>body</p>"), false, time.Now())

	article, err := store.GetBySlug(s.ctx, "cyprus-guide")
	s.NoError(err)
	s.Equal("Cyprus", article.Title)
	s.Equal("<p>body</p>", *article.Content)

	_, err = store.GetBySlug(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListSitemapRefs_FeaturedThenNewest() {
	store := NewArticleStore(s.db)
	now := time.Now()

	s.insertArticle("old", "Old", nil, false, now.Add(-48*time.Hour))
	s.insertArticle("new", "New", nil, false, now)
	s.insertArticle("featured", "Featured", nil, true, now.Add(-96*time.Hour))

	refs, err := store.ListSitemapRefs(s.ctx, 2)
	s.NoError(err)
	s.Require().Len(refs, 2)
	s.Equal("featured", refs[0].Slug)
	s.Equal("new", refs[1].Slug)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Upsert_IsIdempotent() {
	store := NewArticleStore(s.db)
	article := &domain.Article{
		Slug:    "malta",
		Title:   "Malta",
		Content: testutil.Ptr("v1"),
		Country: testutil.Ptr("Malta"),
	}

	result, err := store.Upsert(s.ctx, article)
	s.NoError(err)
	s.Equal(domain.UpsertInserted, result)

	result, err = store.Upsert(s.ctx, article)
	s.NoError(err)
	s.Equal(domain.UpsertUnchanged, result)

	article.Content = testutil.Ptr("v2")
	result, err = store.Upsert(s.ctx, article)
	s.NoError(err)
	s.Equal(domain.UpsertUpdated, result)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles WHERE slug = $1", "malta")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ExistingSlugs() {
	store := NewArticleStore(s.db)
	s.insertArticle("a", "A", nil, false, time.Now())
	s.insertArticle("b", "B", nil, false, time.Now())

	existing, err := store.ExistingSlugs(s.ctx, []string{"a", "b", "z"})
	s.NoError(err)
	s.Len(existing, 2)
	s.Contains(existing, "a")
	s.NotContains(existing, "z")
}

func (s *PostgresIntegrationSuite) TestDestinationStore_ListEnabled() {
	store := NewDestinationStore(s.db)

	s.insertDestination("spain", "Spain", true, false, 5)
	s.insertDestination("cyprus", "Cyprus", true, true, 5)
	s.insertDestination("portugal", "Portugal", true, true, 10)
	s.insertDestination("hidden", "Hidden", false, true, 100)

	all, err := store.ListEnabled(s.ctx, false, 20)
	s.NoError(err)
	s.Require().Len(all, 3)
	s.Equal("portugal", all[0].Slug)
	s.Equal("cyprus", all[1].Slug)
	s.Equal("spain", all[2].Slug)
	s.JSONEq(`{"rent": 900}`, string(all[0].CostOfLiving))

	featured, err := store.ListEnabled(s.ctx, true, 20)
	s.NoError(err)
	s.Len(featured, 2)
}

func (s *PostgresIntegrationSuite) TestDestinationStore_GetEnabledBySlug() {
	store := NewDestinationStore(s.db)
	s.insertDestination("portugal", "Portugal", true, false, 1)
	s.insertDestination("hidden", "Hidden", false, false, 1)

	destination, err := store.GetEnabledBySlug(s.ctx, "portugal")
	s.NoError(err)
	s.Equal("Portugal", destination.CountryName)
	s.True(destination.Enabled)

	_, err = store.GetEnabledBySlug(s.ctx, "hidden")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestDestinationStore_Upsert() {
	store := NewDestinationStore(s.db)
	destination := &domain.Destination{
		DestinationSummary: domain.DestinationSummary{
			Slug:        "greece",
			CountryName: "Greece",
		},
		Enabled:  true,
		Priority: 3,
		Visas:    types.JSONText(`[{"name": "Digital Nomad Visa"}]`),
	}

	result, err := store.Upsert(s.ctx, destination)
	s.NoError(err)
	s.Equal(domain.UpsertInserted, result)

	destination.Priority = 4
	result, err = store.Upsert(s.ctx, destination)
	s.NoError(err)
	s.Equal(domain.UpsertUpdated, result)

	stored, err := store.GetEnabledBySlug(s.ctx, "greece")
	s.NoError(err)
	s.Equal(4, stored.Priority)
	s.JSONEq(`[{"name": "Digital Nomad Visa"}]`, string(stored.Visas))
	s.Empty(stored.FAQs)
}

func (s *PostgresIntegrationSuite) TestUserDataStore_EnsureTable_Concurrent() {
	_, err := s.db.ExecContext(s.ctx, "DROP TABLE IF EXISTS user_data")
	s.Require().NoError(err)

	store := NewUserDataStore(s.db)
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.EnsureTable(s.ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
}

func (s *PostgresIntegrationSuite) TestUserDataStore_GetOrCreate() {
	store := NewUserDataStore(s.db)
	s.Require().NoError(store.EnsureTable(s.ctx))

	first, err := store.GetOrCreate(s.ctx, "user-1", testutil.Ptr("a@example.com"))
	s.NoError(err)
	s.Equal("user-1", first.UserID)
	s.Equal("a@example.com", *first.Email)
	s.Nil(first.PreferredName)
	s.Nil(first.FavoriteTopics)

	second, err := store.GetOrCreate(s.ctx, "user-1", testutil.Ptr("b@example.com"))
	s.NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal("a@example.com", *second.Email)
}

func (s *PostgresIntegrationSuite) TestUserDataStore_Upsert_Overwrites() {
	store := NewUserDataStore(s.db)
	s.Require().NoError(store.EnsureTable(s.ctx))

	profile, err := store.Upsert(s.ctx, "user-2", nil, domain.ProfileUpdate{
		PreferredName:  testutil.Ptr("Sam"),
		FavoriteTopics: []string{"visas", "tax"},
	})
	s.NoError(err)
	s.Equal("Sam", *profile.PreferredName)
	s.Equal([]string{"visas", "tax"}, profile.FavoriteTopics)

	profile, err = store.Upsert(s.ctx, "user-2", nil, domain.ProfileUpdate{})
	s.NoError(err)
	s.Nil(profile.PreferredName)
	s.Nil(profile.FavoriteTopics)
}

func (s *PostgresIntegrationSuite) TestUserQueryStore_RecentTopics() {
	store := NewUserQueryStore(s.db)
	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)

	s.insertQuery("u", "s1", "Portugal visa", testutil.Ptr("Portugal D7"), base)
	s.insertQuery("u", "s1", "  portugal VISA ", nil, base.Add(time.Minute))
	s.insertQuery("u", "s2", "hi", nil, base.Add(2*time.Minute))
	s.insertQuery("u", "s2", "  a ", nil, base.Add(2*time.Minute+time.Second))
	s.insertQuery("u", "s2", "cost of living", nil, base.Add(3*time.Minute))
	s.insertQuery("u", "s3", "spain", nil, base.Add(4*time.Minute))
	s.insertQuery("u", "s3", "cyprus tax", testutil.Ptr("Cyprus Non-Dom"), base.Add(5*time.Minute))
	s.insertQuery("other", "s9", "malta", nil, base.Add(6*time.Minute))

	topics, err := store.RecentTopics(s.ctx, "u", 3)
	s.NoError(err)
	s.Require().Len(topics, 3)
	s.Equal("cyprus tax", topics[0].Topic)
	s.Equal("spain", topics[1].Topic)
	s.Equal("cost of living", topics[2].Topic)

	all, err := store.RecentTopics(s.ctx, "u", 10)
	s.NoError(err)
	s.Require().Len(all, 4)
	visa := all[3]
	s.Equal("portugal visa", visa.Topic)
	s.Equal(2, visa.TimesAsked)
	s.Equal("Portugal D7", *visa.ArticleTitle)
	s.WithinDuration(base.Add(time.Minute), visa.LastAsked, time.Millisecond)
}

func (s *PostgresIntegrationSuite) TestUserQueryStore_VisitStats() {
	store := NewUserQueryStore(s.db)
	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)

	s.insertQuery("u", "s1", "one", nil, base)
	s.insertQuery("u", "s1", "two", nil, base.Add(time.Minute))
	s.insertQuery("u", "s2", "three", nil, base.Add(2*time.Minute))

	stats, err := store.VisitStats(s.ctx, "u")
	s.NoError(err)
	s.Equal(2, stats.VisitCount)
	s.WithinDuration(base, *stats.FirstVisit, time.Millisecond)
	s.WithinDuration(base.Add(2*time.Minute), *stats.LastVisit, time.Millisecond)

	empty, err := store.VisitStats(s.ctx, "nobody")
	s.NoError(err)
	s.Equal(0, empty.VisitCount)
	s.Nil(empty.FirstVisit)
}

func (s *PostgresIntegrationSuite) TestCatalog_TablesAndColumns() {
	catalog := NewCatalog(s.db)

	tables, err := catalog.Tables(s.ctx)
	s.NoError(err)
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	s.Contains(names, "articles")
	s.Contains(names, "destinations")

	columns, err := catalog.Columns(s.ctx, "articles")
	s.NoError(err)
	s.Require().NotEmpty(columns)
	s.Equal("id", columns[0].Name)
	s.False(columns[0].Nullable)

	missing, err := catalog.Columns(s.ctx, "no_such_table")
	s.NoError(err)
	s.Empty(missing)

	_, err = catalog.CountRows(s.ctx, "no_such_table")
	s.Error(err)
}

func (s *PostgresIntegrationSuite) TestCatalog_CountArticlesMentioning() {
	catalog := NewCatalog(s.db)
	s.insertArticle("a", "Living in Lisbon", nil, false, time.Now())
	s.insertArticle("b", "Moving to the UK", nil, false, time.Now())

	count, err := catalog.CountArticlesMentioning(s.ctx, "portugal")
	s.NoError(err)
	s.Equal(int64(2), count)

	count, err = catalog.CountArticlesMentioning(s.ctx, "uk")
	s.NoError(err)
	s.Equal(int64(1), count)

	count, err = catalog.CountArticlesMentioning(s.ctx, "Thailand")
	s.NoError(err)
	s.Equal(int64(0), count)
}

func (s *PostgresIntegrationSuite) TestLegacyStore_ListPartition() {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO legacy.articles (app, slug, title, content, content_html, hero_asset_url, country, article_mode)
		VALUES
			('relocation', 'b-slug', 'B', 'raw', '<p>html</p>', 'https://img/b.jpg', 'Spain', 'guide'),
			('relocation', 'a-slug', 'A', 'raw only', NULL, NULL, 'Malta', 'story'),
			('relocation', NULL, 'No slug', NULL, NULL, NULL, NULL, NULL),
			('other', 'c-slug', 'C', NULL, NULL, NULL, NULL, NULL)
	`)
	s.Require().NoError(err)

	store := NewLegacyArticleStore(s.legacy)
	partition := domain.Partition{Column: "app", Value: "relocation"}

	articles, err := store.ListPartition(s.ctx, partition)
	s.NoError(err)
	s.Require().Len(articles, 2)
	s.Equal("a-slug", articles[0].Slug)
	s.Equal("raw only", *articles[0].Content)
	s.Equal("<p>html</p>", *articles[1].Content)
	s.Equal("https://img/b.jpg", *articles[1].HeroImageURL)

	keys, err := NewCatalog(s.legacy).ArticleKeys(s.ctx, partition)
	s.NoError(err)
	s.Len(keys, 2)

	breakdown, err := NewCatalog(s.legacy).ArticleBreakdown(s.ctx, DimensionCountry, partition, 15)
	s.NoError(err)
	s.Len(breakdown, 2)

	_, err = NewCatalog(s.legacy).ArticleBreakdown(s.ctx, "title; DROP TABLE articles", partition, 15)
	s.ErrorIs(err, domain.ErrInvalidArgument)
}

func (s *PostgresIntegrationSuite) TestCatalog_ArticlesMatchingAndPartitionCounts() {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO legacy.articles (app, slug, title, country, published_at)
		VALUES
			('relocation', 'golden-visa', 'Golden Visa Guide', NULL, '2024-03-01'),
			('fractional', 'expat-cfo', 'Hiring an EXPAT CFO', NULL, '2024-05-01'),
			('fractional', 'cfo-pay', 'CFO Pay Benchmarks', NULL, '2024-06-01'),
			('fractional', 'berlin-office', 'Our Berlin Office', 'Germany', NULL),
			('relocation', NULL, 'Visa without slug', NULL, NULL)
	`)
	s.Require().NoError(err)
	catalog := NewCatalog(s.legacy)

	keys, err := catalog.ArticlesMatching(s.ctx, []string{"visa", "expat"})
	s.NoError(err)
	s.Require().Len(keys, 3)
	s.Equal("expat-cfo", keys[0].Slug)
	s.Equal("golden-visa", keys[1].Slug)
	s.Equal("berlin-office", keys[2].Slug)

	counts, err := catalog.PartitionCounts(s.ctx, "app")
	s.NoError(err)
	s.Require().Len(counts, 2)
	s.Equal("fractional", *counts[0].Value)
	s.Equal(int64(3), counts[0].Count)

	_, err = catalog.PartitionCounts(s.ctx, "no_such_column")
	s.Error(err)
}

func (s *PostgresIntegrationSuite) TestSchemaStore_EnsureTable() {
	schema := NewSchemaStore(s.db)

	s.NoError(schema.EnsureTable(s.ctx, TableContactSubmissions))
	s.NoError(schema.EnsureTable(s.ctx, TableJobs))
	s.ErrorIs(schema.EnsureTable(s.ctx, "articles"), domain.ErrInvalidArgument)

	columns, err := NewCatalog(s.db).Columns(s.ctx, TableContactSubmissions)
	s.NoError(err)
	s.NotEmpty(columns)
}

func (s *PostgresIntegrationSuite) TestLegacyReferenceStore_ListCompanies() {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO legacy.companies (app, status, slug, name, specializations, payload)
		VALUES
			('relocation', 'published', 'visa-experts', 'Visa Experts', '{visas,tax}',
			 '{"website": "https://visa.example", "fee": "5%", "featured": true, "highlights": ["Fast", "Remote"]}'),
			('relocation', 'published', 'movers', 'Movers', NULL, NULL),
			('relocation', 'draft', 'draft-co', 'Draft Co', NULL, NULL),
			('fractional', 'published', 'cfo-co', 'CFO Co', NULL, NULL)
	`)
	s.Require().NoError(err)

	companies, err := NewLegacyReferenceStore(s.legacy).ListCompanies(s.ctx, domain.Partition{Column: "app", Value: "relocation"})
	s.NoError(err)
	s.Require().Len(companies, 2)

	s.Equal("movers", companies[0].Slug)
	s.False(companies[0].Featured)
	s.Nil(companies[0].Website)
	s.Empty(companies[0].Highlights)

	s.Equal("visa-experts", companies[1].Slug)
	s.Equal("https://visa.example", *companies[1].Website)
	s.Equal("5%", *companies[1].Fee)
	s.True(companies[1].Featured)
	s.Equal([]string{"Fast", "Remote"}, []string(companies[1].Highlights))
	s.Equal([]string{"visas", "tax"}, []string(companies[1].Specializations))
}

func (s *PostgresIntegrationSuite) TestLegacyReferenceStore_JobsAndSkills() {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO legacy.jobs (slug, title, is_active, salary_currency, job_source, skills_required)
		VALUES
			('ops-lead', 'Ops Lead', TRUE, NULL, 'board', '{ops}'),
			(NULL, 'Unslugged', TRUE, 'EUR', NULL, NULL),
			('old-role', 'Old Role', FALSE, NULL, NULL, NULL)
	`)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, `
		INSERT INTO legacy.skills (name, category)
		VALUES ('SQL', 'data'), ('Go', NULL), (NULL, 'orphan')
	`)
	s.Require().NoError(err)
	store := NewLegacyReferenceStore(s.legacy)

	jobs, err := store.ListJobs(s.ctx, 10)
	s.NoError(err)
	s.Require().Len(jobs, 2)
	s.Equal("ops-lead", *jobs[0].Slug)
	s.Equal("GBP", jobs[0].SalaryCurrency)
	s.Equal("board", *jobs[0].Source)
	s.Nil(jobs[1].Slug)
	s.Equal("EUR", jobs[1].SalaryCurrency)

	limited, err := store.ListJobs(s.ctx, 1)
	s.NoError(err)
	s.Len(limited, 1)

	skills, err := store.ListSkills(s.ctx, 10)
	s.NoError(err)
	s.Require().Len(skills, 2)
	s.Equal("Go", skills[0].Name)
	s.Equal("data", *skills[1].Category)
}

func (s *PostgresIntegrationSuite) TestCompanyStore_Upsert_IsIdempotent() {
	store := NewCompanyStore(s.db)
	company := &domain.Company{
		Slug:       "visa-experts",
		Name:       "Visa Experts",
		Highlights: []string{"Fast"},
		Status:     testutil.Ptr("published"),
	}

	result, err := store.Upsert(s.ctx, company)
	s.NoError(err)
	s.Equal(domain.UpsertInserted, result)

	result, err = store.Upsert(s.ctx, company)
	s.NoError(err)
	s.Equal(domain.UpsertUnchanged, result)

	company.Highlights = append(company.Highlights, "Remote")
	result, err = store.Upsert(s.ctx, company)
	s.NoError(err)
	s.Equal(domain.UpsertUpdated, result)

	existing, err := store.ExistingKeys(s.ctx, []string{"visa-experts", "unknown"})
	s.NoError(err)
	s.Equal(map[string]struct{}{"visa-experts": {}}, existing)
}

func (s *PostgresIntegrationSuite) TestJobStore_Upsert() {
	store := NewJobStore(s.db)

	_, err := store.Upsert(s.ctx, &domain.Job{Title: "No slug"})
	s.ErrorIs(err, domain.ErrInvalidArgument)

	job := &domain.Job{
		Slug:           testutil.Ptr("ops-lead"),
		Title:          "Ops Lead",
		SalaryCurrency: "GBP",
		SkillsRequired: []string{"ops"},
		IsActive:       true,
	}
	result, err := store.Upsert(s.ctx, job)
	s.NoError(err)
	s.Equal(domain.UpsertInserted, result)

	result, err = store.Upsert(s.ctx, job)
	s.NoError(err)
	s.Equal(domain.UpsertUnchanged, result)

	var rows int
	s.Require().NoError(s.db.GetContext(s.ctx, &rows, `SELECT COUNT(*) FROM jobs`))
	s.Equal(1, rows)
}

func (s *PostgresIntegrationSuite) TestSkillStore_Upsert() {
	store := NewSkillStore(s.db)

	result, err := store.Upsert(s.ctx, &domain.Skill{Name: "Go"})
	s.NoError(err)
	s.Equal(domain.UpsertInserted, result)

	result, err = store.Upsert(s.ctx, &domain.Skill{Name: "Go"})
	s.NoError(err)
	s.Equal(domain.UpsertUnchanged, result)

	result, err = store.Upsert(s.ctx, &domain.Skill{Name: "Go", Category: testutil.Ptr("languages")})
	s.NoError(err)
	s.Equal(domain.UpsertUpdated, result)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	articleStore := NewArticleStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := articleStore.Upsert(ctx, &domain.Article{Slug: "tx", Title: "Transaction Article"})
		return err
	})
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles WHERE slug = $1", "tx")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	destinations := NewDestinationStore(s.db)
	errBadFile := errors.New("bad file")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := destinations.Upsert(ctx, &domain.Destination{
			DestinationSummary: domain.DestinationSummary{Slug: "rollback", CountryName: "Rollback"},
		})
		if err != nil {
			return err
		}
		return errBadFile
	})
	s.ErrorIs(err, errBadFile)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM destinations WHERE slug = $1", "rollback")
	s.NoError(err)
	s.Equal(0, count)
}
