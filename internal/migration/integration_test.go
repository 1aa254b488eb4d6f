//go:build integration

package migration

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"relocation_quest/internal/domain"
	"relocation_quest/internal/storage/postgres"
)

type MigrationIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	target    *sqlx.DB
	legacy    *sqlx.DB
	logger    *slog.Logger
	partition domain.Partition
}

func (s *MigrationIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.partition = domain.Partition{Column: "app", Value: "relocation"}

	migrationsPath, err := filepath.Abs("../../migrations")
	s.Require().NoError(err)

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_articles.up.sql"),
			filepath.Join(migrationsPath, "002_create_destinations.up.sql"),
			filepath.Join("..", "storage", "postgres", "testdata", "legacy_schema.sql"),
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

	s.target, err = postgres.Connect(s.ctx, connStr)
	s.Require().NoError(err)

	s.legacy, err = postgres.Connect(s.ctx, connStr+"&search_path=legacy")
	s.Require().NoError(err)
}

func (s *MigrationIntegrationSuite) TearDownSuite() {
	if s.legacy != nil {
		s.legacy.Close()
	}
	if s.target != nil {
		s.target.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *MigrationIntegrationSuite) SetupTest() {
	_, _ = s.target.ExecContext(s.ctx, "DELETE FROM articles")
	_, _ = s.target.ExecContext(s.ctx, "DELETE FROM destinations")
	_, _ = s.target.ExecContext(s.ctx, "DELETE FROM legacy.articles")
	for _, table := range []string{"companies", "jobs", "skills"} {
		_, _ = s.target.ExecContext(s.ctx, "DELETE FROM public."+table)
		_, _ = s.target.ExecContext(s.ctx, "DELETE FROM legacy."+table)
	}
}

func TestMigrationIntegrationSuite(t *testing.T) {
	suite.Run(t, new(MigrationIntegrationSuite))
}

func (s *MigrationIntegrationSuite) migrator() *Migrator {
	return NewMigrator(
		postgres.NewLegacyArticleStore(s.legacy),
		postgres.NewArticleStore(s.target),
		nil,
		s.partition,
		s.logger,
	)
}

func (s *MigrationIntegrationSuite) TestMigrate_RerunsAreIdempotent() {
	_, err := s.target.ExecContext(s.ctx, `
		INSERT INTO legacy.articles (app, slug, title, content, content_html, country, is_featured)
		VALUES
			('relocation', 'visa-guide-spain', 'Spain Visa Guide', 'raw', '<p>html</p>', 'Spain', NULL),
			('relocation', 'living-in-malta', 'Living in Malta', 'text', NULL, 'Malta', TRUE),
			('jobs', 'hiring-now', 'Hiring Now', NULL, NULL, NULL, NULL)
	`)
	s.Require().NoError(err)

	stats, err := s.migrator().Migrate(s.ctx, Options{})
	s.Require().NoError(err)
	s.Equal(2, stats.Fetched)
	s.Equal(2, stats.New)
	s.Zero(stats.Errors)

	var count int
	s.Require().NoError(s.target.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM articles`))
	s.Equal(2, count)

	var content string
	s.Require().NoError(s.target.GetContext(s.ctx, &content, `SELECT content FROM articles WHERE slug = 'visa-guide-spain'`))
	s.Equal("<p>html</p>", content)

	stats, err = s.migrator().Migrate(s.ctx, Options{})
	s.Require().NoError(err)
	s.Equal(2, stats.Skipped)
	s.Zero(stats.New)

	stats, err = s.migrator().Migrate(s.ctx, Options{UpdateExisting: true})
	s.Require().NoError(err)
	s.Equal(2, stats.Unchanged)

	_, err = s.target.ExecContext(s.ctx, `UPDATE legacy.articles SET title = 'Malta Living' WHERE slug = 'living-in-malta'`)
	s.Require().NoError(err)

	stats, err = s.migrator().Migrate(s.ctx, Options{UpdateExisting: true})
	s.Require().NoError(err)
	s.Equal(1, stats.Updated)
	s.Equal(1, stats.Unchanged)

	s.Require().NoError(s.target.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM articles`))
	s.Equal(2, count)
}

func (s *MigrationIntegrationSuite) TestMigrate_DryRunLeavesTargetEmpty() {
	_, err := s.target.ExecContext(s.ctx, `
		INSERT INTO legacy.articles (app, slug, title) VALUES ('relocation', 'dry', 'Dry')
	`)
	s.Require().NoError(err)

	stats, err := s.migrator().Migrate(s.ctx, Options{DryRun: true})
	s.Require().NoError(err)
	s.Equal(1, stats.New)

	var count int
	s.Require().NoError(s.target.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM articles`))
	s.Zero(count)
}

func (s *MigrationIntegrationSuite) TestReferenceCopy_CreatesTablesAndRerunsAreIdempotent() {
	_, err := s.target.ExecContext(s.ctx, `
		INSERT INTO legacy.companies (app, status, slug, name, payload)
		VALUES
			('relocation', 'published', 'visa-experts', 'Visa Experts', '{"featured": true}'),
			('fractional', 'published', 'cfo-co', 'CFO Co', NULL);
		INSERT INTO legacy.jobs (slug, title, is_active)
		VALUES ('ops-lead', 'Ops Lead', TRUE), (NULL, 'Unslugged', TRUE);
		INSERT INTO legacy.skills (name, category)
		VALUES ('Go', 'languages'), ('SQL', NULL);
	`)
	s.Require().NoError(err)

	copier := NewReferenceCopier(
		postgres.NewLegacyReferenceStore(s.legacy),
		postgres.NewSchemaStore(s.target),
		ReferenceStores{
			Companies: postgres.NewCompanyStore(s.target),
			Jobs:      postgres.NewJobStore(s.target),
			Skills:    postgres.NewSkillStore(s.target),
		},
		s.partition,
		s.logger,
	)

	steps := copier.Copy(s.ctx, Options{})
	s.Require().Len(steps, 4)
	for _, step := range steps {
		s.False(step.Failed(), "%s: %s", step.Step, step.Err)
	}
	s.Equal(1, steps[0].New)
	s.Equal(1, steps[1].New)
	s.Equal(1, steps[1].Skipped)
	s.Equal(2, steps[3].New)

	steps = copier.Copy(s.ctx, Options{UpdateExisting: true})
	s.Equal(1, steps[0].Unchanged)
	s.Equal(1, steps[1].Unchanged)
	s.Equal(2, steps[3].Unchanged)

	catalog := postgres.NewCatalog(s.target)
	for table, want := range map[string]int64{"companies": 1, "jobs": 1, "skills": 2, "contact_submissions": 0} {
		rows, err := catalog.CountRows(s.ctx, table)
		s.NoError(err, table)
		s.Equal(want, rows, table)
	}
}

func (s *MigrationIntegrationSuite) TestSeed_RollsBackWholeBatch() {
	seeder := NewSeeder(
		postgres.NewDestinationStore(s.target),
		postgres.NewTransactionManager(s.target),
		s.logger,
	)

	batch := []domain.Destination{
		{DestinationSummary: domain.DestinationSummary{Slug: "cyprus", CountryName: "Cyprus"}, Enabled: true},
		{
			DestinationSummary: domain.DestinationSummary{Slug: "malta", CountryName: "Malta"},
			QuickFacts:         types.JSONText(`{"broken":`),
		},
	}

	_, err := seeder.Seed(s.ctx, batch)
	s.Error(err)

	var count int
	s.Require().NoError(s.target.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM destinations`))
	s.Zero(count)

	batch[1].QuickFacts = types.JSONText(`{"capital":"Valletta"}`)
	stats, err := seeder.Seed(s.ctx, batch)
	s.Require().NoError(err)
	s.Equal(2, stats.Inserted)

	stats, err = seeder.Seed(s.ctx, batch)
	s.Require().NoError(err)
	s.Equal(2, stats.Updated)
}
