package migration

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"relocation_quest/internal/domain"
)

type LegacySource interface {
	ListPartition(ctx context.Context, partition domain.Partition) ([]domain.Article, error)
}

type ArticleStore interface {
	ExistingSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error)
	Upsert(ctx context.Context, article *domain.Article) (domain.UpsertResult, error)
}

type LegacyReferenceSource interface {
	ListCompanies(ctx context.Context, partition domain.Partition) ([]domain.Company, error)
	ListJobs(ctx context.Context, limit int) ([]domain.Job, error)
	ListSkills(ctx context.Context, limit int) ([]domain.Skill, error)
}

type SchemaManager interface {
	EnsureTable(ctx context.Context, table string) error
}

type CompanyStore interface {
	ExistingKeys(ctx context.Context, slugs []string) (map[string]struct{}, error)
	Upsert(ctx context.Context, c *domain.Company) (domain.UpsertResult, error)
}

type JobStore interface {
	ExistingKeys(ctx context.Context, slugs []string) (map[string]struct{}, error)
	Upsert(ctx context.Context, j *domain.Job) (domain.UpsertResult, error)
}

type SkillStore interface {
	ExistingKeys(ctx context.Context, names []string) (map[string]struct{}, error)
	Upsert(ctx context.Context, s *domain.Skill) (domain.UpsertResult, error)
}

type DestinationStore interface {
	Upsert(ctx context.Context, d *domain.Destination) (domain.UpsertResult, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, runID string, article *domain.Article, result domain.UpsertResult) error
}
