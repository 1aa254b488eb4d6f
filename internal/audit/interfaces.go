package audit

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"relocation_quest/internal/domain"
)

type Catalog interface {
	Tables(ctx context.Context) ([]domain.TableInfo, error)
	CountRows(ctx context.Context, table string) (int64, error)
	Columns(ctx context.Context, table string) ([]domain.ColumnInfo, error)
	ArticleKeys(ctx context.Context, partition domain.Partition) ([]domain.ArticleKey, error)
	CountArticlesMentioning(ctx context.Context, term string) (int64, error)
	ArticleBreakdown(ctx context.Context, dimension string, partition domain.Partition, limit int) ([]domain.BreakdownRow, error)
	ArticlesMatching(ctx context.Context, keywords []string) ([]domain.ArticleKey, error)
	PartitionCounts(ctx context.Context, column string) ([]domain.BreakdownRow, error)
}
