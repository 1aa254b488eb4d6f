package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"relocation_quest/internal/domain"
)

// Breakdown dimensions accepted by ArticleBreakdown. Column names cannot be
// bound as parameters, so only these are ever interpolated.
const (
	DimensionArticleMode = "article_mode"
	DimensionCountry     = "country"
)

// Catalog answers the read-only questions the audit tooling asks of a
// database instance.
type Catalog struct {
	db *sqlx.DB
}

func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) Tables(ctx context.Context) ([]domain.TableInfo, error) {
	query := `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name`

	tables := []domain.TableInfo{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (c *Catalog) CountRows(ctx context.Context, table string) (int64, error) {
	var rows int64
	query := `SELECT COUNT(*) FROM ` + pq.QuoteIdentifier(table)
	if err := GetExecutor(ctx, c.db).GetContext(ctx, &rows, query); err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return rows, nil
}

// Columns lists a public table's columns in ordinal order. An unknown table
// yields an empty slice.
func (c *Catalog) Columns(ctx context.Context, table string) ([]domain.ColumnInfo, error) {
	query := `
		SELECT
			column_name,
			data_type,
			is_nullable = 'YES' AS nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`

	columns := []domain.ColumnInfo{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &columns, query, table); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return columns, nil
}

// ArticleKeys returns the identity of every article in partition, ordered
// by slug.
func (c *Catalog) ArticleKeys(ctx context.Context, partition domain.Partition) ([]domain.ArticleKey, error) {
	where, args := partitionFilter(partition, 1)
	query := `
		SELECT slug, COALESCE(title, '') AS title, country
		FROM articles
		WHERE slug IS NOT NULL` + where + `
		ORDER BY slug`

	keys := []domain.ArticleKey{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("list article keys: %w", err)
	}
	return keys, nil
}

// CountArticlesMentioning counts articles whose country or title contains
// term, ignoring case.
func (c *Catalog) CountArticlesMentioning(ctx context.Context, term string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM articles
		WHERE LOWER(country) LIKE $1
		   OR LOWER(title) LIKE $1`

	var count int64
	if err := GetExecutor(ctx, c.db).GetContext(ctx, &count, query, containsPattern(term)); err != nil {
		return 0, fmt.Errorf("count articles mentioning %q: %w", term, err)
	}
	return count, nil
}

// ArticleBreakdown groups partition's articles by dimension, largest groups
// first. A non-positive limit returns every group.
func (c *Catalog) ArticleBreakdown(ctx context.Context, dimension string, partition domain.Partition, limit int) ([]domain.BreakdownRow, error) {
	var extra string
	switch dimension {
	case DimensionArticleMode:
	case DimensionCountry:
		extra = ` AND country IS NOT NULL AND country <> ''`
	default:
		return nil, fmt.Errorf("breakdown by %q: %w", dimension, domain.ErrInvalidArgument)
	}

	where, args := partitionFilter(partition, 1)
	col := pq.QuoteIdentifier(dimension)
	query := `
		SELECT ` + col + ` AS value, COUNT(*) AS count
		FROM articles
		WHERE TRUE` + where + extra + `
		GROUP BY ` + col + `
		ORDER BY count DESC, value ASC NULLS LAST`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows := []domain.BreakdownRow{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("breakdown articles by %s: %w", dimension, err)
	}
	return rows, nil
}

// ArticlesMatching returns every article, whatever its partition, whose
// title contains one of keywords or that names a country. Newest first.
func (c *Catalog) ArticlesMatching(ctx context.Context, keywords []string) ([]domain.ArticleKey, error) {
	patterns := make([]string, len(keywords))
	for i, k := range keywords {
		patterns[i] = containsPattern(k)
	}

	query := `
		SELECT slug, COALESCE(title, '') AS title, country
		FROM articles
		WHERE slug IS NOT NULL
		  AND (LOWER(title) LIKE ANY($1) OR country IS NOT NULL)
		ORDER BY published_at DESC NULLS LAST, slug`

	keys := []domain.ArticleKey{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &keys, query, pq.Array(patterns)); err != nil {
		return nil, fmt.Errorf("list articles matching keywords: %w", err)
	}
	return keys, nil
}

// PartitionCounts counts articles per value of the partition column,
// largest first. NULL is its own group.
func (c *Catalog) PartitionCounts(ctx context.Context, column string) ([]domain.BreakdownRow, error) {
	col := pq.QuoteIdentifier(column)
	query := `
		SELECT ` + col + `::text AS value, COUNT(*) AS count
		FROM articles
		GROUP BY ` + col + `
		ORDER BY count DESC, value ASC NULLS LAST`

	rows := []domain.BreakdownRow{}
	if err := GetExecutor(ctx, c.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count articles by %s: %w", column, err)
	}
	return rows, nil
}

// partitionFilter renders an AND clause selecting partition, binding its
// value at placeholder n.
func partitionFilter(partition domain.Partition, n int) (string, []interface{}) {
	if partition.IsZero() {
		return "", nil
	}
	return fmt.Sprintf(" AND %s = $%d", pq.QuoteIdentifier(partition.Column), n), []interface{}{partition.Value}
}
