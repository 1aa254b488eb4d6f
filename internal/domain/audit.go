package domain

import "time"

// Partition selects the rows of a shared table that belong to this site,
// e.g. app = 'relocation' on the V1 database. The zero value selects all.
type Partition struct {
	Column string
	Value  string
}

func (p Partition) IsZero() bool {
	return p.Column == ""
}

type TableInfo struct {
	Name string `db:"table_name"`
	Type string `db:"table_type"`
}

type TableCount struct {
	Name  string
	Rows  int64
	Found bool
	Err   string
}

type ColumnInfo struct {
	Name     string `db:"column_name"`
	DataType string `db:"data_type"`
	Nullable bool   `db:"nullable"`
}

type ArticleKey struct {
	Slug    string  `db:"slug" json:"slug"`
	Title   string  `db:"title" json:"title"`
	Country *string `db:"country" json:"country"`
}

type BreakdownRow struct {
	Value *string `db:"value"`
	Count int64   `db:"count"`
}

// MigrationStats holds statistics about a bulk copy run.
type MigrationStats struct {
	RunID     string
	Partition Partition
	Fetched   int
	New       int
	Updated   int
	Unchanged int
	Skipped   int
	Errors    int
	Published int
	DryRun    bool
	Duration  time.Duration
}
